package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/example/pkgtags/internal/core/version"
	"github.com/example/pkgtags/internal/ports/secondary"
)

// VersionRepository implements secondary.VersionRepository with gorm.
type VersionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new gorm version repository.
func NewVersionRepository(db *gorm.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

// Create persists a new version and sets its ID.
func (r *VersionRepository) Create(ctx context.Context, v *secondary.VersionRecord) error {
	m := versionModel{
		PackageName:       v.PackageName,
		Version:           v.Version,
		NormalizedVersion: v.NormalizedVersion,
	}
	err := r.db.WithContext(ctx).Create(&m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s %s: %w", v.PackageName, v.NormalizedVersion, version.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create version: %w", err)
	}

	v.ID = m.ID
	v.CreatedAt = formatTime(m.CreatedAt)
	return nil
}

// GetByID retrieves a version by its ID.
func (r *VersionRepository) GetByID(ctx context.Context, id int64) (*secondary.VersionRecord, error) {
	var m versionModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("version %d: %w", id, version.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	return m.record(), nil
}

// GetByPackage retrieves a version by package name and normalized version.
func (r *VersionRepository) GetByPackage(ctx context.Context, packageName, normalizedVersion string) (*secondary.VersionRecord, error) {
	var m versionModel
	err := r.db.WithContext(ctx).
		Where("package_name = ? AND normalized_version = ?", packageName, normalizedVersion).
		First(&m).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("%s %s: %w", packageName, normalizedVersion, version.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	return m.record(), nil
}

func (m versionModel) record() *secondary.VersionRecord {
	return &secondary.VersionRecord{
		ID:                m.ID,
		PackageName:       m.PackageName,
		Version:           m.Version,
		NormalizedVersion: m.NormalizedVersion,
		CreatedAt:         formatTime(m.CreatedAt),
	}
}

func versionRecords(models []versionModel) []*secondary.VersionRecord {
	records := make([]*secondary.VersionRecord, 0, len(models))
	for _, m := range models {
		records = append(records, m.record())
	}
	return records
}

// Ensure VersionRepository implements the interface.
var _ secondary.VersionRepository = (*VersionRepository)(nil)
