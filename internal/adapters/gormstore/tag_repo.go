package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/pkgtags/internal/core/tag"
	"github.com/example/pkgtags/internal/core/version"
	"github.com/example/pkgtags/internal/ports/secondary"
)

// TagRepository implements secondary.TagRepository with gorm.
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new gorm tag repository.
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create persists a new tag and sets its ID.
func (r *TagRepository) Create(ctx context.Context, t *secondary.TagRecord) error {
	m := tagModel{Name: t.Name}
	err := r.db.WithContext(ctx).Create(&m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("tag '%s': %w", t.Name, tag.ErrDuplicateName)
	}
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	t.ID = m.ID
	t.CreatedAt = formatTime(m.CreatedAt)
	t.UpdatedAt = formatTime(m.UpdatedAt)
	return nil
}

// InsertIfAbsent creates the tag unless the name is taken and returns the stored row.
func (r *TagRepository) InsertIfAbsent(ctx context.Context, name string) (*secondary.TagRecord, error) {
	m := tagModel{Name: name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&m).Error
	if err != nil {
		return nil, fmt.Errorf("failed to insert tag: %w", err)
	}

	return r.GetByName(ctx, name)
}

// GetByID retrieves a tag by its ID.
func (r *TagRepository) GetByID(ctx context.Context, id int64) (*secondary.TagRecord, error) {
	var m tagModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("tag %d: %w", id, tag.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return m.record(), nil
}

// GetByName retrieves a tag by its name.
func (r *TagRepository) GetByName(ctx context.Context, name string) (*secondary.TagRecord, error) {
	var m tagModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if isNotFound(err) {
		return nil, fmt.Errorf("tag '%s': %w", name, tag.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return m.record(), nil
}

// Update writes the name of an existing tag.
func (r *TagRepository) Update(ctx context.Context, t *secondary.TagRecord) error {
	result := r.db.WithContext(ctx).
		Model(&tagModel{}).
		Where("id = ?", t.ID).
		Update("name", t.Name)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("tag '%s': %w", t.Name, tag.ErrDuplicateName)
	}
	if result.Error != nil {
		return fmt.Errorf("failed to update tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("tag %d: %w", t.ID, tag.ErrNotFound)
	}

	return nil
}

// List retrieves all tags ordered by name.
func (r *TagRepository) List(ctx context.Context) ([]*secondary.TagRecord, error) {
	var models []tagModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tagRecords(models), nil
}

// AddVersion associates a version with a tag. Existing pairs are left alone.
func (r *TagRepository) AddVersion(ctx context.Context, tagID, versionID int64) error {
	db := r.db.WithContext(ctx)

	var exists int64
	if err := db.Model(&versionModel{}).Where("id = ?", versionID).Count(&exists).Error; err != nil {
		return fmt.Errorf("failed to check version: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("version %d: %w", versionID, version.ErrNotFound)
	}

	err := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&versionTagModel{VersionID: versionID, TagID: tagID}).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("tag %d: %w", tagID, tag.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to add version to tag: %w", err)
	}

	return nil
}

// ListVersions retrieves the versions associated with a tag.
func (r *TagRepository) ListVersions(ctx context.Context, tagID int64) ([]*secondary.VersionRecord, error) {
	var models []versionModel
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN version_tag ON version_tag.version_id = package_version.id").
		Where("version_tag.tag_id = ?", tagID).
		Order("package_version.package_name ASC, package_version.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tag versions: %w", err)
	}

	return versionRecords(models), nil
}

// ListByVersion retrieves the tags associated with a version, ordered by name.
func (r *TagRepository) ListByVersion(ctx context.Context, versionID int64) ([]*secondary.TagRecord, error) {
	var models []tagModel
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN version_tag ON version_tag.tag_id = tag.id").
		Where("version_tag.version_id = ?", versionID).
		Order("tag.name ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list version tags: %w", err)
	}

	return tagRecords(models), nil
}

func (m tagModel) record() *secondary.TagRecord {
	return &secondary.TagRecord{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: formatTime(m.CreatedAt),
		UpdatedAt: formatTime(m.UpdatedAt),
	}
}

func tagRecords(models []tagModel) []*secondary.TagRecord {
	records := make([]*secondary.TagRecord, 0, len(models))
	for _, m := range models {
		records = append(records, m.record())
	}
	return records
}

// Ensure TagRepository implements the interface.
var _ secondary.TagRepository = (*TagRepository)(nil)
