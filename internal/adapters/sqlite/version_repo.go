package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/pkgtags/internal/core/version"
	"github.com/example/pkgtags/internal/ports/secondary"
)

const versionColumns = "id, package_name, version, normalized_version, created_at"

// VersionRepository implements secondary.VersionRepository with SQLite.
type VersionRepository struct {
	db querier
}

// NewVersionRepository creates a new SQLite version repository.
func NewVersionRepository(db *sql.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

// Create persists a new version and sets its ID.
func (r *VersionRepository) Create(ctx context.Context, v *secondary.VersionRecord) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO package_version (package_name, version, normalized_version, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
		v.PackageName, v.Version, v.NormalizedVersion,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%s %s: %w", v.PackageName, v.NormalizedVersion, version.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create version: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read version id: %w", err)
	}
	v.ID = id

	return nil
}

// GetByID retrieves a version by its ID.
func (r *VersionRepository) GetByID(ctx context.Context, id int64) (*secondary.VersionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+versionColumns+" FROM package_version WHERE id = ?",
		id,
	)

	record, err := scanVersion(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("version %d: %w", id, version.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	return record, nil
}

// GetByPackage retrieves a version by package name and normalized version.
func (r *VersionRepository) GetByPackage(ctx context.Context, packageName, normalizedVersion string) (*secondary.VersionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+versionColumns+" FROM package_version WHERE package_name = ? AND normalized_version = ?",
		packageName, normalizedVersion,
	)

	record, err := scanVersion(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s %s: %w", packageName, normalizedVersion, version.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	return record, nil
}

func scanVersion(row rowScanner) (*secondary.VersionRecord, error) {
	var createdAt sql.NullTime

	record := &secondary.VersionRecord{}
	err := row.Scan(&record.ID, &record.PackageName, &record.Version, &record.NormalizedVersion, &createdAt)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = formatTime(createdAt)
	return record, nil
}

func scanVersions(rows *sql.Rows) ([]*secondary.VersionRecord, error) {
	versions := []*secondary.VersionRecord{}
	for rows.Next() {
		record, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, record)
	}
	return versions, rows.Err()
}

// Ensure VersionRepository implements the interface.
var _ secondary.VersionRepository = (*VersionRepository)(nil)
