// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/pkgtags/internal/core/tag"
	"github.com/example/pkgtags/internal/core/version"
	"github.com/example/pkgtags/internal/ports/secondary"
)

const tagColumns = "id, name, created_at, updated_at"

// TagRepository implements secondary.TagRepository with SQLite.
type TagRepository struct {
	db querier
}

// NewTagRepository creates a new SQLite tag repository.
func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create persists a new tag and sets its ID.
func (r *TagRepository) Create(ctx context.Context, t *secondary.TagRecord) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO tag (name, created_at, updated_at) VALUES (?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		t.Name,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("tag '%s': %w", t.Name, tag.ErrDuplicateName)
	}
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read tag id: %w", err)
	}
	t.ID = id

	return nil
}

// InsertIfAbsent creates the tag unless the name is taken and returns the stored row.
func (r *TagRepository) InsertIfAbsent(ctx context.Context, name string) (*secondary.TagRecord, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tag (name, created_at, updated_at) VALUES (?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO NOTHING`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tag: %w", err)
	}

	return r.GetByName(ctx, name)
}

// GetByID retrieves a tag by its ID.
func (r *TagRepository) GetByID(ctx context.Context, id int64) (*secondary.TagRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+tagColumns+" FROM tag WHERE id = ?",
		id,
	)

	record, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tag %d: %w", id, tag.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return record, nil
}

// GetByName retrieves a tag by its name.
func (r *TagRepository) GetByName(ctx context.Context, name string) (*secondary.TagRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+tagColumns+" FROM tag WHERE name = ? LIMIT 1",
		name,
	)

	record, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tag '%s': %w", name, tag.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return record, nil
}

// Update writes the name of an existing tag.
func (r *TagRepository) Update(ctx context.Context, t *secondary.TagRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tag SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		t.Name, t.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("tag '%s': %w", t.Name, tag.ErrDuplicateName)
	}
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("tag %d: %w", t.ID, tag.ErrNotFound)
	}

	return nil
}

// List retrieves all tags ordered by name.
func (r *TagRepository) List(ctx context.Context) ([]*secondary.TagRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+tagColumns+" FROM tag ORDER BY name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// AddVersion associates a version with a tag. Existing pairs are left alone.
func (r *TagRepository) AddVersion(ctx context.Context, tagID, versionID int64) error {
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM package_version WHERE id = ?",
		versionID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check version: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("version %d: %w", versionID, version.ErrNotFound)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO version_tag (version_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		versionID, tagID,
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("tag %d: %w", tagID, tag.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to add version to tag: %w", err)
	}

	return nil
}

// ListVersions retrieves the versions associated with a tag.
func (r *TagRepository) ListVersions(ctx context.Context, tagID int64) ([]*secondary.VersionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT v.id, v.package_name, v.version, v.normalized_version, v.created_at
		 FROM package_version v
		 INNER JOIN version_tag vt ON v.id = vt.version_id
		 WHERE vt.tag_id = ?
		 ORDER BY v.package_name ASC, v.id ASC`,
		tagID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag versions: %w", err)
	}
	defer rows.Close()

	return scanVersions(rows)
}

// ListByVersion retrieves the tags associated with a version, ordered by name.
func (r *TagRepository) ListByVersion(ctx context.Context, versionID int64) ([]*secondary.TagRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.created_at, t.updated_at
		 FROM tag t
		 INNER JOIN version_tag vt ON t.id = vt.tag_id
		 WHERE vt.version_id = ?
		 ORDER BY t.name ASC`,
		versionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list version tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTag(row rowScanner) (*secondary.TagRecord, error) {
	var createdAt, updatedAt sql.NullTime

	record := &secondary.TagRecord{}
	if err := row.Scan(&record.ID, &record.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

func scanTags(rows *sql.Rows) ([]*secondary.TagRecord, error) {
	tags := []*secondary.TagRecord{}
	for rows.Next() {
		record, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, record)
	}
	return tags, rows.Err()
}

// Ensure TagRepository implements the interface.
var _ secondary.TagRepository = (*TagRepository)(nil)
