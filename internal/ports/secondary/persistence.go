// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// TagRecord represents a tag as stored in persistence.
type TagRecord struct {
	ID        int64 // Zero until the store assigns one
	Name      string
	CreatedAt string
	UpdatedAt string
}

// TagRepository defines the secondary port for tag persistence.
// Lookups that match no row return an error wrapping tag.ErrNotFound.
type TagRepository interface {
	// Create persists a new tag and sets its ID.
	// A name collision returns an error wrapping tag.ErrDuplicateName.
	Create(ctx context.Context, tag *TagRecord) error

	// InsertIfAbsent atomically creates the tag unless one with the same name
	// exists, then returns the stored row either way.
	InsertIfAbsent(ctx context.Context, name string) (*TagRecord, error)

	// GetByID retrieves a tag by its ID.
	GetByID(ctx context.Context, id int64) (*TagRecord, error)

	// GetByName retrieves the tag whose name equals name under the store's collation.
	GetByName(ctx context.Context, name string) (*TagRecord, error)

	// Update writes the name of an existing tag.
	Update(ctx context.Context, tag *TagRecord) error

	// List retrieves all tags ordered by name.
	List(ctx context.Context) ([]*TagRecord, error)

	// AddVersion associates a version with a tag. Existing pairs are left alone.
	// An unknown version returns an error wrapping version.ErrNotFound.
	AddVersion(ctx context.Context, tagID, versionID int64) error

	// ListVersions retrieves the versions associated with a tag.
	ListVersions(ctx context.Context, tagID int64) ([]*VersionRecord, error)

	// ListByVersion retrieves the tags associated with a version, ordered by name.
	ListByVersion(ctx context.Context, versionID int64) ([]*TagRecord, error)
}

// VersionRecord represents a package version as stored in persistence.
type VersionRecord struct {
	ID                int64
	PackageName       string
	Version           string
	NormalizedVersion string
	CreatedAt         string
}

// VersionRepository defines the secondary port for version persistence.
type VersionRepository interface {
	// Create persists a new version and sets its ID.
	Create(ctx context.Context, version *VersionRecord) error

	// GetByID retrieves a version by its ID.
	GetByID(ctx context.Context, id int64) (*VersionRecord, error)

	// GetByPackage retrieves a version by package name and normalized version.
	GetByPackage(ctx context.Context, packageName, normalizedVersion string) (*VersionRecord, error)
}

// Transactor runs work against a single database transaction.
type Transactor interface {
	// WithinTx calls fn with a tag repository bound to a new transaction.
	// The transaction commits if fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tags TagRepository) error) error
}
