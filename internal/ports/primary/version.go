package primary

import "context"

// VersionService defines the primary port for package version operations.
type VersionService interface {
	// CreateVersion registers a package version.
	CreateVersion(ctx context.Context, req CreateVersionRequest) (*Version, error)

	// GetVersion retrieves a version by ID.
	GetVersion(ctx context.Context, versionID int64) (*Version, error)

	// ListVersionTags retrieves the tags associated with a version.
	ListVersionTags(ctx context.Context, versionID int64) ([]*Tag, error)
}

// CreateVersionRequest contains parameters for registering a version.
type CreateVersionRequest struct {
	PackageName string `json:"package" validate:"required"`
	Version     string `json:"version" validate:"required"`
}

// Version represents a package version at the port boundary.
type Version struct {
	ID                int64  `json:"id"`
	PackageName       string `json:"package"`
	Version           string `json:"version"`
	NormalizedVersion string `json:"normalized_version"`
	CreatedAt         string `json:"created_at,omitempty"`
}
