package primary

import "context"

// TagService defines the primary port for tag operations.
// Each call runs in its own unit of work and flushes before returning.
type TagService interface {
	// GetTag retrieves a tag by name.
	GetTag(ctx context.Context, name string) (*Tag, error)

	// ResolveTag looks a tag up by name, creating it when requested.
	ResolveTag(ctx context.Context, req ResolveTagRequest) (*ResolveTagResponse, error)

	// EnsureTag returns the named tag, inserting it atomically if absent.
	EnsureTag(ctx context.Context, name string) (*Tag, error)

	// RenameTag changes the name of an existing tag.
	RenameTag(ctx context.Context, req RenameTagRequest) (*Tag, error)

	// ListTags retrieves all tags.
	ListTags(ctx context.Context) ([]*Tag, error)

	// TagVersion associates a version with a tag.
	TagVersion(ctx context.Context, req TagVersionRequest) (*Tag, error)

	// ListTagVersions retrieves the versions associated with a tag.
	ListTagVersions(ctx context.Context, name string) ([]*Version, error)
}

// ResolveTagRequest contains parameters for a lookup-or-create.
type ResolveTagRequest struct {
	Name   string `json:"name" validate:"required,max=191"`
	Create bool   `json:"create"`
}

// ResolveTagResponse contains the result of a lookup-or-create.
type ResolveTagResponse struct {
	Tag     *Tag `json:"tag"`
	Created bool `json:"created"`
}

// RenameTagRequest contains parameters for renaming a tag.
type RenameTagRequest struct {
	Name    string `json:"-"`
	NewName string `json:"name" validate:"required,max=191"`
}

// TagVersionRequest contains parameters for tagging a version.
type TagVersionRequest struct {
	TagName   string `json:"-"`
	VersionID int64  `json:"version_id" validate:"required,gt=0"`
	Create    bool   `json:"create"` // create the tag if it does not exist
}

// Tag represents a tag entity at the port boundary.
type Tag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
