package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/pkgtags/internal/core/tag"
	"github.com/example/pkgtags/internal/ctxutil"
	"github.com/example/pkgtags/internal/ports/primary"
	"github.com/example/pkgtags/internal/ports/secondary"
)

// TagServiceImpl implements the TagService interface.
type TagServiceImpl struct {
	tagRepo     secondary.TagRepository
	versionRepo secondary.VersionRepository
	tx          secondary.Transactor
	logger      *zap.Logger
}

// NewTagService creates a new TagService with injected dependencies.
func NewTagService(tagRepo secondary.TagRepository, versionRepo secondary.VersionRepository, tx secondary.Transactor, logger *zap.Logger) *TagServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagServiceImpl{
		tagRepo:     tagRepo,
		versionRepo: versionRepo,
		tx:          tx,
		logger:      logger,
	}
}

// GetTag retrieves a tag by name.
func (s *TagServiceImpl) GetTag(ctx context.Context, name string) (*primary.Tag, error) {
	record, err := s.tagRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.recordToTag(record), nil
}

// ResolveTag looks a tag up by name and creates it when req.Create is set.
func (s *TagServiceImpl) ResolveTag(ctx context.Context, req primary.ResolveTagRequest) (*primary.ResolveTagResponse, error) {
	session := s.newSession()

	t, err := session.GetByName(ctx, req.Name, req.Create)
	if err != nil {
		return nil, err
	}
	created := !t.IsPersisted()

	if err := session.Flush(ctx); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	if created {
		id, _ := t.ID()
		s.logger.Info("tag created",
			zap.String("request_id", ctxutil.RequestIDFromContext(ctx)),
			zap.Int64("tag_id", id),
			zap.String("name", t.Name()),
		)
	}

	result, err := s.fetch(ctx, t)
	if err != nil {
		return nil, err
	}
	return &primary.ResolveTagResponse{Tag: result, Created: created}, nil
}

// EnsureTag returns the named tag, inserting it atomically if absent.
func (s *TagServiceImpl) EnsureTag(ctx context.Context, name string) (*primary.Tag, error) {
	session := s.newSession()

	t, err := session.Ensure(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure tag: %w", err)
	}
	return s.fetch(ctx, t)
}

// RenameTag changes the name of an existing tag.
func (s *TagServiceImpl) RenameTag(ctx context.Context, req primary.RenameTagRequest) (*primary.Tag, error) {
	session := s.newSession()

	t, err := session.GetByName(ctx, req.Name, false)
	if err != nil {
		return nil, err
	}

	t.SetName(req.NewName)
	if err := session.Flush(ctx); err != nil {
		return nil, fmt.Errorf("failed to rename tag: %w", err)
	}

	s.logger.Info("tag renamed",
		zap.String("request_id", ctxutil.RequestIDFromContext(ctx)),
		zap.String("from", req.Name),
		zap.String("to", req.NewName),
	)
	return s.fetch(ctx, t)
}

// ListTags retrieves all tags.
func (s *TagServiceImpl) ListTags(ctx context.Context) ([]*primary.Tag, error) {
	records, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := make([]*primary.Tag, len(records))
	for i, r := range records {
		tags[i] = s.recordToTag(r)
	}
	return tags, nil
}

// TagVersion associates a version with a tag, creating the tag if requested.
func (s *TagServiceImpl) TagVersion(ctx context.Context, req primary.TagVersionRequest) (*primary.Tag, error) {
	v, err := s.versionRepo.GetByID(ctx, req.VersionID)
	if err != nil {
		return nil, err
	}

	session := s.newSession()
	t, err := session.GetByName(ctx, req.TagName, req.Create)
	if err != nil {
		return nil, err
	}

	session.AddVersion(t, tag.VersionRef{
		ID:                v.ID,
		PackageName:       v.PackageName,
		Version:           v.Version,
		NormalizedVersion: v.NormalizedVersion,
	})
	if err := session.Flush(ctx); err != nil {
		return nil, fmt.Errorf("failed to tag version: %w", err)
	}

	return s.fetch(ctx, t)
}

// ListTagVersions retrieves the versions associated with a tag.
func (s *TagServiceImpl) ListTagVersions(ctx context.Context, name string) ([]*primary.Version, error) {
	session := s.newSession()

	t, err := session.GetByName(ctx, name, false)
	if err != nil {
		return nil, err
	}

	refs, err := session.Versions(ctx, t)
	if err != nil {
		return nil, err
	}

	versions := make([]*primary.Version, len(refs))
	for i, r := range refs {
		versions[i] = &primary.Version{
			ID:                r.ID,
			PackageName:       r.PackageName,
			Version:           r.Version,
			NormalizedVersion: r.NormalizedVersion,
		}
	}
	return versions, nil
}

// Helper methods

func (s *TagServiceImpl) newSession() *Session {
	return NewSession(s.tagRepo, s.tx, s.logger)
}

// fetch reloads a flushed tag to pick up store-assigned timestamps.
func (s *TagServiceImpl) fetch(ctx context.Context, t *tag.Tag) (*primary.Tag, error) {
	id, err := t.ID()
	if err != nil {
		return nil, err
	}
	record, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tag %d: %w", id, err)
	}
	return s.recordToTag(record), nil
}

func (s *TagServiceImpl) recordToTag(r *secondary.TagRecord) *primary.Tag {
	return &primary.Tag{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure TagServiceImpl implements the interface.
var _ primary.TagService = (*TagServiceImpl)(nil)
