package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/pkgtags/internal/core/version"
	"github.com/example/pkgtags/internal/ctxutil"
	"github.com/example/pkgtags/internal/ports/primary"
	"github.com/example/pkgtags/internal/ports/secondary"
)

// VersionServiceImpl implements the VersionService interface.
type VersionServiceImpl struct {
	versionRepo secondary.VersionRepository
	tagRepo     secondary.TagRepository
	logger      *zap.Logger
}

// NewVersionService creates a new VersionService with injected dependencies.
func NewVersionService(versionRepo secondary.VersionRepository, tagRepo secondary.TagRepository, logger *zap.Logger) *VersionServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VersionServiceImpl{
		versionRepo: versionRepo,
		tagRepo:     tagRepo,
		logger:      logger,
	}
}

// CreateVersion registers a package version.
// Registering a version that already exists returns the stored one.
func (s *VersionServiceImpl) CreateVersion(ctx context.Context, req primary.CreateVersionRequest) (*primary.Version, error) {
	guardCtx := version.CreateVersionContext{
		PackageName: req.PackageName,
		Version:     req.Version,
	}
	if err := version.CanCreateVersion(guardCtx).Error(); err != nil {
		return nil, err
	}

	normalized := version.Normalize(req.Version)

	existing, err := s.versionRepo.GetByPackage(ctx, req.PackageName, normalized)
	if err == nil {
		return s.recordToVersion(existing), nil
	}
	if !errors.Is(err, version.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up version: %w", err)
	}

	record := &secondary.VersionRecord{
		PackageName:       req.PackageName,
		Version:           req.Version,
		NormalizedVersion: normalized,
	}
	if err := s.versionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create version: %w", err)
	}

	s.logger.Info("version registered",
		zap.String("request_id", ctxutil.RequestIDFromContext(ctx)),
		zap.Int64("version_id", record.ID),
		zap.String("package", record.PackageName),
		zap.String("version", record.NormalizedVersion),
	)

	created, err := s.versionRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created version: %w", err)
	}
	return s.recordToVersion(created), nil
}

// GetVersion retrieves a version by ID.
func (s *VersionServiceImpl) GetVersion(ctx context.Context, versionID int64) (*primary.Version, error) {
	record, err := s.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	return s.recordToVersion(record), nil
}

// ListVersionTags retrieves the tags associated with a version.
func (s *VersionServiceImpl) ListVersionTags(ctx context.Context, versionID int64) ([]*primary.Tag, error) {
	if _, err := s.versionRepo.GetByID(ctx, versionID); err != nil {
		return nil, err
	}

	records, err := s.tagRepo.ListByVersion(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := make([]*primary.Tag, len(records))
	for i, r := range records {
		tags[i] = &primary.Tag{
			ID:        r.ID,
			Name:      r.Name,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return tags, nil
}

func (s *VersionServiceImpl) recordToVersion(r *secondary.VersionRecord) *primary.Version {
	return &primary.Version{
		ID:                r.ID,
		PackageName:       r.PackageName,
		Version:           r.Version,
		NormalizedVersion: r.NormalizedVersion,
		CreatedAt:         r.CreatedAt,
	}
}

// Ensure VersionServiceImpl implements the interface.
var _ primary.VersionService = (*VersionServiceImpl)(nil)
