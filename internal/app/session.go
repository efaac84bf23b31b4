package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/pkgtags/internal/core/tag"
	"github.com/example/pkgtags/internal/ctxutil"
	"github.com/example/pkgtags/internal/ports/secondary"
)

// Session is a request-scoped unit of work over tags.
//
// Reads go straight to the repository. Writes (new tags, renames, version
// links) are held in memory until Flush, which applies them in one
// transaction. A Session is not safe for concurrent use.
//
// GetByName with create=true does not guard against another session creating
// the same name before this one flushes; the store's unique index rejects the
// loser with tag.ErrDuplicateName. Use Ensure when that race matters.
type Session struct {
	tags   secondary.TagRepository
	tx     secondary.Transactor
	logger *zap.Logger

	tracked []*tag.Tag
	links   []pendingLink
}

type pendingLink struct {
	tag     *tag.Tag
	version tag.VersionRef
}

// NewSession opens a unit of work.
func NewSession(tags secondary.TagRepository, tx secondary.Transactor, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		tags:   tags,
		tx:     tx,
		logger: logger,
	}
}

// GetByName returns the tag with the given name.
// When no tag exists and create is true, a new tag is registered for
// insertion on the next Flush and returned without an id. Otherwise the
// repository's not-found error is returned unchanged.
func (s *Session) GetByName(ctx context.Context, name string, create bool) (*tag.Tag, error) {
	if t := s.lookup(name); t != nil {
		return t, nil
	}

	record, err := s.tags.GetByName(ctx, name)
	if err == nil {
		// The stored name may belong to a tag renamed in this session.
		if t := s.lookupID(record.ID); t != nil {
			return t, nil
		}
		t := tag.Hydrate(record.ID, record.Name)
		s.tracked = append(s.tracked, t)
		return t, nil
	}
	if !errors.Is(err, tag.ErrNotFound) || !create {
		return nil, err
	}

	t := tag.New(name)
	s.Persist(t)
	return t, nil
}

// Ensure returns the named tag, inserting it atomically if absent.
// Unlike GetByName the tag is durable when Ensure returns.
func (s *Session) Ensure(ctx context.Context, name string) (*tag.Tag, error) {
	if err := tag.CanPersistTag(tag.PersistTagContext{Name: name}).Error(); err != nil {
		return nil, err
	}

	if t := s.lookup(name); t != nil && t.State() == tag.StatePersisted {
		return t, nil
	}

	record, err := s.tags.InsertIfAbsent(ctx, name)
	if err != nil {
		return nil, err
	}

	if t := s.lookupID(record.ID); t != nil {
		return t, nil
	}
	if t := s.lookup(name); t != nil && !t.IsPersisted() {
		// A pending tag with this name now has a stored row.
		t.MarkPersisted(record.ID)
		return t, nil
	}

	t := tag.Hydrate(record.ID, record.Name)
	s.tracked = append(s.tracked, t)
	return t, nil
}

// Persist registers a tag constructed by the caller for insertion on the next Flush.
func (s *Session) Persist(t *tag.Tag) {
	if s.isTracked(t) {
		return
	}
	s.tracked = append(s.tracked, t)
}

// AddVersion associates a version with a tag on the next Flush.
func (s *Session) AddVersion(t *tag.Tag, v tag.VersionRef) {
	s.Persist(t)
	t.AddVersions(v)
	s.links = append(s.links, pendingLink{tag: t, version: v})
}

// Versions returns the versions associated with t: stored rows followed by
// links still pending in this session.
func (s *Session) Versions(ctx context.Context, t *tag.Tag) ([]tag.VersionRef, error) {
	var refs []tag.VersionRef
	seen := make(map[int64]bool)

	if id, err := t.ID(); err == nil {
		records, err := s.tags.ListVersions(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to list versions of tag %s: %w", t.Name(), err)
		}
		for _, r := range records {
			refs = append(refs, tag.VersionRef{
				ID:                r.ID,
				PackageName:       r.PackageName,
				Version:           r.Version,
				NormalizedVersion: r.NormalizedVersion,
			})
			seen[r.ID] = true
		}
	}

	for _, l := range s.links {
		if l.tag != t || seen[l.version.ID] {
			continue
		}
		refs = append(refs, l.version)
		seen[l.version.ID] = true
	}

	if refs == nil {
		refs = []tag.VersionRef{}
	}
	return refs, nil
}

// Pending reports the number of tags and links waiting for Flush.
func (s *Session) Pending() (tags, links int) {
	for _, t := range s.tracked {
		if !t.IsPersisted() || t.IsDirty() {
			tags++
		}
	}
	return tags, len(s.links)
}

// Flush writes pending changes in a single transaction.
// Every new or renamed tag is validated first; nothing is written if any fails.
// On error the pending set is kept and entities are left unchanged.
func (s *Session) Flush(ctx context.Context) error {
	var inserts, updates []*tag.Tag
	for _, t := range s.tracked {
		switch t.State() {
		case tag.StateNew:
			inserts = append(inserts, t)
		case tag.StateDirty:
			updates = append(updates, t)
		default:
			continue
		}

		id, _ := t.ID()
		if err := tag.CanPersistTag(tag.PersistTagContext{TagID: id, Name: t.Name()}).Error(); err != nil {
			return err
		}
	}

	if len(inserts) == 0 && len(updates) == 0 && len(s.links) == 0 {
		return nil
	}

	assigned := make(map[*tag.Tag]int64, len(inserts))
	err := s.tx.WithinTx(ctx, func(repo secondary.TagRepository) error {
		for _, t := range inserts {
			record := &secondary.TagRecord{Name: t.Name()}
			if err := repo.Create(ctx, record); err != nil {
				return err
			}
			assigned[t] = record.ID
		}

		for _, t := range updates {
			id, _ := t.ID()
			if err := repo.Update(ctx, &secondary.TagRecord{ID: id, Name: t.Name()}); err != nil {
				return err
			}
		}

		for _, l := range s.links {
			tagID, ok := assigned[l.tag]
			if !ok {
				tagID, _ = l.tag.ID()
			}
			if err := repo.AddVersion(ctx, tagID, l.version.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("flush failed",
			zap.String("request_id", ctxutil.RequestIDFromContext(ctx)),
			zap.Error(err),
		)
		return err
	}

	for t, id := range assigned {
		t.MarkPersisted(id)
	}
	for _, t := range updates {
		id, _ := t.ID()
		t.MarkPersisted(id)
	}

	s.logger.Debug("flushed session",
		zap.String("request_id", ctxutil.RequestIDFromContext(ctx)),
		zap.Int("inserted", len(inserts)),
		zap.Int("updated", len(updates)),
		zap.Int("linked", len(s.links)),
	)
	s.links = nil
	return nil
}

func (s *Session) lookup(name string) *tag.Tag {
	for _, t := range s.tracked {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

func (s *Session) lookupID(id int64) *tag.Tag {
	for _, t := range s.tracked {
		if tid, err := t.ID(); err == nil && tid == id {
			return t
		}
	}
	return nil
}

func (s *Session) isTracked(t *tag.Tag) bool {
	for _, tracked := range s.tracked {
		if tracked == t {
			return true
		}
	}
	return false
}
