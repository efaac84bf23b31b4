package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/pkgtags/internal/core/tag"
	"github.com/example/pkgtags/internal/core/version"
	"github.com/example/pkgtags/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.TagRepository     = (*mockTagRepository)(nil)
	_ secondary.VersionRepository = (*mockVersionRepository)(nil)
	_ secondary.Transactor        = (*mockTransactor)(nil)
)

// ============================================================================
// mockTagRepository
// ============================================================================

// mockTagRepository implements secondary.TagRepository in memory.
// Names are unique, mirroring the store's unique index.
type mockTagRepository struct {
	tags     map[int64]*secondary.TagRecord
	links    map[int64]map[int64]bool // tagID -> versionIDs
	versions *mockVersionRepository
	nextID   int64

	createErr error
	getErr    error
	listErr   error

	createCalls int
}

func newMockTagRepository(versions *mockVersionRepository) *mockTagRepository {
	return &mockTagRepository{
		tags:     make(map[int64]*secondary.TagRecord),
		links:    make(map[int64]map[int64]bool),
		versions: versions,
		nextID:   1,
	}
}

func (m *mockTagRepository) Create(ctx context.Context, t *secondary.TagRecord) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.tags {
		if existing.Name == t.Name {
			return fmt.Errorf("failed to create tag: %w", tag.ErrDuplicateName)
		}
	}
	t.ID = m.nextID
	m.nextID++
	m.tags[t.ID] = &secondary.TagRecord{ID: t.ID, Name: t.Name, CreatedAt: "2026-10-18T00:00:00Z", UpdatedAt: "2026-10-18T00:00:00Z"}
	return nil
}

func (m *mockTagRepository) InsertIfAbsent(ctx context.Context, name string) (*secondary.TagRecord, error) {
	if existing, err := m.GetByName(ctx, name); err == nil {
		return existing, nil
	}
	record := &secondary.TagRecord{Name: name}
	if err := m.Create(ctx, record); err != nil {
		return nil, err
	}
	return m.tags[record.ID], nil
}

func (m *mockTagRepository) GetByID(ctx context.Context, id int64) (*secondary.TagRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if t, ok := m.tags[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, fmt.Errorf("tag %d: %w", id, tag.ErrNotFound)
}

func (m *mockTagRepository) GetByName(ctx context.Context, name string) (*secondary.TagRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, t := range m.tags {
		if t.Name == name {
			copied := *t
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("tag '%s': %w", name, tag.ErrNotFound)
}

func (m *mockTagRepository) Update(ctx context.Context, t *secondary.TagRecord) error {
	stored, ok := m.tags[t.ID]
	if !ok {
		return fmt.Errorf("tag %d: %w", t.ID, tag.ErrNotFound)
	}
	for id, existing := range m.tags {
		if id != t.ID && existing.Name == t.Name {
			return fmt.Errorf("failed to update tag: %w", tag.ErrDuplicateName)
		}
	}
	stored.Name = t.Name
	return nil
}

func (m *mockTagRepository) List(ctx context.Context) ([]*secondary.TagRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := []*secondary.TagRecord{}
	for _, t := range m.tags {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockTagRepository) AddVersion(ctx context.Context, tagID, versionID int64) error {
	if _, ok := m.tags[tagID]; !ok {
		return fmt.Errorf("tag %d: %w", tagID, tag.ErrNotFound)
	}
	if _, ok := m.versions.versions[versionID]; !ok {
		return fmt.Errorf("version %d: %w", versionID, version.ErrNotFound)
	}
	if m.links[tagID] == nil {
		m.links[tagID] = make(map[int64]bool)
	}
	m.links[tagID][versionID] = true
	return nil
}

func (m *mockTagRepository) ListVersions(ctx context.Context, tagID int64) ([]*secondary.VersionRecord, error) {
	result := []*secondary.VersionRecord{}
	for versionID := range m.links[tagID] {
		result = append(result, m.versions.versions[versionID])
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockTagRepository) ListByVersion(ctx context.Context, versionID int64) ([]*secondary.TagRecord, error) {
	result := []*secondary.TagRecord{}
	for tagID, versions := range m.links {
		if versions[versionID] {
			result = append(result, m.tags[tagID])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// snapshot copies the repository state so a failed transaction can restore it.
func (m *mockTagRepository) snapshot() func() {
	tags := make(map[int64]*secondary.TagRecord, len(m.tags))
	for id, t := range m.tags {
		copied := *t
		tags[id] = &copied
	}
	links := make(map[int64]map[int64]bool, len(m.links))
	for tagID, versions := range m.links {
		links[tagID] = make(map[int64]bool, len(versions))
		for v := range versions {
			links[tagID][v] = true
		}
	}
	nextID := m.nextID

	return func() {
		m.tags = tags
		m.links = links
		m.nextID = nextID
	}
}

// ============================================================================
// mockTransactor
// ============================================================================

// mockTransactor runs fn against the mock repository and restores its state on error.
type mockTransactor struct {
	repo  *mockTagRepository
	calls int
}

func (m *mockTransactor) WithinTx(ctx context.Context, fn func(tags secondary.TagRepository) error) error {
	m.calls++
	restore := m.repo.snapshot()
	if err := fn(m.repo); err != nil {
		restore()
		return err
	}
	return nil
}

// ============================================================================
// mockVersionRepository
// ============================================================================

type mockVersionRepository struct {
	versions map[int64]*secondary.VersionRecord
	nextID   int64

	createErr error
}

func newMockVersionRepository() *mockVersionRepository {
	return &mockVersionRepository{
		versions: make(map[int64]*secondary.VersionRecord),
		nextID:   1,
	}
}

func (m *mockVersionRepository) Create(ctx context.Context, v *secondary.VersionRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	v.ID = m.nextID
	m.nextID++
	copied := *v
	copied.CreatedAt = "2026-10-18T00:00:00Z"
	m.versions[v.ID] = &copied
	return nil
}

func (m *mockVersionRepository) GetByID(ctx context.Context, id int64) (*secondary.VersionRecord, error) {
	if v, ok := m.versions[id]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("version %d: %w", id, version.ErrNotFound)
}

func (m *mockVersionRepository) GetByPackage(ctx context.Context, packageName, normalizedVersion string) (*secondary.VersionRecord, error) {
	for _, v := range m.versions {
		if v.PackageName == packageName && v.NormalizedVersion == normalizedVersion {
			return v, nil
		}
	}
	return nil, fmt.Errorf("version %s %s: %w", packageName, normalizedVersion, version.ErrNotFound)
}

// seedVersion stores a version and returns its ID.
func (m *mockVersionRepository) seedVersion(packageName, v string) int64 {
	record := &secondary.VersionRecord{
		PackageName:       packageName,
		Version:           v,
		NormalizedVersion: version.Normalize(v),
	}
	_ = m.Create(context.Background(), record)
	return record.ID
}

// ============================================================================
// Test Helper
// ============================================================================

type testStore struct {
	tags     *mockTagRepository
	versions *mockVersionRepository
	tx       *mockTransactor
}

func newTestStore() *testStore {
	versions := newMockVersionRepository()
	tags := newMockTagRepository(versions)
	return &testStore{
		tags:     tags,
		versions: versions,
		tx:       &mockTransactor{repo: tags},
	}
}

func (s *testStore) session() *Session {
	return NewSession(s.tags, s.tx, nil)
}
