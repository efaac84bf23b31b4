package tag

// State is the persistence state of a Tag.
type State int

const (
	// StateNew means the tag was constructed but never flushed.
	StateNew State = iota
	// StatePersisted means the tag has an id and matches the stored row.
	StatePersisted
	// StateDirty means the tag has an id but was renamed since the last flush.
	StateDirty
)

// String returns a lowercase label for the state.
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StatePersisted:
		return "persisted"
	case StateDirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// VersionRef references a Version record that owns an association to a tag.
type VersionRef struct {
	ID                int64
	PackageName       string
	Version           string
	NormalizedVersion string
}

// Tag is a named label attached to package versions.
// Tags are plain values; loading and saving happen through a session.
type Tag struct {
	id       int64
	name     string
	state    State
	versions []VersionRef
}

// New constructs an unpersisted tag.
func New(name string) *Tag {
	return &Tag{name: name, state: StateNew}
}

// Hydrate builds a tag from a stored row.
func Hydrate(id int64, name string) *Tag {
	return &Tag{id: id, name: name, state: StatePersisted}
}

// ID returns the surrogate key, or ErrNotPersisted if the tag was never flushed.
func (t *Tag) ID() (int64, error) {
	if t.state == StateNew {
		return 0, ErrNotPersisted
	}
	return t.id, nil
}

// Name returns the tag name.
func (t *Tag) Name() string {
	return t.name
}

// SetName renames the tag. Uniqueness is checked by the store at flush time.
func (t *Tag) SetName(name string) {
	if name == t.name {
		return
	}
	t.name = name
	if t.state == StatePersisted {
		t.state = StateDirty
	}
}

// AddVersions appends a version reference. Repeats are kept.
func (t *Tag) AddVersions(v VersionRef) {
	t.versions = append(t.versions, v)
}

// Versions returns the version references attached to this value.
func (t *Tag) Versions() []VersionRef {
	out := make([]VersionRef, len(t.versions))
	copy(out, t.versions)
	return out
}

// State returns the persistence state.
func (t *Tag) State() State {
	return t.state
}

// IsPersisted reports whether the tag has been assigned an id.
func (t *Tag) IsPersisted() bool {
	return t.state != StateNew
}

// IsDirty reports whether the tag was renamed since it was last flushed.
func (t *Tag) IsDirty() bool {
	return t.state == StateDirty
}

// MarkPersisted records the id assigned by the store and clears the dirty flag.
func (t *Tag) MarkPersisted(id int64) {
	t.id = id
	t.state = StatePersisted
}

// String returns the tag name.
func (t *Tag) String() string {
	return t.name
}
