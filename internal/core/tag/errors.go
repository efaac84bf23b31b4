package tag

import "errors"

var (
	// ErrNotFound is returned when no tag matches a lookup and creation was not requested.
	ErrNotFound = errors.New("tag not found")

	// ErrDuplicateName is returned when the store rejects a second tag with an existing name.
	ErrDuplicateName = errors.New("tag name already exists")

	// ErrInvalidName is returned when a tag fails validation before persistence.
	ErrInvalidName = errors.New("invalid tag name")

	// ErrNotPersisted is returned when the id of a tag is read before it was flushed.
	ErrNotPersisted = errors.New("tag has not been persisted")
)
