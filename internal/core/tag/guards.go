// Package tag contains the pure business logic for tag operations.
// Guards are pure functions that evaluate preconditions without side effects.
package tag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the width of the name column.
const MaxNameLength = 191

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
// The returned error wraps ErrInvalidName.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidName, r.Reason)
}

// PersistTagContext provides context for tag persistence guards.
type PersistTagContext struct {
	TagID int64 // zero for tags that were never flushed
	Name  string
}

// CanPersistTag evaluates whether a tag may be written to the store.
// Rules:
// - Name must not be blank (whitespace only counts as blank)
// - Name must fit the name column
//
// Uniqueness is not checked here; the store's unique index decides that.
func CanPersistTag(ctx PersistTagContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		if ctx.TagID != 0 {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("tag %d: name must not be blank", ctx.TagID),
			}
		}
		return GuardResult{
			Allowed: false,
			Reason:  "tag name must not be blank",
		}
	}

	if n := utf8.RuneCountInString(ctx.Name); n > MaxNameLength {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("tag name is %d characters long, at most %d allowed", n, MaxNameLength),
		}
	}

	return GuardResult{Allowed: true}
}
