// Package version contains the pure business logic for package versions.
// This is part of the Functional Core - no I/O, only pure functions.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotFound is returned when a version id matches no stored version.
var ErrNotFound = errors.New("version not found")

// ErrInvalid is returned when a version fails validation.
var ErrInvalid = errors.New("invalid version")

// ErrDuplicate is returned when a package already has the normalized version.
var ErrDuplicate = errors.New("version already exists")

var packageNamePattern = regexp.MustCompile(`^[a-z0-9]([_.-]?[a-z0-9]+)*/[a-z0-9](([_.]|-{1,2})?[a-z0-9]+)*$`)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error wrapping ErrInvalid if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, r.Reason)
}

// CreateVersionContext provides context for version creation guards.
type CreateVersionContext struct {
	PackageName string
	Version     string
}

// CanCreateVersion evaluates whether a version can be registered.
// Rules:
// - Package name must be vendor/name in lowercase
// - Version must not be blank
func CanCreateVersion(ctx CreateVersionContext) GuardResult {
	if !packageNamePattern.MatchString(ctx.PackageName) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("package name %q must look like vendor/name in lowercase", ctx.PackageName),
		}
	}

	if Normalize(ctx.Version) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "version must not be blank",
		}
	}

	return GuardResult{Allowed: true}
}

// Normalize trims whitespace and a leading "v" from a version string.
// Branch versions ("dev-main") are kept as they are.
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > 1 && (v[0] == 'v' || v[0] == 'V') && v[1] >= '0' && v[1] <= '9' {
		v = v[1:]
	}
	return v
}
