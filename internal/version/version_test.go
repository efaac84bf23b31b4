package version

import (
	"strings"
	"testing"
)

func TestString_ShortensCommit(t *testing.T) {
	orig := Commit
	t.Cleanup(func() { Commit = orig })

	Commit = "0123456789abcdef"

	got := String()
	if !strings.Contains(got, "commit: 0123456,") {
		t.Errorf("expected short commit in %q", got)
	}
	if GetInfo().Commit != "0123456" {
		t.Errorf("expected Info.Commit '0123456', got '%s'", GetInfo().Commit)
	}
}
