package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/pkgtags/internal/ports/primary"
)

// VersionAdapter translates CLI operations to VersionService calls.
type VersionAdapter struct {
	service primary.VersionService
	out     io.Writer
}

// NewVersionAdapter creates a new VersionAdapter with the given service.
func NewVersionAdapter(service primary.VersionService, out io.Writer) *VersionAdapter {
	return &VersionAdapter{
		service: service,
		out:     out,
	}
}

// Add registers a package version.
func (a *VersionAdapter) Add(ctx context.Context, packageName, v string) (*primary.Version, error) {
	version, err := a.service.CreateVersion(ctx, primary.CreateVersionRequest{
		PackageName: packageName,
		Version:     v,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Version %d: %s %s\n", color.New(color.FgGreen).Sprint("✓"), version.ID, version.PackageName, version.NormalizedVersion)
	return version, nil
}

// Tags lists the tags attached to a version.
func (a *VersionAdapter) Tags(ctx context.Context, versionID int64) ([]*primary.Tag, error) {
	version, err := a.service.GetVersion(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	tags, err := a.service.ListVersionTags(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list version tags: %w", err)
	}

	fmt.Fprintf(a.out, "\n%s %s\n", version.PackageName, version.Version)
	if len(tags) == 0 {
		fmt.Fprintln(a.out, color.New(color.FgYellow).Sprint("(no tags)"))
		return tags, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTAG")
	fmt.Fprintln(w, "--\t---")
	for _, t := range tags {
		fmt.Fprintf(w, "%d\t%s\n", t.ID, t.Name)
	}
	w.Flush()

	return tags, nil
}
