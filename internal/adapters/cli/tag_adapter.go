package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/pkgtags/internal/ports/primary"
)

// TagAdapter is a thin adapter that translates CLI operations to TagService calls.
// It depends only on the TagService interface, enabling easy testing with mocks.
type TagAdapter struct {
	service primary.TagService
	out     io.Writer
}

// NewTagAdapter creates a new TagAdapter with the given service.
func NewTagAdapter(service primary.TagService, out io.Writer) *TagAdapter {
	return &TagAdapter{
		service: service,
		out:     out,
	}
}

// Get looks a tag up by name. With create set, a missing tag is created.
func (a *TagAdapter) Get(ctx context.Context, name string, create bool) (*primary.Tag, error) {
	if !create {
		t, err := a.service.GetTag(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to get tag: %w", err)
		}
		a.show(t)
		return t, nil
	}

	resp, err := a.service.ResolveTag(ctx, primary.ResolveTagRequest{Name: name, Create: true})
	if err != nil {
		return nil, err
	}

	if resp.Created {
		fmt.Fprintf(a.out, "%s Created tag %d: %s\n", color.New(color.FgGreen).Sprint("✓"), resp.Tag.ID, resp.Tag.Name)
	} else {
		a.show(resp.Tag)
	}
	return resp.Tag, nil
}

// Ensure returns the named tag, inserting it if absent.
func (a *TagAdapter) Ensure(ctx context.Context, name string) (*primary.Tag, error) {
	t, err := a.service.EnsureTag(ctx, name)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Tag %d: %s\n", color.New(color.FgGreen).Sprint("✓"), t.ID, t.Name)
	return t, nil
}

// Rename renames a tag.
func (a *TagAdapter) Rename(ctx context.Context, name, newName string) (*primary.Tag, error) {
	t, err := a.service.RenameTag(ctx, primary.RenameTagRequest{
		Name:    name,
		NewName: newName,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Tag %d renamed\n", color.New(color.FgGreen).Sprint("✓"), t.ID)
	fmt.Fprintf(a.out, "  %s → %s\n", name, t.Name)
	return t, nil
}

// List lists all tags.
func (a *TagAdapter) List(ctx context.Context) ([]*primary.Tag, error) {
	tags, err := a.service.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	if len(tags) == 0 {
		fmt.Fprintln(a.out, "No tags found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first tag:")
		fmt.Fprintln(a.out, "  pkgtags tag get symfony --create")
		return tags, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED")
	fmt.Fprintln(w, "--\t----\t-------")

	for _, t := range tags {
		fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Name, t.CreatedAt)
	}

	w.Flush()
	return tags, nil
}

// Link tags a version. With create set, a missing tag is created first.
func (a *TagAdapter) Link(ctx context.Context, name string, versionID int64, create bool) (*primary.Tag, error) {
	t, err := a.service.TagVersion(ctx, primary.TagVersionRequest{
		TagName:   name,
		VersionID: versionID,
		Create:    create,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Tagged version %d with %s\n", color.New(color.FgGreen).Sprint("✓"), versionID, t.Name)
	return t, nil
}

// Versions lists the versions carrying a tag.
func (a *TagAdapter) Versions(ctx context.Context, name string) ([]*primary.Version, error) {
	versions, err := a.service.ListTagVersions(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag versions: %w", err)
	}

	if len(versions) == 0 {
		fmt.Fprintf(a.out, "No versions tagged %s.\n", name)
		return versions, nil
	}

	printVersions(a.out, versions)
	return versions, nil
}

func (a *TagAdapter) show(t *primary.Tag) {
	fmt.Fprintf(a.out, "\nTag: %d\n", t.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", t.Name)
	fmt.Fprintf(a.out, "Created: %s\n", t.CreatedAt)
	fmt.Fprintf(a.out, "Updated: %s\n", t.UpdatedAt)
	fmt.Fprintln(a.out)
}

func printVersions(out io.Writer, versions []*primary.Version) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tPACKAGE\tVERSION\tNORMALIZED")
	fmt.Fprintln(w, "--\t-------\t-------\t----------")

	for _, v := range versions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", v.ID, v.PackageName, v.Version, v.NormalizedVersion)
	}

	w.Flush()
}
