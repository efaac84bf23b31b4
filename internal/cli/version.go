package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/pkgtags/internal/wire"
)

// VersionCmd returns the version command
func VersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Manage package versions",
	}

	cmd.AddCommand(versionAddCmd())
	cmd.AddCommand(versionTagsCmd())

	return cmd
}

func versionAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [package] [version]",
		Short: "Register a package version",
		Long: `Register a package version so it can be tagged.

The version is normalized (a leading "v" is dropped); adding the same
normalized version twice returns the existing record.

Examples:
  pkgtags version add symfony/console v6.4.0
  pkgtags version add monolog/monolog 3.5.0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.VersionAdapter().Add(commandContext(cmd), args[0], args[1])
			return err
		},
	}
}

func versionTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags [version-id]",
		Short: "List the tags attached to a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid version id %q", args[0])
			}

			_, err = wire.VersionAdapter().Tags(commandContext(cmd), id)
			return err
		},
	}
}
