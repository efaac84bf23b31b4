package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/pkgtags/internal/wire"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags (labels on package versions)",
	Long:  "Look up, create, rename, and list tags, and attach them to package versions",
}

var tagGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Show a tag, optionally creating it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		create, _ := cmd.Flags().GetBool("create")

		_, err := wire.TagAdapter().Get(commandContext(cmd), args[0], create)
		return err
	},
}

var tagEnsureCmd = &cobra.Command{
	Use:   "ensure [name]",
	Short: "Create a tag if it does not exist (safe under concurrency)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.TagAdapter().Ensure(commandContext(cmd), args[0])
		return err
	},
}

var tagRenameCmd = &cobra.Command{
	Use:   "rename [name] [new-name]",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.TagAdapter().Rename(commandContext(cmd), args[0], args[1])
		return err
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.TagAdapter().List(commandContext(cmd))
		return err
	},
}

var tagLinkCmd = &cobra.Command{
	Use:   "link [name] [version-id]",
	Short: "Attach a tag to a package version",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		versionID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid version id %q", args[1])
		}
		create, _ := cmd.Flags().GetBool("create")

		_, err = wire.TagAdapter().Link(commandContext(cmd), args[0], versionID, create)
		return err
	},
}

var tagVersionsCmd = &cobra.Command{
	Use:   "versions [name]",
	Short: "List the package versions carrying a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.TagAdapter().Versions(commandContext(cmd), args[0])
		return err
	},
}

func init() {
	tagGetCmd.Flags().BoolP("create", "c", false, "Create the tag if it does not exist")
	tagLinkCmd.Flags().BoolP("create", "c", false, "Create the tag if it does not exist")

	// Register subcommands
	tagCmd.AddCommand(tagGetCmd)
	tagCmd.AddCommand(tagEnsureCmd)
	tagCmd.AddCommand(tagRenameCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagLinkCmd)
	tagCmd.AddCommand(tagVersionsCmd)
}

// TagCmd returns the tag command
func TagCmd() *cobra.Command {
	return tagCmd
}
