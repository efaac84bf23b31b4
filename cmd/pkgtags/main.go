package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/pkgtags/internal/cli"
	"github.com/example/pkgtags/internal/version"
	"github.com/example/pkgtags/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "pkgtags",
		Short:   "pkgtags - tags for package versions",
		Version: version.String(),
		Long: `pkgtags manages the tags attached to package versions.
Tags are looked up by name and created on demand; every command runs in
its own unit of work against SQLite or PostgreSQL.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.TagCmd())
	rootCmd.AddCommand(cli.VersionCmd())
	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	err := rootCmd.Execute()
	wire.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
