package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/pkgtags/internal/wire"
)

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Long: `Create or upgrade the database schema for the configured store.

SQLite databases use versioned migrations; PostgreSQL is migrated by gorm.
With --seed, a small set of demo tags and versions is loaded (SQLite only).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := wire.Migrate(seed)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			driver := wire.Config().Database.Driver
			marker := color.New(color.FgGreen).Sprint("✓")
			if current > 0 {
				fmt.Printf("%s %s schema at version %d\n", marker, driver, current)
			} else {
				fmt.Printf("%s %s schema up to date\n", marker, driver)
			}
			if seed {
				fmt.Println("  Demo fixtures loaded")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Load demo fixtures after migrating")

	return cmd
}
