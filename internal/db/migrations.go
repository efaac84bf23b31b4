package db

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_tag_and_version_tables",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_tag_timestamps",
		Up:      migrationV2,
	},
}

// LatestVersion returns the version of the newest migration.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// CurrentVersion returns the highest applied migration, or 0 for an unversioned database.
func CurrentVersion(db *sql.DB) (int, error) {
	if err := createVersionTable(db); err != nil {
		return 0, err
	}

	var current int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current); err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return current, nil
}

// RunMigrations applies pending migrations, each in its own transaction.
func RunMigrations(db *sql.DB) error {
	currentVersion, err := CurrentVersion(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		zap.L().Info("Running migration",
			zap.Int("version", migration.Version),
			zap.String("name", migration.Name),
		)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// migrationV1 creates the tag, package_version and version_tag tables
func migrationV1(tx *sql.Tx) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tag (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(191) NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS tag_name_idx ON tag(name)`,
		`CREATE TABLE IF NOT EXISTS package_version (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			package_name VARCHAR(191) NOT NULL,
			version VARCHAR(191) NOT NULL,
			normalized_version VARCHAR(191) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS pkg_ver_idx ON package_version(package_name, normalized_version)`,
		`CREATE TABLE IF NOT EXISTS version_tag (
			version_id INTEGER NOT NULL,
			tag_id INTEGER NOT NULL,
			PRIMARY KEY (version_id, tag_id),
			FOREIGN KEY (version_id) REFERENCES package_version(id),
			FOREIGN KEY (tag_id) REFERENCES tag(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_version_tag_tag ON version_tag(tag_id)`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrationV2 adds created_at and updated_at to tags and backfills existing rows
func migrationV2(tx *sql.Tx) error {
	// SQLite cannot add a column with a non-constant default
	statements := []string{
		`ALTER TABLE tag ADD COLUMN created_at DATETIME`,
		`ALTER TABLE tag ADD COLUMN updated_at DATETIME`,
		`UPDATE tag SET created_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE created_at IS NULL`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
