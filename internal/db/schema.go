package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs.
// It reflects the state after all migrations have run.
//
// Keep this in sync with migrations.go. TestSchemaMatchesMigrations fails
// when a migrated database and a fresh one disagree on columns or indexes.
const SchemaSQL = `
-- Tags (labels attached to package versions)
CREATE TABLE IF NOT EXISTS tag (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(191) NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS tag_name_idx ON tag(name);

-- Package versions (owning side of the tag association)
CREATE TABLE IF NOT EXISTS package_version (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	package_name VARCHAR(191) NOT NULL,
	version VARCHAR(191) NOT NULL,
	normalized_version VARCHAR(191) NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS pkg_ver_idx ON package_version(package_name, normalized_version);

-- Version <-> tag association
CREATE TABLE IF NOT EXISTS version_tag (
	version_id INTEGER NOT NULL,
	tag_id INTEGER NOT NULL,
	PRIMARY KEY (version_id, tag_id),
	FOREIGN KEY (version_id) REFERENCES package_version(id),
	FOREIGN KEY (tag_id) REFERENCES tag(id)
);

CREATE INDEX IF NOT EXISTS idx_version_tag_tag ON version_tag(tag_id);
`

// InitSchema creates the schema on a fresh database and migrates an existing one.
func InitSchema(db *sql.DB) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(db)
	}

	var oldTableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('tag', 'package_version')").Scan(&oldTableCount)
	if err != nil {
		return err
	}
	if oldTableCount > 0 {
		return fmt.Errorf("database has tag tables but no schema_version table")
	}

	// Fresh install - create the current schema and mark every migration applied
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
