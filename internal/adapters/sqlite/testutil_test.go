// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/pkgtags/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// Foreign keys are on, matching db.Open.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", db.DSN(":memory:"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedTag inserts a test tag and returns its ID.
func seedTag(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	if name == "" {
		name = "symfony"
	}
	result, err := db.Exec("INSERT INTO tag (name, created_at, updated_at) VALUES (?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)", name)
	if err != nil {
		t.Fatalf("failed to seed tag: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// seedVersion inserts a test package version and returns its ID.
func seedVersion(t *testing.T, db *sql.DB, packageName, version string) int64 {
	t.Helper()
	if packageName == "" {
		packageName = "acme/widget"
	}
	if version == "" {
		version = "1.0.0"
	}
	result, err := db.Exec(
		"INSERT INTO package_version (package_name, version, normalized_version) VALUES (?, ?, ?)",
		packageName, version, version,
	)
	if err != nil {
		t.Fatalf("failed to seed version: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// countLinks returns the number of version_tag rows for a tag.
func countLinks(t *testing.T, db *sql.DB, tagID int64) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM version_tag WHERE tag_id = ?", tagID).Scan(&n); err != nil {
		t.Fatalf("failed to count links: %v", err)
	}
	return n
}
