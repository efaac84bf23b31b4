package db

import (
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"
)

func openRaw(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", DSN(":memory:"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })
	return database
}

// describe returns column and index definitions for the given tables.
func describe(t *testing.T, database *sql.DB, tables ...string) map[string][]string {
	t.Helper()

	result := make(map[string][]string)
	for _, table := range tables {
		rows, err := database.Query("SELECT name, type, \"notnull\", pk FROM pragma_table_info(?) ORDER BY cid", table)
		if err != nil {
			t.Fatalf("table_info(%s) failed: %v", table, err)
		}
		for rows.Next() {
			var name, typ string
			var notNull, pk int
			if err := rows.Scan(&name, &typ, &notNull, &pk); err != nil {
				t.Fatalf("scan failed: %v", err)
			}
			result[table] = append(result[table], name+" "+typ)
		}
		rows.Close()

		idx, err := database.Query("SELECT name, \"unique\" FROM pragma_index_list(?) WHERE origin = 'c' ORDER BY name", table)
		if err != nil {
			t.Fatalf("index_list(%s) failed: %v", table, err)
		}
		for idx.Next() {
			var name string
			var unique int
			if err := idx.Scan(&name, &unique); err != nil {
				t.Fatalf("scan failed: %v", err)
			}
			if unique == 1 {
				name += " unique"
			}
			result[table] = append(result[table], "index "+name)
		}
		idx.Close()
	}
	return result
}

func TestOpen_FreshInstall(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "pkgtags.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	current, err := CurrentVersion(database)
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if current != LatestVersion() {
		t.Errorf("expected version %d, got %d", LatestVersion(), current)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkgtags.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := first.Exec("INSERT INTO tag (name) VALUES ('kept')"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	var count int
	if err := second.QueryRow("SELECT COUNT(*) FROM tag").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 tag after reopen, got %d", count)
	}
}

func TestSchemaMatchesMigrations(t *testing.T) {
	fresh := openRaw(t)
	if err := InitSchema(fresh); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	migrated := openRaw(t)
	if err := RunMigrations(migrated); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	tables := []string{"tag", "package_version", "version_tag"}
	want := describe(t, fresh, tables...)
	got := describe(t, migrated, tables...)
	if !reflect.DeepEqual(want, got) {
		t.Errorf("schema drift between SchemaSQL and migrations:\nfresh:    %v\nmigrated: %v", want, got)
	}
}

func TestRunMigrations_BackfillsTimestamps(t *testing.T) {
	database := openRaw(t)
	if err := createVersionTable(database); err != nil {
		t.Fatalf("createVersionTable failed: %v", err)
	}

	tx, _ := database.Begin()
	if err := migrationV1(tx); err != nil {
		t.Fatalf("migrationV1 failed: %v", err)
	}
	tx.Exec("INSERT INTO schema_version (version) VALUES (1)")
	tx.Exec("INSERT INTO tag (name) VALUES ('legacy')")
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if err := RunMigrations(database); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	var createdAt sql.NullString
	if err := database.QueryRow("SELECT created_at FROM tag WHERE name = 'legacy'").Scan(&createdAt); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if !createdAt.Valid {
		t.Error("expected created_at to be backfilled")
	}
}

func TestInitSchema_RejectsUnversionedTables(t *testing.T) {
	database := openRaw(t)
	if _, err := database.Exec("CREATE TABLE tag (id INTEGER PRIMARY KEY, name TEXT)"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := InitSchema(database); err == nil {
		t.Error("expected error for tables without schema_version")
	}
}

func TestSeedFixtures(t *testing.T) {
	database := openRaw(t)
	if err := InitSchema(database); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	if err := SeedFixtures(database); err != nil {
		t.Fatalf("SeedFixtures failed: %v", err)
	}

	var links int
	if err := database.QueryRow("SELECT COUNT(*) FROM version_tag").Scan(&links); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if links != 7 {
		t.Errorf("expected 7 version tags, got %d", links)
	}

	// Seeding twice hits the unique index and leaves the first seed intact
	if err := SeedFixtures(database); err == nil {
		t.Error("expected second seed to fail")
	}
}
