package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates an empty database with development fixtures:
// a handful of well-known packages, their tags, and the links between them.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer tx.Rollback()

	tags := []string{"cli", "code-style", "http", "orm", "psr-7", "testing"}
	tagIDs := make(map[string]int64, len(tags))
	for _, name := range tags {
		result, err := tx.Exec(
			"INSERT INTO tag (name, created_at, updated_at) VALUES (?, ?, ?)",
			name, now, now,
		)
		if err != nil {
			return fmt.Errorf("seed tags: %w", err)
		}
		if tagIDs[name], err = result.LastInsertId(); err != nil {
			return fmt.Errorf("seed tags: %w", err)
		}
	}

	versions := []struct {
		pkg, version, normalized string
		tags                     []string
	}{
		{"friendsofphp/php-cs-fixer", "v3.64.0", "3.64.0", []string{"cli", "code-style"}},
		{"symfony/console", "v7.1.5", "7.1.5", []string{"cli"}},
		{"guzzlehttp/psr7", "2.7.0", "2.7.0", []string{"http", "psr-7"}},
		{"doctrine/orm", "3.2.2", "3.2.2", []string{"orm"}},
		{"phpunit/phpunit", "11.3.6", "11.3.6", []string{"testing"}},
	}
	for _, v := range versions {
		result, err := tx.Exec(
			"INSERT INTO package_version (package_name, version, normalized_version, created_at) VALUES (?, ?, ?, ?)",
			v.pkg, v.version, v.normalized, now,
		)
		if err != nil {
			return fmt.Errorf("seed versions: %w", err)
		}
		versionID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("seed versions: %w", err)
		}

		for _, name := range v.tags {
			if _, err := tx.Exec(
				"INSERT INTO version_tag (version_id, tag_id) VALUES (?, ?)",
				versionID, tagIDs[name],
			); err != nil {
				return fmt.Errorf("seed version tags: %w", err)
			}
		}
	}

	return tx.Commit()
}
