// Package gormstore contains gorm implementations of repository interfaces.
// It backs the PostgreSQL deployment and can also run against SQLite.
package gormstore

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// tagModel maps the tag table.
type tagModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:191;not null;uniqueIndex:tag_name_idx"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (tagModel) TableName() string { return "tag" }

// versionModel maps the package_version table.
type versionModel struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	PackageName       string `gorm:"size:191;not null;uniqueIndex:pkg_ver_idx,priority:1"`
	Version           string `gorm:"size:191;not null"`
	NormalizedVersion string `gorm:"size:191;not null;uniqueIndex:pkg_ver_idx,priority:2"`
	CreatedAt         time.Time
}

func (versionModel) TableName() string { return "package_version" }

// versionTagModel maps the version_tag join table. The belongs-to fields
// only exist so AutoMigrate emits the foreign keys.
type versionTagModel struct {
	VersionID int64         `gorm:"primaryKey;autoIncrement:false"`
	TagID     int64         `gorm:"primaryKey;autoIncrement:false;index:idx_version_tag_tag"`
	Version   *versionModel `gorm:"foreignKey:VersionID;constraint:OnDelete:RESTRICT"`
	Tag       *tagModel     `gorm:"foreignKey:TagID;constraint:OnDelete:RESTRICT"`
}

func (versionTagModel) TableName() string { return "version_tag" }

// Open connects to the database with the named driver and migrates the schema.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}

// AutoMigrate creates or updates the tag tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&tagModel{},
		&versionModel{},
		&versionTagModel{},
	)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
