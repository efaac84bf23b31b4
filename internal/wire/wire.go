// Package wire provides dependency injection for the pkgtags application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"errors"
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	cliadapter "github.com/example/pkgtags/internal/adapters/cli"
	"github.com/example/pkgtags/internal/adapters/gormstore"
	"github.com/example/pkgtags/internal/adapters/httpapi"
	"github.com/example/pkgtags/internal/adapters/sqlite"
	"github.com/example/pkgtags/internal/app"
	"github.com/example/pkgtags/internal/config"
	"github.com/example/pkgtags/internal/db"
	"github.com/example/pkgtags/internal/logger"
	"github.com/example/pkgtags/internal/ports/primary"
	"github.com/example/pkgtags/internal/ports/secondary"
)

// ErrSeedUnsupported is returned by Migrate when fixtures are requested
// for a store other than SQLite.
var ErrSeedUnsupported = errors.New("fixtures can only be seeded into sqlite")

var (
	cfg            *config.Config
	appLogger      *zap.Logger
	sqlDB          *sql.DB
	gormDB         *gorm.DB
	tagService     primary.TagService
	versionService primary.VersionService
	once           sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the application logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return appLogger
}

// TagService returns the singleton TagService instance.
func TagService() primary.TagService {
	once.Do(initServices)
	return tagService
}

// VersionService returns the singleton VersionService instance.
func VersionService() primary.VersionService {
	once.Do(initServices)
	return versionService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	cfg, err = config.Load(cwd)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err = logger.Init(logger.Options{Dir: cfg.Log.Dir, Debug: cfg.Log.Debug})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	// Create repository adapters (secondary ports) for the configured store
	var (
		tagRepo     secondary.TagRepository
		versionRepo secondary.VersionRepository
		tx          secondary.Transactor
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		gormDB, err = gormstore.Open(gormstore.DriverPostgres, cfg.Database.DSN)
		if err != nil {
			appLogger.Fatal("failed to initialize database", zap.Error(err))
		}
		tagRepo = gormstore.NewTagRepository(gormDB)
		versionRepo = gormstore.NewVersionRepository(gormDB)
		tx = gormstore.NewTransactor(gormDB)
	default:
		sqlDB, err = db.Open(cfg.Database.Path)
		if err != nil {
			appLogger.Fatal("failed to initialize database", zap.Error(err), zap.String("path", cfg.Database.Path))
		}
		tagRepo = sqlite.NewTagRepository(sqlDB)
		versionRepo = sqlite.NewVersionRepository(sqlDB)
		tx = sqlite.NewTransactor(sqlDB)
	}

	appLogger.Debug("database ready", zap.String("driver", cfg.Database.Driver))

	// Create services (primary ports implementation)
	tagService = app.NewTagService(tagRepo, versionRepo, tx, appLogger.Named("tags"))
	versionService = app.NewVersionService(versionRepo, tagRepo, appLogger.Named("versions"))
}

// Migrate brings the configured store's schema up to date, which happens on
// open, and optionally loads the demo fixtures. It returns the schema
// version for SQLite and 0 for stores migrated by gorm.
func Migrate(seed bool) (int, error) {
	once.Do(initServices)

	if sqlDB == nil {
		if seed {
			return 0, ErrSeedUnsupported
		}
		return 0, nil
	}

	if seed {
		if err := db.SeedFixtures(sqlDB); err != nil {
			return 0, err
		}
	}
	return db.CurrentVersion(sqlDB)
}

// Close releases the database connection and flushes logs.
func Close() {
	if sqlDB != nil {
		sqlDB.Close()
	}
	if gormDB != nil {
		if conn, err := gormDB.DB(); err == nil {
			conn.Close()
		}
	}
	logger.Sync()
}

// HTTPServer returns a new HTTP adapter over the singleton services.
func HTTPServer() *httpapi.Server {
	once.Do(initServices)
	return httpapi.NewServer(tagService, versionService, appLogger.Named("http"))
}

// TagAdapter returns a new TagAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func TagAdapter() *cliadapter.TagAdapter {
	return TagAdapterWithOutput(os.Stdout)
}

// TagAdapterWithOutput returns a new TagAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func TagAdapterWithOutput(out io.Writer) *cliadapter.TagAdapter {
	once.Do(initServices)
	return cliadapter.NewTagAdapter(tagService, out)
}

// VersionAdapter returns a new VersionAdapter writing to stdout.
func VersionAdapter() *cliadapter.VersionAdapter {
	return VersionAdapterWithOutput(os.Stdout)
}

// VersionAdapterWithOutput returns a new VersionAdapter writing to the given output.
func VersionAdapterWithOutput(out io.Writer) *cliadapter.VersionAdapter {
	once.Do(initServices)
	return cliadapter.NewVersionAdapter(versionService, out)
}
