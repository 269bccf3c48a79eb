package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log"

	"github.com/linskybing/robolab-go/internal/config"
	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/internal/repository/memory"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Open connects gorm to the configured SQL driver.
func Open(cfg config.StoreConfig, w io.Writer) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         config.GormLogger(w),
		TranslateError: true,
	}
	switch cfg.Driver {
	case config.DriverPostgres:
		return gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	case config.DriverSQLite:
		gdb, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: cfg.DSN()}, gormCfg)
		if err != nil {
			return nil, err
		}
		if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
		return gdb, nil
	default:
		return nil, fmt.Errorf("driver %q has no SQL backend", cfg.Driver)
	}
}

// Migrate applies the embedded goose migrations for driver.
func Migrate(ctx context.Context, gdb *gorm.DB, driver string) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}

	dialect := "postgres"
	if driver == config.DriverSQLite {
		dialect = "sqlite3"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	sub, err := fs.Sub(migrationsFS, "migrations/"+driver)
	if err != nil {
		return err
	}
	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)
	return goose.UpContext(ctx, sqlDB, ".")
}

// Gateway is the persistence gateway selected at startup.
type Gateway struct {
	Repos  *repository.Repos
	Driver string
	sqlDB  *sql.DB
}

// Ping checks the SQL connection. The memory store is always reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	if g.sqlDB == nil {
		return nil
	}
	return g.sqlDB.PingContext(ctx)
}

func (g *Gateway) Close() error {
	if g.sqlDB == nil {
		return nil
	}
	return g.sqlDB.Close()
}

// OpenGateway selects the persistence gateway once at startup and applies
// migrations for SQL drivers.
func OpenGateway(ctx context.Context, cfg config.StoreConfig, w io.Writer) (*Gateway, error) {
	if cfg.Driver == config.DriverMemory {
		log.Println("Using in-memory store; data is lost on restart")
		repos, err := memory.NewRepositories()
		if err != nil {
			return nil, err
		}
		return &Gateway{Repos: repos, Driver: cfg.Driver}, nil
	}

	gdb, err := Open(cfg, w)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}
	if err := Migrate(ctx, gdb, cfg.Driver); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", cfg.Driver, err)
	}
	log.Printf("Database connected and migrated (%s)", cfg.Driver)

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	return &Gateway{Repos: repository.NewRepositories(gdb), Driver: cfg.Driver, sqlDB: sqlDB}, nil
}
