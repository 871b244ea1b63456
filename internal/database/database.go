package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hkhalifa/deen-companion/internal/config"
	"github.com/hkhalifa/deen-companion/internal/entities"
)

type Database struct {
	DB     *gorm.DB
	driver string
}

// NewDatabase opens the configured backend and migrates the schema.
// SQLite is the default; Postgres is selected with DATABASE_DRIVER=postgres
// and a DATABASE_URL DSN.
func NewDatabase(cfg config.Database) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		if cfg.URL == "" {
			return nil, fmt.Errorf("postgres driver selected but DATABASE_URL is empty")
		}
		dialector = postgres.Open(cfg.URL)
	case config.DriverSQLite, "":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("database initialized", "backend", driverName(cfg))

	return &Database{DB: db, driver: cfg.Driver}, nil
}

// Migrate creates or updates tables for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Bookmark{},
		&entities.PrayerSettings{},
		&entities.ReadingProgress{},
		&entities.Question{},
		&entities.SearchHistoryItem{},
		&entities.Client{},
		&entities.Meeting{},
		&entities.Task{},
	)
}

func driverName(cfg config.Database) string {
	if cfg.Driver == config.DriverPostgres {
		return "postgres"
	}
	return "sqlite at " + cfg.Path
}

// Driver returns the configured driver name.
func (d *Database) Driver() string {
	if d.driver == "" {
		return config.DriverSQLite
	}
	return d.driver
}

// SQLDB exposes the underlying *sql.DB, used by the session store and the
// health check.
func (d *Database) SQLDB() (*sql.DB, error) {
	return d.DB.DB()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
