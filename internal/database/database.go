package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-faster/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"madamchoice/internal/config"
	"madamchoice/internal/models"
)

// Open connects to the configured database. TranslateError is enabled so
// unique-index violations surface as gorm.ErrDuplicatedKey on every driver.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Silent,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to database")
	}
	return db, nil
}

// Migrate creates or updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Order{}, &models.Payment{}, &models.Review{}, &models.User{}); err != nil {
		return errors.Wrap(err, "auto-migrate")
	}
	return nil
}

// Ping checks that the underlying connection pool is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	return sqlDB.Close()
}
