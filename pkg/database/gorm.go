package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"doc-assistant-be/internal/model"
)

// Option tweaks the gorm session opened by NewGormDBFromDSN.
type Option func(*options)

type options struct {
	logLevel logger.LogLevel
}

// WithLogLevel overrides the SQL log level (Info by default).
func WithLogLevel(level logger.LogLevel) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

func getLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB, embedded bool) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if embedded {
		// SQLite serialises writers; one connection keeps in-memory databases shared.
		sqlDB.SetMaxOpenConns(1)
		return nil
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// isEmbedded reports whether the DSN targets the embedded SQLite driver.
func isEmbedded(dsn string) bool {
	return strings.HasPrefix(dsn, "file:") || strings.HasPrefix(dsn, "sqlite:")
}

// NewGormDBFromDSN opens Postgres for regular DSNs and SQLite for "file:" or
// "sqlite:" DSNs.
func NewGormDBFromDSN(dsn string, opts ...Option) (*gorm.DB, error) {
	o := options{logLevel: logger.Info}
	for _, opt := range opts {
		opt(&o)
	}

	embedded := isEmbedded(dsn)
	var dialector gorm.Dialector
	if embedded {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite:"))
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         getLogger(o.logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, embedded); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
