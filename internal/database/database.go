package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"starwars/internal/config"
)

// Open connects to the store selected by cfg.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		log.Info().Msg("Using PostgreSQL store from DATABASE_URL")
		return OpenDialector(postgres.Open(cfg.DatabaseURL))
	}
	log.Info().Str("path", cfg.SQLitePath).Msg("DATABASE_URL not set, using local sqlite store")
	return OpenSQLite(cfg.SQLitePath)
}

// OpenSQLite opens a sqlite database with foreign keys enforced. dsn may be
// a plain path or a "file:" URI with its own query parameters.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := OpenDialector(sqlite.Open(SQLiteDSN(dsn)))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	// sqlite allows a single writer.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// SQLiteDSN appends the foreign key and busy timeout pragmas to dsn.
func SQLiteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=1&_busy_timeout=5000"
}

// OpenDialector opens db with error translation on, so constraint
// violations surface as gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func OpenDialector(d gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(log.Logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Msgf(format, args...)
}

// NewGormLogger routes gorm's slow-query and error output to zerolog.
func NewGormLogger(logger zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{logger: logger.With().Str("component", "gorm").Logger()}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
