package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/s/elearning/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Options struct {
	Driver   string // postgres | pq | sqlite
	DSN      string
	Retries  int
	Interval time.Duration
	LogLevel string
}

// Dialector picks the gorm dialector for the driver name. "pq" opens the
// connection through lib/pq and hands it to the postgres dialector.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case "", "postgres", "pgx":
		return postgres.Open(dsn), nil
	case "pq":
		conn, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open lib/pq connection: %w", err)
		}
		return postgres.New(postgres.Config{Conn: conn}), nil
	case "sqlite":
		return sqlite.Open(sqliteDSN(dsn)), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// sqliteDSN turns foreign keys on; cascades depend on them.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// Config is the gorm configuration shared by every driver.
func Config(level string) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormLogLevel(level)),
	}
}

// Connect opens the database, retrying while it is not reachable yet.
func Connect(ctx context.Context, opts Options, log *logger.Logger) (*gorm.DB, error) {
	if opts.Retries < 1 {
		opts.Retries = 1
	}
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}

	var db *gorm.DB
	var err error

	// Попытки подключения (Docker-база иногда «просыпается» пару секунд)
	for i := 0; i < opts.Retries; i++ {
		db, err = open(ctx, opts)
		if err == nil {
			log.Info("database connected", "driver", opts.Driver)
			return db, nil
		}

		log.Warn("database connect attempt failed", "attempt", i+1, "error", err)
		if i == opts.Retries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.Interval):
		}
	}

	return nil, fmt.Errorf("connect database after %d attempts: %w", opts.Retries, err)
}

func open(ctx context.Context, opts Options) (*gorm.DB, error) {
	dialector, err := Dialector(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, Config(opts.LogLevel))
	if err != nil {
		// gorm hands back the pool when only its automatic ping failed.
		if db != nil {
			_ = Close(db)
		}
		return nil, err
	}
	if err := Ping(ctx, db); err != nil {
		_ = Close(db)
		return nil, err
	}
	if strings.EqualFold(opts.Driver, "sqlite") {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			_ = Close(db)
			return nil, err
		}
	}
	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
