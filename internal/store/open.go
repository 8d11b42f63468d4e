package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const mysqlPoolSize = 10

// MySQLOptions describes how to reach the networked engine.
type MySQLOptions struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	// PingWait bounds how long OpenMySQL keeps retrying the initial ping.
	PingWait time.Duration
}

// Options selects and configures the engine used by Open.
type Options struct {
	SQLitePath string
	// MySQL is nil when no networked engine is configured.
	MySQL *MySQLOptions
}

// Open initializes the preferred engine. With MySQL options present it tries MySQL
// first and falls back to SQLite exactly once; otherwise SQLite is used directly.
func Open(ctx context.Context, opts Options) (*DB, error) {
	if opts.MySQL != nil {
		db, err := OpenMySQL(ctx, *opts.MySQL)
		if err == nil {
			log.Info().
				Str("engine", string(EngineMySQL)).
				Str("host", opts.MySQL.Host).
				Str("database", opts.MySQL.Database).
				Msg("Database initialized")
			return db, nil
		}
		log.Warn().Err(err).Str("fallback", opts.SQLitePath).Msg("MySQL initialization failed, falling back to SQLite")
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	db, err := OpenSQLite(ctx, opts.SQLitePath)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("engine", string(EngineSQLite)).
		Str("path", opts.SQLitePath).
		Msg("Database initialized")
	return db, nil
}

// SQLiteDSN builds a DSN for the sqlite3 driver with foreign keys enforced.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

// OpenSQLite opens (creating if needed) the database file and its tables.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("open sqlite: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite3", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	db := NewSQLite(sqlDB)
	if err := db.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// MySQLConfig turns options into a driver config. ParseTime is always on so
// DATETIME columns scan into time.Time.
func MySQLConfig(opts MySQLOptions) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))
	cfg.User = opts.User
	cfg.Passwd = opts.Password
	cfg.DBName = opts.Database
	cfg.ParseTime = true
	cfg.Timeout = 10 * time.Second
	return cfg
}

// OpenMySQL creates the database if needed, connects a pool to it and creates its tables.
func OpenMySQL(ctx context.Context, opts MySQLOptions) (*DB, error) {
	// The pool connect below decides whether the server is usable.
	_ = createMySQLDatabase(ctx, opts)

	sqlDB, err := sql.Open("mysql", MySQLConfig(opts).FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	sqlDB.SetMaxOpenConns(mysqlPoolSize)
	sqlDB.SetMaxIdleConns(mysqlPoolSize)

	if err := pingWithBackoff(ctx, sqlDB, opts.PingWait); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	db := NewMySQL(sqlDB)
	if err := db.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func createMySQLDatabase(ctx context.Context, opts MySQLOptions) error {
	cfg := MySQLConfig(opts)
	cfg.DBName = ""

	sqlDB, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	_, err = sqlDB.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS `"+opts.Database+"`")
	return err
}

// pingWithBackoff retries until the server responds or maxWait has elapsed.
// A zero maxWait means a single attempt.
func pingWithBackoff(ctx context.Context, db *sql.DB, maxWait time.Duration) error {
	const (
		pingTimeout    = 5 * time.Second
		initialBackoff = 500 * time.Millisecond
		maxBackoff     = 5 * time.Second
	)

	deadline := time.Now().Add(maxWait)
	backoff := initialBackoff
	var lastErr error

	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || time.Now().After(deadline) {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
