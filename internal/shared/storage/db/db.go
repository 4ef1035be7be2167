package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"cv-builder/internal/shared/telemetry"
)

const applicationName = "cv-builder"

// Options controls pool sizing and the startup connectivity check.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// openDB parses the URL with pgx and tags sessions with the application name.
var openDB = func(databaseURL string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.RuntimeParams == nil {
		cfg.RuntimeParams = map[string]string{}
	}
	if cfg.RuntimeParams["application_name"] == "" {
		cfg.RuntimeParams["application_name"] = applicationName
	}
	return stdlib.OpenDB(*cfg), nil
}

// DefaultServerOptions sizes the pool for the API server. Snapshot traffic is light.
func DefaultServerOptions() Options {
	return Options{
		MaxOpenConns:    8,
		MaxIdleConns:    4,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// DefaultMigrateOptions uses a single connection for one-shot commands.
func DefaultMigrateOptions() Options {
	opts := DefaultServerOptions()
	opts.MaxOpenConns = 1
	opts.MaxIdleConns = 1
	opts.PingTimeout = 15 * time.Second
	return opts
}

func (o Options) withDefaults() Options {
	def := DefaultServerOptions()
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = def.MaxOpenConns
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = min(def.MaxIdleConns, o.MaxOpenConns)
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = def.ConnMaxLifetime
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = def.PingTimeout
	}
	return o
}

var intEnv = []struct {
	key string
	set func(*Options, int)
}{
	{"DB_MAX_OPEN_CONNS", func(o *Options, v int) { o.MaxOpenConns = v }},
	{"DB_MAX_IDLE_CONNS", func(o *Options, v int) { o.MaxIdleConns = v }},
}

var durationEnv = []struct {
	key string
	set func(*Options, time.Duration)
}{
	{"DB_CONN_MAX_LIFETIME", func(o *Options, v time.Duration) { o.ConnMaxLifetime = v }},
	{"DB_CONN_MAX_IDLE_TIME", func(o *Options, v time.Duration) { o.ConnMaxIdleTime = v }},
	{"DB_PING_TIMEOUT", func(o *Options, v time.Duration) { o.PingTimeout = v }},
}

// OptionsFromEnv applies DB_* overrides to defaults. Malformed values are logged and skipped.
func OptionsFromEnv(defaults Options) Options {
	opts := defaults
	for _, e := range intEnv {
		if raw := strings.TrimSpace(os.Getenv(e.key)); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				telemetry.Warn("db.env_invalid", map[string]any{"key": e.key, "error": err.Error()})
				continue
			}
			e.set(&opts, v)
		}
	}
	for _, e := range durationEnv {
		if raw := strings.TrimSpace(os.Getenv(e.key)); raw != "" {
			v, err := time.ParseDuration(raw)
			if err != nil {
				telemetry.Warn("db.env_invalid", map[string]any{"key": e.key, "error": err.Error()})
				continue
			}
			e.set(&opts, v)
		}
	}
	return opts
}

// Connect opens the snapshot database and verifies it answers within PingTimeout.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	opts = opts.withDefaults()

	sqlDB, err := openDB(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	if opts.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	telemetry.Info("db.connected", map[string]any{
		"max_open":     opts.MaxOpenConns,
		"max_idle":     opts.MaxIdleConns,
		"ping_timeout": opts.PingTimeout.String(),
	})
	return sqlDB, nil
}
