package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every key Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MUSICLIB_CONFIG", "HOST", "PORT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
		"STATIC_DIR", "SQLITE_PATH", "DATABASE_URL", "MYSQL_HOST", "MYSQL_PORT", "MYSQL_USER",
		"MYSQL_PASSWORD", "MYSQL_DATABASE", "MYSQL_PING_WAIT", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:5173" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.UseMySQL() {
		t.Fatalf("expected sqlite without MySQL settings")
	}
	opts := cfg.StoreOptions()
	if opts.SQLitePath != "music.db" || opts.MySQL != nil {
		t.Fatalf("unexpected store options %+v", opts)
	}
}

func TestLoadMySQLFromHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("MYSQL_HOST", "db.local")
	t.Setenv("MYSQL_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := cfg.StoreOptions()
	if opts.MySQL == nil {
		t.Fatalf("expected MySQL options")
	}
	if opts.MySQL.Host != "db.local" || opts.MySQL.Port != 3306 || opts.MySQL.User != "root" ||
		opts.MySQL.Database != "musiclibrary" || opts.MySQL.Password != "secret" {
		t.Fatalf("unexpected MySQL options %+v", opts.MySQL)
	}
}

func TestLoadMySQLFromURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "mysql://music:pw@db.example:3307/library")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := cfg.Database.MySQL
	if !cfg.UseMySQL() || m.Host != "db.example" || m.Port != 3307 || m.User != "music" || m.Password != "pw" || m.Database != "library" {
		t.Fatalf("unexpected MySQL config %+v", m)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "musiclib.yaml")
	content := `
server:
  host: 0.0.0.0
  port: 9000
logging:
  level: debug
cors:
  allowed_origins: ["http://localhost:3000"]
database:
  mysql:
    ping_wait: 2s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MUSICLIB_CONFIG", path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9100 {
		t.Fatalf("expected file host and env port, got %+v", cfg.Server)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.Database.MySQL.PingWait != 2*time.Second {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MUSICLIB_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidateAggregatesProblems(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "0")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "PORT must be between") || !strings.Contains(msg, "LOG_LEVEL must be one of") {
		t.Fatalf("expected both problems reported, got %q", msg)
	}
}

func TestParseListTrims(t *testing.T) {
	got := parseList(" http://a , ,http://b")
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestLoadMetricsToggle(t *testing.T) {
	clearEnv(t)
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Metrics {
		t.Fatalf("expected metrics disabled")
	}

	t.Setenv("METRICS_ENABLED", "sometimes")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "METRICS_ENABLED") {
		t.Fatalf("expected METRICS_ENABLED error, got %v", err)
	}
}
