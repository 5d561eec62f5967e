package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaultsFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OPPTRACK_CONFIG_DIR", dir)
	t.Setenv("OPPTRACK_DASHBOARD_LIMIT", "5")
	t.Setenv("OPPTRACK_FETCH_TIMEOUT", "nope")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DashboardLimit != 5 {
		t.Fatalf("DashboardLimit = %d, want 5", cfg.DashboardLimit)
	}
	if cfg.FetchTimeout() != 30*time.Second {
		t.Fatalf("FetchTimeout() = %v", cfg.FetchTimeout())
	}
	if cfg.ProxyBase != DefaultProxyBase || cfg.KeyPrefix != DefaultKeyPrefix {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	dsn, err := cfg.StoreDSN()
	if err != nil {
		t.Fatalf("StoreDSN() error = %v", err)
	}
	if want := "file:" + filepath.Join(dir, StoreFileName); dsn != want {
		t.Fatalf("StoreDSN() = %q, want %q", dsn, want)
	}
}

func TestLoadParsesJSON5(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OPPTRACK_CONFIG_DIR", dir)
	data := `{
  // remote store
  store: "redis://localhost:6379/0",
  due_soon_days: 14,
}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store != "redis://localhost:6379/0" || cfg.DueSoonDays != 14 {
		t.Fatalf("Load() = %+v", cfg)
	}
	if dsn, _ := cfg.StoreDSN(); dsn != cfg.Store {
		t.Fatalf("StoreDSN() = %q", dsn)
	}
}

func TestInitCreatesFilesOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "opptrack")
	t.Setenv("OPPTRACK_CONFIG_DIR", dir)

	created, err := Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Init() created %v", created)
	}
	created, err = Init()
	if err != nil || len(created) != 0 {
		t.Fatalf("second Init() = %v, %v", created, err)
	}
	proxies, err := LoadProxies("")
	if err != nil || len(proxies) != 0 {
		t.Fatalf("LoadProxies() = %v, %v; header comment should be skipped", proxies, err)
	}
}

func TestLoadProxiesPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OPPTRACK_CONFIG_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, ProxiesFileName), []byte("# c\nhttp://file:1\n\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, _ := LoadProxies("")
	if !reflect.DeepEqual(got, []string{"http://file:1"}) {
		t.Fatalf("file proxies = %v", got)
	}
	t.Setenv("OPPTRACK_PROXIES", "http://env:1, http://env:2")
	got, _ = LoadProxies("")
	if !reflect.DeepEqual(got, []string{"http://env:1", "http://env:2"}) {
		t.Fatalf("env proxies = %v", got)
	}
	got, _ = LoadProxies("http://flag:1")
	if !reflect.DeepEqual(got, []string{"http://flag:1"}) {
		t.Fatalf("flag proxies = %v", got)
	}
}

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OPPTRACK_CONFIG_DIR", dir)
	t.Setenv("OPPTRACK_KEY_PREFIX", "from-shell")
	env := "OPPTRACK_KEY_PREFIX=from-file\nOPPTRACK_DUE_SOON_DAYS=3\n"
	if err := os.WriteFile(filepath.Join(dir, EnvFileName), []byte(env), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("OPPTRACK_DUE_SOON_DAYS", "")
	os.Unsetenv("OPPTRACK_DUE_SOON_DAYS")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	cfg := DefaultConfig()
	if cfg.KeyPrefix != "from-shell" || cfg.DueSoonDays != 3 {
		t.Fatalf("DefaultConfig() = %+v", cfg)
	}
}

func TestLoadEnvFlags(t *testing.T) {
	t.Setenv("OPPTRACK_JSON", "yes")
	t.Setenv("OPPTRACK_VERBOSE", "0")
	t.Setenv("OPPTRACK_COLOR", " never ")

	got := LoadEnvFlags()
	want := EnvFlags{JSON: true, Verbose: false, Color: "never"}
	if got != want {
		t.Fatalf("LoadEnvFlags() = %+v, want %+v", got, want)
	}
}
