package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := []byte("api_base: http://tickets.test/\npage_size: 24\ntimeout: 5s\nlog_level: DEBUG\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "http://tickets.test" || cfg.PageSize != 24 || cfg.Timeout != 5*time.Second {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level not normalized: %q", cfg.LogLevel)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.RPS != DefaultRPS || cfg.RetryMax != 0 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DEBUG", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	want.Path = cfg.Path
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TICKETTIX_API_BASE", "http://env.test")
	t.Setenv("TICKETTIX_TIMEOUT", "30s")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "http://env.test" || cfg.Timeout != 30*time.Second {
		t.Fatalf("expected env overrides, got %+v", cfg)
	}
}

func TestFlagsBeatEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("page_size: 30\napi_base: http://file.test\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("TICKETTIX_PAGE_SIZE", "40")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse([]string{"--config", path, "--page-size", "6", "--verbose"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := Load("", fs)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PageSize != 6 {
		t.Fatalf("flag should win, got page size %d", cfg.PageSize)
	}
	if cfg.APIBase != "http://file.test" {
		t.Fatalf("unset flag must not hide file value, got %q", cfg.APIBase)
	}
	if cfg.Path != path {
		t.Fatalf("--config not honoured: %q", cfg.Path)
	}
	if !cfg.Verbose {
		t.Fatalf("--verbose not honoured")
	}
}

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "cfg.yaml")
	cfg := Default()
	cfg.APIBase = "http://saved.test"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, want 600", perm)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(data), "api_base: http://saved.test") {
		t.Fatalf("unexpected content:\n%s", data)
	}

	back, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if back.APIBase != "http://saved.test" || back.Timeout != DefaultTimeout {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestSaveRequiresPath(t *testing.T) {
	if err := Save("", Default()); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestNormalizeRepairsZeroValues(t *testing.T) {
	c := Config{RetryMax: -1, LogLevel: "loud"}
	c.Normalize()
	if c.APIBase != DefaultAPIBase || c.PageSize != DefaultPageSize || c.Timeout != DefaultTimeout {
		t.Fatalf("unexpected: %+v", c)
	}
	if c.RetryMax != 0 || c.LogLevel != DefaultLogLevel {
		t.Fatalf("unexpected: %+v", c)
	}
}

func TestDefaultPathUsesHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	want := filepath.Join(dir, ".tickettix.yaml")
	if got := DefaultPath(); got != want {
		t.Fatalf("DefaultPath() = %q, want %q", got, want)
	}
}
