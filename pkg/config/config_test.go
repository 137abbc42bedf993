package config

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/store"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("ABCLISTEN_STORE_BACKEND", "")
	os.Unsetenv("ABCLISTEN_STORE_BACKEND")
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[storage]
backend = "redis"
profile = "anna"

[storage.redis]
addr = "cache.local:6380"
db = 2

[server]
addr = ":9090"
read_timeout = "5s"

[export]
formats = ["svg", "pdf"]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != store.BackendRedis || cfg.Storage.Redis.Addr != "cache.local:6380" || cfg.Storage.Redis.DB != 2 {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	// Unset keys keep their defaults
	if cfg.Server.WriteTimeout.Duration != 60*time.Second {
		t.Errorf("write timeout = %v", cfg.Server.WriteTimeout)
	}
	if !slices.Equal(cfg.Export.Formats, []string{"svg", "pdf"}) {
		t.Errorf("formats = %v", cfg.Export.Formats)
	}

	opts, err := cfg.StoreOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Scope != "profile:anna:" || opts.Redis.Addr != "cache.local:6380" {
		t.Errorf("StoreOptions = %+v", opts)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load(""); err != nil {
		t.Errorf("missing default config should not fail: %v", err)
	}
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit config = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[storage\nbackend="},
		{"backend", "[storage]\nbackend = \"sqlite\""},
		{"format", "[export]\nformats = [\"gif\"]"},
		{"level", "[log]\nlevel = \"loud\""},
		{"profile", "[storage]\nprofile = \"a/b\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			_ = os.WriteFile(path, []byte(tt.content), 0o600)
			if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidSetting) {
				t.Errorf("Load = %v, want INVALID_SETTING", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	environ := map[string]string{
		"ABCLISTEN_STORE_BACKEND":  "mongo",
		"ABCLISTEN_MONGO_URI":      "mongodb://db:27017",
		"ABCLISTEN_REDIS_DB":       "3",
		"ABCLISTEN_EXPORT_FORMATS": "json,png",
		"STORE_BACKEND":            "redis",
	}
	cfg := Default()
	if err := cfg.ApplyEnv(environ); err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != "mongo" || cfg.Storage.Mongo.URI != "mongodb://db:27017" || cfg.Storage.Redis.DB != 3 {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if !slices.Equal(cfg.Export.Formats, []string{"json", "png"}) {
		t.Errorf("formats = %v", cfg.Export.Formats)
	}
	// Unset variables keep what was there
	if cfg.Server.Addr != ":8080" || cfg.Log.Level != "info" {
		t.Errorf("untouched fields changed: server %q, level %q", cfg.Server.Addr, cfg.Log.Level)
	}

	environ["ABCLISTEN_REDIS_DB"] = "x"
	if err := cfg.ApplyEnv(environ); !errors.Is(err, errors.ErrCodeInvalidSetting) {
		t.Errorf("non-numeric REDIS_DB = %v, want INVALID_SETTING", err)
	}
}

func TestApplyEnvTrimsFormats(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyEnv(map[string]string{"ABCLISTEN_EXPORT_FORMATS": "svg, png ,pdf"}); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cfg.Export.Formats, []string{"svg", "png", "pdf"}) {
		t.Errorf("formats = %q", cfg.Export.Formats)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate after trimmed formats = %v", err)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("ABCLISTEN_EXPORT_FORMATS", "svg, png")
	t.Setenv("ABCLISTEN_LOG_LEVEL", "debug")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q, want env value debug", cfg.Log.Level)
	}
	if !slices.Equal(cfg.Export.Formats, []string{"svg", "png"}) {
		t.Errorf("formats = %q", cfg.Export.Formats)
	}
}

func TestEncodeDecode(t *testing.T) {
	cfg := Default()
	cfg.Storage.Profile = "ben"

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `read_timeout = "15s"`) {
		t.Errorf("encoded config missing duration:\n%s", buf.String())
	}

	got := Default()
	if err := got.Decode(&buf); err != nil {
		t.Fatal(err)
	}
	if got.Storage.Profile != "ben" || got.Server.ReadTimeout != cfg.Server.ReadTimeout {
		t.Errorf("decoded = %+v", got)
	}
}

func TestPaths(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("XDG_DATA_HOME", base)
	t.Setenv("XDG_CACHE_HOME", base)

	p, _ := DefaultPath()
	if want := filepath.Join(base, AppName, "config.toml"); p != want {
		t.Errorf("DefaultPath = %q, want %q", p, want)
	}
	d, _ := DataDir()
	if want := filepath.Join(base, AppName); d != want {
		t.Errorf("DataDir = %q, want %q", d, want)
	}
	c, _ := CacheDir()
	if want := filepath.Join(base, AppName); c != want {
		t.Errorf("CacheDir = %q, want %q", c, want)
	}
}
