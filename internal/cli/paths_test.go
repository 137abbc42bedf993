package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/abclisten/pkg/config"
	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/store"
)

func TestXDGOverrides(t *testing.T) {
	cfgHome, dataHome, cacheHome := t.TempDir(), t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"config file", config.DefaultPath, filepath.Join(cfgHome, appName, "config.toml")},
		{"data dir", config.DataDir, filepath.Join(dataHome, appName)},
		{"cache dir", cacheDir, filepath.Join(cacheHome, appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")

	if got, _ := cacheDir(); got != filepath.Join(home, ".cache", appName) {
		t.Errorf("cacheDir() = %q", got)
	}
	if got, _ := config.DataDir(); got != filepath.Join(home, ".local", "share", appName) {
		t.Errorf("DataDir() = %q", got)
	}
	if got, _ := config.DefaultPath(); got != filepath.Join(home, ".config", appName, "config.toml") {
		t.Errorf("DefaultPath() = %q", got)
	}
}

func TestSessionStoreOptions(t *testing.T) {
	c, opened := newTestCLI(t)
	dataDir := filepath.Join(os.Getenv("XDG_DATA_HOME"), appName)

	mustRun(t, c, "list", "ls")
	mustRun(t, c, "list", "ls", "--profile", "anna")

	if len(*opened) != 2 {
		t.Fatalf("opened %d stores, want 2", len(*opened))
	}
	for i, want := range []store.Options{
		{Backend: store.BackendFile, Dir: dataDir},
		{Backend: store.BackendFile, Dir: dataDir, Scope: "profile:anna:"},
	} {
		got := (*opened)[i]
		if got.Backend != want.Backend || got.Dir != want.Dir || got.Scope != want.Scope {
			t.Errorf("store %d = %+v, want backend %s dir %s scope %q", i, got, want.Backend, want.Dir, want.Scope)
		}
	}

	_, err := run(t, c, "list", "ls", "--profile", "a/b")
	wantCode(t, err, errors.ErrCodeInvalidSetting)
}

func TestArtifactCacheUnderCacheDir(t *testing.T) {
	c, _ := newTestCLI(t)
	mustRun(t, c, "list", "ls")

	cache, err := c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.(*store.FileStore); !ok {
		t.Fatalf("newCache() = %T, want *store.FileStore", cache)
	}
	dir, _ := cacheDir()
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("cache dir %s not created: %v", dir, err)
	}

	if cache, _ := c.newCache(true); cache != nil {
		t.Errorf("newCache(noCache) = %T, want nil", cache)
	}
}
