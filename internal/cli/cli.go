package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/abclisten/pkg/accessibility"
	"github.com/matzehuels/abclisten/pkg/buildinfo"
	"github.com/matzehuels/abclisten/pkg/config"
	"github.com/matzehuels/abclisten/pkg/library"
	"github.com/matzehuels/abclisten/pkg/pipeline"
	"github.com/matzehuels/abclisten/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Set by persistent flags.
	configPath string
	profile    string
	verbose    bool

	// Loaded in PersistentPreRunE.
	cfg config.Config

	// openStore overrides store.Open; tests use it to inject a memory store.
	openStore func(ctx context.Context, opts store.Options) (store.Store, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		cfg:       config.Default(),
		openStore: store.Open,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "abclisten manages ABC-Lists and KaWas and draws them as mind maps",
		Long: `abclisten is a learning toolkit built around the ABC-List and KaWa
techniques of Vera F. Birkenbihl: collect words per letter, associate a word
with each letter of a target word, and render both as radial mind maps.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/abclisten/config.toml)")
	root.PersistentFlags().StringVarP(&c.profile, "profile", "p", "", "learner profile; isolates lists, KaWas and settings")

	// Register all subcommands
	root.AddCommand(c.listCommand())
	root.AddCommand(c.kawaCommand())
	root.AddCommand(c.mindmapCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.backupCommand())
	root.AddCommand(c.restoreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies the --profile and --verbose
// flags on top of it.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.profile != "" {
		cfg.Storage.Profile = c.profile
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	switch lvl, err := log.ParseLevel(cfg.Log.Level); {
	case c.verbose:
		c.SetLogLevel(LogDebug)
	case err == nil:
		c.SetLogLevel(lvl)
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Library and Runner Factory
// =============================================================================

// session bundles what most commands need. Close releases the stores.
type session struct {
	lib      *library.Library
	settings *accessibility.Manager
	store    store.Store
}

func (s *session) Close() error { return s.store.Close() }

// openSession opens the configured store and loads the learner's settings.
func (c *CLI) openSession(ctx context.Context) (*session, error) {
	opts, err := c.cfg.StoreOptions()
	if err != nil {
		return nil, err
	}
	s, err := c.openStore(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", opts.Backend, err)
	}
	c.Logger.Debug("opened store", "backend", opts.Backend, "dir", opts.Dir, "scope", opts.Scope)

	settings := accessibility.NewManager(s)
	if _, err := settings.Load(ctx); err != nil {
		c.Logger.Warn("ignoring stored settings", "error", err)
	}
	return &session{lib: library.New(s), settings: settings, store: s}, nil
}

// newRunner creates a pipeline runner for CLI use. The artifact cache lives
// in the cache directory and is skipped when noCache is set or caching is
// disabled in the config.
func (c *CLI) newRunner(lib *library.Library, noCache bool) *pipeline.Runner {
	cache, err := c.newCache(noCache)
	if err != nil {
		c.Logger.Warn("artifact cache disabled", "error", err)
	}
	return pipeline.NewRunner(lib, cache, c.Logger)
}

func (c *CLI) newCache(noCache bool) (store.Store, error) {
	if noCache || !c.cfg.Export.Cache {
		return nil, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	fs, err := store.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the artifact cache directory (~/.cache/abclisten/).
func cacheDir() (string, error) {
	return config.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice. An
// empty string falls back to def.
func parseFormats(s string, def []string) []string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
