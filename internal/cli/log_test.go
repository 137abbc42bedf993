package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// contextLogger runs args with an extra subcommand that records the logger
// found on its context.
func contextLogger(t *testing.T, c *CLI, args ...string) *log.Logger {
	t.Helper()
	var got *log.Logger
	root := c.RootCommand()
	root.AddCommand(&cobra.Command{
		Use: "whoami",
		RunE: func(cmd *cobra.Command, _ []string) error {
			got = loggerFromContext(cmd.Context())
			return nil
		},
	})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs(append([]string{"whoami"}, args...))
	if err := root.Execute(); err != nil {
		t.Fatalf("whoami %v: %v", args, err)
	}
	return got
}

func TestPreRunAttachesLogger(t *testing.T) {
	c, _ := newTestCLI(t)

	got := contextLogger(t, c)
	if got != c.Logger {
		t.Errorf("context logger = %p, want the CLI logger %p", got, c.Logger)
	}
}

func TestLogLevelResolution(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		env     string
		verbose bool
		want    log.Level
	}{
		{"default", "", "", false, log.InfoLevel},
		{"config file", "warn", "", false, log.WarnLevel},
		{"environment beats file", "warn", "error", false, log.ErrorLevel},
		{"verbose beats config", "error", "", true, log.DebugLevel},
		{"verbose beats environment", "", "warn", true, log.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			if tt.env != "" {
				t.Setenv("ABCLISTEN_LOG_LEVEL", tt.env)
			}
			var args []string
			if tt.config != "" {
				path := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(path, []byte("[log]\nlevel = \""+tt.config+"\"\n"), 0o600); err != nil {
					t.Fatal(err)
				}
				args = append(args, "--config", path)
			}
			if tt.verbose {
				args = append(args, "--verbose")
			}

			if got := contextLogger(t, c, args...).GetLevel(); got != tt.want {
				t.Errorf("level = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestVerboseLogsStoreDetails(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		c, _ := newTestCLI(t)
		var buf bytes.Buffer
		c.Logger = newLogger(&buf, LogInfo)

		args := []string{"list", "ls"}
		if verbose {
			args = append(args, "-v")
		}
		mustRun(t, c, args...)

		if got := strings.Contains(buf.String(), "opened store"); got != verbose {
			t.Errorf("verbose=%v: debug line logged = %v\n%s", verbose, got, buf.String())
		}
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Imported 3 words")

	if !regexp.MustCompile(`Imported 3 words \([0-9.]+m?s\)`).MatchString(buf.String()) {
		t.Errorf("progress output = %q", buf.String())
	}

	buf.Reset()
	newProgress(newLogger(&buf, log.WarnLevel)).done("quiet")
	if buf.Len() != 0 {
		t.Errorf("progress logged below the logger level: %q", buf.String())
	}
}
