package cli

import (
	"context"

	"github.com/matzehuels/abclisten/pkg/errors"
)

// Execute builds the root command and runs it with args.
//
// Errors returned by commands are rewritten to their user-facing message, so
// main can print them as-is:
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.Execute(ctx, os.Args[1:]); err != nil {
//	    fmt.Fprintln(os.Stderr, err)
//	}
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SilenceErrors = true
	if err := root.ExecuteContext(ctx); err != nil {
		return userError{err}
	}
	return nil
}

// userError formats coded errors with [errors.UserMessage] and keeps the
// original error reachable through Unwrap.
type userError struct{ err error }

func (e userError) Error() string {
	if errors.GetCode(e.err) != "" {
		return "Error: " + errors.UserMessage(e.err)
	}
	return "Error: " + e.err.Error()
}

func (e userError) Unwrap() error { return e.err }
