package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/abclisten/pkg/accessibility"
)

// settingsCommand creates the settings command with its subcommands.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change accessibility settings",
		Long: `Show and change accessibility settings.

Settings are stored per profile next to the lists and KaWas. Keys:
  fontScale      0.5 to 3
  lineSpacing    1 to 3
  highContrast   true/false
  reducedMotion  true/false (also stops the CLI spinner)
  dyslexiaFont   true/false
  colorScheme    system, light or dark (also picks the Markdown theme)`,
	}

	cmd.AddCommand(c.settingsShowCommand())
	cmd.AddCommand(c.settingsSetCommand())
	cmd.AddCommand(c.settingsResetCommand())

	return cmd
}

func (c *CLI) settingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			printSettings(newPrinter(cmd.OutOrStdout()), s.settings.Current())
			return nil
		},
	}
}

func (c *CLI) settingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one setting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: accessibility.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.settings.Set(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).success("Set %s to %s", StyleHighlight.Render(args[0]), args[1])
			return nil
		},
	}
}

func (c *CLI) settingsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.settings.Reset(cmd.Context()); err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.success("Settings reset to defaults")
			printSettings(p, s.settings.Current())
			return nil
		},
	}
}

func printSettings(p *printer, s accessibility.Settings) {
	p.keyValue("fontScale", strconv.FormatFloat(s.FontScale, 'g', -1, 64))
	p.keyValue("lineSpacing", strconv.FormatFloat(s.LineSpacing, 'g', -1, 64))
	p.keyValue("highContrast", strconv.FormatBool(s.HighContrast))
	p.keyValue("reducedMotion", strconv.FormatBool(s.ReducedMotion))
	p.keyValue("dyslexiaFont", strconv.FormatBool(s.DyslexiaFont))
	p.keyValue("colorScheme", s.ColorScheme)
}
