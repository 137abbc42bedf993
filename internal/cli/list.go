package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/abclisten/pkg/accessibility"
	"github.com/matzehuels/abclisten/pkg/errors"
	abcio "github.com/matzehuels/abclisten/pkg/io"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

// listCommand creates the list command with its subcommands.
func (c *CLI) listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"lists", "abc"},
		Short:   "Manage ABC-Lists",
		Long: `Manage ABC-Lists: one bucket of words per letter, A to Z.

Examples:
  abclisten list create Tiere
  abclisten list add Tiere Affe --explanation "klettert gern"
  abclisten list show Tiere --render
  abclisten list export Tiere tiere.pdf`,
	}

	cmd.AddCommand(c.listLsCommand())
	cmd.AddCommand(c.listCreateCommand())
	cmd.AddCommand(c.listAddCommand())
	cmd.AddCommand(c.listEditCommand())
	cmd.AddCommand(c.listRemoveCommand())
	cmd.AddCommand(c.listShowCommand())
	cmd.AddCommand(c.listDeleteCommand())
	cmd.AddCommand(c.listImportCommand())
	cmd.AddCommand(c.listExportCommand())
	cmd.AddCommand(c.listBrowseCommand())

	return cmd
}

func (c *CLI) listLsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all ABC-Lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			lists, err := s.lib.Lists(cmd.Context())
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			if len(lists) == 0 {
				p.info("No lists yet")
				p.nextStep("Create one", appName+" list create <name>")
				return nil
			}

			rows := make([][]string, 0, len(lists))
			for _, l := range lists {
				rows = append(rows, []string{l.Name, strconv.Itoa(l.Count()), strings.ToUpper(strings.Join(l.Letters(), ""))})
			}
			p.line(newTable([]string{"List", "Words", "Letters"}, rows).Render())
			return nil
		},
	}
}

func (c *CLI) listCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty ABC-List",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			name := args[0]
			if _, err := s.lib.CreateList(ctx, name); err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.success("Created list %s", StyleHighlight.Render(name))
			p.nextStep("Add a word", fmt.Sprintf("%s list add %q <word>", appName, name))
			return nil
		},
	}
}

func (c *CLI) listAddCommand() *cobra.Command {
	var letter, explanation string
	var create bool

	cmd := &cobra.Command{
		Use:   "add <name> <word>",
		Short: "Add a word to an ABC-List",
		Long: `Add a word to an ABC-List. The letter is taken from the word's first
character unless --letter is given; umlauts and accents file under their
base letter (Ärger goes to A).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			name, word := args[0], args[1]
			if create {
				if _, err := s.lib.EnsureList(ctx, name); err != nil {
					return err
				}
			}

			list, err := s.lib.AddWord(ctx, name, letter, word, explanation)
			if err != nil {
				return err
			}
			l, idx, _ := list.Find(word)
			newPrinter(cmd.OutOrStdout()).success("Added %s to %s under %s (#%d)",
				StyleHighlight.Render(word), name, strings.ToUpper(l), idx+1)
			return nil
		},
	}

	cmd.Flags().StringVarP(&letter, "letter", "l", "", "bucket letter (default: first letter of the word)")
	cmd.Flags().StringVarP(&explanation, "explanation", "e", "", "why the word belongs in the list")
	cmd.Flags().BoolVar(&create, "create", false, "create the list if it does not exist")

	return cmd
}

func (c *CLI) listEditCommand() *cobra.Command {
	var explanation string

	cmd := &cobra.Command{
		Use:   "edit <name> <letter> <number> <word>",
		Short: "Replace a word, keeping its position",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseNumber(args[2])
			if err != nil {
				return err
			}
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.lib.ReplaceWord(cmd.Context(), args[0], args[1], idx, args[3], explanation)
			if err != nil {
				return err
			}
			letter, _ := wordlist.NormalizeLetter(args[1])
			e := list.Entries(letter)[idx]
			newPrinter(cmd.OutOrStdout()).success("Updated %s (version %d)", StyleHighlight.Render(e.Text), e.Version)
			return nil
		},
	}

	cmd.Flags().StringVarP(&explanation, "explanation", "e", "", "new explanation")

	return cmd
}

func (c *CLI) listRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name> <letter> <number>",
		Short: "Remove a word by its number within a letter",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseNumber(args[2])
			if err != nil {
				return err
			}
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.lib.GetList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			letter, _ := wordlist.NormalizeLetter(args[1])
			entries := list.Entries(letter)
			if _, err := s.lib.RemoveWord(cmd.Context(), args[0], args[1], idx); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).success("Removed %s from %s", StyleHighlight.Render(entries[idx].Text), args[0])
			return nil
		},
	}
}

func (c *CLI) listShowCommand() *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the words of an ABC-List",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.lib.GetList(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			if render {
				out, err := renderMarkdown(abcio.ListMarkdown(list), s.settings.Current())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			p.line(StyleTitle.Render(list.Name))
			if list.Count() == 0 {
				p.detail("(empty)")
				return nil
			}
			for _, letter := range list.Letters() {
				p.line(StyleHighlight.Render(strings.ToUpper(letter)))
				for i, e := range list.Entries(letter) {
					line := fmt.Sprintf("  %2d. %s", i+1, e.Text)
					if e.Explanation != "" {
						line += " " + StyleDim.Render("- "+e.Explanation)
					}
					p.line(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "render as formatted Markdown")

	return cmd
}

func (c *CLI) listDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an ABC-List",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.lib.DeleteList(cmd.Context(), args[0]); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).success("Deleted list %s", args[0])
			return nil
		},
	}
}

func (c *CLI) listImportCommand() *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "import <name> <file>",
		Short: "Import an ABC-List from CSV, JSON or YAML",
		Long: `Import an ABC-List. The format is taken from the file extension.

Without --merge the imported words replace the list; with --merge they are
appended to the existing buckets.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			imported, err := abcio.ImportListFile(args[0], args[1])
			if err != nil {
				return err
			}

			s, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			list := imported
			if merge {
				existing, err := s.lib.GetList(ctx, args[0])
				switch {
				case err == nil:
					if list, err = mergeLists(existing, imported); err != nil {
						return err
					}
				case !errors.Is(err, errors.ErrCodeListNotFound):
					return err
				}
			}
			if err := s.lib.SaveList(ctx, list); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Imported %d words", imported.Count()))

			p := newPrinter(cmd.OutOrStdout())
			p.success("Imported %d words into %s", imported.Count(), StyleHighlight.Render(list.Name))
			p.detail("%d words in %d letters", list.Count(), len(list.Letters()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "append to the existing list instead of replacing it")

	return cmd
}

// mergeLists appends every entry of src to dst, letter by letter.
func mergeLists(dst, src wordlist.List) (wordlist.List, error) {
	var err error
	for _, letter := range src.Letters() {
		for _, e := range src.Entries(letter) {
			if dst, err = dst.Add(letter, e); err != nil {
				return wordlist.List{}, err
			}
		}
	}
	return dst, nil
}

func (c *CLI) listExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <file>",
		Short: "Export an ABC-List as CSV, Markdown, HTML, PDF, JSON or YAML",
		Long: `Export an ABC-List. The format is taken from the file extension:
.csv, .md, .html, .pdf, .json, .yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.lib.GetList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := abcio.ExportListFile(cmd.Context(), list, args[1]); err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.success("Exported %s", StyleHighlight.Render(list.Name))
			p.file(args[1])
			return nil
		},
	}
}

func (c *CLI) listBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <name>",
		Short: "Browse an ABC-List interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.lib.GetList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return runBrowser(cmd, list)
		},
	}
}

// =============================================================================
// Helpers
// =============================================================================

// parseNumber converts a 1-based word number from the command line into an
// index.
func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "word number must be a positive integer, got %q", s)
	}
	return n - 1, nil
}

// renderMarkdown renders md for the terminal, following the learner's color
// scheme.
func renderMarkdown(md []byte, settings accessibility.Settings) (string, error) {
	style := glamour.WithAutoStyle()
	switch settings.ColorScheme {
	case accessibility.SchemeDark:
		style = glamour.WithStandardStyle("dark")
	case accessibility.SchemeLight:
		style = glamour.WithStandardStyle("light")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.RenderBytes(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return string(out), nil
}

// newTable builds a rounded lipgloss table with dim borders.
func newTable(headers []string, rows [][]string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
