package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/abclisten/pkg/errors"
	abcio "github.com/matzehuels/abclisten/pkg/io"
	"github.com/matzehuels/abclisten/pkg/kawa"
)

// kawaCommand creates the kawa command with its subcommands.
func (c *CLI) kawaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "kawa",
		Aliases: []string{"kawas"},
		Short:   "Manage KaWas (word associations per letter)",
		Long: `Manage KaWas: one association for every letter of a target word.

Positions count from 1, so in "Anna" both A's keep their own association:
  abclisten kawa set Anna 1 Apfel
  abclisten kawa set Anna 4 Ameise`,
	}

	cmd.AddCommand(c.kawaLsCommand())
	cmd.AddCommand(c.kawaSetCommand())
	cmd.AddCommand(c.kawaShowCommand())
	cmd.AddCommand(c.kawaDeleteCommand())
	cmd.AddCommand(c.kawaExportCommand())
	cmd.AddCommand(c.kawaImportCommand())

	return cmd
}

func (c *CLI) kawaLsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all KaWas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			kawas, err := s.lib.Kawas(cmd.Context())
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			if len(kawas) == 0 {
				p.info("No KaWas yet")
				p.nextStep("Start one", appName+" kawa set <word> 1 <association>")
				return nil
			}

			rows := make([][]string, 0, len(kawas))
			for _, k := range kawas {
				rows = append(rows, []string{k.Word, fmt.Sprintf("%d/%d", k.Filled(), len(k.Entries))})
			}
			p.line(newTable([]string{"Word", "Filled"}, rows).Render())
			return nil
		},
	}
}

func (c *CLI) kawaSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <word> <position> <association>",
		Short: "Set the association for one letter position",
		Long: `Set the association for one letter position of a KaWa, creating the
KaWa when it does not exist. An empty association clears the position.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "position must be a positive integer, got %q", args[1])
			}

			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			k, err := s.lib.SetAssociation(cmd.Context(), args[0], n-1, args[2])
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			letter := strings.ToUpper(k.Letters()[n-1])
			if k.At(n-1) == "" {
				p.success("Cleared %s%d in %s", letter, n, StyleHighlight.Render(k.Word))
			} else {
				p.success("%s → %s", StyleHighlight.Render(letter), k.At(n-1))
			}
			p.detail("%d of %d positions filled", k.Filled(), len(k.Entries))
			if slices.Contains(kawa.DuplicateLetters(k.Word), letter) {
				p.detail("%s repeats in %s; each position keeps its own association", letter, k.Word)
			}
			return nil
		},
	}
}

func (c *CLI) kawaShowCommand() *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "show <word>",
		Short: "Show a KaWa",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			k, err := s.lib.GetKawa(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if render {
				out, err := renderMarkdown(abcio.KawaMarkdown(k), s.settings.Current())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			p := newPrinter(cmd.OutOrStdout())
			p.line(StyleTitle.Render(strings.ToUpper(k.Word)))
			for i, l := range k.Letters() {
				text := k.At(i)
				if text == "" {
					text = StyleDim.Render("—")
				}
				p.keyValue(fmt.Sprintf("%2d %s", i+1, strings.ToUpper(l)), text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "render as formatted Markdown")

	return cmd
}

func (c *CLI) kawaDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <word>",
		Short: "Delete a KaWa",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.lib.DeleteKawa(cmd.Context(), args[0]); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).success("Deleted KaWa %s", args[0])
			return nil
		},
	}
}

func (c *CLI) kawaExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <word> <file>",
		Short: "Export a KaWa as CSV, Markdown, HTML, PDF, JSON or YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			k, err := s.lib.GetKawa(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := abcio.ExportKawaFile(cmd.Context(), k, args[1]); err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.success("Exported KaWa %s", StyleHighlight.Render(k.Word))
			p.file(args[1])
			return nil
		},
	}
}

func (c *CLI) kawaImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <word> <file>",
		Short: "Import a KaWa from CSV, JSON or YAML",
		Long: `Import a KaWa, replacing any stored KaWa for the same word. The format
is taken from the file extension; CSV files use the layout written by
"kawa export" (position, letter, association).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			k, err := abcio.ImportKawaFile(args[0], args[1])
			if err != nil {
				return err
			}

			s, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.lib.SaveKawa(ctx, k); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Imported KaWa %s", k.Word))

			p := newPrinter(cmd.OutOrStdout())
			p.success("Imported KaWa %s", StyleHighlight.Render(k.Word))
			p.detail("%d of %d letters filled", k.Filled(), len(k.Entries))
			return nil
		},
	}
}
