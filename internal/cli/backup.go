package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	abcio "github.com/matzehuels/abclisten/pkg/io"
)

// backupCommand creates the backup command.
func (c *CLI) backupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file>",
		Short: "Write every list and KaWa to a backup file",
		Long: `Write every list and KaWa of the current profile to a backup file.
The format follows the extension: .yaml/.yml for YAML, JSON otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			b, err := s.lib.Snapshot(ctx)
			if err != nil {
				return err
			}
			if err := abcio.ExportBackup(b, args[0]); err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.success("Backed up %d lists and %d KaWas", len(b.Lists), len(b.Kawas))
			p.file(args[0])
			return nil
		},
	}
}

// restoreCommand creates the restore command.
func (c *CLI) restoreCommand() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore lists and KaWas from a backup file",
		Long: `Restore lists and KaWas from a backup file.

By default the backup is merged: lists and KaWas in the file overwrite those
with the same name, everything else is kept. --replace deletes lists and
KaWas that are not in the backup. Settings are never touched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := abcio.ImportBackup(args[0])
			if err != nil {
				return err
			}

			s, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			p := newPrinter(cmd.OutOrStdout())
			spinner := newSpinner(cmd.ErrOrStderr(), "Restoring backup...").
				Still(s.settings.Current().ReducedMotion)
			spinner.Start()
			if err := s.lib.Restore(ctx, b, replace); err != nil {
				spinner.StopWithError(p, "Restore failed")
				return err
			}
			spinner.StopWithSuccess(p, fmt.Sprintf("Restored %d lists and %d KaWas", len(b.Lists), len(b.Kawas)))
			if !b.CreatedAt.IsZero() {
				p.detail("backup from %s", b.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "delete lists and KaWas missing from the backup")

	return cmd
}
