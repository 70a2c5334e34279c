package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore the whole record book",
	}

	export := &cobra.Command{
		Use:   "export <file>",
		Short: "Write every table to a JSON backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.store.ExportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			summary := map[string]any{
				"id":             doc.ID,
				"file":           args[0],
				"schema_version": doc.SchemaVersion,
				"rows":           doc.Tables.Rows(),
			}
			return a.done(out(cmd), summary, "Exported %d rows to %s", doc.Tables.Rows(), args[0])
		},
	}

	var yes bool
	restore := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace every table with the contents of a backup file",
		Long: "Replace every table with the contents of a backup file. The file is\n" +
			"checked in full first; a bad file leaves the record book untouched.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipRefresh: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("%w: importing replaces all records, rerun with --yes", errConfirmationRequired)
			}
			doc, err := a.store.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.logger.Info("backup restored", "file", args[0], "backup_id", doc.ID, "rows", doc.Tables.Rows())
			summary := map[string]any{"id": doc.ID, "file": args[0], "rows": doc.Tables.Rows()}
			return a.done(out(cmd), summary, "Restored %d rows from %s", doc.Tables.Rows(), args[0])
		},
	}
	restore.Flags().BoolVar(&yes, "yes", false, "confirm replacing all records")

	cmd.AddCommand(export, restore)
	return cmd
}
