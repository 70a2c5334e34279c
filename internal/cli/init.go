package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and the record book",
		Long: "Create the configuration and data directories, write a default\n" +
			"config.yaml, then open the database so migrations and default rows\n" +
			"are applied.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(out(cmd), green("Record book ready:"), a.backend.Path())
			return nil
		},
	}
}
