package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/huntbook/internal/session"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change display settings",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.state.Navigate(session.ViewSettings)
			all, err := a.store.Settings.All(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), nonNil(all))
			}
			rows := make([][]string, len(all))
			for i, s := range all {
				rows[i] = []string{s.Key, s.Value}
			}
			printTable(out(cmd), "No settings.", []string{"Key", "Value"}, rows)
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting; known keys fall back to their default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.store.Settings.Value(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), types.Setting{Key: args[0], Value: v})
			}
			fmt.Fprintln(out(cmd), v)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Settings.Set(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return a.done(out(cmd), types.Setting{Key: args[0], Value: args[1]}, "%s = %s", args[0], args[1])
		},
	}

	cmd.AddCommand(list, get, set)
	return cmd
}
