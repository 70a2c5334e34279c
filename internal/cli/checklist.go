package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/huntbook/internal/session"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func newChecklistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Manage packing checklists",
	}

	sets := &cobra.Command{
		Use:   "sets",
		Short: "List checklist sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.state.Navigate(session.ViewChecklist)
			all, err := a.store.ChecklistSets.AllOrderedBy(cmd.Context(), "name")
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), nonNil(all))
			}
			rows := make([][]string, len(all))
			for i, s := range all {
				rows[i] = []string{itoa(s.ID), s.Name}
			}
			printTable(out(cmd), "No checklist sets.", []string{"ID", "Name"}, rows)
			return nil
		},
	}

	addSet := &cobra.Command{
		Use:   "add-set <name>",
		Short: "Create a checklist set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return types.ErrInvalidName
			}
			s := &types.ChecklistSet{Name: args[0]}
			if _, err := a.store.ChecklistSets.Add(cmd.Context(), s); err != nil {
				return err
			}
			return a.done(out(cmd), s, "Created checklist %q (id %d)", s.Name, s.ID)
		},
	}

	deleteSet := &cobra.Command{
		Use:   "delete-set <id>",
		Short: "Delete a checklist set and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.store.DeleteChecklistSet(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.deleted(cmd, res, "checklist", "item")
		},
	}

	items := &cobra.Command{
		Use:   "items <set-id>",
		Short: "List the items of a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.store.ChecklistSets.Get(cmd.Context(), id); err != nil {
				return err
			}
			all, err := a.store.ChecklistItems.AllByIndex(cmd.Context(), "list_id", id)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), nonNil(all))
			}
			rows := make([][]string, len(all))
			for i, it := range all {
				box := "[ ]"
				if it.IsChecked {
					box = "[x]"
				}
				rows[i] = []string{itoa(it.ID), box, it.Name}
			}
			printTable(out(cmd), "The checklist is empty.", []string{"ID", "Done", "Item"}, rows)
			return nil
		},
	}

	addItem := &cobra.Command{
		Use:   "add-item <set-id> <name>",
		Short: "Add an item to a set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if args[1] == "" {
				return types.ErrInvalidName
			}
			if _, err := a.store.ChecklistSets.Get(cmd.Context(), id); err != nil {
				return err
			}
			it := &types.ChecklistItem{ListID: id, Name: args[1]}
			if _, err := a.store.ChecklistItems.Add(cmd.Context(), it); err != nil {
				return err
			}
			return a.done(out(cmd), it, "Added %q (id %d)", it.Name, it.ID)
		},
	}

	deleteItem := &cobra.Command{
		Use:   "delete-item <item-id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.ChecklistItems.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return a.done(out(cmd), map[string]int64{"id": id}, "Removed item %d", id)
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Check or uncheck an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			checked, err := a.store.ToggleItem(cmd.Context(), id)
			if err != nil {
				return err
			}
			word := "Unchecked"
			if checked {
				word = "Checked"
			}
			return a.done(out(cmd), map[string]any{"id": id, "is_checked": checked}, "%s item %d", word, id)
		},
	}

	reset := &cobra.Command{
		Use:   "reset <set-id>",
		Short: "Uncheck every item of a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := a.store.ResetChecks(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.done(out(cmd), map[string]int64{"id": id, "unchecked": n}, "Unchecked %d items", n)
		},
	}

	cmd.AddCommand(sets, addSet, deleteSet, items, addItem, deleteItem, toggle, reset)
	return cmd
}
