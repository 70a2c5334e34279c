package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/huntbook/internal/lists"
	"github.com/mesh-intelligence/huntbook/internal/session"
	"github.com/mesh-intelligence/huntbook/internal/sqlite"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func newTrapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trap",
		Short: "Manage traps",
	}
	cmd.AddCommand(
		newTrapAddCmd(a),
		newTrapListCmd(a),
		newTrapShowCmd(a),
		newTrapUpdateCmd(a),
		newTrapCloseCmd(a),
		newTrapReopenCmd(a),
		newTrapDeleteCmd(a),
		newTrapTypesCmd(a),
	)
	return cmd
}

func newTrapAddCmd(a *app) *cobra.Command {
	var (
		trapType, setup, memo, image string
		loc                          location
	)
	cmd := &cobra.Command{
		Use:   "add <number>",
		Short: "Set a new trap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			on, err := a.dateOrToday(setup)
			if err != nil {
				return err
			}
			trap := types.NewTrap(args[0], trapType, on)
			trap.Memo = memo
			if err := withLocation(ctx, loc, &trap.Latitude, &trap.Longitude); err != nil {
				return err
			}
			if trap.Image, err = loadImage(ctx, image); err != nil {
				return err
			}
			if _, err := a.store.Traps.Add(ctx, trap); err != nil {
				return err
			}
			return a.done(out(cmd), trap, "Set trap %s (id %d)", trap.TrapNumber, trap.ID)
		},
	}
	cmd.Flags().StringVar(&trapType, "type", "", "trap type name")
	cmd.Flags().StringVar(&setup, "setup-date", "", "setup date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&memo, "memo", "", "free-text note")
	cmd.Flags().StringVar(&image, "image", "", "photo file")
	registerLocation(cmd, &loc)
	return cmd
}

func newTrapListCmd(a *app) *cobra.Command {
	var (
		lf               listFlags
		status, trapType string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List traps",
		Long:  "List traps. Open traps are shown unless --status says otherwise;\nclosed traps default to newest close date first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.listOptions(cmd, session.ViewTraps, lf, map[string]string{
				"status": lists.FilterStatus,
				"type":   lists.FilterType,
			})
			res, err := lists.New(a.store).Traps(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), nonNil(res.Rows))
			}
			rows := make([][]string, len(res.Rows))
			for i, r := range res.Rows {
				state := "open"
				if !r.IsOpen {
					state = "closed"
				}
				rows[i] = []string{
					itoa(r.ID), r.TrapNumber, r.Type, state, r.SetupDate.String(),
					dateText(r.CloseDate), strconv.Itoa(r.CatchCount),
				}
			}
			printTable(out(cmd), "No traps found.",
				[]string{"ID", "Number", "Type", "State", "Set", "Closed", "Catches"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", lists.StatusOpen, "open, closed or all")
	cmd.Flags().StringVar(&trapType, "type", "", "only traps of this type")
	lf.register(cmd, lists.TrapPipeline.Keys())
	return cmd
}

func newTrapShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one trap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			trap, err := a.store.Traps.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			catches, err := a.store.Catches.AllByIndex(cmd.Context(), "trap_id", id)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), lists.TrapRow{Trap: trap, CatchCount: len(catches)})
			}
			printFields(out(cmd), [][2]string{
				{"ID", itoa(trap.ID)},
				{"Number", trap.TrapNumber},
				{"Type", trap.Type},
				{"Open", strconv.FormatBool(trap.IsOpen)},
				{"Set", trap.SetupDate.String()},
				{"Closed", dateText(trap.CloseDate)},
				{"Latitude", deref(trap.Latitude)},
				{"Longitude", deref(trap.Longitude)},
				{"Memo", trap.Memo},
				{"Catches", strconv.Itoa(len(catches))},
				{"Image", a.showImage("trap:"+itoa(trap.ID), trap.Image)},
			})
			return nil
		},
	}
}

func newTrapUpdateCmd(a *app) *cobra.Command {
	var (
		number, trapType, setup, memo, image string
		loc                                  location
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a trap's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			fields, err := changed(cmd.Flags(), map[string]string{
				"number": "trap_number", "type": "type", "setup-date": "setup_date", "memo": "memo",
			}, func(flag, value string) (any, error) {
				if flag == "setup-date" {
					return types.ParseDate(value)
				}
				return value, nil
			})
			if err != nil {
				return err
			}
			if number == "" && cmd.Flags().Changed("number") {
				return types.ErrInvalidName
			}
			if loc.lat != "" || loc.lon != "" {
				lat, lon, err := loc.resolve(ctx)
				if err != nil {
					return err
				}
				fields["latitude"], fields["longitude"] = lat, lon
			}
			if image != "" {
				if fields["image"], err = loadImage(ctx, image); err != nil {
					return err
				}
			}
			if err := a.store.Traps.Update(ctx, id, fields); err != nil {
				return err
			}
			trap, err := a.store.Traps.Get(ctx, id)
			if err != nil {
				return err
			}
			return a.done(out(cmd), trap, "Updated trap %s", trap.TrapNumber)
		},
	}
	cmd.Flags().StringVar(&number, "number", "", "trap number")
	cmd.Flags().StringVar(&trapType, "type", "", "trap type name")
	cmd.Flags().StringVar(&setup, "setup-date", "", "setup date YYYY-MM-DD")
	cmd.Flags().StringVar(&memo, "memo", "", "free-text note")
	cmd.Flags().StringVar(&image, "image", "", "replacement photo file")
	registerLocation(cmd, &loc)
	return cmd
}

func newTrapCloseCmd(a *app) *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "close <id>",
		Short: "Close a trap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			day, err := a.dateOrToday(on)
			if err != nil {
				return err
			}
			if err := a.store.CloseTrap(cmd.Context(), id, day); err != nil {
				return err
			}
			return a.trapDone(cmd, id, "Closed trap %s on %s", day)
		},
	}
	cmd.Flags().StringVar(&on, "date", "", "close date YYYY-MM-DD (default today)")
	return cmd
}

func newTrapReopenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <id>",
		Short: "Reopen a closed trap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.ReopenTrap(cmd.Context(), id); err != nil {
				return err
			}
			return a.trapDone(cmd, id, "Reopened trap %s")
		},
	}
}

// trapDone reloads the trap and reports it. format gets the trap number
// followed by extra.
func (a *app) trapDone(cmd *cobra.Command, id int64, format string, extra ...any) error {
	trap, err := a.store.Traps.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	return a.done(out(cmd), trap, format, append([]any{trap.TrapNumber}, extra...)...)
}

func newTrapDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trap and every catch recorded against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.store.DeleteTrap(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.deleted(cmd, res, "trap", "catch record")
		},
	}
}

// deleted reports a cascade delete.
func (a *app) deleted(cmd *cobra.Command, res sqlite.CascadeResult, parent, child string) error {
	plural := "s"
	if res.Children == 1 {
		plural = ""
	}
	return a.done(out(cmd), res, "Deleted %s %d and %d %s%s", parent, res.ID, res.Children, child, plural)
}

func newTrapTypesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List trap types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.store.TrapTypes.AllOrderedBy(cmd.Context(), "name")
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), all)
			}
			rows := make([][]string, len(all))
			for i, t := range all {
				rows[i] = []string{itoa(t.ID), t.Name}
			}
			printTable(out(cmd), "No trap types.", []string{"ID", "Name"}, rows)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a trap type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return types.ErrInvalidName
			}
			t := &types.TrapType{Name: args[0]}
			if _, err := a.store.TrapTypes.Add(cmd.Context(), t); err != nil {
				return err
			}
			return a.done(out(cmd), t, "Added trap type %q", t.Name)
		},
	}, &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trap type; traps keep the name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.TrapTypes.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return a.done(out(cmd), map[string]int64{"id": id}, "Deleted trap type %d", id)
		},
	})
	return cmd
}
