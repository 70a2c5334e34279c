package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/huntbook/internal/lists"
	"github.com/mesh-intelligence/huntbook/internal/session"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func newGunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gun",
		Short: "Manage guns",
	}
	cmd.AddCommand(newGunAddCmd(a), newGunListCmd(a), newGunUpdateCmd(a), newGunDeleteCmd(a))
	return cmd
}

func newGunAddCmd(a *app) *cobra.Command {
	var gunType, caliber, permitDate, permitExpiry string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a gun",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return types.ErrInvalidName
			}
			g := &types.Gun{Name: args[0], Type: gunType, Caliber: caliber}
			var err error
			if g.PermitDate, err = optionalDate(permitDate); err != nil {
				return err
			}
			if g.PermitExpiry, err = optionalDate(permitExpiry); err != nil {
				return err
			}
			if _, err := a.store.Guns.Add(cmd.Context(), g); err != nil {
				return err
			}
			return a.done(out(cmd), g, "Registered gun %s (id %d)", g.Name, g.ID)
		},
	}
	cmd.Flags().StringVar(&gunType, "type", "", "gun type")
	cmd.Flags().StringVar(&caliber, "caliber", "", "caliber or gauge")
	cmd.Flags().StringVar(&permitDate, "permit-date", "", "permit issue date YYYY-MM-DD")
	cmd.Flags().StringVar(&permitExpiry, "permit-expiry", "", "permit expiry date YYYY-MM-DD")
	return cmd
}

func newGunListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List guns with their ammunition balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.state.Navigate(session.ViewGuns)
			guns, err := lists.New(a.store).Guns(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), nonNil(guns))
			}
			rows := make([][]string, len(guns))
			for i, g := range guns {
				rows[i] = []string{
					itoa(g.ID), g.Name, g.Type, g.Caliber, dateText(g.PermitExpiry),
					strconv.Itoa(g.Ammo.Purchased), strconv.Itoa(g.Ammo.Used), strconv.Itoa(g.Ammo.Remaining),
				}
			}
			printTable(out(cmd), "No guns registered.",
				[]string{"ID", "Name", "Type", "Caliber", "Permit expiry", "Bought", "Used", "Left"}, rows)
			return nil
		},
	}
}

func newGunUpdateCmd(a *app) *cobra.Command {
	var name, gunType, caliber, permitDate, permitExpiry string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a gun's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") && name == "" {
				return types.ErrInvalidName
			}
			fields, err := changed(cmd.Flags(), map[string]string{
				"name": "name", "type": "type", "caliber": "caliber",
				"permit-date": "permit_date", "permit-expiry": "permit_expiry",
			}, func(flag, value string) (any, error) {
				if flag == "permit-date" || flag == "permit-expiry" {
					return optionalDate(value)
				}
				return value, nil
			})
			if err != nil {
				return err
			}
			if err := a.store.Guns.Update(cmd.Context(), id, fields); err != nil {
				return err
			}
			g, err := a.store.Guns.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.done(out(cmd), g, "Updated gun %s", g.Name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "gun name")
	cmd.Flags().StringVar(&gunType, "type", "", "gun type")
	cmd.Flags().StringVar(&caliber, "caliber", "", "caliber or gauge")
	cmd.Flags().StringVar(&permitDate, "permit-date", "", "permit issue date YYYY-MM-DD, empty to clear")
	cmd.Flags().StringVar(&permitExpiry, "permit-expiry", "", "permit expiry date YYYY-MM-DD, empty to clear")
	return cmd
}

func newGunDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a gun; its logs and purchases are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteGun(cmd.Context(), id); err != nil {
				return err
			}
			return a.done(out(cmd), map[string]int64{"id": id},
				"Deleted gun %d; its gun logs now show the gun as %s", id, lists.Deleted)
		},
	}
}

func newAmmoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ammo",
		Short: "Track ammunition purchases",
	}

	var on string
	add := &cobra.Command{
		Use:   "add <gun-id> <amount>",
		Short: "Record a purchase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gunID, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := strconv.Atoi(args[1])
			if err != nil || amount < 0 {
				return types.ErrInvalidAmount
			}
			day, err := a.dateOrToday(on)
			if err != nil {
				return err
			}
			if _, err := a.store.Guns.Get(cmd.Context(), gunID); err != nil {
				return err
			}
			p := &types.AmmoPurchase{GunID: gunID, PurchaseDate: day, Amount: amount}
			if _, err := a.store.AmmoPurchases.Add(cmd.Context(), p); err != nil {
				return err
			}
			return a.done(out(cmd), p, "Recorded %d rounds for gun %d", p.Amount, p.GunID)
		},
	}
	add.Flags().StringVar(&on, "date", "", "purchase date YYYY-MM-DD (default today)")

	var gunID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List purchases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				all []*types.AmmoPurchase
				err error
			)
			if gunID > 0 {
				all, err = a.store.AmmoPurchases.AllByIndex(cmd.Context(), "gun_id", gunID)
			} else {
				all, err = a.store.AmmoPurchases.AllOrderedBy(cmd.Context(), "purchase_date")
			}
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), nonNil(all))
			}
			rows := make([][]string, len(all))
			for i, p := range all {
				rows[i] = []string{itoa(p.ID), itoa(p.GunID), p.PurchaseDate.String(), strconv.Itoa(p.Amount)}
			}
			printTable(out(cmd), "No purchases recorded.", []string{"ID", "Gun", "Date", "Amount"}, rows)
			return nil
		},
	}
	list.Flags().Int64Var(&gunID, "gun", 0, "only purchases for this gun id")

	remaining := &cobra.Command{
		Use:   "remaining <gun-id>",
		Short: "Show rounds bought minus rounds used",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.store.Guns.Get(cmd.Context(), id); err != nil {
				return err
			}
			sum, err := a.store.AmmoSummary(cmd.Context(), id)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), sum)
			}
			printFields(out(cmd), [][2]string{
				{"Purchased", strconv.Itoa(sum.Purchased)},
				{"Used", strconv.Itoa(sum.Used)},
				{"Remaining", strconv.Itoa(sum.Remaining)},
			})
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.AmmoPurchases.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return a.done(out(cmd), map[string]int64{"id": id}, "Deleted purchase %d", id)
		},
	}

	cmd.AddCommand(add, list, remaining, del)
	return cmd
}
