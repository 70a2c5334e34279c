package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/huntbook/internal/session"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit the hunter profile",
	}
	cmd.AddCommand(newProfileShowCmd(a), newProfileUpdateCmd(a), newProfileImageCmd(a))
	return cmd
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile and licence expiry dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.state.Navigate(session.ViewProfile)
			p, err := a.store.Profile(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), p)
			}
			printFields(out(cmd), [][2]string{
				{"Name", p.Name},
				{"Hunting licence expires", dateText(p.HuntingLicenseExpiry)},
				{"Gun permit expires", dateText(p.GunPermitExpiry)},
				{"Trap licence expires", dateText(p.TrapLicenseExpiry)},
				{"Net licence expires", dateText(p.NetLicenseExpiry)},
			})
			return nil
		},
	}
}

func newProfileUpdateCmd(a *app) *cobra.Command {
	var name, hunting, gun, trap, net string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; an empty date clears it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := changed(cmd.Flags(), map[string]string{
				"name":                   "name",
				"hunting-license-expiry": "hunting_license_expiry",
				"gun-permit-expiry":      "gun_permit_expiry",
				"trap-license-expiry":    "trap_license_expiry",
				"net-license-expiry":     "net_license_expiry",
			}, func(flag, value string) (any, error) {
				if flag == "name" {
					return value, nil
				}
				return optionalDate(value)
			})
			if err != nil {
				return err
			}
			if err := a.store.UpdateProfile(cmd.Context(), fields); err != nil {
				return err
			}
			p, err := a.store.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return a.done(out(cmd), p, "Profile updated")
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "hunter name")
	cmd.Flags().StringVar(&hunting, "hunting-license-expiry", "", "YYYY-MM-DD")
	cmd.Flags().StringVar(&gun, "gun-permit-expiry", "", "YYYY-MM-DD")
	cmd.Flags().StringVar(&trap, "trap-license-expiry", "", "YYYY-MM-DD")
	cmd.Flags().StringVar(&net, "net-license-expiry", "", "YYYY-MM-DD")
	return cmd
}

func newProfileImageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Store photos of licences and permits",
	}

	add := &cobra.Command{
		Use:   "add <type> <file>",
		Short: "Store a photo; type is license, gun_permit, trap_license, net_license or other",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := types.ProfileImageType(args[0])
			if !kind.Valid() {
				return types.ErrInvalidImageType
			}
			blob, err := loadImage(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			img := &types.ProfileImage{Type: kind, Image: blob}
			if _, err := a.store.ProfileImages.Add(cmd.Context(), img); err != nil {
				return err
			}
			return a.done(out(cmd), map[string]any{"id": img.ID, "type": img.Type, "bytes": len(blob)},
				"Stored %s image (id %d)", img.Type, img.ID)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored photos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.store.ProfileImages.All(cmd.Context())
			if err != nil {
				return err
			}
			type entry struct {
				ID     int64                  `json:"id"`
				Type   types.ProfileImageType `json:"type"`
				Bytes  int                    `json:"bytes"`
				Handle string                 `json:"handle"`
			}
			entries := make([]*entry, len(all))
			rows := make([][]string, len(all))
			for i, img := range all {
				h := a.state.Handles().Acquire("profile_image:"+itoa(img.ID), img.Image)
				entries[i] = &entry{ID: img.ID, Type: img.Type, Bytes: len(img.Image), Handle: h.ID}
				rows[i] = []string{itoa(img.ID), string(img.Type), strconv.Itoa(len(img.Image)), h.ID}
			}
			if a.jsonMode {
				return printJSON(out(cmd), nonNil(entries))
			}
			printTable(out(cmd), "No profile images.", []string{"ID", "Type", "Bytes", "Handle"}, rows)
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export <id> <file>",
		Short: "Write a stored photo to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			img, err := a.store.ProfileImages.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			owner := "profile_image:" + itoa(id)
			h := a.state.Handles().Acquire(owner, img.Image)
			defer a.state.Handles().Release(owner)
			if err := os.WriteFile(args[1], h.Blob, 0o600); err != nil {
				return systemError("write image", err)
			}
			return a.done(out(cmd), map[string]any{"id": id, "file": args[1], "bytes": len(h.Blob)},
				"Wrote %d bytes to %s", len(h.Blob), args[1])
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.ProfileImages.Delete(cmd.Context(), id); err != nil {
				return err
			}
			a.state.Handles().Release("profile_image:" + itoa(id))
			return a.done(out(cmd), map[string]int64{"id": id}, "Deleted image %d", id)
		},
	}

	cmd.AddCommand(add, list, export, del)
	return cmd
}
