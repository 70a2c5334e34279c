package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/huntbook/internal/lists"
	"github.com/mesh-intelligence/huntbook/internal/session"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func newGunLogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gunlog",
		Aliases: []string{"gun-log"},
		Short:   "Log gun use",
	}
	cmd.AddCommand(newGunLogAddCmd(a), newGunLogListCmd(a), newGunLogShowCmd(a), newGunLogDeleteCmd(a))
	return cmd
}

func newGunLogAddCmd(a *app) *cobra.Command {
	var (
		on, purpose, place, companion, memo, image string
		ammo                                       int
		loc                                        location
	)
	cmd := &cobra.Command{
		Use:   "add <gun-id>",
		Short: "Log one outing with a gun",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gunID, err := parseID(args[0])
			if err != nil {
				return err
			}
			day, err := a.dateOrToday(on)
			if err != nil {
				return err
			}
			if _, err := a.store.Guns.Get(ctx, gunID); err != nil {
				return err
			}
			l := &types.GunLog{
				UseDate:   day,
				GunID:     gunID,
				Purpose:   types.Purpose(purpose),
				Location:  place,
				Companion: companion,
				AmmoCount: ammo,
				Memo:      memo,
			}
			if err := l.Validate(); err != nil {
				return err
			}
			if err := withLocation(ctx, loc, &l.Latitude, &l.Longitude); err != nil {
				return err
			}
			if l.Image, err = loadImage(ctx, image); err != nil {
				return err
			}
			if _, err := a.store.GunLogs.Add(ctx, l); err != nil {
				return err
			}
			return a.done(out(cmd), l, "Logged %s with gun %d (id %d, %d rounds)", l.Purpose, l.GunID, l.ID, l.AmmoCount)
		},
	}
	cmd.Flags().StringVar(&on, "date", "", "use date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&purpose, "purpose", string(types.PurposeHunting), "hunting, extermination, shooting_practice or other")
	cmd.Flags().StringVar(&place, "location", "", "place name")
	cmd.Flags().StringVar(&companion, "companion", "", "who came along")
	cmd.Flags().IntVar(&ammo, "ammo", 0, "rounds used")
	cmd.Flags().StringVar(&memo, "memo", "", "free-text note")
	cmd.Flags().StringVar(&image, "image", "", "photo file")
	registerLocation(cmd, &loc)
	return cmd
}

func newGunLogListCmd(a *app) *cobra.Command {
	var (
		lf             listFlags
		gunID, purpose string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List gun logs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.listOptions(cmd, session.ViewGunLogs, lf, map[string]string{
				"gun":     lists.FilterGunID,
				"purpose": lists.FilterPurpose,
			})
			res, err := lists.New(a.store).GunLogs(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), nonNil(res.Rows))
			}
			rows := make([][]string, len(res.Rows))
			for i, r := range res.Rows {
				rows[i] = []string{
					itoa(r.ID), r.UseDate.String(), r.GunName, string(r.Purpose), r.Location,
					strconv.Itoa(r.AmmoCount), strconv.Itoa(r.CatchCount),
				}
			}
			printTable(out(cmd), "No gun logs found.",
				[]string{"ID", "Date", "Gun", "Purpose", "Location", "Rounds", "Catches"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&gunID, "gun", "", "only logs for this gun id")
	cmd.Flags().StringVar(&purpose, "purpose", "", "hunting, extermination, shooting_practice or other")
	lf.register(cmd, lists.GunLogPipeline.Keys())
	return cmd
}

func newGunLogShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one gun log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			l, err := a.store.GunLogs.Get(ctx, id)
			if err != nil {
				return err
			}
			gunName := lists.Deleted
			if g, err := a.store.Guns.Get(ctx, l.GunID); err == nil {
				gunName = g.Name
			}
			catches, err := a.store.Catches.AllByIndex(ctx, "gun_log_id", id)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), lists.GunLogRow{GunLog: l, GunName: gunName, CatchCount: len(catches)})
			}
			printFields(out(cmd), [][2]string{
				{"ID", itoa(l.ID)},
				{"Date", l.UseDate.String()},
				{"Gun", gunName},
				{"Purpose", string(l.Purpose)},
				{"Location", l.Location},
				{"Companion", l.Companion},
				{"Rounds", strconv.Itoa(l.AmmoCount)},
				{"Latitude", deref(l.Latitude)},
				{"Longitude", deref(l.Longitude)},
				{"Memo", l.Memo},
				{"Catches", strconv.Itoa(len(catches))},
				{"Image", a.showImage("gun_log:"+itoa(l.ID), l.Image)},
			})
			return nil
		},
	}
}

func newGunLogDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a gun log and every catch recorded against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.store.DeleteGunLog(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.deleted(cmd, res, "gun log", "catch record")
		},
	}
}
