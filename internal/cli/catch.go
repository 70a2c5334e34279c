package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/huntbook/internal/lists"
	"github.com/mesh-intelligence/huntbook/internal/session"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func newCatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catch",
		Short: "Record and review catches",
	}
	cmd.AddCommand(
		newCatchAddCmd(a),
		newCatchListCmd(a),
		newCatchShowCmd(a),
		newCatchUpdateCmd(a),
		newCatchDeleteCmd(a),
	)
	return cmd
}

func newCatchAddCmd(a *app) *cobra.Command {
	var (
		trapID, gunLogID                      int64
		on, species, gender, age, memo, image string
		loc                                   location
	)
	cmd := &cobra.Command{
		Use:   "add <species>",
		Short: "Record a catch from a trap, a gun log or by hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day, err := a.dateOrToday(on)
			if err != nil {
				return err
			}
			species = args[0]

			var c *types.CatchRecord
			switch {
			case trapID > 0 && gunLogID > 0:
				return types.ErrAmbiguousCatchLink
			case trapID > 0:
				if _, err := a.store.Traps.Get(ctx, trapID); err != nil {
					return err
				}
				c = types.NewTrapCatch(trapID, day, species)
			case gunLogID > 0:
				if _, err := a.store.GunLogs.Get(ctx, gunLogID); err != nil {
					return err
				}
				c = types.NewGunCatch(gunLogID, day, species)
			default:
				c = types.NewDirectCatch(day, species)
			}
			c.Gender, c.Age, c.Memo = types.Gender(gender), types.Age(age), memo
			if err := withLocation(ctx, loc, &c.Latitude, &c.Longitude); err != nil {
				return err
			}
			if c.Image, err = loadImage(ctx, image); err != nil {
				return err
			}
			if _, err := a.store.AddCatch(ctx, c); err != nil {
				return err
			}
			return a.done(out(cmd), c, "Recorded %s (%s catch, id %d)", c.SpeciesName, c.Method(), c.ID)
		},
	}
	cmd.Flags().Int64Var(&trapID, "trap", 0, "trap id the catch came from")
	cmd.Flags().Int64Var(&gunLogID, "gun-log", 0, "gun log id the catch came from")
	cmd.Flags().StringVar(&on, "date", "", "catch date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&gender, "gender", string(types.GenderUnknown), "unknown, male or female")
	cmd.Flags().StringVar(&age, "age", string(types.AgeUnknown), "unknown, adult, subadult or juvenile")
	cmd.Flags().StringVar(&memo, "memo", "", "free-text note")
	cmd.Flags().StringVar(&image, "image", "", "photo file")
	registerLocation(cmd, &loc)
	cmd.MarkFlagsMutuallyExclusive("trap", "gun-log")
	return cmd
}

func newCatchListCmd(a *app) *cobra.Command {
	var (
		lf                                             listFlags
		method, trapID, gunLogID, species, gender, age string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.listOptions(cmd, session.ViewCatches, lf, map[string]string{
				"method":  lists.FilterMethod,
				"trap":    lists.FilterTrapID,
				"gun-log": lists.FilterGunLogID,
				"species": lists.FilterSpecies,
				"gender":  lists.FilterGender,
				"age":     lists.FilterAge,
			})
			res, err := lists.New(a.store).Catches(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), nonNil(res.Rows))
			}
			rows := make([][]string, len(res.Rows))
			for i, r := range res.Rows {
				rows[i] = []string{
					itoa(r.ID), r.CatchDate.String(), r.SpeciesName,
					string(r.Gender), string(r.Age), r.Source,
				}
			}
			printTable(out(cmd), "No catches found.",
				[]string{"ID", "Date", "Species", "Gender", "Age", "Source"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&method, "method", "", "all, trap, gun or direct")
	cmd.Flags().StringVar(&trapID, "trap", "", "only catches from this trap id")
	cmd.Flags().StringVar(&gunLogID, "gun-log", "", "only catches from this gun log id")
	cmd.Flags().StringVar(&species, "species", "", "species name contains")
	cmd.Flags().StringVar(&gender, "gender", "", "unknown, male or female")
	cmd.Flags().StringVar(&age, "age", "", "unknown, adult, subadult or juvenile")
	lf.register(cmd, lists.CatchPipeline.Keys())
	return cmd
}

func newCatchShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one catch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.store.Catches.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			source, err := a.catchSource(cmd, c)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), lists.CatchRow{CatchRecord: c, Source: source})
			}
			printFields(out(cmd), [][2]string{
				{"ID", itoa(c.ID)},
				{"Date", c.CatchDate.String()},
				{"Species", c.SpeciesName},
				{"Gender", string(c.Gender)},
				{"Age", string(c.Age)},
				{"Source", source},
				{"Latitude", deref(c.Latitude)},
				{"Longitude", deref(c.Longitude)},
				{"Memo", c.Memo},
				{"Image", a.showImage("catch:"+itoa(c.ID), c.Image)},
			})
			return nil
		},
	}
}

// catchSource labels where a catch came from. A parent that is gone shows
// as lists.Deleted.
func (a *app) catchSource(cmd *cobra.Command, c *types.CatchRecord) (string, error) {
	ctx := cmd.Context()
	switch c.Method() {
	case types.MethodTrap:
		t, err := a.store.Traps.Get(ctx, *c.TrapID)
		if errors.Is(err, types.ErrNotFound) {
			return "trap " + lists.Deleted, nil
		}
		if err != nil {
			return "", err
		}
		return "trap " + t.TrapNumber, nil
	case types.MethodGun:
		l, err := a.store.GunLogs.Get(ctx, *c.GunLogID)
		if errors.Is(err, types.ErrNotFound) {
			return "gun " + lists.Deleted, nil
		}
		if err != nil {
			return "", err
		}
		g, err := a.store.Guns.Get(ctx, l.GunID)
		if errors.Is(err, types.ErrNotFound) {
			return "gun " + lists.Deleted, nil
		}
		if err != nil {
			return "", err
		}
		return "gun " + g.Name, nil
	default:
		return "direct", nil
	}
}

func newCatchUpdateCmd(a *app) *cobra.Command {
	var (
		on, species, gender, age, memo, image string
		loc                                   location
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a catch's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			fields, err := changed(cmd.Flags(), map[string]string{
				"date": "catch_date", "species": "species_name", "gender": "gender", "age": "age", "memo": "memo",
			}, func(flag, value string) (any, error) {
				switch flag {
				case "date":
					return types.ParseDate(value)
				case "gender":
					if g := types.Gender(value); !g.Valid() {
						return nil, types.ErrInvalidGender
					}
				case "age":
					if ag := types.Age(value); !ag.Valid() {
						return nil, types.ErrInvalidAge
					}
				}
				return value, nil
			})
			if err != nil {
				return err
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
			if err := a.store.Catches.Update(ctx, id, fields); err != nil {
				return err
			}
			c, err := a.store.Catches.Get(ctx, id)
			if err != nil {
				return err
			}
			return a.done(out(cmd), c, "Updated catch %d", c.ID)
		},
	}
	cmd.Flags().StringVar(&on, "date", "", "catch date YYYY-MM-DD")
	cmd.Flags().StringVar(&species, "species", "", "species name")
	cmd.Flags().StringVar(&gender, "gender", "", "unknown, male or female")
	cmd.Flags().StringVar(&age, "age", "", "unknown, adult, subadult or juvenile")
	cmd.Flags().StringVar(&memo, "memo", "", "free-text note")
	cmd.Flags().StringVar(&image, "image", "", "replacement photo file")
	registerLocation(cmd, &loc)
	return cmd
}

func newCatchDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a catch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.Catches.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return a.done(out(cmd), map[string]int64{"id": id}, "Deleted catch %d", id)
		},
	}
}
