package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/huntbook/internal/lists"
	"github.com/mesh-intelligence/huntbook/internal/session"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func newSpeciesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "species",
		Short: "Browse the species reference table",
	}
	cmd.AddCommand(newSpeciesListCmd(a), newSpeciesShowCmd(a), newSpeciesRefreshCmd(a))
	return cmd
}

func newSpeciesListCmd(a *app) *cobra.Command {
	var (
		lf                           listFlags
		category, game, method, name string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List species",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.listOptions(cmd, session.ViewSpecies, lf, map[string]string{
				"category": lists.FilterCategory,
				"game":     lists.FilterGame,
				"method":   lists.FilterMethod,
				"name":     lists.FilterName,
			})
			res, err := lists.New(a.store).Species(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), nonNil(res.Rows))
			}
			rows := make([][]string, len(res.Rows))
			for i, s := range res.Rows {
				rows[i] = []string{
					itoa(s.ID), s.Category, s.SpeciesName, marker(s.IsGameAnimal),
					marker(s.MethodGun), marker(s.MethodTrap), marker(s.MethodNet), s.CountLimit,
				}
			}
			printTable(out(cmd), "No species found.",
				[]string{"ID", "Category", "Species", "Game", "Gun", "Trap", "Net", "Limit"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	cmd.Flags().StringVar(&game, "game", "", "legal, not_legal or unspecified")
	cmd.Flags().StringVar(&method, "method", "", "only species legal for gun, trap or net")
	cmd.Flags().StringVar(&name, "name", "", "species name contains")
	lf.register(cmd, lists.SpeciesPipeline.Keys())
	return cmd
}

func marker(m types.GameMarker) string {
	switch m {
	case types.MarkerLegal:
		return "yes"
	case types.MarkerNotLegal:
		return "no"
	default:
		return "-"
	}
}

func newSpeciesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one species",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.store.Species.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(out(cmd), s)
			}
			printFields(out(cmd), [][2]string{
				{"Species", s.SpeciesName},
				{"Category", s.Category},
				{"Game animal", marker(s.IsGameAnimal)},
				{"Gun", marker(s.MethodGun)},
				{"Trap", marker(s.MethodTrap)},
				{"Net", marker(s.MethodNet)},
				{"Gender restriction", s.GenderRestriction},
				{"Count limit", s.CountLimit},
				{"Prohibited area", s.ProhibitedArea},
				{"Habitat", s.Habitat},
				{"Notes", s.Notes},
				{"Ecology", s.Ecology},
				{"Damage", s.Damage},
				{"Images", fmt.Sprintf("%s %s", s.Image1, s.Image2)},
			})
			return nil
		},
	}
}

func newSpeciesRefreshCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "refresh",
		Short:       "Download the species CSV and replace the reference table",
		Long:        "Download the species CSV and replace the reference table. Without\n--force nothing is downloaded while the table already has rows.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipRefresh: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.importer().Refresh(cmd.Context(), force)
			if !st.OK {
				if st.Err == nil {
					st.Err = errors.New(st.Message)
				}
				return fmt.Errorf("species refresh: %w", st.Err)
			}
			return a.done(out(cmd), st, "%s", st.Message)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace the table even if it has rows")
	return cmd
}
