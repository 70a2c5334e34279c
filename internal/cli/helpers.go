package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/huntbook/internal/lists"
	"github.com/mesh-intelligence/huntbook/internal/query"
	"github.com/mesh-intelligence/huntbook/internal/session"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

var errConfirmationRequired = errors.New("confirmation required")

// parseID parses a record id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidID, arg)
	}
	return id, nil
}

// dateOrToday parses a date flag; empty means today.
func (a *app) dateOrToday(value string) (types.Date, error) {
	if value == "" {
		return types.DateOf(a.now()), nil
	}
	return types.ParseDate(value)
}

// optionalDate parses a nullable date flag; empty means unset.
func optionalDate(value string) (*types.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := types.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// listFlags are the sort flags shared by list commands.
type listFlags struct {
	sort string
	desc bool
}

func (f *listFlags) register(cmd *cobra.Command, keys []string) {
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort key: "+strings.Join(keys, ", "))
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
}

// listOptions navigates the session to view and records the changed filter
// flags and the sort choice as that view's options.
func (a *app) listOptions(cmd *cobra.Command, view session.View, lf listFlags, filters map[string]string) lists.Options {
	a.state.Navigate(view)
	for flag, key := range filters {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			a.state.SetFilter(key, f.Value.String())
		}
	}
	opts := a.state.Options()
	if lf.sort != "" || lf.desc {
		opts.Sort = query.SortSpec{Key: lf.sort, Desc: lf.desc}
		a.state.SetOptions(opts)
	}
	return a.state.Options()
}

// changed collects the values of the flags the user set, keyed by column.
// Each entry of columns maps a flag name to a column name; convert turns the
// flag's text into the stored value.
func changed(flags *pflag.FlagSet, columns map[string]string, convert func(flag, value string) (any, error)) (map[string]any, error) {
	fields := make(map[string]any)
	var err error
	flags.Visit(func(f *pflag.Flag) {
		col, ok := columns[f.Name]
		if !ok || err != nil {
			return
		}
		var v any = f.Value.String()
		if convert != nil {
			v, err = convert(f.Name, f.Value.String())
		}
		fields[col] = v
	})
	return fields, err
}

// showImage puts an image on display for owner and returns its handle
// line, or "-" when there is none.
func (a *app) showImage(owner string, blob []byte) string {
	if len(blob) == 0 {
		a.state.Handles().Release(owner)
		return "-"
	}
	h := a.state.Handles().Acquire(owner, blob)
	return fmt.Sprintf("%s (%d bytes)", h.ID, len(blob))
}

// withLocation fills lat/lon from the command's location flags.
func withLocation(ctx context.Context, loc location, lat, lon **string) error {
	la, lo, err := loc.resolve(ctx)
	if err != nil {
		return err
	}
	*lat, *lon = la, lo
	return nil
}

func registerLocation(cmd *cobra.Command, loc *location) {
	cmd.Flags().StringVar(&loc.lat, "lat", "", "latitude in decimal degrees")
	cmd.Flags().StringVar(&loc.lon, "lon", "", "longitude in decimal degrees")
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func dateText(d *types.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

// nonNil keeps empty JSON lists as [] rather than null.
func nonNil[T any](rows []*T) []*T {
	if rows == nil {
		return []*T{}
	}
	return rows
}
