package lists

import (
	"context"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/huntbook/internal/query"
	"github.com/mesh-intelligence/huntbook/internal/sqlite"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func setupStore(t *testing.T) *sqlite.Store {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(context.Background(), types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	s, err := b.Store()
	require.NoError(t, err)
	return s
}

func addTrap(t *testing.T, s *sqlite.Store, number, trapType string, setup types.Date) int64 {
	t.Helper()
	id, err := s.Traps.Add(context.Background(), types.NewTrap(number, trapType, setup))
	require.NoError(t, err)
	return id
}

func trapNumbers(rows []*TrapRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.TrapNumber
	}
	return out
}

func TestTraps_OpenViewSortsNaturally(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	for _, n := range []string{"10", "2", "A10", "A2", "1"} {
		addTrap(t, s, n, "Box trap", "2024-04-01")
	}

	res, err := New(s).Traps(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, query.Ready, res.State)
	if diff := cmp.Diff([]string{"1", "2", "10", "A2", "A10"}, trapNumbers(res.Rows)); diff != "" {
		t.Errorf("trap order (-want +got):\n%s", diff)
	}
}

func TestTraps_FiltersAndCounts(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	a := addTrap(t, s, "A1", "Box trap", "2024-04-01")
	addTrap(t, s, "A2", "Foot snare", "2024-04-02")
	c := addTrap(t, s, "A3", "Box trap", "2024-04-03")
	require.NoError(t, s.CloseTrap(ctx, c, "2024-04-09"))
	for i := 0; i < 2; i++ {
		_, err := s.AddCatch(ctx, types.NewTrapCatch(a, "2024-04-05", "Boar"))
		require.NoError(t, err)
	}

	l := New(s)
	res, err := l.Traps(ctx, Options{Filters: map[string]string{FilterType: "Box trap"}})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "A1", res.Rows[0].TrapNumber)
	assert.Equal(t, 2, res.Rows[0].CatchCount)

	res, err = l.Traps(ctx, Options{Filters: map[string]string{FilterStatus: query.All, FilterType: "Box trap"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A3"}, trapNumbers(res.Rows))

	res, err = l.Traps(ctx, Options{Filters: map[string]string{FilterStatus: StatusClosed, FilterType: "Foot snare"}})
	require.NoError(t, err)
	assert.Equal(t, query.NoMatches, res.State)

	res, err = l.Traps(ctx, Options{
		Filters: map[string]string{FilterStatus: query.All},
		Sort:    query.SortSpec{Key: "setup_date", Desc: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A3", "A2", "A1"}, trapNumbers(res.Rows))
}

func TestTraps_InvalidOptions(t *testing.T) {
	s := setupStore(t)
	l := New(s)
	ctx := context.Background()

	_, err := l.Traps(ctx, Options{Filters: map[string]string{"colour": "red"}})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
	_, err = l.Traps(ctx, Options{Filters: map[string]string{FilterStatus: "half"}})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
	_, err = l.Traps(ctx, Options{Sort: query.SortSpec{Key: "memo"}})
	assert.ErrorIs(t, err, types.ErrInvalidSortKey)
}

// TestTrapLifecycle follows one trap from setup to deletion.
func TestTrapLifecycle(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	l := New(s)

	other := addTrap(t, s, "B7", "Foot snare", "2024-03-01")
	require.NoError(t, s.CloseTrap(ctx, other, "2024-03-20"))

	id := addTrap(t, s, "A1", "Box trap", "2024-04-01")
	for i := 0; i < 2; i++ {
		_, err := s.AddCatch(ctx, types.NewTrapCatch(id, "2024-04-02", "Boar"))
		require.NoError(t, err)
	}

	open, err := l.Traps(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, trapNumbers(open.Rows))

	today := types.Today()
	require.NoError(t, s.CloseTrap(ctx, id, today))

	open, err = l.Traps(ctx, Options{Filters: map[string]string{FilterStatus: StatusOpen}})
	require.NoError(t, err)
	assert.Equal(t, query.NoMatches, open.State)

	closed, err := l.Traps(ctx, Options{Filters: map[string]string{FilterStatus: StatusClosed}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B7"}, trapNumbers(closed.Rows))
	assert.Equal(t, today, *closed.Rows[0].CloseDate)
	assert.Equal(t, 2, closed.Rows[0].CatchCount)

	res, err := s.DeleteTrap(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Children)

	catches, err := l.Catches(ctx, Options{Filters: map[string]string{FilterTrapID: strconv.FormatInt(id, 10)}})
	require.NoError(t, err)
	assert.Equal(t, query.NoMatches, catches.State)
	n, err := s.Catches.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatches_FiltersAndLabels(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	trapID := addTrap(t, s, "A1", "Box trap", "2024-04-01")
	gunID, err := s.Guns.Add(ctx, &types.Gun{Name: "Rifle"})
	require.NoError(t, err)
	logID, err := s.GunLogs.Add(ctx, &types.GunLog{UseDate: "2024-11-15", GunID: gunID, Purpose: types.PurposeHunting})
	require.NoError(t, err)

	boar := types.NewTrapCatch(trapID, "2024-04-02", "Wild Boar")
	boar.Gender = types.GenderMale
	deer := types.NewGunCatch(logID, "2024-11-15", "Sika deer")
	deer.Gender = types.GenderFemale
	deer.Age = types.AgeAdult
	hare := types.NewDirectCatch("2024-05-01", "Hare")
	for _, c := range []*types.CatchRecord{boar, deer, hare} {
		_, err := s.AddCatch(ctx, c)
		require.NoError(t, err)
	}

	l := New(s)
	res, err := l.Catches(ctx, Options{})
	require.NoError(t, err)
	got := make([]string, len(res.Rows))
	for i, r := range res.Rows {
		got[i] = r.SpeciesName + "|" + r.Source
	}
	want := []string{"Sika deer|gun Rifle", "Hare|direct", "Wild Boar|trap A1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("catches (-want +got):\n%s", diff)
	}

	tests := []struct {
		name    string
		filters map[string]string
		want    []string
	}{
		{"method trap", map[string]string{FilterMethod: "trap"}, []string{"Wild Boar"}},
		{"method gun", map[string]string{FilterMethod: "gun"}, []string{"Sika deer"}},
		{"method direct", map[string]string{FilterMethod: "direct"}, []string{"Hare"}},
		{"method all", map[string]string{FilterMethod: "all"}, []string{"Sika deer", "Hare", "Wild Boar"}},
		{"species substring any case", map[string]string{FilterSpecies: "BOAR"}, []string{"Wild Boar"}},
		{"gender and age", map[string]string{FilterGender: "female", FilterAge: "adult"}, []string{"Sika deer"}},
		{"gender excludes", map[string]string{FilterGender: "male", FilterMethod: "gun"}, nil},
		{"by trap", map[string]string{FilterTrapID: "1"}, []string{"Wild Boar"}},
		{"by gun log", map[string]string{FilterGunLogID: "1"}, []string{"Sika deer"}},
		{"stale trap id", map[string]string{FilterTrapID: "42", FilterMethod: "trap"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := l.Catches(ctx, Options{Filters: tt.filters})
			require.NoError(t, err)
			var names []string
			for _, r := range res.Rows {
				names = append(names, r.SpeciesName)
			}
			assert.Equal(t, tt.want, names)
			if tt.want == nil {
				assert.Equal(t, query.NoMatches, res.State)
			}
		})
	}

	_, err = l.Catches(ctx, Options{Filters: map[string]string{FilterTrapID: "abc"}})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
	_, err = l.Catches(ctx, Options{Filters: map[string]string{FilterMethod: "net"}})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestCatches_DeletedGunShowsPlaceholder(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	gunID, err := s.Guns.Add(ctx, &types.Gun{Name: "Rifle"})
	require.NoError(t, err)
	logID, err := s.GunLogs.Add(ctx, &types.GunLog{UseDate: "2024-11-15", GunID: gunID, Purpose: types.PurposeHunting, AmmoCount: 3})
	require.NoError(t, err)
	_, err = s.AddCatch(ctx, types.NewGunCatch(logID, "2024-11-15", "Deer"))
	require.NoError(t, err)
	require.NoError(t, s.DeleteGun(ctx, gunID))

	l := New(s)
	catches, err := l.Catches(ctx, Options{})
	require.NoError(t, err)
	require.Len(t, catches.Rows, 1)
	assert.Equal(t, "gun "+Deleted, catches.Rows[0].Source)

	logs, err := l.GunLogs(ctx, Options{})
	require.NoError(t, err)
	require.Len(t, logs.Rows, 1)
	assert.Equal(t, Deleted, logs.Rows[0].GunName)
	assert.Equal(t, 1, logs.Rows[0].CatchCount)

	_, err = s.DeleteGunLog(ctx, logID)
	require.NoError(t, err)
	catches, err = l.Catches(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, query.NoMatches, catches.State)
}

func TestGunLogs_SortAndFilter(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	rifle, err := s.Guns.Add(ctx, &types.Gun{Name: "Rifle"})
	require.NoError(t, err)
	air, err := s.Guns.Add(ctx, &types.Gun{Name: "air rifle"})
	require.NoError(t, err)
	require.NoError(t, s.GunLogs.BulkAdd(ctx, []*types.GunLog{
		{UseDate: "2024-11-01", GunID: rifle, Purpose: types.PurposeHunting, AmmoCount: 5},
		{UseDate: "2024-11-03", GunID: air, Purpose: types.PurposePractice, AmmoCount: 50},
		{UseDate: "2024-11-02", GunID: rifle, Purpose: types.PurposeExtermination, AmmoCount: 2},
	}))

	l := New(s)
	res, err := l.GunLogs(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, []types.Date{"2024-11-03", "2024-11-02", "2024-11-01"}, useDates(res.Rows))

	res, err = l.GunLogs(ctx, Options{Sort: query.SortSpec{Key: "ammo_count"}})
	require.NoError(t, err)
	assert.Equal(t, []types.Date{"2024-11-02", "2024-11-01", "2024-11-03"}, useDates(res.Rows))

	res, err = l.GunLogs(ctx, Options{Sort: query.SortSpec{Key: "gun_name"}})
	require.NoError(t, err)
	assert.Equal(t, "air rifle", res.Rows[0].GunName)

	res, err = l.GunLogs(ctx, Options{Filters: map[string]string{FilterGunID: "1", FilterPurpose: "extermination"}})
	require.NoError(t, err)
	assert.Equal(t, []types.Date{"2024-11-02"}, useDates(res.Rows))

	_, err = l.GunLogs(ctx, Options{Filters: map[string]string{FilterPurpose: "sport"}})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func useDates(rows []*GunLogRow) []types.Date {
	out := make([]types.Date, len(rows))
	for i, r := range rows {
		out[i] = r.UseDate
	}
	return out
}

func TestGuns_AmmoBalance(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	rifle, err := s.Guns.Add(ctx, &types.Gun{Name: "Rifle"})
	require.NoError(t, err)
	_, err = s.Guns.Add(ctx, &types.Gun{Name: "Air rifle"})
	require.NoError(t, err)
	_, err = s.AmmoPurchases.Add(ctx, &types.AmmoPurchase{GunID: rifle, PurchaseDate: "2024-10-01", Amount: 10})
	require.NoError(t, err)
	_, err = s.GunLogs.Add(ctx, &types.GunLog{UseDate: "2024-11-01", GunID: rifle, Purpose: types.PurposeHunting, AmmoCount: 14})
	require.NoError(t, err)

	rows, err := New(s).Guns(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Air rifle", rows[0].Name)
	assert.Equal(t, types.AmmoSummary{GunID: rows[0].ID}, rows[0].Ammo)
	assert.Equal(t, types.AmmoSummary{GunID: rifle, Purchased: 10, Used: 14, Remaining: -4}, rows[1].Ammo)
}

func TestSpecies_Filters(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.ReplaceSpecies(ctx, []*types.GameAnimal{
		{Category: "mammal", IsGameAnimal: types.MarkerLegal, SpeciesName: "Sika deer", MethodGun: types.MarkerLegal, MethodTrap: types.MarkerLegal},
		{Category: "bird", IsGameAnimal: types.MarkerLegal, SpeciesName: "Mallard", MethodGun: types.MarkerLegal, MethodNet: types.MarkerLegal},
		{Category: "mammal", IsGameAnimal: types.MarkerNotLegal, SpeciesName: "Serow"},
		{Category: "mammal", SpeciesName: "Boar 2"},
		{Category: "mammal", IsGameAnimal: types.MarkerLegal, SpeciesName: "Boar 10", MethodTrap: types.MarkerLegal},
	})
	require.NoError(t, err)

	l := New(s)
	tests := []struct {
		name    string
		filters map[string]string
		want    []string
	}{
		{"everything by name", nil, []string{"Boar 2", "Boar 10", "Mallard", "Serow", "Sika deer"}},
		{"category", map[string]string{FilterCategory: "bird"}, []string{"Mallard"}},
		{"legal game", map[string]string{FilterGame: GameLegal, FilterCategory: "mammal"}, []string{"Boar 10", "Sika deer"}},
		{"not legal", map[string]string{FilterGame: GameNotLegal}, []string{"Serow"}},
		{"unspecified", map[string]string{FilterGame: GameUnspecified}, []string{"Boar 2"}},
		{"trap method", map[string]string{FilterMethod: "trap"}, []string{"Boar 10", "Sika deer"}},
		{"net method", map[string]string{FilterMethod: "net"}, []string{"Mallard"}},
		{"name substring", map[string]string{FilterName: "DEER"}, []string{"Sika deer"}},
		{"no match", map[string]string{FilterName: "wolf"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := l.Species(ctx, Options{Filters: tt.filters})
			require.NoError(t, err)
			var names []string
			for _, r := range res.Rows {
				names = append(names, r.SpeciesName)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	_, err = l.Species(ctx, Options{Filters: map[string]string{FilterMethod: "bow"}})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}
