package refdata

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func names(rows []*types.GameAnimal) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.SpeciesName
	}
	return out
}

func TestParse_FullRow(t *testing.T) {
	csv := "分類,狩猟鳥獣,種名,銃,わな,網,性別制限,捕獲数,禁止区域,生息地,備考,生態,被害,画像1,画像2\r\n" +
		"獣類,○,イノシシ,○,○,×,,,,\"山林, 里山\",\"He said \"\"hi\"\"\",雑食,農作物,a.jpg,b.jpg\r\n"

	rows, err := Parse([]byte(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	want := &types.GameAnimal{
		Category:     "獣類",
		IsGameAnimal: types.MarkerLegal,
		SpeciesName:  "イノシシ",
		MethodGun:    types.MarkerLegal,
		MethodTrap:   types.MarkerLegal,
		MethodNet:    types.MarkerNotLegal,
		Habitat:      "山林, 里山",
		Notes:        `He said "hi"`,
		Ecology:      "雑食",
		Damage:       "農作物",
		Image1:       "a.jpg",
		Image2:       "b.jpg",
	}
	if diff := cmp.Diff(want, rows[0]); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want []string
		err  error
	}{
		{
			name: "english header skipped",
			csv:  "Category,Game,Species\nmammal,yes,Deer\n",
			want: []string{"Deer"},
		},
		{
			name: "no header keeps first row",
			csv:  "mammal,yes,Deer\nbird,no,Crane\n",
			want: []string{"Deer", "Crane"},
		},
		{
			name: "short rows dropped",
			csv:  "mammal,yes,Deer\nbird,no\n\nonly\nbird,yes,Duck\n",
			want: []string{"Deer", "Duck"},
		},
		{
			name: "quoted comma stays in one cell",
			csv:  "mammal,yes,\"Deer, sika\"\n",
			want: []string{"Deer, sika"},
		},
		{
			name: "stray quote drops only its row",
			csv:  "mammal,yes,Deer\nmammal,yes,Bear 5\" claws\nbird,yes,Duck\n",
			want: []string{"Deer", "Duck"},
		},
		{
			name: "old mac line endings",
			csv:  "mammal,yes,Deer\rbird,yes,Duck\r",
			want: []string{"Deer", "Duck"},
		},
		{
			name: "byte order mark before header",
			csv:  "\ufeffcategory,game,name\nmammal,yes,Deer\n",
			want: []string{"Deer"},
		},
		{
			name: "quoted newline",
			csv:  "mammal,yes,Deer,,,,,,,,\"line one\nline two\"\n",
			want: []string{"Deer"},
		},
		{
			name: "empty input",
			csv:  "",
			err:  types.ErrNoValidRows,
		},
		{
			name: "header only",
			csv:  "分類,狩猟,種名\n",
			err:  types.ErrNoValidRows,
		},
		{
			name: "only short rows",
			csv:  "a,b\nc\n",
			err:  types.ErrNoValidRows,
		},
		{
			name: "unterminated quote",
			csv:  "mammal,yes,\"Deer\n",
			err:  types.ErrParseFailed,
		},
		{
			name: "bare quote",
			csv:  "mammal,yes,De\"er\n",
			err:  types.ErrParseFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Parse([]byte(tt.csv))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, rows)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(rows))
		})
	}
}

func TestParse_MissingTrailingCellsAreEmpty(t *testing.T) {
	rows, err := Parse([]byte("mammal,×,Serow\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, types.MarkerNotLegal, rows[0].IsGameAnimal)
	assert.Equal(t, types.MarkerUnspecified, rows[0].MethodGun)
	assert.Empty(t, rows[0].Image2)
}
