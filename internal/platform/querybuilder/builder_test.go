package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("*").
		From("plays").
		Where(In("year", []any{2023}), In("week", []any{1, 2})).
		OrderBy("esbid", "play_id").
		ToSQL()
	require.NoError(t, err)

	require.Equal(t, "SELECT * FROM plays WHERE year IN ($1) AND week IN ($2, $3) ORDER BY esbid, play_id", query)
	require.Equal(t, []any{2023, 1, 2}, args)
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("*").
		From("plays").
		Where(In("esbid", nil)).
		ToSQL()
	require.NoError(t, err)

	require.Equal(t, "SELECT * FROM plays WHERE 1=0", query)
	require.Empty(t, args)
}

func TestInsertBuilderWithSuffix(t *testing.T) {
	query, args, err := InsertInto("play_changelog").
		Columns("esbid", "play_id", "prop").
		Values(int64(401547417), 105, "off").
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	require.NoError(t, err)

	require.Equal(t, "INSERT INTO play_changelog (esbid, play_id, prop) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING", query)
	require.Len(t, args, 3)
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("plays").
		Set("off", "KC").
		SetRaw("updated", "NOW()").
		Where(Eq("esbid", int64(401547417)), Eq("play_id", 105)).
		ToSQL()
	require.NoError(t, err)

	require.Equal(t, "UPDATE plays SET off = $1, updated = NOW() WHERE esbid = $2 AND play_id = $3", query)
	require.Equal(t, []any{"KC", int64(401547417), 105}, args)
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Esbid  int64  `db:"esbid"`
		PlayID int    `db:"play_id"`
		Off    string `db:"off"`
		Skip   string `db:"-"`
	}

	query, args, err := InsertModel("plays", row{Esbid: 1, PlayID: 2, Off: "KC"}, "")
	require.NoError(t, err)

	require.Equal(t, "INSERT INTO plays (esbid, play_id, off) VALUES ($1, $2, $3)", query)
	require.Equal(t, []any{int64(1), 2, "KC"}, args)
}
