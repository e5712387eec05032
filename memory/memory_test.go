package memory

import (
	"bytes"
	"strings"
	"testing"
	"tictactoe/game"

	"github.com/stretchr/testify/require"
)

var asymmetric = game.MustParseBoard("XO./..X/O..")

func TestMemorize(t *testing.T) {
	t.Run("one zero-bias action per empty field in row-major order", func(t *testing.T) {
		table := NewTable()
		board := game.MustParseBoard("X.O/.X./O..")

		entry := table.Memorize(board)

		require.Equal(t, board, entry.Board)
		require.Equal(t, []Action{
			{Coordinate: game.Coordinate{X: 1, Y: 0}},
			{Coordinate: game.Coordinate{X: 0, Y: 1}},
			{Coordinate: game.Coordinate{X: 2, Y: 1}},
			{Coordinate: game.Coordinate{X: 1, Y: 2}},
			{Coordinate: game.Coordinate{X: 2, Y: 2}},
		}, entry.Actions, "Actions should follow the empty coordinates")
		require.Equal(t, 1, table.Len())
	})

	t.Run("panics when a variant is already stored", func(t *testing.T) {
		table := NewTable()
		table.Memorize(asymmetric)

		require.Panics(t, func() {
			table.Memorize(asymmetric.Rotate90CW())
		}, "Should refuse a second entry for a symmetric board")
		require.Equal(t, 1, table.Len())
	})
}

func TestLookup(t *testing.T) {
	t.Run("unknown board", func(t *testing.T) {
		table := NewTable()

		entry, tr, ok := table.Lookup(asymmetric)

		require.False(t, ok)
		require.Nil(t, entry)
		require.Equal(t, game.Identity, tr)
	})

	t.Run("every variant resolves to the stored board", func(t *testing.T) {
		table := NewTable()
		stored := table.Memorize(asymmetric)

		for _, tr := range game.Transformations {
			variant := asymmetric.Transform(tr)

			entry, found, ok := table.Lookup(variant)

			require.True(t, ok, "Variant %s should be found", tr)
			require.Same(t, stored, entry, "Variant %s should resolve to the stored entry", tr)
			require.Equal(t, entry.Board, variant.Transform(found),
				"Lookup transformation should map the variant %s onto the stored board", tr)
		}
		require.Equal(t, 1, table.Len(), "Lookups should never add entries")
	})

	t.Run("tries identity first", func(t *testing.T) {
		table := NewTable()
		table.Memorize(game.EmptyBoard)

		_, tr, ok := table.Lookup(game.EmptyBoard)

		require.True(t, ok)
		require.Equal(t, game.Identity, tr, "Symmetric board should resolve without transformation")
	})

	t.Run("follows search order", func(t *testing.T) {
		// A centre-column board is symmetric under FlipHorizontal, so a
		// half-turned query also matches under FlipVertical; Rotate180 comes
		// first in the search order.
		table := NewTable()
		board := game.MustParseBoard(".X./.O./...")
		table.Memorize(board)

		_, tr, ok := table.Lookup(board.Transform(game.Rotate180))

		require.True(t, ok)
		require.Equal(t, game.Rotate180, tr)
	})
}

func TestCanonical(t *testing.T) {
	t.Run("memorizes unknown board", func(t *testing.T) {
		table := NewTable()

		entry, tr, created := table.Canonical(game.EmptyBoard)

		require.True(t, created)
		require.Equal(t, game.Identity, tr)
		require.Len(t, entry.Actions, 9)
		for _, action := range entry.Actions {
			require.Zero(t, action.Bias)
		}
	})

	t.Run("idempotent for the same board", func(t *testing.T) {
		table := NewTable()
		first, _, _ := table.Canonical(asymmetric)
		first.Actions[2].Bias = 4

		again, tr, created := table.Canonical(asymmetric)

		require.False(t, created)
		require.Same(t, first, again, "Re-query should return the same entry")
		require.Same(t, &first.Actions[0], &again.Actions[0], "Actions should not be rebuilt")
		require.Equal(t, 4, again.Actions[2].Bias)
		require.Equal(t, game.Identity, tr)
	})

	t.Run("dedups symmetric boards", func(t *testing.T) {
		table := NewTable()
		table.Canonical(asymmetric)

		for _, tr := range game.Transformations {
			_, _, created := table.Canonical(asymmetric.Transform(tr))
			require.False(t, created, "%s variant should not create an entry", tr)
		}
		require.Equal(t, 1, table.Len())
	})
}

func TestEntry(t *testing.T) {
	table := NewTable()
	stored := table.Memorize(asymmetric)

	require.Same(t, stored, table.Entry(asymmetric))
	require.Panics(t, func() {
		table.Entry(asymmetric.Rotate90CW())
	}, "Exact access should not resolve variants")
}

func TestFind(t *testing.T) {
	table := NewTable()

	_, _, ok := table.Find(asymmetric)
	require.False(t, ok, "Unknown board should be reported as not found")
	require.Zero(t, table.Len(), "Find should not memorize")

	table.Memorize(asymmetric)
	entry, tr, ok := table.Find(asymmetric.FlipVertical())
	require.True(t, ok)
	require.Equal(t, asymmetric, entry.Board)
	require.Equal(t, game.FlipVertical, tr)
}

func TestEntryBest(t *testing.T) {
	t.Run("highest bias", func(t *testing.T) {
		entry := &Entry{Actions: []Action{{Bias: 1}, {Bias: 5}, {Bias: -2}}}

		require.Equal(t, 1, entry.Best())
	})

	t.Run("ties go to the first action", func(t *testing.T) {
		entry := &Entry{Actions: []Action{{Bias: 0}, {Bias: 3}, {Bias: 3}}}

		require.Equal(t, 1, entry.Best())
	})

	t.Run("panics without actions", func(t *testing.T) {
		require.Panics(t, func() { (&Entry{}).Best() })
	})
}

func TestEntryIndex(t *testing.T) {
	table := NewTable()
	entry := table.Memorize(game.MustParseBoard("X../.../..."))

	require.Equal(t, 0, entry.Index(game.North.Coordinate()))
	require.Equal(t, 7, entry.Index(game.SouthEast.Coordinate()))
	require.Equal(t, -1, entry.Index(game.NorthWest.Coordinate()), "Occupied field has no action")
}

func TestWriteTo(t *testing.T) {
	table := NewTable()
	table.Memorize(game.EmptyBoard)
	entry := table.Memorize(game.MustParseBoard("X../.../..."))
	entry.Actions[3].Bias = 6

	var buf bytes.Buffer
	n, err := table.WriteTo(&buf)

	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "id: 0\n"), "Dump should start with the first board")
	require.Contains(t, out, "id: 1\n X |   |  \n")
	require.Contains(t, out, "  Center    bias 6\n")
	require.Equal(t, 9+8, strings.Count(out, " bias "), "Every action should be listed")
}
