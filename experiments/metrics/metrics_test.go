package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"tictactoe/game"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start()

	c.AddGame(GameMetric{Winner: game.X})
	c.AddGame(GameMetric{Winner: game.X})
	c.AddGame(GameMetric{Winner: game.O})
	c.AddGame(GameMetric{Winner: game.Empty})
	got := c.Complete()

	require.Equal(t, 4, got.Games)
	require.Equal(t, 2, got.XWins)
	require.Equal(t, 1, got.OWins)
	require.Equal(t, 1, got.Draws)
	require.InDelta(t, 0.5, got.Share(game.X), 1e-9)
	require.InDelta(t, 0.25, got.Share(game.Empty), 1e-9)

	c.Start()
	require.Zero(t, c.Complete().Games, "Start should reset the counts")
}

func TestRunMetricShareWithoutGames(t *testing.T) {
	require.Zero(t, RunMetric{}.Share(game.X))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "training")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(w.Dir(), filepath.Join(root, "training")))

	t.Run("agent configs", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{{ID: 1, Name: "x", Epsilon: 1, Decay: 0.995, Floor: 0.15, Seed: 42}})

		require.NoError(t, err)
		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{
			{"id", "name", "epsilon", "decay", "floor", "seed"},
			{"1", "x", "1", "0.995", "0.15", "42"},
		}, rows)
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{
			{ID: 1, Phase: "training", AgentX: 1, AgentO: 2, EpsilonX: 0.5, EpsilonO: 0.25, MemorizedBoards: 12,
				GameMetric: GameMetric{Winner: game.O, StartTime: start, Duration: time.Millisecond, TotalMoves: 6}},
			{ID: 2, Phase: "evaluation_x", AgentX: 1, AgentO: 0,
				GameMetric: GameMetric{Winner: game.Empty, StartTime: start, TotalMoves: 9}},
		})

		require.NoError(t, err)
		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"id", "phase", "agent_x", "agent_o", "winner", "moves", "epsilon_x", "epsilon_o", "memorized_boards", "start_time", "duration"}, rows[0])
		require.Equal(t, []string{"1", "training", "1", "2", "O", "6", "0.500000", "0.250000", "12", "2024-01-02T03:04:05Z", "1ms"}, rows[1])
		require.Equal(t, "draw", rows[2][4])
	})

	t.Run("summary", func(t *testing.T) {
		err := w.WriteSummary([]SummaryRecord{{Phase: "training", RunMetric: RunMetric{Games: 3, XWins: 1, OWins: 1, Draws: 1, Duration: time.Second}}})

		require.NoError(t, err)
		rows := readCSV(t, filepath.Join(w.Dir(), "summary.csv"))
		require.Equal(t, []string{"training", "3", "1", "1", "1", "1s"}, rows[1])
	})

	t.Run("memory dump", func(t *testing.T) {
		err := w.WriteMemory("x", strings.NewReader("id: 0\n"))

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(w.Dir(), "memory_x.txt"))
		require.NoError(t, err)
		require.Equal(t, "id: 0\n", string(data))
	})
}
