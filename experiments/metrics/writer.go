package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"tictactoe/game"
	"time"
)

type GameRecord struct {
	ID              int
	Phase           string // "training", "evaluation_x" or "evaluation_o"
	AgentX          int    // AgentConfig.ID, 0 for the random baseline
	AgentO          int    // AgentConfig.ID, 0 for the random baseline
	EpsilonX        float64
	EpsilonO        float64
	MemorizedBoards int
	GameMetric
}

type SummaryRecord struct {
	Phase string
	RunMetric
}

type Writer struct {
	baseDir string
}

func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			strconv.FormatFloat(config.Epsilon, 'f', -1, 64),
			strconv.FormatFloat(config.Decay, 'f', -1, 64),
			strconv.FormatFloat(config.Floor, 'f', -1, 64),
			strconv.FormatUint(config.Seed, 10),
		})
	}

	header := []string{"id", "name", "epsilon", "decay", "floor", "seed"}
	if err := w.writeCSV("agent_configs.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Phase,
			strconv.Itoa(record.AgentX),
			strconv.Itoa(record.AgentO),
			winnerName(record.Winner),
			strconv.Itoa(record.TotalMoves),
			strconv.FormatFloat(record.EpsilonX, 'f', 6, 64),
			strconv.FormatFloat(record.EpsilonO, 'f', 6, 64),
			strconv.Itoa(record.MemorizedBoards),
			record.StartTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		})
	}

	header := []string{"id", "phase", "agent_x", "agent_o", "winner", "moves", "epsilon_x", "epsilon_o", "memorized_boards", "start_time", "duration"}
	if err := w.writeCSV("game_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteSummary(records []SummaryRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Phase,
			strconv.Itoa(record.Games),
			strconv.Itoa(record.XWins),
			strconv.Itoa(record.OWins),
			strconv.Itoa(record.Draws),
			record.Duration.String(),
		})
	}

	header := []string{"phase", "games", "x_wins", "o_wins", "draws", "duration"}
	if err := w.writeCSV("summary.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// WriteMemory dumps a learner's memorized boards into memory_<name>.txt.
func (w *Writer) WriteMemory(name string, dump io.WriterTo) error {
	path := filepath.Join(w.baseDir, "memory_"+name+".txt")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create memory dump file: %w", err)
	}
	defer f.Close()

	if _, err := dump.WriteTo(f); err != nil {
		return fmt.Errorf("failed to dump memory of %s: %w", name, err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func winnerName(winner game.Cell) string {
	if winner == game.Empty {
		return "draw"
	}
	return winner.String()
}
