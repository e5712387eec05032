package metrics

import (
	"sync/atomic"
	"tictactoe/game"
	"time"
)

// AgentConfig describes a learner taking part in a run.
type AgentConfig struct {
	ID      int
	Name    string
	Epsilon float64
	Decay   float64
	Floor   float64
	Seed    uint64
}

type GameMetric struct {
	Winner     game.Cell // Empty for a draw
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// RunMetric summarizes a sequence of games.
type RunMetric struct {
	Games    int
	XWins    int
	OWins    int
	Draws    int
	Duration time.Duration
}

// Share returns the fraction of games with the given outcome.
func (r RunMetric) Share(winner game.Cell) float64 {
	if r.Games == 0 {
		return 0
	}
	switch winner {
	case game.X:
		return float64(r.XWins) / float64(r.Games)
	case game.O:
		return float64(r.OWins) / float64(r.Games)
	default:
		return float64(r.Draws) / float64(r.Games)
	}
}

type Collector interface {
	Start()
	AddGame(metric GameMetric)
	Complete() RunMetric
}

type collector struct {
	startTime time.Time
	games     atomic.Int32
	xWins     atomic.Int32
	oWins     atomic.Int32
	draws     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.games.Store(0)
	m.xWins.Store(0)
	m.oWins.Store(0)
	m.draws.Store(0)
}

func (m *collector) AddGame(metric GameMetric) {
	m.games.Add(1)
	switch metric.Winner {
	case game.X:
		m.xWins.Add(1)
	case game.O:
		m.oWins.Add(1)
	default:
		m.draws.Add(1)
	}
}

func (m *collector) Complete() RunMetric {
	return RunMetric{
		Games:    int(m.games.Load()),
		XWins:    int(m.xWins.Load()),
		OWins:    int(m.oWins.Load()),
		Draws:    int(m.draws.Load()),
		Duration: time.Since(m.startTime),
	}
}
