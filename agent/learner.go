package agent

import (
	"fmt"
	"tictactoe/game"
	"tictactoe/memory"
	"tictactoe/meta"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(l *Learner)

// State tells whether a learner holds decisions waiting for a reward.
type State int

const (
	Idle State = iota
	Tracking
)

func (s State) String() string {
	if s == Tracking {
		return "Tracking"
	}
	return "Idle"
}

// Learner is the tabular self-play agent. It memorizes every board it decides
// on, once per symmetry class, and accumulates rewards as action biases.
type Learner struct {
	name    string
	epsilon float64
	decay   float64
	floor   float64
	seed    uint64
	memory  *memory.Table
	history []Segment
	rng     *rand.Rand
	logger  zerolog.Logger
}

func WithEpsilon(epsilon float64) Option {
	return func(l *Learner) {
		if epsilon >= 0 && epsilon <= 1 {
			l.epsilon = epsilon
		}
	}
}

func WithDecay(decay float64) Option {
	return func(l *Learner) {
		if decay > 0 && decay <= 1 {
			l.decay = decay
		}
	}
}

func WithFloor(floor float64) Option {
	return func(l *Learner) {
		if floor >= 0 && floor <= 1 {
			l.floor = floor
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(l *Learner) {
		l.seed = seed
	}
}

func WithName(name string) Option {
	return func(l *Learner) {
		if name != "" {
			l.name = name
		}
	}
}

func NewLearner(options ...Option) *Learner {
	l := &Learner{ // Default values
		name:    "learner",
		epsilon: meta.EPSILON,
		decay:   meta.EPSILON_DECAY,
		floor:   meta.EPSILON_FLOOR,
		seed:    uint64(time.Now().UnixNano()),
		memory:  memory.NewTable(),
	}
	for _, option := range options {
		option(l)
	}
	l.rng = rand.New(rand.NewSource(l.seed))
	l.logger = log.With().Str("agent", l.name).Logger()
	return l
}

func (l *Learner) Name() string {
	return l.name
}

func (l *Learner) Epsilon() float64 {
	return l.epsilon
}

func (l *Learner) State() State {
	if len(l.history) > 0 {
		return Tracking
	}
	return Idle
}

// History returns the decisions recorded since the last reward.
func (l *Learner) History() []Segment {
	return append([]Segment(nil), l.history...)
}

// Memory exposes the table for read-only queries and dumps.
func (l *Learner) Memory() *memory.Table {
	return l.memory
}

func (l *Learner) MemorizedBoards() int {
	return l.memory.Len()
}

// SelectAction picks a field with an epsilon-greedy policy over the canonical
// board and records the decision for the next reward.
func (l *Learner) SelectAction(board game.Board) (game.Coordinate, bool) {
	if c, ok, forced := forcedMove(board); forced {
		return c, ok
	}

	entry, tr, created := l.memory.Canonical(board)
	if created {
		l.logger.Debug().Str("board", board.Compact()).Int("boards", l.memory.Len()).Msg("memorized board")
	}

	var i int
	if l.rng.Float64() < l.epsilon {
		i = l.rng.Intn(len(entry.Actions)) // Explore
	} else {
		i = entry.Best()
	}

	chosen := entry.Actions[i].Coordinate
	l.history = append(l.history, Segment{Board: entry.Board, Coordinate: chosen})
	return tr.Back(chosen), true
}

// BestAction plays greedily without exploring, recording or memorizing.
// Boards never seen fall back to the first empty field.
func (l *Learner) BestAction(board game.Board) (game.Coordinate, bool) {
	if c, ok, forced := forcedMove(board); forced {
		return c, ok
	}

	entry, tr, ok := l.memory.Find(board)
	if !ok {
		return board.EmptyCoordinates()[0], true
	}
	return tr.Back(entry.Actions[entry.Best()].Coordinate), true
}

// ApplyReward adds the reward to the bias of every recorded action and clears
// the history. A positive reward also decays epsilon down to its floor.
func (l *Learner) ApplyReward(reward int) {
	if reward > 0 {
		l.epsilon = max(l.epsilon*l.decay, l.floor)
	}

	for _, segment := range l.history {
		entry := l.memory.Entry(segment.Board)
		i := entry.Index(segment.Coordinate)
		if i < 0 {
			panic(fmt.Sprintf("recorded action %v missing from board:\n%s", segment.Coordinate, segment.Board))
		}
		entry.Actions[i].Bias += reward
	}

	l.logger.Debug().Int("reward", reward).Int("actions", len(l.history)).Float64("epsilon", l.epsilon).Msg("applied reward")
	l.history = l.history[:0]
}
