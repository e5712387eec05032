package agent

import (
	"tictactoe/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns the baseline opponent that plays a uniformly random
// empty field.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) SelectAction(board game.Board) (game.Coordinate, bool) {
	empty := board.EmptyCoordinates()
	if len(empty) == 0 {
		return game.Coordinate{}, false
	}
	return empty[a.rng.Intn(len(empty))], true
}

func (a *randomAgent) ApplyReward(int) {}
