package engine

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
)

type Engine interface {
	// Run plays one game till there's a winner or a draw and rewards both agents
	Run() (winner game.Cell, gameMetric metrics.GameMetric)
}

// Rewards is the reward scheme handed to the agents at the end of a game.
type Rewards struct {
	Win  int
	Loss int
	Draw int
}

func DefaultRewards() Rewards {
	return Rewards{
		Win:  meta.WIN_REWARD,
		Loss: meta.LOSS_REWARD,
		Draw: meta.DRAW_REWARD,
	}
}

// For returns the reward of side given the winner of the game.
func (r Rewards) For(side, winner game.Cell) int {
	switch winner {
	case game.Empty:
		return r.Draw
	case side:
		return r.Win
	default:
		return r.Loss
	}
}
