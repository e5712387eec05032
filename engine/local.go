package engine

import (
	"fmt"
	"tictactoe/agent"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"time"

	"github.com/rs/zerolog/log"
)

// Local drives two agents through a game on a local board.
type Local struct {
	Board   game.Board
	Agents  [2]agent.Agent // X first, then O
	Rewards Rewards
}

func NewLocal(x, o agent.Agent, rewards Rewards) *Local {
	if x == nil || o == nil {
		panic("need an agent for both sides")
	}
	return &Local{
		Agents:  [2]agent.Agent{x, o},
		Rewards: rewards,
	}
}

func (e *Local) agentFor(side game.Cell) agent.Agent {
	if side == game.X {
		return e.Agents[0]
	}
	return e.Agents[1]
}

// Run resets the board and plays until a line is complete or the board is full.
func (e *Local) Run() (game.Cell, metrics.GameMetric) {
	e.Board = game.EmptyBoard
	start := time.Now()
	moves := 0

	winner := game.Empty
	for !e.Board.IsFull() {
		side := e.Board.Turn()
		move, ok := e.agentFor(side).SelectAction(e.Board)
		if !ok {
			panic(fmt.Sprintf("agent for %s found no move on a board with empty fields:\n%s", side, e.Board))
		}
		e.Board.Play(move)
		moves++

		if winner = e.Board.Winner(); winner != game.Empty {
			break
		}
	}

	e.agentFor(game.X).ApplyReward(e.Rewards.For(game.X, winner))
	e.agentFor(game.O).ApplyReward(e.Rewards.For(game.O, winner))

	end := time.Now()
	log.Debug().Str("winner", winner.String()).Int("moves", moves).Str("board", e.Board.Compact()).Msg("game over")

	return winner, metrics.GameMetric{
		Winner:     winner,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: moves,
	}
}
