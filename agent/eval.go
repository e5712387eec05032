package agent

import "tictactoe/game"

type evaluationAgent struct {
	learner *Learner
}

// NewEvaluationAgent returns an agent for actual game play during evaluation:
// it plays the learner's best known moves and learns nothing.
func NewEvaluationAgent(learner *Learner) Agent {
	return evaluationAgent{learner: learner}
}

func (a evaluationAgent) SelectAction(board game.Board) (game.Coordinate, bool) {
	return a.learner.BestAction(board)
}

func (a evaluationAgent) ApplyReward(int) {}
