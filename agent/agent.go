package agent

import "tictactoe/game"

// Agent plays one side of a game and learns from its outcome.
type Agent interface {
	// SelectAction returns the field to play next, or false when the board has
	// no empty field left.
	SelectAction(board game.Board) (game.Coordinate, bool)
	// ApplyReward credits every action chosen since the last reward.
	ApplyReward(reward int)
}

// Segment is one recorded decision: the canonical board and the chosen field
// in that board's frame.
type Segment struct {
	Board      game.Board
	Coordinate game.Coordinate
}

// forcedMove handles the boards that need no decision: a full board has no
// move, a board with a single empty field has exactly one.
func forcedMove(board game.Board) (c game.Coordinate, ok bool, forced bool) {
	empty := board.EmptyCoordinates()
	switch len(empty) {
	case 0:
		return game.Coordinate{}, false, true
	case 1:
		return empty[0], true, true
	}
	return game.Coordinate{}, false, false
}
