package memory

import (
	"fmt"
	"io"
	"tictactoe/game"

	"golang.org/x/exp/slices"
)

// Action is a candidate move of a memorized board and its accumulated bias.
type Action struct {
	Coordinate game.Coordinate
	Bias       int
}

// Entry holds the actions of one canonical board. The action order is fixed
// at creation and follows the board's empty coordinates.
type Entry struct {
	Board   game.Board
	Actions []Action
}

// Index returns the position of the action at c, or -1.
func (e *Entry) Index(c game.Coordinate) int {
	return slices.IndexFunc(e.Actions, func(a Action) bool {
		return a.Coordinate == c
	})
}

// Best returns the index of the action with the highest bias. Ties go to the
// earliest action.
func (e *Entry) Best() int {
	if len(e.Actions) == 0 {
		panic(fmt.Sprintf("board has no actions:\n%s", e.Board))
	}
	best := 0
	for i := 1; i < len(e.Actions); i++ {
		if e.Actions[i].Bias > e.Actions[best].Bias {
			best = i
		}
	}
	return best
}

// Table maps canonical boards to their entries. It only ever grows: no board
// is stored twice, counting every symmetric variant as the same board.
type Table struct {
	entries map[game.Board]*Entry
	order   []game.Board
}

func NewTable() *Table {
	return &Table{entries: make(map[game.Board]*Entry)}
}

// Len returns the number of memorized boards.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup searches the board and each of its symmetric variants in the order
// of game.Transformations. The returned transformation maps the queried board
// onto the stored one.
func (t *Table) Lookup(board game.Board) (*Entry, game.Transformation, bool) {
	for _, tr := range game.Transformations {
		if entry, ok := t.entries[board.Transform(tr)]; ok {
			return entry, tr, true
		}
	}
	return nil, game.Identity, false
}

// Memorize stores the board as its own canonical form with one zero-bias
// action per empty field.
func (t *Table) Memorize(board game.Board) *Entry {
	if _, tr, ok := t.Lookup(board); ok {
		panic(fmt.Sprintf("board already memorized under %s:\n%s", tr, board))
	}
	empty := board.EmptyCoordinates()
	entry := &Entry{Board: board, Actions: make([]Action, len(empty))}
	for i, c := range empty {
		entry.Actions[i] = Action{Coordinate: c}
	}
	t.entries[board] = entry
	t.order = append(t.order, board)
	return entry
}

// Canonical resolves the board to its memorized entry, memorizing it first
// when no variant is known. created reports whether a new entry was made.
func (t *Table) Canonical(board game.Board) (entry *Entry, tr game.Transformation, created bool) {
	if found, foundTr, ok := t.Lookup(board); ok {
		return found, foundTr, false
	}
	return t.Memorize(board), game.Identity, true
}

// Entry returns the entry stored under exactly this board. Callers only ask
// for boards they memorized, so a miss panics.
func (t *Table) Entry(board game.Board) *Entry {
	entry, ok := t.entries[board]
	if !ok {
		panic(fmt.Sprintf("board is not memorized:\n%s", board))
	}
	return entry
}

// Find is the read-only query: it resolves any variant without memorizing.
func (t *Table) Find(board game.Board) (*Entry, game.Transformation, bool) {
	return t.Lookup(board)
}

// Entries returns the entries in memorization order.
func (t *Table) Entries() []*Entry {
	entries := make([]*Entry, len(t.order))
	for i, board := range t.order {
		entries[i] = t.entries[board]
	}
	return entries
}

// WriteTo dumps every memorized board with its action biases. The format is
// meant for reading, not for loading back.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, entry := range t.Entries() {
		n, err := fmt.Fprintf(w, "id: %d\n%s", i, entry.Board)
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to write board %d: %w", i, err)
		}
		for _, action := range entry.Actions {
			n, err = fmt.Fprintf(w, "  %-9s bias %d\n", action.Coordinate.Compass(), action.Bias)
			total += int64(n)
			if err != nil {
				return total, fmt.Errorf("failed to write actions of board %d: %w", i, err)
			}
		}
		n, err = io.WriteString(w, "\n")
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to write board %d: %w", i, err)
		}
	}
	return total, nil
}
