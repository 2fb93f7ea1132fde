package mines

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type State uint8

const (
	NotStarted State = iota
	InProgress
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (s State) Over() bool {
	return s == Won || s == Lost
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, state := range []State{NotStarted, InProgress, Won, Lost} {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", text)
}

// Outcome is what a single reveal did to the game.
type Outcome uint8

const (
	Continue Outcome = iota
	Win
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "won"
	case Loss:
		return "lost"
	default:
		return "continue"
	}
}

type Board struct {
	GameParams
	Grid        Grid
	state       State
	minesPlaced bool
}

func (b *Board) State() State {
	return b.state
}

func (b *Board) Cell(row, col int) Cell {
	return b.Grid[b.index(row, col)]
}

func (b *Board) FlagCount() (n int) {
	for _, c := range b.Grid {
		if c.Flagged {
			n++
		}
	}
	return
}

func (b *Board) String() string {
	return b.Grid.ToString(b.Cols)
}

func (b *Board) start() {
	if b.state == NotStarted {
		b.state = InProgress
	}
}

func (b *Board) outcome() Outcome {
	switch b.state {
	case Won:
		return Win
	case Lost:
		return Loss
	default:
		return Continue
	}
}

// Reveal opens the cell at (row, col). Flagged and already revealed cells
// are left alone, as is every cell once the game is over.
func (b *Board) Reveal(row, col int) Outcome {
	if b.state.Over() {
		return b.outcome()
	}
	i := b.index(row, col)
	if b.Grid[i].Flagged || b.Grid[i].Revealed {
		return Continue
	}
	b.start()

	b.Grid[i].Revealed = true
	if b.Grid[i].Mine {
		b.state = Lost
		Log.WithFields(logrus.Fields{"row": row, "col": col}).Debug("mine hit")
		return Loss
	}

	if b.Grid[i].AdjacentMines == 0 {
		b.floodFill(i)
	}

	if b.CheckWin() {
		b.state = Won
		return Win
	}
	return Continue
}

// floodFill opens everything reachable from the zero cell at start through
// other zero cells. Revealed doubles as the visited mark; mines and flagged
// cells are never opened.
func (b *Board) floodFill(start int) {
	todo := newCelltodo(len(b.Grid))
	todo.add(start)
	opened := 0
	for {
		i, ok := todo.pop()
		if !ok {
			break
		}
		if b.Grid[i].AdjacentMines != 0 {
			continue
		}
		row, col := b.position(i)
		b.neighbours(row, col, func(r, c int) {
			j := b.index(r, c)
			cell := &b.Grid[j]
			if cell.Revealed || cell.Flagged || cell.Mine {
				return
			}
			cell.Revealed = true
			opened++
			todo.add(j)
		})
	}
	Log.WithFields(logrus.Fields{
		"row": start / b.Cols, "col": start % b.Cols, "opened": opened,
	}).Debug("flood fill")
}

// Flag toggles the flag on a hidden cell.
func (b *Board) Flag(row, col int) {
	if b.state.Over() {
		return
	}
	i := b.index(row, col)
	if b.Grid[i].Revealed {
		return
	}
	b.start()
	b.Grid[i].Flagged = !b.Grid[i].Flagged
}

func (b *Board) CheckWin() bool {
	for _, c := range b.Grid {
		if !c.Mine && !c.Revealed {
			return false
		}
	}
	return true
}
