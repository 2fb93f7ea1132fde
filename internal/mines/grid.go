package mines

import (
	"strconv"
	"strings"
)

const (
	GlyphMine = "💣"
	GlyphFlag = "🚩"
)

type Cell struct {
	Mine          bool
	Revealed      bool
	Flagged       bool
	AdjacentMines int
}

// Glyph is the text drawn on the cell's button. Once the game is over every
// mine is shown, flagged or not.
func (c Cell) Glyph(gameOver bool) string {
	switch {
	case c.Mine && (c.Revealed || gameOver):
		return GlyphMine
	case c.Flagged:
		return GlyphFlag
	case c.Revealed && c.AdjacentMines > 0:
		return strconv.Itoa(c.AdjacentMines)
	default:
		return ""
	}
}

// String is the one-character debug form of a cell.
func (c Cell) String() string {
	switch {
	case c.Flagged:
		return "F"
	case !c.Revealed:
		return "-"
	case c.Mine:
		return "*"
	case c.AdjacentMines == 0:
		return "."
	default:
		return strconv.Itoa(c.AdjacentMines)
	}
}

type Grid []Cell

func (g Grid) ToString(cols int) string {
	var b strings.Builder
	for i, c := range g {
		b.WriteString(c.String())
		if (i+1)%cols == 0 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
