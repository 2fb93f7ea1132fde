package shell

import (
	"fmt"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	Title       = "Minesweeper with Timer"
	ResetLabel  = "🔄 Reset"
	VictoryText = "Victory!"
	GameOver    = "Game Over"
)

type CellView struct {
	Glyph    string `json:"glyph"`
	Revealed bool   `json:"revealed"`
	Disabled bool   `json:"disabled"`
}

type Dialog struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type View struct {
	SessionID  string       `json:"session_id"`
	Title      string       `json:"title"`
	ResetLabel string       `json:"reset_label"`
	Rows       int          `json:"rows"`
	Cols       int          `json:"cols"`
	MineCount  int          `json:"mine_count"`
	State      mines.State  `json:"state"`
	Elapsed    int          `json:"elapsed"`
	TimerLabel string       `json:"timer_label"`
	FlagsLeft  int          `json:"flags_left"`
	Cells      [][]CellView `json:"cells"`
	Dialog     *Dialog      `json:"dialog,omitempty"`
	Error      string       `json:"error,omitempty"`
}

func TimerLabel(seconds int) string {
	return fmt.Sprintf("Time: %ds", seconds)
}

func dialogFor(state mines.State, elapsed int) *Dialog {
	switch state {
	case mines.Won:
		return &Dialog{
			Title:   VictoryText,
			Message: fmt.Sprintf("You won in %d seconds!", elapsed),
		}
	case mines.Lost:
		return &Dialog{
			Title:   GameOver,
			Message: "You clicked on a mine!",
		}
	default:
		return nil
	}
}

// View renders the window as the player currently sees it.
func (w *Window) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	var (
		b       = w.board
		p       = w.Params()
		over    = b.State().Over()
		elapsed = w.elapsedSeconds()
		cells   = make([][]CellView, p.Rows)
	)
	for row := range p.Rows {
		cells[row] = make([]CellView, p.Cols)
		for col := range p.Cols {
			c := b.Cell(row, col)
			cells[row][col] = CellView{
				Glyph:    c.Glyph(over),
				Revealed: c.Revealed,
				Disabled: over || c.Revealed,
			}
		}
	}

	return View{
		SessionID:  w.ID.String(),
		Title:      Title,
		ResetLabel: ResetLabel,
		Rows:       p.Rows,
		Cols:       p.Cols,
		MineCount:  p.MineCount,
		State:      b.State(),
		Elapsed:    elapsed,
		TimerLabel: TimerLabel(elapsed),
		FlagsLeft:  p.MineCount - b.FlagCount(),
		Cells:      cells,
		Dialog:     dialogFor(b.State(), elapsed),
	}
}
