package mines

import "fmt"

const (
	DefaultRows      = 8
	DefaultCols      = 8
	DefaultMineCount = 10

	MaxRows = 100
	MaxCols = 100
)

type GameParams struct {
	Rows      int `json:"rows" schema:"rows"`
	Cols      int `json:"cols" schema:"cols"`
	MineCount int `json:"mine_count" schema:"mines"`
}

func DefaultParams() GameParams {
	return GameParams{
		Rows:      DefaultRows,
		Cols:      DefaultCols,
		MineCount: DefaultMineCount,
	}
}

func (p GameParams) Size() int {
	return p.Rows * p.Cols
}

// Validate reports [ErrInvalidParams] unless the board is between 1x1 and
// MaxRows x MaxCols and has fewer mines than cells.
func (p GameParams) Validate() error {
	if p.Rows < 1 || p.Cols < 1 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d",
			ErrInvalidParams, p.Rows, p.Cols)
	}
	if p.Rows > MaxRows || p.Cols > MaxCols {
		return fmt.Errorf("%w: board must be at most %dx%d, got %dx%d",
			ErrInvalidParams, MaxRows, MaxCols, p.Rows, p.Cols)
	}
	if p.MineCount < 0 || p.MineCount >= p.Size() {
		return fmt.Errorf("%w: mine count must be in [0, %d), got %d",
			ErrInvalidParams, p.Size(), p.MineCount)
	}
	return nil
}

func (p GameParams) ValidatePosition(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}

func (p GameParams) index(row, col int) int {
	return row*p.Cols + col
}

func (p GameParams) position(i int) (row, col int) {
	return i / p.Cols, i % p.Cols
}
