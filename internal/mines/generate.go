package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewBoard builds a board with randomly placed mines and adjacency counts
// filled in, ready to play.
func NewBoard(params GameParams, r *rand.Rand) (*Board, error) {
	b, err := newEmptyBoard(params)
	if err != nil {
		return nil, err
	}
	if err := b.PlaceMines(r); err != nil {
		return nil, err
	}
	b.CalculateAdjacency()
	return b, nil
}

// NewBoardWithMines builds a board with mines at exactly the given positions.
func NewBoardWithMines(params GameParams, positions []Position) (*Board, error) {
	b, err := newEmptyBoard(params)
	if err != nil {
		return nil, err
	}
	for _, p := range positions {
		if !params.ValidatePosition(p.Row, p.Col) {
			return nil, fmt.Errorf("%w: mine at %d:%d is off the board",
				ErrInvalidParams, p.Row, p.Col)
		}
		b.Grid[params.index(p.Row, p.Col)].Mine = true
	}
	if n := b.mineCount(); n != params.MineCount {
		return nil, fmt.Errorf("%w: want %d mines, got %d distinct positions",
			ErrLayoutSize, params.MineCount, n)
	}
	b.minesPlaced = true
	b.CalculateAdjacency()
	return b, nil
}

func newEmptyBoard(params GameParams) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Board{
		GameParams: params,
		Grid:       make(Grid, params.Size()),
	}, nil
}

// PlaceMines picks MineCount distinct cells uniformly at random and mines
// them. It may only run once per board.
func (b *Board) PlaceMines(r *rand.Rand) error {
	if b.minesPlaced {
		return ErrMinesPlaced
	}

	candidates := make([]int, b.Size())
	for i := range candidates {
		candidates[i] = i
	}

	/*
	 * Pick n off the list at random, moving the last candidate into
	 * the hole each time.
	 */
	k := len(candidates)
	for range b.MineCount {
		i := r.IntN(k)
		b.Grid[candidates[i]].Mine = true
		k--
		candidates[i] = candidates[k]
	}
	b.minesPlaced = true

	Log.WithFields(logrus.Fields{
		"rows": b.Rows, "cols": b.Cols, "mines": b.MineCount,
	}).Debug("mines placed")
	return nil
}

// CalculateAdjacency fills AdjacentMines for every non-mine cell. Cells past
// the edge of the board do not wrap around.
func (b *Board) CalculateAdjacency() {
	for i := range b.Grid {
		if b.Grid[i].Mine {
			continue
		}
		row, col := b.position(i)
		count := 0
		b.neighbours(row, col, func(r, c int) {
			if b.Grid[b.index(r, c)].Mine {
				count++
			}
		})
		b.Grid[i].AdjacentMines = count
	}
}

func (b *Board) mineCount() (n int) {
	for _, c := range b.Grid {
		if c.Mine {
			n++
		}
	}
	return
}

// Mines lists the mined positions in row-major order.
func (b *Board) Mines() []Position {
	var positions []Position
	for i, c := range b.Grid {
		if c.Mine {
			row, col := b.position(i)
			positions = append(positions, Position{row, col})
		}
	}
	return positions
}
