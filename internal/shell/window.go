// Package shell is the game window around a [mines.Board]: it owns the board
// for the current game, runs the elapsed-seconds timer, rebuilds the board on
// reset and renders what the player sees.
package shell

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrOutOfBounds = errors.New("cell is off the board")

type BoardFactory func(params mines.GameParams) (*mines.Board, error)

// RandomBoards deals boards with uniformly placed mines drawn from r.
func RandomBoards(r *rand.Rand) BoardFactory {
	var mu sync.Mutex
	return func(params mines.GameParams) (*mines.Board, error) {
		mu.Lock()
		defer mu.Unlock()
		return mines.NewBoard(params, r)
	}
}

type Clock func() time.Time

type Option func(*Window)

func WithClock(now Clock) Option {
	return func(w *Window) { w.now = now }
}

type Window struct {
	ID uuid.UUID

	mu       sync.Mutex
	params   mines.GameParams
	newBoard BoardFactory
	now      Clock
	log      *logrus.Entry

	board     *mines.Board
	started   bool
	startedAt time.Time
	elapsed   time.Duration // frozen once the game is over
}

func New(
	params mines.GameParams, newBoard BoardFactory, log *logrus.Entry, opts ...Option,
) (*Window, error) {
	id := uuid.New()
	w := &Window{
		ID:       id,
		params:   params,
		newBoard: newBoard,
		now:      time.Now,
		log:      log.WithField("session", id.String()),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.reset(); err != nil {
		return nil, err
	}
	w.log.WithFields(logrus.Fields{
		"rows": params.Rows, "cols": params.Cols, "mines": params.MineCount,
	}).Info("new window")
	return w, nil
}

// Params are fixed for the window's lifetime, so reading them needs no lock.
func (w *Window) Params() mines.GameParams {
	return w.params
}

// Reset throws the current board away and deals a new one with the same
// params. The timer goes back to zero and waits for the first click.
func (w *Window) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.reset(); err != nil {
		return err
	}
	w.log.Debug("reset")
	return nil
}

func (w *Window) reset() error {
	board, err := w.newBoard(w.params)
	if err != nil {
		return fmt.Errorf("unable to deal a board: %w", err)
	}
	w.board = board
	w.started = false
	w.startedAt = time.Time{}
	w.elapsed = 0
	return nil
}

// click reports whether the cell at (row, col) still takes input, starting
// the timer on the first one that does.
func (w *Window) click(row, col int) (bool, error) {
	if !w.params.ValidatePosition(row, col) {
		return false, fmt.Errorf("%w: %d:%d", ErrOutOfBounds, row, col)
	}
	if w.board.State().Over() || w.board.Cell(row, col).Revealed {
		return false, nil
	}
	if !w.started {
		w.started = true
		w.startedAt = w.now()
	}
	return true, nil
}

func (w *Window) Reveal(row, col int) (mines.Outcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	enabled, err := w.click(row, col)
	if err != nil || !enabled {
		return mines.Continue, err
	}

	outcome := w.board.Reveal(row, col)
	if outcome != mines.Continue {
		w.elapsed = w.now().Sub(w.startedAt)
		w.log.WithFields(logrus.Fields{
			"outcome": outcome.String(),
			"elapsed": w.elapsedSeconds(),
		}).Info("game over")
	}
	return outcome, nil
}

func (w *Window) Flag(row, col int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	enabled, err := w.click(row, col)
	if err != nil || !enabled {
		return err
	}
	w.board.Flag(row, col)
	return nil
}

func (w *Window) State() mines.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.board.State()
}

// TimerRunning is true between the first click and the end of the game.
func (w *Window) TimerRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started && !w.board.State().Over()
}

// Elapsed is the number of whole seconds shown on the timer.
func (w *Window) Elapsed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.elapsedSeconds()
}

func (w *Window) elapsedSeconds() int {
	switch {
	case !w.started:
		return 0
	case w.board.State().Over():
		return int(w.elapsed / time.Second)
	default:
		return int(w.now().Sub(w.startedAt) / time.Second)
	}
}
