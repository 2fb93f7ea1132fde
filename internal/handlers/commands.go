package handlers

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/shell"
)

var ErrBadCommand = errors.New("bad command")

type command string

const (
	cmdNoop   command = "g"
	cmdReveal command = "o"
	cmdFlag   command = "f"
	cmdReset  command = "r"
)

var commandNargs = map[command]int{
	cmdNoop:   0,
	cmdReveal: 2,
	cmdFlag:   2,
	cmdReset:  0,
}

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("%w: row must be an int", ErrBadCommand)
		return
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("%w: col must be an int", ErrBadCommand)
		return
	}
	return
}

// execute runs one command line against the window.
func execute(win *shell.Window, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	cmd := command(parts[0])
	nargs, ok := commandNargs[cmd]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrBadCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf("%w: %q takes %d arguments", ErrBadCommand, parts[0], nargs)
	}

	switch cmd {
	case cmdReveal:
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		_, err = win.Reveal(row, col)
		return err
	case cmdFlag:
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		return win.Flag(row, col)
	case cmdReset:
		return win.Reset()
	}
	return nil
}

// executeAll runs every line of a frame, stopping at the first error.
func executeAll(win *shell.Window, text string) error {
	for _, line := range iterBySep(strings.TrimSpace(text), "\n") {
		if err := execute(win, strings.TrimSpace(line)); err != nil {
			return err
		}
	}
	return nil
}
