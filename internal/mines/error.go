package mines

import "errors"

var (
	ErrInvalidParams = errors.New("invalid game params")
	ErrMinesPlaced   = errors.New("mines are already placed")
	ErrLayoutSize    = errors.New("mine layout does not match mine count")
)
