package game

import "errors"

var (
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrOutOfRange       = errors.New("position out of range")
)
