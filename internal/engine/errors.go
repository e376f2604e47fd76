package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrKingExposed  = errors.New("move leaves king in check")
	ErrNoPiece      = errors.New("no piece on start square")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrOutOfBounds  = errors.New("square out of bounds")
	ErrEmptyHistory = errors.New("no moves to undo")
	ErrNoLegalMoves = errors.New("no legal moves")
)

// MoveError ties a rejected move attempt to the reason it was rejected.
type MoveError struct {
	From Square
	To   Square
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s -> %s: %v", e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
