package game

import (
	"errors"
	"fmt"
)

var (
	ErrBankruptOperation = errors.New("operation on bankrupt piece")
	ErrDuplicatePiece    = errors.New("piece name already taken")
	ErrUnknownZone       = errors.New("zone is not on this board")
	ErrNoDecision        = errors.New("no decision available")
)

// BankruptError is returned by EnsureAlive when the piece can no longer act.
type BankruptError struct {
	Piece string
}

func (e *BankruptError) Error() string {
	return fmt.Sprintf("piece %s is bankrupt", e.Piece)
}

func (e *BankruptError) Unwrap() error {
	return ErrBankruptOperation
}
