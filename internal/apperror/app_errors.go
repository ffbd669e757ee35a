package apperror

import "errors"

var (
	ErrSessionFull   = errors.New("session is full")
	ErrGameNotActive = errors.New("game is not active")
	ErrInvalidCell   = errors.New("invalid cell coordinates")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrUnknownMember = errors.New("unknown member")
)
