package loan

import "errors"

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrNotActive         = errors.New("loan is not active")
	ErrExceedsBalance    = errors.New("payment exceeds remaining balance")
)
