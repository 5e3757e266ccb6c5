package chess

import "errors"

var (
	ErrInvalidMove       = errors.New("invalid move")
	ErrMalformedPosition = errors.New("malformed position")
	ErrMalformedBoard    = errors.New("malformed board")
)
