package domain

import "errors"

var (
	ErrInvalidColumn   = errors.New("invalid column index")
	ErrInvalidPosition = errors.New("invalid position")
)
