package common

import "errors"

var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotInteger      = errors.New("not an integer")
	ErrOverflow        = errors.New("integer overflow")
)
