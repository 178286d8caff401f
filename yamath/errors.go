package yamath

import "errors"

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNoModularInverse = errors.New("no modular inverse")
)
