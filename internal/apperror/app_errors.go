package apperror

import "errors"

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrInvalidVanishLimit = errors.New("vanish limit out of range")
)
