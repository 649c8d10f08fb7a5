package repository

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrNoSnapshot   = errors.New("no snapshot applied yet")
	ErrInvalidState = errors.New("snapshot has no draft state")
	ErrStoreClosed  = errors.New("snapshot store closed")
)
