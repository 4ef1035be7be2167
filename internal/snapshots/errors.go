package snapshots

import "errors"

var (
	ErrNotFound     = errors.New("snapshot not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoResume     = errors.New("no resume to snapshot")
)
