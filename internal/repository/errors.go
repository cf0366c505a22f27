package repository

import "errors"

// ErrVersionConflict is returned when an optimistic-concurrency commit loses
// the race: the row's version moved between the read and the write.
var ErrVersionConflict = errors.New("version conflict")
