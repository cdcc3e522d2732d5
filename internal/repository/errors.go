package repository

import "errors"

// ErrNotFound is returned when an update targets a missing row.
// Lookup methods return pgx.ErrNoRows directly.
var ErrNotFound = errors.New("not found")
