package repository

import "errors"

// ErrNotFound is wrapped by repository lookups that match no row.
var ErrNotFound = errors.New("not found")
