package domain

import "errors"

// ErrNotFound is returned when a record id does not exist in its collection.
var ErrNotFound = errors.New("record not found")
