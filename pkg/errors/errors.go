package errors

import "errors"

// ErrOptimisticLock is returned when a versioned update touches a record
// that was modified by another operation since it was read.
var ErrOptimisticLock = errors.New("record was modified by another operation, refresh and retry")
