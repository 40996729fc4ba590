package history

import (
	"errors"
	"fmt"
)

// StorageError wraps history persistence failures. Callers treat it as a
// non-fatal warning; losing an audit record never unwinds a celebration that
// already played.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("history %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// AsStorageError unwraps err looking for a StorageError.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
