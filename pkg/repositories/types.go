package repositories

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no stored result has the requested id.
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	if e.ID == "" {
		return "result not found"
	}
	return fmt.Sprintf("result %s not found", e.ID)
}

func IsNotFound(err error) bool {
	var notFound *ErrNotFound
	return errors.As(err, &notFound)
}
