package datastore

import "fmt"

// NotFoundError is returned when no session exists under the requested id.
type NotFoundError struct {
	ID string
}

func (nf NotFoundError) Error() string {
	return fmt.Sprintf("session %q not found", nf.ID)
}
