package models

import "github.com/google/uuid"

// newID returns a time-ordered UUIDv7 string suitable for primary keys.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
