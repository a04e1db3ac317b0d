// Package uuid wraps github.com/google/uuid so that resource IDs can be
// bound directly from query and URI parameters.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID is a google/uuid UUID with gin parameter binding support.
type UUID struct {
	google_uuid.UUID
}

// Nil is the zero UUID. It is also what an unset parameter binds to.
var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

func NewString() string {
	return google_uuid.NewString()
}

// UnmarshalParam implements gin's binding.BindUnmarshaler. An empty
// parameter binds to Nil so that optional filter parameters can stay unset.
func (u *UUID) UnmarshalParam(param string) error {
	if param == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(param)
	if err != nil {
		return err
	}

	*u = UUID{parsed}
	return nil
}
