// File: models/organizer.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type organizerKind int

const (
	organizerNone organizerKind = iota
	organizerNamed
	organizerDetailed
)

// OrganizerRef is who runs an event: either just a name (Named) or a name
// with a contact email (Detailed). The zero value means "not provided".
type OrganizerRef struct {
	kind  organizerKind
	name  string
	email string
}

// NamedOrganizer builds an organizer known only by name.
func NamedOrganizer(name string) OrganizerRef {
	return OrganizerRef{kind: organizerNamed, name: name}
}

// DetailedOrganizer builds an organizer with a contact email.
func DetailedOrganizer(name, email string) OrganizerRef {
	return OrganizerRef{kind: organizerDetailed, name: name, email: email}
}

// Name returns the organizer's display name, empty when not provided.
func (o OrganizerRef) Name() string { return o.name }

// Email returns the contact email of a Detailed organizer.
func (o OrganizerRef) Email() string { return o.email }

// IsDetailed reports whether the organizer carries contact details.
func (o OrganizerRef) IsDetailed() bool { return o.kind == organizerDetailed }

// IsZero reports whether no organizer was provided.
func (o OrganizerRef) IsZero() bool { return o.kind == organizerNone }

// UnmarshalJSON maps a JSON string to Named and a JSON object to Detailed.
func (o *OrganizerRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*o = OrganizerRef{}
	case data[0] == '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*o = NamedOrganizer(name)
	case data[0] == '{':
		var rec struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		*o = DetailedOrganizer(rec.Name, rec.Email)
	default:
		return fmt.Errorf("organizer must be a string or an object, got %s", data)
	}
	return nil
}

// MarshalJSON writes the same shape UnmarshalJSON accepts.
func (o OrganizerRef) MarshalJSON() ([]byte, error) {
	switch o.kind {
	case organizerNamed:
		return json.Marshal(o.name)
	case organizerDetailed:
		return json.Marshal(map[string]string{"name": o.name, "email": o.email})
	default:
		return []byte("null"), nil
	}
}
