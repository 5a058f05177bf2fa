// File: models/user.go
package models

import "encoding/json"

// ----------------------- roles -----------------------

// Role distinguishes the two kinds of account.
type Role string

const (
	RoleParticipant  Role = "participant"
	RoleOrganization Role = "organization"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleParticipant || r == RoleOrganization
}

// DashboardPath is where a role lands after login or a profile update.
func (r Role) DashboardPath() string {
	if r == RoleOrganization {
		return "/dashboard/organization"
	}
	return "/dashboard/participant"
}

// ProfilePath is the role's profile edit page.
func (r Role) ProfilePath() string {
	if r == RoleOrganization {
		return "/profile/organization"
	}
	return "/profile/participant"
}

// ----------------------- session record -----------------------

// User is the logged-in account as persisted in the session cookie.
type User struct {
	ID    string `json:"id"`
	Role  Role   `json:"role,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// participant
	University             string `json:"university,omitempty"`
	Course                 string `json:"course,omitempty"`
	CurrentlyStudyingOrNot string `json:"currentlyStudyingOrNot,omitempty"`

	// organization
	Location string `json:"location,omitempty"`
	Contact  string `json:"contact,omitempty"`
	About    string `json:"about,omitempty"`
	Since    string `json:"since,omitempty"`
	Type     string `json:"type,omitempty"`
}

// HasIdentity reports whether the record can authorize API calls.
func (u *User) HasIdentity() bool {
	return u != nil && u.ID != ""
}

// UnmarshalJSON accepts "_id" in place of "id" and numeric founding years.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		AltID string          `json:"_id"`
		Since json.RawMessage `json:"since"`
	}{plain: (*plain)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.AltID
	}
	if len(aux.Since) > 0 && string(aux.Since) != "null" {
		var since LooseString
		if err := json.Unmarshal(aux.Since, &since); err != nil {
			return err
		}
		u.Since = string(since)
	}
	return nil
}

// ----------------------- credentials -----------------------

// Credentials are forwarded to the API's login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}
