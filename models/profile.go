// File: models/profile.go
package models

// OrganizationUpdate is the body of PUT /organizations/{id}. The form and
// binding tags drive profile form validation; label names a field in messages.
// Email is never bound from the form.
type OrganizationUpdate struct {
	Name     string `json:"name" form:"name" label:"Organization name" binding:"required"`
	Email    string `json:"email" form:"-"`
	Location string `json:"location" form:"location" label:"Location" binding:"required"`
	Contact  string `json:"contact" form:"contact" label:"Contact"`
	About    string `json:"about" form:"about" label:"About" binding:"required"`
	Since    string `json:"since" form:"since" label:"Founding year" binding:"required"`
	Type     string `json:"type" form:"type" label:"Organization type" binding:"required"`
}

// ParticipantUpdate is the body of PUT /participants/update/{id}.
type ParticipantUpdate struct {
	Name                   string `json:"name" form:"name" label:"Name" binding:"required"`
	Email                  string `json:"email" form:"-"`
	University             string `json:"university" form:"university" label:"University" binding:"required"`
	Course                 string `json:"course" form:"course" label:"Course" binding:"required"`
	CurrentlyStudyingOrNot string `json:"currentlyStudyingOrNot" form:"currentlyStudyingOrNot" label:"Currently studying"`
}

// RegistrationRequest is the body of POST /events/{id}/register.
type RegistrationRequest struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

// EditableFields lists the form inputs a role may change. The email is
// shown read-only and is never taken from the form.
func EditableFields(role Role) []string {
	if role == RoleOrganization {
		return []string{"name", "location", "contact", "about", "since", "type"}
	}
	return []string{"name", "university", "course", "currentlyStudyingOrNot"}
}

// ProfileFields maps a user record onto the editable fields of its role's form.
func ProfileFields(u *User) map[string]string {
	if u == nil {
		return map[string]string{}
	}
	if u.Role == RoleOrganization {
		return map[string]string{
			"name":     u.Name,
			"email":    u.Email,
			"location": u.Location,
			"contact":  u.Contact,
			"about":    u.About,
			"since":    u.Since,
			"type":     u.Type,
		}
	}
	return map[string]string{
		"name":                   u.Name,
		"email":                  u.Email,
		"university":             u.University,
		"course":                 u.Course,
		"currentlyStudyingOrNot": u.CurrentlyStudyingOrNot,
	}
}
