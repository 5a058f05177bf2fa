// File: services/eligibility.go
package services

import (
	"time"

	"techevents-web/models"
)

// IsRegistrationOpen reports whether event accepts registrations at now:
// now is not past the event date, not past the optional deadline, and the
// optional capacity is not yet reached. It depends on no other field and must
// be evaluated per request because now moves.
func IsRegistrationOpen(event models.Event, now time.Time) bool {
	if now.After(event.EventDate) {
		return false
	}
	if event.LastRegisterDate != nil && now.After(*event.LastRegisterDate) {
		return false
	}
	if event.MaxParticipants != nil && event.CurrentParticipants >= *event.MaxParticipants {
		return false
	}
	return true
}
