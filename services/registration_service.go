// File: services/registration_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"techevents-web/logger"
	"techevents-web/metrics"
	"techevents-web/models"
)

var (
	// ErrRegistrationClosed means the eligibility rule rejected the event.
	ErrRegistrationClosed = errors.New("registration is closed")
	// ErrRegistrationFailed wraps API and transport failures.
	ErrRegistrationFailed = errors.New("registration failed")
)

// RegistrationService submits participant registrations.
type RegistrationService struct {
	api     EventAPI
	metrics metrics.Publisher
	now     func() time.Time
}

// NewRegistrationService wires a RegistrationService. A nil clock means the
// wall clock.
func NewRegistrationService(api EventAPI, pub metrics.Publisher, clock func() time.Time) *RegistrationService {
	if pub == nil {
		pub = metrics.Nop{}
	}
	if clock == nil {
		clock = time.Now
	}
	return &RegistrationService{api: api, metrics: pub, now: clock}
}

// IsOpen applies the eligibility rule at the service's clock. The
// registration page and Register share it.
func (s *RegistrationService) IsOpen(event models.Event) bool {
	return IsRegistrationOpen(event, s.now())
}

// Register re-checks eligibility for event and then registers user. A closed
// event never reaches the network.
func (s *RegistrationService) Register(ctx context.Context, event models.Event, user *models.User) error {
	if !user.HasIdentity() {
		return ErrProfileNotLoaded
	}
	if !s.IsOpen(event) {
		s.metrics.Count(metrics.RegistrationClosed, "event_register")
		logger.Info.Printf("RegistrationService: %s tried closed event %s", user.ID, event.ID)
		return ErrRegistrationClosed
	}

	err := s.api.RegisterForEvent(ctx, event.ID, models.RegistrationRequest{
		ParticipantID: user.ID,
		Name:          user.Name,
		Email:         user.Email,
	})
	if err != nil {
		logger.Warn.Printf("RegistrationService: %s for event %s: %v", user.ID, event.ID, err)
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	s.metrics.Count(metrics.Registration, "event_register")
	logger.Info.Printf("RegistrationService: %s registered for %s", user.ID, event.ID)
	return nil
}

// RegistrationErrorMessage is the message shown when Register fails.
func RegistrationErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrRegistrationClosed):
		return "Registration for this event is closed"
	case errors.Is(err, ErrProfileNotLoaded):
		return MsgSessionExpired
	}
	return SubmitErrorMessage(err)
}
