// File: services/event_creation.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"techevents-web/logger"
	"techevents-web/metrics"
	"techevents-web/models"
)

// MsgEventCreateFailed is shown when the API gives no usable reason.
const MsgEventCreateFailed = "Failed to create event, please try again"

var (
	// ErrNoOrganizer means the session has no organization id to post under.
	ErrNoOrganizer = errors.New("no organizer in session")
	// ErrEventCreateFailed wraps API and transport failures.
	ErrEventCreateFailed = errors.New("event creation failed")
)

// EventCreationService turns the create-event form into the multipart
// submission.
type EventCreationService struct {
	api         EventAPI
	metrics     metrics.Publisher
	placeholder func(label string) (models.ImageUpload, error)
}

// NewEventCreationService wires an EventCreationService.
func NewEventCreationService(api EventAPI, pub metrics.Publisher) *EventCreationService {
	if pub == nil {
		pub = metrics.Nop{}
	}
	return &EventCreationService{api: api, metrics: pub, placeholder: PlaceholderImage}
}

// BuildPayload coerces the text form into the API payload. Unparseable
// numbers become 0 (so do negative and non-finite fees) and remaining seats
// start at the capacity.
func BuildPayload(form models.EventForm, organizerID string) models.EventPayload {
	fees, err := strconv.ParseFloat(strings.TrimSpace(form.RegistrationFees), 64)
	if err != nil || fees < 0 || math.IsNaN(fees) || math.IsInf(fees, 0) {
		fees = 0
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(form.MaxParticipants))
	if err != nil {
		capacity = 0
	}

	payload := models.EventPayload{
		Title:            strings.TrimSpace(form.Title),
		Description:      strings.TrimSpace(form.Description),
		Location:         strings.TrimSpace(form.Location),
		EventType:        strings.TrimSpace(form.EventType),
		EventDate:        normalizeInstant(form.EventDate),
		LastRegisterDate: normalizeInstant(form.LastRegisterDate),
		RegistrationFees: fees,
		MaxParticipants:  capacity,
		RemainingSeats:   capacity,
		Tags:             splitTags(form.Tags),
		OrganizerID:      organizerID,
	}

	prizes := models.PrizeRecord{
		First:  models.LooseString(strings.TrimSpace(form.FirstPrize)),
		Second: models.LooseString(strings.TrimSpace(form.SecondPrize)),
		Third:  models.LooseString(strings.TrimSpace(form.ThirdPrize)),
	}
	if !prizes.IsEmpty() {
		payload.Prizes = &prizes
	}
	return payload
}

// Create posts the event for user's organization. A nil image is replaced by
// a generated placeholder so the request always carries one image part.
func (s *EventCreationService) Create(ctx context.Context, user *models.User, form models.EventForm, image *models.ImageUpload) (*models.Event, error) {
	if !user.HasIdentity() {
		return nil, ErrNoOrganizer
	}

	payload := BuildPayload(form, user.ID)

	var upload models.ImageUpload
	if image != nil && len(image.Data) > 0 {
		upload = *image
	} else {
		generated, err := s.placeholder(payload.Title)
		if err != nil {
			logger.Error.Printf("EventCreationService: placeholder: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrEventCreateFailed, err)
		}
		upload = generated
		s.metrics.Count(metrics.PlaceholderImage, "event_create")
		logger.Debug.Printf("EventCreationService: generated %s (%d bytes)", upload.FileName, len(upload.Data))
	}

	created, err := s.api.CreateEvent(ctx, user.ID, payload, upload)
	if err != nil {
		s.metrics.Count(metrics.EventCreateFailed, "event_create")
		logger.Warn.Printf("EventCreationService: create for %s failed: %v", user.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrEventCreateFailed, err)
	}

	s.metrics.Count(metrics.EventCreated, "event_create")
	logger.Info.Printf("EventCreationService: organization %s created event %s", user.ID, created.ID)
	return created, nil
}

// CreateErrorMessage is the message shown when Create fails.
func CreateErrorMessage(err error) string {
	if errors.Is(err, ErrNoOrganizer) {
		return MsgSessionExpired
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ServerMessage(); msg != "" {
			return msg
		}
		if text := apiErr.BodyText(); text != "" {
			return text
		}
	}
	return MsgEventCreateFailed
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// normalizeInstant rewrites a parseable form date as RFC 3339 and passes
// anything else through unchanged.
func normalizeInstant(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	t, err := models.ParseInstant(raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(time.RFC3339)
}
