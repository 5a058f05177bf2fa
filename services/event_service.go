// File: services/event_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"techevents-web/logger"
	"techevents-web/metrics"
	"techevents-web/models"
)

// user-facing messages for event loading
const (
	MsgEventNotFound     = "Event not found"
	MsgEventLoadFailed   = "Failed to load event"
	MsgEventsUnavailable = "Failed to load events"
)

var (
	// ErrEventNotFound means the API answered 404 for the event id.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventLoadFailed covers every other failure to read an event.
	ErrEventLoadFailed = errors.New("event load failed")
)

// EventService builds the event pages' view-models.
type EventService struct {
	api      EventAPI
	currency string
	printer  *message.Printer
	metrics  metrics.Publisher
}

// NewEventService wires an EventService. currency prefixes non-free prices.
func NewEventService(api EventAPI, currency string, pub metrics.Publisher) *EventService {
	if pub == nil {
		pub = metrics.Nop{}
	}
	return &EventService{
		api:      api,
		currency: currency,
		printer:  message.NewPrinter(language.English),
		metrics:  pub,
	}
}

// LoadEvent fetches one event and normalizes it for display. Errors wrap
// ErrEventNotFound or ErrEventLoadFailed.
func (s *EventService) LoadEvent(ctx context.Context, id string) (*models.EventView, error) {
	event, err := s.api.GetEvent(ctx, id)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			logger.Info.Printf("LoadEvent: event %s not found", id)
			s.metrics.Count(metrics.EventNotFound, "event_detail")
			return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
		}
		logger.Error.Printf("LoadEvent: failed to load event %s: %v", id, err)
		s.metrics.Count(metrics.EventLoadFailed, "event_detail")
		return nil, fmt.Errorf("%w: %v", ErrEventLoadFailed, err)
	}

	view := s.ToView(*event)
	return &view, nil
}

// ListEvents returns the event summaries, truncated to limit when limit > 0.
func (s *EventService) ListEvents(ctx context.Context, limit int) ([]models.EventView, error) {
	events, err := s.api.ListEvents(ctx)
	if err != nil {
		logger.Error.Printf("ListEvents: %v", err)
		s.metrics.Count(metrics.EventLoadFailed, "event_list")
		return nil, fmt.Errorf("%w: %v", ErrEventLoadFailed, err)
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	views := make([]models.EventView, 0, len(events))
	for _, ev := range events {
		views = append(views, s.ToView(ev))
	}
	return views, nil
}

// ToView maps server field names onto display fields and derives the price
// label and prize list.
func (s *EventService) ToView(ev models.Event) models.EventView {
	return models.EventView{
		ID:                  ev.ID,
		Title:               ev.Title,
		Description:         ev.Description,
		Location:            ev.Location,
		Type:                ev.EventType,
		Image:               ev.ImageURL,
		Date:                ev.EventDate,
		LastRegisterDate:    ev.LastRegisterDate,
		Price:               s.PriceLabel(ev.RegistrationFees),
		Prizes:              PrizeList(ev.Prizes),
		Tags:                ev.Tags,
		Judges:              ev.Judges,
		Speakers:            ev.Speakers,
		Schedule:            ev.Schedule,
		Organizer:           ev.Organizer,
		MaxParticipants:     ev.MaxParticipants,
		CurrentParticipants: ev.CurrentParticipants,
		Source:              ev,
	}
}

// PriceLabel is "Free" for a zero fee, otherwise the currency symbol followed
// by the grouped amount (at most two decimals).
func (s *EventService) PriceLabel(fee float64) string {
	if fee == 0 {
		return "Free"
	}
	return s.currency + s.printer.Sprint(number.Decimal(fee, number.MaxFractionDigits(2)))
}

// PrizeList renders the ranked prize lines, or nothing without a prize record.
func PrizeList(prizes *models.PrizeRecord) []string {
	if prizes == nil {
		return []string{}
	}
	return []string{
		"1st Place: " + string(prizes.First),
		"2nd Place: " + string(prizes.Second),
		"3rd Place: " + string(prizes.Third),
	}
}

// EventErrorMessage maps a LoadEvent error to the message shown on the page.
func EventErrorMessage(err error) string {
	if errors.Is(err, ErrEventNotFound) {
		return MsgEventNotFound
	}
	return MsgEventLoadFailed
}
