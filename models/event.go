// Package models defines data structures used across the application.
// File: models/event.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ----------------------- event model -----------------------

// Event is an event record exactly as the API serves it.
type Event struct {
	ID                  string         `json:"_id"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Location            string         `json:"location"`
	EventType           string         `json:"eventType"`
	ImageURL            string         `json:"imageUrl"`
	EventDate           time.Time      `json:"eventDate"`
	LastRegisterDate    *time.Time     `json:"lastRegistertDate,omitempty"` // registration deadline
	MaxParticipants     *int           `json:"maxParticipants,omitempty"`   // nil means unlimited
	CurrentParticipants int            `json:"currentParticipants"`
	RemainingSeats      *int           `json:"remainingSeats,omitempty"`
	RegistrationFees    float64        `json:"registrationFees"`
	Tags                []string       `json:"tags,omitempty"`
	Prizes              *PrizeRecord   `json:"prizes,omitempty"`
	Judges              []Person       `json:"judges,omitempty"`
	Speakers            []Person       `json:"speakers,omitempty"`
	Schedule            []ScheduleItem `json:"schedule,omitempty"`
	Organizer           OrganizerRef   `json:"organizer"`
}

// Person is a judge or speaker.
type Person struct {
	Name    string `json:"name"`
	Company string `json:"company"`
}

// ScheduleItem is one session in an event's agenda.
type ScheduleItem struct {
	Title   string `json:"title"`
	Time    string `json:"time"`
	Speaker string `json:"speaker"`
}

// PrizeRecord holds the ranked prizes of a competition.
type PrizeRecord struct {
	First  LooseString `json:"first"`
	Second LooseString `json:"second"`
	Third  LooseString `json:"third"`
}

// IsEmpty reports whether no place carries a prize.
func (p PrizeRecord) IsEmpty() bool {
	return p.First == "" && p.Second == "" && p.Third == ""
}

// LooseString is text the API sends either as a JSON string or a number
// (prize amounts, founding years).
type LooseString string

// UnmarshalJSON accepts a JSON string, number or null.
func (v *LooseString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = LooseString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("prize value must be a string or number: %w", err)
	}
	*v = LooseString(n.String())
	return nil
}

// UnmarshalJSON decodes an event, tolerating "id" in place of "_id" and the
// several date layouts the API and HTML forms produce.
func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	aux := struct {
		*plain
		AltID            string          `json:"id"`
		EventDate        json.RawMessage `json:"eventDate"`
		LastRegisterDate json.RawMessage `json:"lastRegistertDate"`
	}{plain: (*plain)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = aux.AltID
	}

	eventDate, err := decodeInstant(aux.EventDate)
	if err != nil {
		return fmt.Errorf("eventDate: %w", err)
	}
	if eventDate != nil {
		e.EventDate = *eventDate
	}

	deadline, err := decodeInstant(aux.LastRegisterDate)
	if err != nil {
		return fmt.Errorf("lastRegistertDate: %w", err)
	}
	e.LastRegisterDate = deadline
	return nil
}

// ----------------------- instants -----------------------

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseInstant parses the date layouts used by the API and by HTML date inputs.
// Layouts without a zone are read as UTC.
func ParseInstant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

func decodeInstant(raw json.RawMessage) (*time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	t, err := ParseInstant(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ----------------------- creation payload -----------------------

// EventPayload is the "event" JSON part of a create-event submission.
type EventPayload struct {
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	Location            string       `json:"location"`
	EventType           string       `json:"eventType"`
	EventDate           string       `json:"eventDate"`
	LastRegisterDate    string       `json:"lastRegistertDate,omitempty"`
	RegistrationFees    float64      `json:"registrationFees"`
	MaxParticipants     int          `json:"maxParticipants"`
	RemainingSeats      int          `json:"remainingSeats"`
	CurrentParticipants int          `json:"currentParticipants"`
	Tags                []string     `json:"tags,omitempty"`
	Prizes              *PrizeRecord `json:"prizes,omitempty"`
	OrganizerID         string       `json:"organizerId"`
}

// EventForm carries the raw text fields of the create-event form.
type EventForm struct {
	Title            string `form:"title"`
	Description      string `form:"description"`
	Location         string `form:"location"`
	EventType        string `form:"eventType"`
	EventDate        string `form:"eventDate"`
	LastRegisterDate string `form:"lastRegistertDate"`
	RegistrationFees string `form:"registrationFees"`
	MaxParticipants  string `form:"maxParticipants"`
	Tags             string `form:"tags"`
	FirstPrize       string `form:"firstPrize"`
	SecondPrize      string `form:"secondPrize"`
	ThirdPrize       string `form:"thirdPrize"`
}

// ImageUpload is a binary image attached to a create-event submission.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ----------------------- helpers -----------------------

// IntPtr returns a pointer to n, handy for optional capacities.
func IntPtr(n int) *int {
	return &n
}

// TimePtr returns a pointer to t, handy for optional deadlines.
func TimePtr(t time.Time) *time.Time {
	return &t
}
