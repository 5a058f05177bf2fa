// File: models/event_view.go
package models

import "time"

// DescriptionClampThreshold is the description length beyond which the detail
// page clamps the text behind an expand toggle.
const DescriptionClampThreshold = 200

// EventView is the display shape of an event consumed by templates.
type EventView struct {
	ID                  string
	Title               string
	Description         string
	Location            string
	Type                string
	Image               string
	Date                time.Time
	LastRegisterDate    *time.Time
	Price               string
	Prizes              []string
	Tags                []string
	Judges              []Person
	Speakers            []Person
	Schedule            []ScheduleItem
	Organizer           OrganizerRef
	MaxParticipants     *int
	CurrentParticipants int

	// Source is the record the view was derived from; eligibility is always
	// evaluated against it.
	Source Event
}

// IsLongDescription reports whether the description needs an expand toggle.
func (v EventView) IsLongDescription() bool {
	return len([]rune(v.Description)) > DescriptionClampThreshold
}

// ShortDescription returns the description clamped to the threshold.
func (v EventView) ShortDescription() string {
	runes := []rune(v.Description)
	if len(runes) <= DescriptionClampThreshold {
		return v.Description
	}
	return string(runes[:DescriptionClampThreshold]) + "…"
}

// SeatsLeft returns the remaining capacity, or -1 when capacity is unlimited.
func (v EventView) SeatsLeft() int {
	if v.MaxParticipants == nil {
		return -1
	}
	left := *v.MaxParticipants - v.CurrentParticipants
	if left < 0 {
		return 0
	}
	return left
}

// ----------------------- tabs -----------------------

// EventTab is the active section of the event detail page.
type EventTab string

const (
	TabOverview EventTab = "overview"
	TabSchedule EventTab = "schedule"
	TabSpeakers EventTab = "speakers"
)

// EventTabs lists the tabs in display order.
var EventTabs = []EventTab{TabOverview, TabSchedule, TabSpeakers}

// ParseEventTab selects a tab by name; anything unknown is the overview.
func ParseEventTab(name string) EventTab {
	switch EventTab(name) {
	case TabSchedule:
		return TabSchedule
	case TabSpeakers:
		return TabSpeakers
	default:
		return TabOverview
	}
}

// Label is the tab's heading.
func (t EventTab) Label() string {
	switch t {
	case TabSchedule:
		return "Schedule"
	case TabSpeakers:
		return "Speakers"
	default:
		return "Overview"
	}
}
