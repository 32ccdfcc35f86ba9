package domain

import "time"

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// eventStatusTransitions lists the organizer-driven lifecycle edges. Draft
// events can be published or scrapped; published events run to completion or
// get called off. Completed and cancelled are terminal.
var eventStatusTransitions = map[EventStatus][]EventStatus{
	EventStatusDraft:     {EventStatusPublished, EventStatusCancelled},
	EventStatusPublished: {EventStatusCompleted, EventStatusCancelled},
}

func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range eventStatusTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type Event struct {
	ID                  uint            `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Location            string          `json:"location"`
	Date                time.Time       `json:"date"`
	StartTime           string          `json:"start_time"`
	EndTime             string          `json:"end_time"`
	MaxParticipants     int             `json:"max_participants"`
	CurrentParticipants int             `json:"current_participants"`
	OrganizerID         uint            `json:"organizer_id"`
	Status              EventStatus     `json:"status"`
	Categories          []EventCategory `json:"categories,omitempty"`
	AverageRating       float64         `json:"average_rating"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// IsFull reports whether confirmed participants have reached capacity.
func (e Event) IsFull() bool {
	return e.CurrentParticipants >= e.MaxParticipants
}
