package domain

import "time"

// ParticipationEventType tags a fact emitted by the participation engine after
// a committed state transition.
type ParticipationEventType string

const (
	ParticipantRegistered    ParticipationEventType = "participant_registered"
	ParticipantUnregistered  ParticipationEventType = "participant_unregistered"
	ParticipantStatusChanged ParticipationEventType = "participant_status_changed"
)

// ParticipationEvent describes a completed participant state transition. It is
// handed to the notification dispatcher after the transaction commits; the
// state change is the source of truth regardless of delivery outcome.
type ParticipationEvent struct {
	Type          ParticipationEventType `json:"type"`
	EventID       uint                   `json:"event_id"`
	EventTitle    string                 `json:"event_title"`
	ParticipantID uint                   `json:"participant_id"`
	UserID        uint                   `json:"user_id"`
	OrganizerID   uint                   `json:"organizer_id"`
	OldStatus     ParticipationStatus    `json:"old_status,omitempty"`
	NewStatus     ParticipationStatus    `json:"new_status,omitempty"`
	OccurredAt    time.Time              `json:"timestamp"`
}

// EventUpdate is the generic payload pushed to an event's live update channel.
type EventUpdate struct {
	EventID   uint      `json:"event_id"`
	Type      string    `json:"type"`
	Payload   any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
