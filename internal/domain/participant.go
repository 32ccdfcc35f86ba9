package domain

import "time"

type ParticipationStatus string

const (
	ParticipationPending   ParticipationStatus = "pending"
	ParticipationConfirmed ParticipationStatus = "confirmed"
	ParticipationCancelled ParticipationStatus = "cancelled"
	ParticipationAttended  ParticipationStatus = "attended"
)

func (s ParticipationStatus) IsValid() bool {
	switch s {
	case ParticipationPending, ParticipationConfirmed, ParticipationCancelled, ParticipationAttended:
		return true
	}
	return false
}

// IsActive reports whether the participation still occupies the (event, user)
// slot. A cancelled row is kept but no longer blocks re-registration.
func (s ParticipationStatus) IsActive() bool {
	return s != ParticipationCancelled && s != ""
}

// CountsTowardCapacity reports whether the status contributes to the event's
// current_participants counter. Only confirmed participants are counted.
func (s ParticipationStatus) CountsTowardCapacity() bool {
	return s == ParticipationConfirmed
}

type EventParticipant struct {
	ID               uint                `json:"id"`
	EventID          uint                `json:"event_id"`
	UserID           uint                `json:"user_id"`
	Status           ParticipationStatus `json:"status"`
	RegistrationDate time.Time           `json:"registration_date"`
	User             *User               `json:"user,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}
