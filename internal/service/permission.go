package service

import (
	"github.com/eventhub/eventhub-api/internal/domain"
)

// Permission checks are pure functions of the event, the acting user and
// their participation row. Handlers call them before mutating; the read path
// uses them to shape responses.

// CanComment allows the organizer always, and otherwise requires a published
// or completed event plus a confirmed or attended participation.
func CanComment(event domain.Event, participation domain.EventParticipant, isOrganizer bool) bool {
	if isOrganizer {
		return true
	}
	if event.Status != domain.EventStatusPublished && event.Status != domain.EventStatusCompleted {
		return false
	}

	return participation.Status == domain.ParticipationConfirmed ||
		participation.Status == domain.ParticipationAttended
}

// CanRate requires attendance of a completed event. Organizers cannot rate
// their own events regardless of participation state.
func CanRate(event domain.Event, participation domain.EventParticipant, isOrganizer bool) bool {
	if isOrganizer {
		return false
	}

	return event.Status == domain.EventStatusCompleted &&
		participation.Status == domain.ParticipationAttended
}

// CanEdit restricts event mutation to its organizer.
func CanEdit(event domain.Event, actingUserID uint) bool {
	return event.OrganizerID == actingUserID
}

// CanManageParticipants follows the same rule as CanEdit.
func CanManageParticipants(event domain.Event, actingUserID uint) bool {
	return CanEdit(event, actingUserID)
}

// CanDeleteComment allows the comment author and the event organizer.
func CanDeleteComment(comment domain.EventComment, event domain.Event, actingUserID uint) bool {
	return comment.UserID == actingUserID || event.OrganizerID == actingUserID
}

// CanDeleteRating allows the rating author and the event organizer.
func CanDeleteRating(rating domain.EventRating, event domain.Event, actingUserID uint) bool {
	return rating.UserID == actingUserID || event.OrganizerID == actingUserID
}
