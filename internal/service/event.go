package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventhub/eventhub-api/internal/domain"
)

var ErrInvalidTransition = errors.New("illegal event status transition")

type EventRepo interface {
	Create(ctx context.Context, event domain.Event, categoryIDs []uint) (domain.Event, error)
	Update(ctx context.Context, event domain.Event, categoryIDs []uint) (domain.Event, error)
	GetByID(ctx context.Context, id uint) (domain.Event, error)
	List(ctx context.Context, userID uint, limit, offset int) ([]domain.Event, int64, error)
	SoftDelete(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) ([]domain.EventCategory, error)
}

type ParticipantRepo interface {
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.EventParticipant, error)
	FindByID(ctx context.Context, eventID, participantID uint) (domain.EventParticipant, error)
	ListByEvent(ctx context.Context, eventID uint, status domain.ParticipationStatus, limit, offset int) ([]domain.EventParticipant, int64, error)
	ListEventsByUser(ctx context.Context, userID uint) ([]domain.Event, error)
	CountByUserAndStatus(ctx context.Context, userID uint, status domain.ParticipationStatus) (int64, error)
}

type RatingAverager interface {
	AverageForEvent(ctx context.Context, eventID uint) (float64, error)
}

type EventService struct {
	events       EventRepo
	participants ParticipantRepo
	ratings      RatingAverager
	dispatcher   Dispatcher
}

func NewEventService(events EventRepo, participants ParticipantRepo, ratings RatingAverager, dispatcher Dispatcher) *EventService {
	return &EventService{
		events:       events,
		participants: participants,
		ratings:      ratings,
		dispatcher:   dispatcher,
	}
}

// EventDetail is an event enriched with the viewer's participation and what
// the permission rules let them do with it.
type EventDetail struct {
	Event         domain.Event             `json:"event"`
	Participation *domain.EventParticipant `json:"participation,omitempty"`
	CanEdit       bool                     `json:"can_edit"`
	CanComment    bool                     `json:"can_comment"`
	CanRate       bool                     `json:"can_rate"`
}

func (s *EventService) Create(ctx context.Context, organizerID uint, event domain.Event, categoryIDs []uint) (domain.Event, error) {
	event.OrganizerID = organizerID
	event.Status = domain.EventStatusDraft
	event.CurrentParticipants = 0

	created, err := s.events.Create(ctx, event, categoryIDs)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.Create -> %w", err)
	}

	return created, nil
}

// Update replaces the event's descriptive fields. Status and the participant
// counter are never writable here; status moves through Transition and the
// counter belongs to the participation engine.
func (s *EventService) Update(ctx context.Context, actingUserID uint, event domain.Event, categoryIDs []uint) (domain.Event, error) {
	existing, err := s.events.GetByID(ctx, event.ID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return domain.Event{}, err
		}
		return domain.Event{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	if !CanEdit(existing, actingUserID) {
		return domain.Event{}, ErrPermissionDenied
	}

	event.OrganizerID = existing.OrganizerID
	event.Status = existing.Status
	event.CurrentParticipants = existing.CurrentParticipants

	updated, err := s.events.Update(ctx, event, categoryIDs)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.Update -> %w", err)
	}

	s.dispatcher.BroadcastEventUpdate(ctx, domain.EventUpdate{
		EventID:   updated.ID,
		Type:      "event_updated",
		Payload:   updated,
		Timestamp: time.Now(),
	})

	return updated, nil
}

// Get returns the event with the viewer's context attached. Draft events are
// visible to their organizer only.
func (s *EventService) Get(ctx context.Context, eventID, viewerID uint) (EventDetail, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return EventDetail{}, err
		}
		return EventDetail{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	isOrganizer := CanEdit(event, viewerID)
	if event.Status == domain.EventStatusDraft && !isOrganizer {
		return EventDetail{}, ErrEventNotFound
	}

	if avg, err := s.ratings.AverageForEvent(ctx, eventID); err == nil {
		event.AverageRating = avg
	}

	detail := EventDetail{
		Event:   event,
		CanEdit: isOrganizer,
	}

	var participation domain.EventParticipant
	if viewerID != 0 && !isOrganizer {
		p, err := s.participants.FindByEventAndUser(ctx, eventID, viewerID)
		if err == nil {
			participation = p
			detail.Participation = &p
		} else if !errors.Is(err, ErrParticipantNotFound) {
			return EventDetail{}, fmt.Errorf("s.participants.FindByEventAndUser -> %w", err)
		}
	}

	detail.CanComment = CanComment(event, participation, isOrganizer)
	detail.CanRate = CanRate(event, participation, isOrganizer)

	return detail, nil
}

// List returns published events, plus the viewer's own events in any status.
func (s *EventService) List(ctx context.Context, viewerID uint, limit, offset int) ([]domain.Event, int64, error) {
	events, total, err := s.events.List(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("s.events.List -> %w", err)
	}

	return events, total, nil
}

// Transition moves the event along its lifecycle state machine.
func (s *EventService) Transition(ctx context.Context, actingUserID, eventID uint, newStatus domain.EventStatus) (domain.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return domain.Event{}, err
		}
		return domain.Event{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	if !CanEdit(event, actingUserID) {
		return domain.Event{}, ErrPermissionDenied
	}
	if !newStatus.IsValid() || !event.Status.CanTransitionTo(newStatus) {
		return domain.Event{}, ErrInvalidTransition
	}

	event.Status = newStatus
	updated, err := s.events.Update(ctx, event, nil)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.Update -> %w", err)
	}

	s.dispatcher.BroadcastEventUpdate(ctx, domain.EventUpdate{
		EventID:   updated.ID,
		Type:      "event_status_changed",
		Payload:   updated,
		Timestamp: time.Now(),
	})

	return updated, nil
}

// Delete soft-deletes the event. Participant, comment and rating rows stay
// behind the soft-delete flag with the event.
func (s *EventService) Delete(ctx context.Context, actingUserID, eventID uint) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return err
		}
		return fmt.Errorf("s.events.GetByID -> %w", err)
	}

	if !CanEdit(event, actingUserID) {
		return ErrPermissionDenied
	}

	if err = s.events.SoftDelete(ctx, eventID); err != nil {
		return fmt.Errorf("s.events.SoftDelete -> %w", err)
	}

	return nil
}

// Roster lists an event's participants, optionally filtered by status.
// Organizer only.
func (s *EventService) Roster(ctx context.Context, actingUserID, eventID uint, status domain.ParticipationStatus, limit, offset int) ([]domain.EventParticipant, int64, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	if !CanManageParticipants(event, actingUserID) {
		return nil, 0, ErrPermissionDenied
	}
	if status != "" && !status.IsValid() {
		return nil, 0, ErrInvalidStatus
	}

	participants, total, err := s.participants.ListByEvent(ctx, eventID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("s.participants.ListByEvent -> %w", err)
	}

	return participants, total, nil
}

// GetParticipant returns a single roster entry. Organizer only.
func (s *EventService) GetParticipant(ctx context.Context, actingUserID, eventID, participantID uint) (domain.EventParticipant, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return domain.EventParticipant{}, err
		}
		return domain.EventParticipant{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	if !CanManageParticipants(event, actingUserID) {
		return domain.EventParticipant{}, ErrPermissionDenied
	}

	participant, err := s.participants.FindByID(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			return domain.EventParticipant{}, err
		}
		return domain.EventParticipant{}, fmt.Errorf("s.participants.FindByID -> %w", err)
	}

	return participant, nil
}

func (s *EventService) Categories(ctx context.Context) ([]domain.EventCategory, error) {
	categories, err := s.events.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.events.ListCategories -> %w", err)
	}

	return categories, nil
}
