package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

var (
	ErrEventNotFound       = repository.ErrEventNotFound
	ErrParticipantNotFound = repository.ErrParticipantNotFound

	ErrEventFull         = errors.New("event is full")
	ErrEventNotOpen      = errors.New("event is not open for registration")
	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	ErrNotRegistered     = errors.New("user is not registered for this event")
	ErrInvalidStatus     = errors.New("invalid participation status")
	ErrPermissionDenied  = errors.New("permission denied")
)

// EventStore is the transactional persistence contract the participation
// engine operates through. WithEventLock must hold an exclusive lock on the
// event row for the duration of fn and roll everything back on error.
type EventStore interface {
	WithEventLock(ctx context.Context, eventID uint, fn func(tx repository.EventTx) error) error
}

// Dispatcher receives domain events after the transaction that produced them
// has committed. Implementations must not fail the calling operation.
type Dispatcher interface {
	DispatchParticipation(ctx context.Context, event domain.ParticipationEvent)
	BroadcastEventUpdate(ctx context.Context, update domain.EventUpdate)
}

// ParticipationService is the sole writer of participation rows and the
// current_participants counter.
//
// Counter policy: pending registrations do not count toward capacity; the
// counter moves only on transitions into or out of confirmed. This matches
// the uniform rule applied across register, cancel and status updates.
type ParticipationService struct {
	store      EventStore
	dispatcher Dispatcher
	logger     *zap.Logger
}

func NewParticipationService(store EventStore, dispatcher Dispatcher, logger *zap.Logger) *ParticipationService {
	return &ParticipationService{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// StatusUpdate reports the transition applied by SetParticipantStatus.
type StatusUpdate struct {
	Participant domain.EventParticipant    `json:"participant"`
	OldStatus   domain.ParticipationStatus `json:"old_status"`
	NewStatus   domain.ParticipationStatus `json:"new_status"`
}

// Register creates a pending participation for userID, reusing a previously
// cancelled row when one exists. Registration never touches the counter.
func (s *ParticipationService) Register(ctx context.Context, eventID, userID uint) (domain.EventParticipant, error) {
	var (
		registered domain.EventParticipant
		event      domain.Event
	)

	err := s.store.WithEventLock(ctx, eventID, func(tx repository.EventTx) error {
		event = tx.Event()

		if event.Status != domain.EventStatusPublished {
			return ErrEventNotOpen
		}
		if event.IsFull() {
			return ErrEventFull
		}

		existing, err := tx.FindParticipation(userID)
		switch {
		case err == nil:
			if existing.Status.IsActive() {
				return ErrAlreadyRegistered
			}
			existing.Status = domain.ParticipationPending
			existing.RegistrationDate = time.Now()
			registered, err = tx.SaveParticipation(existing)
			return err
		case errors.Is(err, ErrParticipantNotFound):
			registered, err = tx.SaveParticipation(domain.EventParticipant{
				EventID:          eventID,
				UserID:           userID,
				Status:           domain.ParticipationPending,
				RegistrationDate: time.Now(),
			})
			return err
		default:
			return fmt.Errorf("tx.FindParticipation -> %w", err)
		}
	})
	if err != nil {
		if isDomainErr(err) {
			return domain.EventParticipant{}, err
		}
		return domain.EventParticipant{}, fmt.Errorf("s.store.WithEventLock -> %w", err)
	}

	s.dispatcher.DispatchParticipation(ctx, domain.ParticipationEvent{
		Type:          domain.ParticipantRegistered,
		EventID:       event.ID,
		EventTitle:    event.Title,
		ParticipantID: registered.ID,
		UserID:        userID,
		OrganizerID:   event.OrganizerID,
		NewStatus:     registered.Status,
		OccurredAt:    time.Now(),
	})

	return registered, nil
}

// Cancel flips the caller's active participation to cancelled, releasing a
// confirmed slot when one was held.
func (s *ParticipationService) Cancel(ctx context.Context, eventID, userID uint) (domain.EventParticipant, error) {
	var (
		cancelled domain.EventParticipant
		oldStatus domain.ParticipationStatus
		event     domain.Event
	)

	err := s.store.WithEventLock(ctx, eventID, func(tx repository.EventTx) error {
		event = tx.Event()

		participant, err := tx.FindParticipation(userID)
		if errors.Is(err, ErrParticipantNotFound) {
			return ErrNotRegistered
		}
		if err != nil {
			return fmt.Errorf("tx.FindParticipation -> %w", err)
		}
		if !participant.Status.IsActive() {
			return ErrNotRegistered
		}

		oldStatus = participant.Status
		participant.Status = domain.ParticipationCancelled
		cancelled, err = tx.SaveParticipation(participant)
		if err != nil {
			return fmt.Errorf("tx.SaveParticipation -> %w", err)
		}

		if oldStatus.CountsTowardCapacity() {
			if err = tx.AdjustParticipantCount(-1); err != nil {
				if errors.Is(err, repository.ErrConcurrencyConflict) {
					// A confirmed row existed while the counter was already
					// at zero. The invariant is broken elsewhere; clamp here
					// instead of failing the cancellation.
					s.logger.Error("participant counter underflow",
						zap.Uint("eventID", eventID),
						zap.Uint("userID", userID))
					return nil
				}
				return fmt.Errorf("tx.AdjustParticipantCount -> %w", err)
			}
		}

		return nil
	})
	if err != nil {
		if isDomainErr(err) {
			return domain.EventParticipant{}, err
		}
		return domain.EventParticipant{}, fmt.Errorf("s.store.WithEventLock -> %w", err)
	}

	s.dispatcher.DispatchParticipation(ctx, domain.ParticipationEvent{
		Type:          domain.ParticipantUnregistered,
		EventID:       event.ID,
		EventTitle:    event.Title,
		ParticipantID: cancelled.ID,
		UserID:        userID,
		OrganizerID:   event.OrganizerID,
		OldStatus:     oldStatus,
		NewStatus:     domain.ParticipationCancelled,
		OccurredAt:    time.Now(),
	})

	return cancelled, nil
}

// SetParticipantStatus applies an organizer-driven transition and keeps the
// counter in step: +1 entering confirmed, -1 leaving it, unchanged otherwise.
func (s *ParticipationService) SetParticipantStatus(ctx context.Context, eventID, participantID uint, newStatus domain.ParticipationStatus, actingUserID uint) (StatusUpdate, error) {
	var (
		update StatusUpdate
		event  domain.Event
	)

	err := s.store.WithEventLock(ctx, eventID, func(tx repository.EventTx) error {
		event = tx.Event()

		if event.OrganizerID != actingUserID {
			return ErrPermissionDenied
		}
		if !newStatus.IsValid() {
			return ErrInvalidStatus
		}

		participant, err := tx.FindParticipantByID(participantID)
		if err != nil {
			if errors.Is(err, ErrParticipantNotFound) {
				return err
			}
			return fmt.Errorf("tx.FindParticipantByID -> %w", err)
		}

		oldStatus := participant.Status
		if oldStatus == newStatus {
			return ErrInvalidStatus
		}

		participant.Status = newStatus
		participant, err = tx.SaveParticipation(participant)
		if err != nil {
			return fmt.Errorf("tx.SaveParticipation -> %w", err)
		}

		switch {
		case !oldStatus.CountsTowardCapacity() && newStatus.CountsTowardCapacity():
			if err = tx.AdjustParticipantCount(1); err != nil {
				if errors.Is(err, repository.ErrConcurrencyConflict) {
					return ErrEventFull
				}
				return fmt.Errorf("tx.AdjustParticipantCount -> %w", err)
			}
		case oldStatus.CountsTowardCapacity() && !newStatus.CountsTowardCapacity():
			if err = tx.AdjustParticipantCount(-1); err != nil {
				if errors.Is(err, repository.ErrConcurrencyConflict) {
					s.logger.Error("participant counter underflow",
						zap.Uint("eventID", eventID),
						zap.Uint("participantID", participantID))
					break
				}
				return fmt.Errorf("tx.AdjustParticipantCount -> %w", err)
			}
		}

		update = StatusUpdate{
			Participant: participant,
			OldStatus:   oldStatus,
			NewStatus:   newStatus,
		}

		return nil
	})
	if err != nil {
		if isDomainErr(err) {
			return StatusUpdate{}, err
		}
		return StatusUpdate{}, fmt.Errorf("s.store.WithEventLock -> %w", err)
	}

	s.dispatcher.DispatchParticipation(ctx, domain.ParticipationEvent{
		Type:          domain.ParticipantStatusChanged,
		EventID:       event.ID,
		EventTitle:    event.Title,
		ParticipantID: update.Participant.ID,
		UserID:        update.Participant.UserID,
		OrganizerID:   event.OrganizerID,
		OldStatus:     update.OldStatus,
		NewStatus:     update.NewStatus,
		OccurredAt:    time.Now(),
	})

	return update, nil
}

// IsFull reports whether the event has no confirmed capacity left.
func (s *ParticipationService) IsFull(event domain.Event) bool {
	return event.IsFull()
}

func isDomainErr(err error) bool {
	for _, sentinel := range []error{
		ErrEventNotFound,
		ErrParticipantNotFound,
		ErrEventFull,
		ErrEventNotOpen,
		ErrAlreadyRegistered,
		ErrNotRegistered,
		ErrInvalidStatus,
		ErrInvalidTransition,
		ErrPermissionDenied,
		ErrCommentNotFound,
		ErrRatingNotFound,
		ErrAlreadyRated,
		ErrRatingOutOfRange,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}
