package repository

import (
	"context"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
)

var (
	ErrEventNotFound       = dao.ErrEventNotFound
	ErrParticipantNotFound = dao.ErrParticipantNotFound
	ErrConcurrencyConflict = dao.ErrConcurrencyConflict
)

// EventTx is the domain-typed view of a transaction holding the lock on one
// event row. The participation engine does all of its writes through it.
type EventTx interface {
	Event() domain.Event
	FindParticipation(userID uint) (domain.EventParticipant, error)
	FindParticipantByID(participantID uint) (domain.EventParticipant, error)
	SaveParticipation(p domain.EventParticipant) (domain.EventParticipant, error)
	AdjustParticipantCount(delta int) error
}

type EventDAO interface {
	WithEventLock(ctx context.Context, eventID uint, fn func(tx *dao.EventTx) error) error
	Create(ctx context.Context, event dao.Event) (dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	GetByID(ctx context.Context, id uint) (dao.Event, error)
	List(ctx context.Context, userID uint, limit, offset int) ([]dao.Event, int64, error)
	ListByOrganizer(ctx context.Context, organizerID uint) ([]dao.Event, error)
	SoftDelete(ctx context.Context, id uint) error
	ReplaceCategories(ctx context.Context, eventID uint, categoryIDs []uint) error
	ListCategories(ctx context.Context) ([]dao.EventCategory, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

// eventTx adapts dao.EventTx to the domain-typed EventTx interface.
type eventTx struct {
	tx *dao.EventTx
}

func (t *eventTx) Event() domain.Event {
	return eventDaoToDomain(*t.tx.Event())
}

func (t *eventTx) FindParticipation(userID uint) (domain.EventParticipant, error) {
	p, err := t.tx.FindParticipation(userID)
	if err != nil {
		return domain.EventParticipant{}, err
	}

	return participantDaoToDomain(p), nil
}

func (t *eventTx) FindParticipantByID(participantID uint) (domain.EventParticipant, error) {
	p, err := t.tx.FindParticipantByID(participantID)
	if err != nil {
		return domain.EventParticipant{}, err
	}

	return participantDaoToDomain(p), nil
}

func (t *eventTx) SaveParticipation(p domain.EventParticipant) (domain.EventParticipant, error) {
	saved, err := t.tx.SaveParticipation(participantDomainToDao(p))
	if err != nil {
		return domain.EventParticipant{}, err
	}

	return participantDaoToDomain(saved), nil
}

func (t *eventTx) AdjustParticipantCount(delta int) error {
	return t.tx.AdjustParticipantCount(delta)
}

func (r *EventRepository) WithEventLock(ctx context.Context, eventID uint, fn func(tx EventTx) error) error {
	return r.dao.WithEventLock(ctx, eventID, func(tx *dao.EventTx) error {
		return fn(&eventTx{tx: tx})
	})
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event, categoryIDs []uint) (domain.Event, error) {
	created, err := r.dao.Create(ctx, eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, err
	}

	if len(categoryIDs) > 0 {
		if err = r.dao.ReplaceCategories(ctx, created.ID, categoryIDs); err != nil {
			return domain.Event{}, err
		}
	}

	return r.GetByID(ctx, created.ID)
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event, categoryIDs []uint) (domain.Event, error) {
	existing, err := r.dao.GetByID(ctx, event.ID)
	if err != nil {
		return domain.Event{}, err
	}

	updated := eventDomainToDao(event)
	updated.CreatedAt = existing.CreatedAt
	if _, err = r.dao.Update(ctx, updated); err != nil {
		return domain.Event{}, err
	}

	if categoryIDs != nil {
		if err = r.dao.ReplaceCategories(ctx, event.ID, categoryIDs); err != nil {
			return domain.Event{}, err
		}
	}

	return r.GetByID(ctx, event.ID)
}

func (r *EventRepository) GetByID(ctx context.Context, id uint) (domain.Event, error) {
	event, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	return eventDaoToDomain(event), nil
}

func (r *EventRepository) List(ctx context.Context, userID uint, limit, offset int) ([]domain.Event, int64, error) {
	events, total, err := r.dao.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return eventsDaoToDomain(events), total, nil
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Event, error) {
	events, err := r.dao.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	return eventsDaoToDomain(events), nil
}

func (r *EventRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.dao.SoftDelete(ctx, id)
}

func (r *EventRepository) ListCategories(ctx context.Context) ([]domain.EventCategory, error) {
	categories, err := r.dao.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.EventCategory, len(categories))
	for i, c := range categories {
		result[i] = domain.EventCategory{ID: c.ID, Name: c.Name}
	}

	return result, nil
}
