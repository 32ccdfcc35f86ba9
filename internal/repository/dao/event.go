package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

// EventTx is the accessor handed to WithEventLock callbacks. Every method
// runs on the transaction that holds the exclusive lock on the event row.
type EventTx struct {
	tx    *gorm.DB
	event *Event
}

func (t *EventTx) Event() *Event {
	return t.event
}

func (t *EventTx) FindParticipation(userID uint) (EventParticipant, error) {
	var p EventParticipant
	err := t.tx.Where("event_id = ? AND user_id = ?", t.event.ID, userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return EventParticipant{}, ErrParticipantNotFound
	}

	return p, err
}

func (t *EventTx) FindParticipantByID(participantID uint) (EventParticipant, error) {
	var p EventParticipant
	err := t.tx.Where("event_id = ? AND id = ?", t.event.ID, participantID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return EventParticipant{}, ErrParticipantNotFound
	}

	return p, err
}

func (t *EventTx) SaveParticipation(p EventParticipant) (EventParticipant, error) {
	if err := t.tx.Save(&p).Error; err != nil {
		return EventParticipant{}, err
	}

	return p, nil
}

// AdjustParticipantCount applies a guarded increment or decrement to the
// event's current_participants counter. The WHERE clause keeps the counter
// inside [0, max_participants]; an update touching zero rows means the guard
// failed and the caller must decide what that means (full event or drift).
func (t *EventTx) AdjustParticipantCount(delta int) error {
	if delta == 0 {
		return nil
	}

	query := t.tx.Model(&Event{}).Where("id = ?", t.event.ID)
	if delta > 0 {
		query = query.Where("current_participants + ? <= max_participants", delta)
	} else {
		query = query.Where("current_participants + ? >= 0", delta)
	}

	result := query.UpdateColumn("current_participants", gorm.Expr("current_participants + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrencyConflict
	}

	t.event.CurrentParticipants += delta

	return nil
}

// WithEventLock runs fn inside a transaction that holds SELECT ... FOR UPDATE
// on the event row, serializing all participation mutations per event. The
// transaction commits when fn returns nil and rolls back otherwise.
func (d *EventDAO) WithEventLock(ctx context.Context, eventID uint, fn func(tx *EventTx) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ev, eventID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		if err != nil {
			return err
		}

		return fn(&EventTx{tx: tx, event: &ev})
	})
}

func (d *EventDAO) Create(ctx context.Context, event Event) (Event, error) {
	if err := d.db.WithContext(ctx).Create(&event).Error; err != nil {
		return Event{}, err
	}

	return event, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	if err := d.db.WithContext(ctx).Save(&event).Error; err != nil {
		return Event{}, err
	}

	return event, nil
}

func (d *EventDAO) GetByID(ctx context.Context, id uint) (Event, error) {
	var event Event
	err := d.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Categories").
		First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Event{}, ErrEventNotFound
	}

	return event, err
}

// List returns events visible to userID: published ones plus the user's own.
// userID 0 means an anonymous viewer.
func (d *EventDAO) List(ctx context.Context, userID uint, limit, offset int) ([]Event, int64, error) {
	query := d.db.WithContext(ctx).Model(&Event{})
	if userID == 0 {
		query = query.Where("status = ?", "published")
	} else {
		query = query.Where("status = ? OR organizer_id = ?", "published", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []Event
	err := query.
		Preload("Organizer").
		Preload("Categories").
		Order("date asc").
		Order("start_time asc").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// ListByOrganizer returns every event the organizer owns, regardless of
// status.
func (d *EventDAO) ListByOrganizer(ctx context.Context, organizerID uint) ([]Event, error) {
	var events []Event
	err := d.db.WithContext(ctx).
		Preload("Categories").
		Where("organizer_id = ?", organizerID).
		Order("date asc").
		Order("start_time asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (d *EventDAO) SoftDelete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) ReplaceCategories(ctx context.Context, eventID uint, categoryIDs []uint) error {
	var categories []EventCategory
	if len(categoryIDs) > 0 {
		if err := d.db.WithContext(ctx).Find(&categories, categoryIDs).Error; err != nil {
			return err
		}
	}

	return d.db.WithContext(ctx).
		Model(&Event{ID: eventID}).
		Association("Categories").
		Replace(categories)
}

func (d *EventDAO) ListCategories(ctx context.Context) ([]EventCategory, error) {
	var categories []EventCategory
	if err := d.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}

	return categories, nil
}
