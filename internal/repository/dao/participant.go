package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) FindByEventAndUser(ctx context.Context, eventID, userID uint) (EventParticipant, error) {
	var p EventParticipant
	err := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return EventParticipant{}, ErrParticipantNotFound
	}

	return p, err
}

func (d *ParticipantDAO) FindByID(ctx context.Context, eventID, participantID uint) (EventParticipant, error) {
	var p EventParticipant
	err := d.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ? AND id = ?", eventID, participantID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return EventParticipant{}, ErrParticipantNotFound
	}

	return p, err
}

// ListByEvent returns the event's roster, optionally filtered by status.
func (d *ParticipantDAO) ListByEvent(ctx context.Context, eventID uint, status string, limit, offset int) ([]EventParticipant, int64, error) {
	query := d.db.WithContext(ctx).Model(&EventParticipant{}).Where("event_id = ?", eventID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var participants []EventParticipant
	err := query.
		Preload("User").
		Order("registration_date asc").
		Limit(limit).
		Offset(offset).
		Find(&participants).Error
	if err != nil {
		return nil, 0, err
	}

	return participants, total, nil
}

// ListEventsByUser returns events the user holds a non-cancelled participation
// in, newest date first.
func (d *ParticipantDAO) ListEventsByUser(ctx context.Context, userID uint) ([]Event, error) {
	var events []Event
	err := d.db.WithContext(ctx).
		Joins("JOIN event_participants ON event_participants.event_id = events.id").
		Where("event_participants.user_id = ? AND event_participants.status <> ?", userID, "cancelled").
		Preload("Organizer").
		Order("events.date desc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (d *ParticipantDAO) CountByUserAndStatus(ctx context.Context, userID uint, status string) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&EventParticipant{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error

	return count, err
}
