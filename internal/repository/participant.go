package repository

import (
	"context"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
)

type ParticipantDAO interface {
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (dao.EventParticipant, error)
	FindByID(ctx context.Context, eventID, participantID uint) (dao.EventParticipant, error)
	ListByEvent(ctx context.Context, eventID uint, status string, limit, offset int) ([]dao.EventParticipant, int64, error)
	ListEventsByUser(ctx context.Context, userID uint) ([]dao.Event, error)
	CountByUserAndStatus(ctx context.Context, userID uint, status string) (int64, error)
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.EventParticipant, error) {
	p, err := r.dao.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return domain.EventParticipant{}, err
	}

	return participantDaoToDomain(p), nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, eventID, participantID uint) (domain.EventParticipant, error) {
	p, err := r.dao.FindByID(ctx, eventID, participantID)
	if err != nil {
		return domain.EventParticipant{}, err
	}

	return participantDaoToDomain(p), nil
}

func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventID uint, status domain.ParticipationStatus, limit, offset int) ([]domain.EventParticipant, int64, error) {
	participants, total, err := r.dao.ListByEvent(ctx, eventID, string(status), limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return participantsDaoToDomain(participants), total, nil
}

func (r *ParticipantRepository) ListEventsByUser(ctx context.Context, userID uint) ([]domain.Event, error) {
	events, err := r.dao.ListEventsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return eventsDaoToDomain(events), nil
}

func (r *ParticipantRepository) CountByUserAndStatus(ctx context.Context, userID uint, status domain.ParticipationStatus) (int64, error) {
	return r.dao.CountByUserAndStatus(ctx, userID, string(status))
}
