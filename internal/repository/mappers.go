package repository

import (
	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
)

func eventDomainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		Location:            e.Location,
		Date:                e.Date,
		StartTime:           e.StartTime,
		EndTime:             e.EndTime,
		MaxParticipants:     e.MaxParticipants,
		CurrentParticipants: e.CurrentParticipants,
		OrganizerID:         e.OrganizerID,
		Status:              string(e.Status),
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func eventDaoToDomain(e dao.Event) domain.Event {
	categories := make([]domain.EventCategory, len(e.Categories))
	for i, c := range e.Categories {
		categories[i] = domain.EventCategory{ID: c.ID, Name: c.Name}
	}

	return domain.Event{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		Location:            e.Location,
		Date:                e.Date,
		StartTime:           e.StartTime,
		EndTime:             e.EndTime,
		MaxParticipants:     e.MaxParticipants,
		CurrentParticipants: e.CurrentParticipants,
		OrganizerID:         e.OrganizerID,
		Status:              domain.EventStatus(e.Status),
		Categories:          categories,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func eventsDaoToDomain(events []dao.Event) []domain.Event {
	result := make([]domain.Event, len(events))
	for i, e := range events {
		result[i] = eventDaoToDomain(e)
	}

	return result
}

func participantDomainToDao(p domain.EventParticipant) dao.EventParticipant {
	return dao.EventParticipant{
		ID:               p.ID,
		EventID:          p.EventID,
		UserID:           p.UserID,
		Status:           string(p.Status),
		RegistrationDate: p.RegistrationDate,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func participantDaoToDomain(p dao.EventParticipant) domain.EventParticipant {
	participant := domain.EventParticipant{
		ID:               p.ID,
		EventID:          p.EventID,
		UserID:           p.UserID,
		Status:           domain.ParticipationStatus(p.Status),
		RegistrationDate: p.RegistrationDate,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.User.ID != 0 {
		user := userDaoToDomain(p.User)
		participant.User = &user
	}

	return participant
}

func participantsDaoToDomain(participants []dao.EventParticipant) []domain.EventParticipant {
	result := make([]domain.EventParticipant, len(participants))
	for i, p := range participants {
		result[i] = participantDaoToDomain(p)
	}

	return result
}

func commentDaoToDomain(c dao.EventComment) domain.EventComment {
	comment := domain.EventComment{
		ID:        c.ID,
		EventID:   c.EventID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.User.ID != 0 {
		user := userDaoToDomain(c.User)
		comment.User = &user
	}

	return comment
}

func ratingDaoToDomain(r dao.EventRating) domain.EventRating {
	rating := domain.EventRating{
		ID:        r.ID,
		EventID:   r.EventID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.User.ID != 0 {
		user := userDaoToDomain(r.User)
		rating.User = &user
	}

	return rating
}

func userDaoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
