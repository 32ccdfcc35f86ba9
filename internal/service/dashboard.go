package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/eventhub/eventhub-api/internal/domain"
)

type DashboardEventRepo interface {
	ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Event, error)
}

type OrganizerRatingAverager interface {
	AverageForOrganizer(ctx context.Context, organizerID uint) (float64, error)
}

type DashboardService struct {
	events       DashboardEventRepo
	participants ParticipantRepo
	ratings      OrganizerRatingAverager
}

func NewDashboardService(events DashboardEventRepo, participants ParticipantRepo, ratings OrganizerRatingAverager) *DashboardService {
	return &DashboardService{
		events:       events,
		participants: participants,
		ratings:      ratings,
	}
}

// Statistics summarizes a user's activity on both sides of the platform:
// events they attend and events they organize.
type Statistics struct {
	RegisteredCount   int64   `json:"registered_count"`
	ConfirmedCount    int64   `json:"confirmed_count"`
	AttendedCount     int64   `json:"attended_count"`
	OrganizedCount    int     `json:"organized_count"`
	TotalParticipants int     `json:"total_participants"`
	AverageRating     float64 `json:"average_rating"`
}

// RegisteredEvents lists the events the user holds an active participation in.
func (s *DashboardService) RegisteredEvents(ctx context.Context, userID uint) ([]domain.Event, error) {
	events, err := s.participants.ListEventsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.participants.ListEventsByUser -> %w", err)
	}

	return events, nil
}

// OrganizedEvents lists the user's own events in every status.
func (s *DashboardService) OrganizedEvents(ctx context.Context, userID uint) ([]domain.Event, error) {
	events, err := s.events.ListByOrganizer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.events.ListByOrganizer -> %w", err)
	}

	return events, nil
}

// UpcomingEvents returns the next `limit` registered events whose date has
// not passed, soonest first.
func (s *DashboardService) UpcomingEvents(ctx context.Context, userID uint, limit int) ([]domain.Event, error) {
	registered, err := s.participants.ListEventsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.participants.ListEventsByUser -> %w", err)
	}

	now := time.Now().Truncate(24 * time.Hour)
	upcoming := make([]domain.Event, 0, len(registered))
	for _, event := range registered {
		if !event.Date.Before(now) {
			upcoming = append(upcoming, event)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].Date.Equal(upcoming[j].Date) {
			return upcoming[i].StartTime < upcoming[j].StartTime
		}
		return upcoming[i].Date.Before(upcoming[j].Date)
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	return upcoming, nil
}

// GetStatistics aggregates the user's participation counts, their organized
// events' headcount, and the average rating across their events.
func (s *DashboardService) GetStatistics(ctx context.Context, userID uint) (Statistics, error) {
	var stats Statistics

	for status, target := range map[domain.ParticipationStatus]*int64{
		domain.ParticipationPending:   &stats.RegisteredCount,
		domain.ParticipationConfirmed: &stats.ConfirmedCount,
		domain.ParticipationAttended:  &stats.AttendedCount,
	} {
		count, err := s.participants.CountByUserAndStatus(ctx, userID, status)
		if err != nil {
			return Statistics{}, fmt.Errorf("s.participants.CountByUserAndStatus -> %w", err)
		}
		*target = count
	}
	stats.RegisteredCount += stats.ConfirmedCount + stats.AttendedCount

	organized, err := s.events.ListByOrganizer(ctx, userID)
	if err != nil {
		return Statistics{}, fmt.Errorf("s.events.ListByOrganizer -> %w", err)
	}

	stats.OrganizedCount = len(organized)
	for _, event := range organized {
		stats.TotalParticipants += event.CurrentParticipants
	}

	average, err := s.ratings.AverageForOrganizer(ctx, userID)
	if err != nil {
		return Statistics{}, fmt.Errorf("s.ratings.AverageForOrganizer -> %w", err)
	}
	stats.AverageRating = average

	return stats, nil
}
