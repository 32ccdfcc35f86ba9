package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

var ErrCommentNotFound = repository.ErrCommentNotFound

type CommentRepo interface {
	Create(ctx context.Context, comment domain.EventComment) (domain.EventComment, error)
	FindByID(ctx context.Context, eventID, commentID uint) (domain.EventComment, error)
	UpdateContent(ctx context.Context, comment domain.EventComment) (domain.EventComment, error)
	Delete(ctx context.Context, commentID uint) error
	ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]domain.EventComment, int64, error)
}

type CommentService struct {
	comments     CommentRepo
	events       EventRepo
	participants ParticipantRepo
	dispatcher   Dispatcher
}

func NewCommentService(comments CommentRepo, events EventRepo, participants ParticipantRepo, dispatcher Dispatcher) *CommentService {
	return &CommentService{
		comments:     comments,
		events:       events,
		participants: participants,
		dispatcher:   dispatcher,
	}
}

func (s *CommentService) Create(ctx context.Context, actingUserID, eventID uint, content string) (domain.EventComment, error) {
	event, participation, err := s.loadContext(ctx, eventID, actingUserID)
	if err != nil {
		return domain.EventComment{}, err
	}

	if !CanComment(event, participation, CanEdit(event, actingUserID)) {
		return domain.EventComment{}, ErrPermissionDenied
	}

	comment, err := s.comments.Create(ctx, domain.EventComment{
		EventID: eventID,
		UserID:  actingUserID,
		Content: content,
	})
	if err != nil {
		return domain.EventComment{}, fmt.Errorf("s.comments.Create -> %w", err)
	}

	s.dispatcher.BroadcastEventUpdate(ctx, domain.EventUpdate{
		EventID:   eventID,
		Type:      "comment_added",
		Payload:   comment,
		Timestamp: time.Now(),
	})

	return comment, nil
}

// Update is author-only.
func (s *CommentService) Update(ctx context.Context, actingUserID, eventID, commentID uint, content string) (domain.EventComment, error) {
	comment, err := s.comments.FindByID(ctx, eventID, commentID)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return domain.EventComment{}, err
		}
		return domain.EventComment{}, fmt.Errorf("s.comments.FindByID -> %w", err)
	}

	if comment.UserID != actingUserID {
		return domain.EventComment{}, ErrPermissionDenied
	}

	comment.Content = content
	updated, err := s.comments.UpdateContent(ctx, comment)
	if err != nil {
		return domain.EventComment{}, fmt.Errorf("s.comments.UpdateContent -> %w", err)
	}

	return updated, nil
}

// Delete is allowed to the author and to the event's organizer.
func (s *CommentService) Delete(ctx context.Context, actingUserID, eventID, commentID uint) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return err
		}
		return fmt.Errorf("s.events.GetByID -> %w", err)
	}

	comment, err := s.comments.FindByID(ctx, eventID, commentID)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return err
		}
		return fmt.Errorf("s.comments.FindByID -> %w", err)
	}

	if !CanDeleteComment(comment, event, actingUserID) {
		return ErrPermissionDenied
	}

	if err = s.comments.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("s.comments.Delete -> %w", err)
	}

	return nil
}

func (s *CommentService) ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]domain.EventComment, int64, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	comments, total, err := s.comments.ListByEvent(ctx, eventID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("s.comments.ListByEvent -> %w", err)
	}

	return comments, total, nil
}

func (s *CommentService) loadContext(ctx context.Context, eventID, userID uint) (domain.Event, domain.EventParticipant, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return domain.Event{}, domain.EventParticipant{}, err
		}
		return domain.Event{}, domain.EventParticipant{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	participation, err := s.participants.FindByEventAndUser(ctx, eventID, userID)
	if err != nil && !errors.Is(err, ErrParticipantNotFound) {
		return domain.Event{}, domain.EventParticipant{}, fmt.Errorf("s.participants.FindByEventAndUser -> %w", err)
	}

	return event, participation, nil
}
