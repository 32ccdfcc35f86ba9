package repository

import (
	"context"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
)

var (
	ErrCommentNotFound = dao.ErrCommentNotFound
	ErrRatingNotFound  = dao.ErrRatingNotFound
	ErrAlreadyRated    = dao.ErrAlreadyRated
)

type CommentDAO interface {
	Create(ctx context.Context, comment dao.EventComment) (dao.EventComment, error)
	FindByID(ctx context.Context, eventID, commentID uint) (dao.EventComment, error)
	Update(ctx context.Context, comment dao.EventComment) (dao.EventComment, error)
	Delete(ctx context.Context, commentID uint) error
	ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]dao.EventComment, int64, error)
}

type CommentRepository struct {
	dao CommentDAO
}

func NewCommentRepository(dao CommentDAO) *CommentRepository {
	return &CommentRepository{
		dao: dao,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment domain.EventComment) (domain.EventComment, error) {
	created, err := r.dao.Create(ctx, dao.EventComment{
		EventID: comment.EventID,
		UserID:  comment.UserID,
		Content: comment.Content,
	})
	if err != nil {
		return domain.EventComment{}, err
	}

	return commentDaoToDomain(created), nil
}

func (r *CommentRepository) FindByID(ctx context.Context, eventID, commentID uint) (domain.EventComment, error) {
	comment, err := r.dao.FindByID(ctx, eventID, commentID)
	if err != nil {
		return domain.EventComment{}, err
	}

	return commentDaoToDomain(comment), nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, comment domain.EventComment) (domain.EventComment, error) {
	existing, err := r.dao.FindByID(ctx, comment.EventID, comment.ID)
	if err != nil {
		return domain.EventComment{}, err
	}

	existing.Content = comment.Content
	updated, err := r.dao.Update(ctx, existing)
	if err != nil {
		return domain.EventComment{}, err
	}

	return commentDaoToDomain(updated), nil
}

func (r *CommentRepository) Delete(ctx context.Context, commentID uint) error {
	return r.dao.Delete(ctx, commentID)
}

func (r *CommentRepository) ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]domain.EventComment, int64, error) {
	comments, total, err := r.dao.ListByEvent(ctx, eventID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.EventComment, len(comments))
	for i, c := range comments {
		result[i] = commentDaoToDomain(c)
	}

	return result, total, nil
}
