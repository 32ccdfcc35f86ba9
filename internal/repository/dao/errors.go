package dao

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrRatingNotFound       = errors.New("rating not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserEmailExists      = errors.New("email already exists")
	ErrAlreadyRated         = errors.New("user already rated this event")
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrConcurrencyConflict is returned when a guarded counter update touches
	// zero rows, i.e. the adjustment would break 0 <= current <= max.
	ErrConcurrencyConflict = errors.New("conditional counter update affected no rows")
)
