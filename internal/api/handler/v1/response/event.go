package response

import (
	"github.com/eventhub/eventhub-api/internal/domain"
)

type PaginatedEvents struct {
	Events []domain.Event `json:"events"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type PaginatedParticipants struct {
	Participants []domain.EventParticipant `json:"participants"`
	Total        int64                     `json:"total"`
	Limit        int                       `json:"limit"`
	Offset       int                       `json:"offset"`
}

type PaginatedComments struct {
	Comments []domain.EventComment `json:"comments"`
	Total    int64                 `json:"total"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
}

type PaginatedRatings struct {
	Ratings []domain.EventRating `json:"ratings"`
	Total   int64                `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

type PaginatedNotifications struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
}
