package dao

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Event struct {
	ID                  uint   `gorm:"primaryKey"`
	Title               string `gorm:"not null"`
	Description         string `gorm:"type:text;not null"`
	Location            string `gorm:"not null"`
	Date                time.Time
	StartTime           string `gorm:"not null"`
	EndTime             string `gorm:"not null"`
	MaxParticipants     int    `gorm:"not null"`
	CurrentParticipants int    `gorm:"not null;default:0"`
	OrganizerID         uint   `gorm:"not null;index"`
	Organizer           User   `gorm:"foreignKey:OrganizerID"`
	Status              string `gorm:"not null;default:draft;index"`
	Participants        []EventParticipant `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Comments            []EventComment     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Ratings             []EventRating      `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Categories          []EventCategory    `gorm:"many2many:event_category_relationships;"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

// EventParticipant keeps one row per (event, user) for the whole relationship
// lifetime. Cancellation flips status; re-registration reuses the row, which
// is what lets the unique index hold.
type EventParticipant struct {
	ID               uint   `gorm:"primaryKey"`
	EventID          uint   `gorm:"not null;uniqueIndex:idx_event_participants_event_user"`
	UserID           uint   `gorm:"not null;uniqueIndex:idx_event_participants_event_user"`
	User             User   `gorm:"foreignKey:UserID"`
	Status           string `gorm:"not null;default:pending;index"`
	RegistrationDate time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EventComment struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null"`
	User      User   `gorm:"foreignKey:UserID"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventRating struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;uniqueIndex:idx_event_ratings_event_user"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_event_ratings_event_user"`
	User      User   `gorm:"foreignKey:UserID"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventCategory struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	EventID   uint   `gorm:"not null"`
	Type      string `gorm:"not null"`
	Message   string `gorm:"not null"`
	ReadAt    *time.Time
	CreatedAt time.Time
}
