package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxParticipants int    `json:"max_participants"`
	CategoryIDs     []uint `json:"category_ids"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.StartTime, validation.Required, validation.Date("15:04")),
		validation.Field(&req.EndTime, validation.Required, validation.Date("15:04")),
		validation.Field(&req.MaxParticipants, validation.Required, validation.Min(1)),
	)
}

type UpdateEventRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxParticipants int    `json:"max_participants"`
	CategoryIDs     []uint `json:"category_ids"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.StartTime, validation.Required, validation.Date("15:04")),
		validation.Field(&req.EndTime, validation.Required, validation.Date("15:04")),
		validation.Field(&req.MaxParticipants, validation.Required, validation.Min(1)),
	)
}

type TransitionEventRequest struct {
	Status string `json:"status"`
}

func (req *TransitionEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In("draft", "published", "cancelled", "completed")),
	)
}
