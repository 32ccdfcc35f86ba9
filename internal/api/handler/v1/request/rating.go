package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateRatingRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (req *CreateRatingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comment, validation.Length(0, 2000)),
	)
}

type UpdateRatingRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (req *UpdateRatingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comment, validation.Length(0, 2000)),
	)
}
