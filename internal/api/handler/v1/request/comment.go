package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCommentRequest struct {
	Content string `json:"content"`
}

func (req *CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Content, validation.Required, validation.Length(1, 2000)),
	)
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

func (req *UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Content, validation.Required, validation.Length(1, 2000)),
	)
}
