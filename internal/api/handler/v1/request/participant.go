package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateParticipantStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateParticipantStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In("pending", "confirmed", "cancelled", "attended")),
	)
}
