package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// TicketCount is a pointer so an explicit 0 passes shape validation and is
// rejected later as an invalid count.
type AddOrderRequest struct {
	TicketID    uint `json:"ticket_id"`
	TicketCount *int `json:"ticket_count"`
}

func (req *AddOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TicketID, validation.Required),
		validation.Field(&req.TicketCount, validation.NotNil),
	)
}

type UpdateOrderRequest struct {
	ID          uint `json:"id"`
	TicketID    uint `json:"ticket_id"`
	TicketCount *int `json:"ticket_count"`
}

func (req *UpdateOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ID, validation.Required),
		validation.Field(&req.TicketID, validation.Required),
		validation.Field(&req.TicketCount, validation.NotNil),
	)
}

type OrderIDRequest struct {
	ID uint `json:"id"`
}

func (req *OrderIDRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ID, validation.Required),
	)
}
