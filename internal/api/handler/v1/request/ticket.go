package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	minTitleLength = 3
	minCost        = 1
)

type CreateTicketRequest struct {
	Title string `json:"title"`
	Cost  *int   `json:"cost"`
}

func (req *CreateTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(minTitleLength, 0)),
		validation.Field(&req.Cost, validation.Required, validation.Min(minCost)),
	)
}

type UpdateTicketRequest struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Cost  *int   `json:"cost"`
}

func (req *UpdateTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.RuneLength(minTitleLength, 0)),
		validation.Field(&req.Cost, validation.Required, validation.Min(minCost)),
	)
}

type TicketIDRequest struct {
	ID uint `json:"id" form:"id"`
}

func (req *TicketIDRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ID, validation.Required),
	)
}
