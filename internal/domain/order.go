package domain

import (
	"errors"
	"math"
	"time"
)

var ErrTotalCostOverflow = errors.New("total cost out of range")

type Order struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	TicketID    uint      `json:"ticket_id"`
	TicketCount int       `json:"ticket_count"`
	TotalCost   int       `json:"total_cost"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Price sets TotalCost from the ticket's current unit cost. The result is a
// snapshot; later ticket price changes leave it untouched. A product that
// does not fit in an int leaves the order unchanged.
func (o *Order) Price(ticket Ticket) error {
	if ticket.Cost > 0 && o.TicketCount > math.MaxInt/ticket.Cost {
		return ErrTotalCostOverflow
	}

	o.TicketID = ticket.ID
	o.TotalCost = ticket.Cost * o.TicketCount

	return nil
}

func (o *Order) IsValid() bool {
	return o.TicketCount > 0
}

// OrderLine is an order joined with its ticket. Title and Cost are nil when
// the ticket has been deleted since.
type OrderLine struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	TicketID    uint      `json:"ticket_id"`
	TicketCount int       `json:"ticket_count"`
	TotalCost   int       `json:"total_cost"`
	Title       *string   `json:"title"`
	Cost        *int      `json:"cost"`
	CreatedAt   time.Time `json:"created_at"`
}
