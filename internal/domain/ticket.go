package domain

import "time"

type Ticket struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Cost      int       `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
