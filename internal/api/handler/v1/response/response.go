package response

import "github.com/vietanh2810/ticket-order-api/internal/domain"

type Message struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type UserResponse struct {
	User domain.User `json:"user"`
}

type TicketResponse struct {
	Message string        `json:"message"`
	Ticket  domain.Ticket `json:"ticket"`
}

type TicketsResponse struct {
	Message string          `json:"message"`
	Tickets []domain.Ticket `json:"tickets"`
}

type OrdersResponse struct {
	Message string             `json:"message"`
	Orders  []domain.OrderLine `json:"orders"`
}
