package v1

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/service"
)

type mockTicketService struct {
	mock.Mock
}

func (m *mockTicketService) CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	args := m.Called(ctx, ticket)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func (m *mockTicketService) GetTicket(ctx context.Context, id uint) (domain.Ticket, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func (m *mockTicketService) GetTickets(ctx context.Context) ([]domain.Ticket, error) {
	args := m.Called(ctx)
	tickets, _ := args.Get(0).([]domain.Ticket)
	return tickets, args.Error(1)
}

func (m *mockTicketService) UpdateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	args := m.Called(ctx, ticket)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func (m *mockTicketService) DeleteTicket(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTicketRouter(svc TicketService) http.Handler {
	h := NewTicketHandler(svc)
	router := newRouter()
	router.POST("/createTicket", h.HandleCreateTicket)
	router.GET("/displayTicketById", h.HandleGetTicket)
	router.GET("/displayAllTickets", h.HandleGetTickets)
	router.POST("/updateTicketById", h.HandleUpdateTicket)
	router.POST("/deleteTicketById", h.HandleDeleteTicket)
	return router
}

func TestTicketHandler_HandleCreateTicket(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		err        error
		wantStatus int
	}{
		{name: "created", body: map[string]any{"title": "Concert", "cost": 50}, wantStatus: http.StatusCreated},
		{name: "title taken", body: map[string]any{"title": "Concert", "cost": 50}, err: service.ErrTicketTitleExists, wantStatus: http.StatusConflict},
		{name: "short title", body: map[string]any{"title": "Co", "cost": 50}, wantStatus: http.StatusUnauthorized},
		{name: "zero cost", body: map[string]any{"title": "Concert", "cost": 0}, wantStatus: http.StatusUnauthorized},
		{name: "negative cost", body: map[string]any{"title": "Concert", "cost": -5}, wantStatus: http.StatusUnauthorized},
		{name: "missing cost", body: map[string]any{"title": "Concert"}, wantStatus: http.StatusUnauthorized},
		{name: "fractional cost", body: `{"title":"Concert","cost":1.5}`, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockTicketService)
			svc.On("CreateTicket", mock.Anything, domain.Ticket{Title: "Concert", Cost: 50}).Return(domain.Ticket{ID: 1}, tt.err)

			rec := do(newTicketRouter(svc), http.MethodPost, "/createTicket", "", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTicketHandler_HandleGetTicket(t *testing.T) {
	svc := new(mockTicketService)
	svc.On("GetTicket", mock.Anything, uint(1)).Return(domain.Ticket{ID: 1, Title: "Concert", Cost: 50}, nil)
	svc.On("GetTicket", mock.Anything, uint(2)).Return(domain.Ticket{}, service.ErrTicketNotFound)
	svc.On("GetTicket", mock.Anything, uint(3)).Return(domain.Ticket{}, errors.New("db down"))
	router := newTicketRouter(svc)

	rec := do(router, http.MethodGet, "/displayTicketById?id=1", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	ticket, ok := decode(t, rec)["ticket"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Concert", ticket["title"])

	rec = do(router, http.MethodGet, "/displayTicketById?id=2", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Ticket Not Found With This ID", decode(t, rec)["message"])

	rec = do(router, http.MethodGet, "/displayTicketById?id=3", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")

	rec = do(router, http.MethodGet, "/displayTicketById", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(router, http.MethodGet, "/displayTicketById?id=abc", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTicketHandler_HandleGetTickets(t *testing.T) {
	svc := new(mockTicketService)
	svc.On("GetTickets", mock.Anything).Return(nil, nil)

	rec := do(newTicketRouter(svc), http.MethodGet, "/displayAllTickets", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Tickets Fetched Successfully","tickets":[]}`, rec.Body.String())
}

func TestTicketHandler_HandleUpdateTicket(t *testing.T) {
	body := map[string]any{"id": 1, "title": "Concert", "cost": 60}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "updated", wantStatus: http.StatusCreated},
		{name: "missing", err: service.ErrTicketNotFound, wantStatus: http.StatusNotFound},
		{name: "title taken", err: service.ErrTicketTitleExists, wantStatus: http.StatusConflict},
		{name: "store refused", err: service.ErrTicketNotUpdated, wantStatus: http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockTicketService)
			svc.On("UpdateTicket", mock.Anything, domain.Ticket{ID: 1, Title: "Concert", Cost: 60}).Return(domain.Ticket{}, tt.err)

			rec := do(newTicketRouter(svc), http.MethodPost, "/updateTicketById", "", body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestTicketHandler_HandleDeleteTicket(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		err        error
		wantStatus int
	}{
		{name: "deleted", body: map[string]any{"id": 1}, wantStatus: http.StatusCreated},
		{name: "missing", body: map[string]any{"id": 1}, err: service.ErrTicketNotFound, wantStatus: http.StatusNotFound},
		{name: "store refused", body: map[string]any{"id": 1}, err: service.ErrTicketNotDeleted, wantStatus: http.StatusAccepted},
		{name: "no id", body: map[string]any{}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockTicketService)
			svc.On("DeleteTicket", mock.Anything, uint(1)).Return(tt.err)

			rec := do(newTicketRouter(svc), http.MethodPost, "/deleteTicketById", "", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
