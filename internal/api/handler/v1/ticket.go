package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/ticket-order-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/ticket-order-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/service"
)

const (
	msgTicketNotFound    = "Ticket Not Found With This ID"
	msgTicketTitleExists = "Ticket Title Already Exist"
)

type TicketService interface {
	CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	GetTicket(ctx context.Context, id uint) (domain.Ticket, error)
	GetTickets(ctx context.Context) ([]domain.Ticket, error)
	UpdateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	DeleteTicket(ctx context.Context, id uint) error
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandleCreateTicket godoc
// @Summary      Create a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateTicketRequest true "request body"
// @Success      201      {object}   response.Message
// @Failure      401      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /createTicket [post]
func (h *TicketHandler) HandleCreateTicket(ctx *gin.Context) {
	var req request.CreateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	_, err := h.svc.CreateTicket(ctx.Request.Context(), domain.Ticket{
		Title: req.Title,
		Cost:  *req.Cost,
	})
	if err != nil {
		if errors.Is(err, service.ErrTicketTitleExists) {
			response.RenderErr(ctx, response.ErrConflict(msgTicketTitleExists, err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateTicket -> h.svc.CreateTicket -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.Message{Message: "Ticket Created Successfully"})
}

// HandleGetTicket godoc
// @Summary      Get a ticket by id
// @Tags         tickets
// @Produce      json
// @Param        id       query      int  true  "ticket id"
// @Success      200      {object}   response.TicketResponse
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /displayTicketById [get]
func (h *TicketHandler) HandleGetTicket(ctx *gin.Context) {
	var req request.TicketIDRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	ticket, err := h.svc.GetTicket(ctx.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(msgTicketNotFound, err))
			return
		}

		err = fmt.Errorf("v1.HandleGetTicket -> h.svc.GetTicket -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.TicketResponse{
		Message: "Ticket Fetched Successfully",
		Ticket:  ticket,
	})
}

// HandleGetTickets godoc
// @Summary      List all tickets
// @Tags         tickets
// @Produce      json
// @Success      200      {object}   response.TicketsResponse
// @Failure      500      {object}   response.Err
// @Router       /displayAllTickets [get]
func (h *TicketHandler) HandleGetTickets(ctx *gin.Context) {
	tickets, err := h.svc.GetTickets(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTickets -> h.svc.GetTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if tickets == nil {
		tickets = []domain.Ticket{}
	}

	ctx.JSON(http.StatusOK, response.TicketsResponse{
		Message: "Tickets Fetched Successfully",
		Tickets: tickets,
	})
}

// HandleUpdateTicket godoc
// @Summary      Update a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request   body      request.UpdateTicketRequest true "request body"
// @Success      201      {object}   response.Message
// @Success      202      {object}   response.Message "ticket not updated"
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /updateTicketById [post]
func (h *TicketHandler) HandleUpdateTicket(ctx *gin.Context) {
	var req request.UpdateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	_, err := h.svc.UpdateTicket(ctx.Request.Context(), domain.Ticket{
		ID:    req.ID,
		Title: req.Title,
		Cost:  *req.Cost,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound(msgTicketNotFound, err))
		case errors.Is(err, service.ErrTicketTitleExists):
			response.RenderErr(ctx, response.ErrConflict(msgTicketTitleExists, err))
		case errors.Is(err, service.ErrTicketNotUpdated):
			response.RenderErr(ctx, response.ErrNotApplied("Ticket Not Updated", err))
		default:
			err = fmt.Errorf("v1.HandleUpdateTicket -> h.svc.UpdateTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.Message{Message: "Ticket Updated Successfully"})
}

// HandleDeleteTicket godoc
// @Summary      Delete a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request   body      request.TicketIDRequest true "request body"
// @Success      201      {object}   response.Message
// @Success      202      {object}   response.Message "ticket not deleted"
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /deleteTicketById [post]
func (h *TicketHandler) HandleDeleteTicket(ctx *gin.Context) {
	var req request.TicketIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	err := h.svc.DeleteTicket(ctx.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound(msgTicketNotFound, err))
		case errors.Is(err, service.ErrTicketNotDeleted):
			response.RenderErr(ctx, response.ErrNotApplied("Ticket Not Deleted", err))
		default:
			err = fmt.Errorf("v1.HandleDeleteTicket -> h.svc.DeleteTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.Message{Message: "Ticket Deleted Successfully"})
}
