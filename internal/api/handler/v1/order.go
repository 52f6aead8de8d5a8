package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/ticket-order-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/ticket-order-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/ticket-order-api/internal/api/middleware"
	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/service"
)

const msgOrderNotFound = "Order Not Found For This User"

type OrderService interface {
	CreateOrder(ctx context.Context, userID, ticketID uint, ticketCount int) (domain.Order, error)
	GetOrders(ctx context.Context, userID uint) ([]domain.OrderLine, error)
	UpdateOrder(ctx context.Context, userID uint, changes domain.Order) (domain.Order, error)
	DeleteOrder(ctx context.Context, userID, orderID uint) error
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{
		svc: svc,
	}
}

// HandleAddOrder godoc
// @Summary      Place an order
// @Description  Verified users only. The total cost is computed from the ticket's current cost.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request   body      request.AddOrderRequest true "request body"
// @Success      201      {object}   response.Message
// @Success      202      {object}   response.Message "order not added"
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      406      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /addOrder [post]
// @Security BearerAuth
func (h *OrderHandler) HandleAddOrder(ctx *gin.Context) {
	var req request.AddOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthenticated(service.ErrUnauthenticated))
		return
	}

	_, err := h.svc.CreateOrder(ctx.Request.Context(), userID, req.TicketID, *req.TicketCount)
	if err != nil {
		if respErr := orderErr(err, "Order Not Added"); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		err = fmt.Errorf("v1.HandleAddOrder -> h.svc.CreateOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.Message{Message: "Order Added Successfully"})
}

// HandleGetOrders godoc
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Success      201      {object}   response.OrdersResponse
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /displayOrders [get]
// @Security BearerAuth
func (h *OrderHandler) HandleGetOrders(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthenticated(service.ErrUnauthenticated))
		return
	}

	lines, err := h.svc.GetOrders(ctx.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			response.RenderErr(ctx, response.ErrUnauthenticated(err))
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("Orders Not Found", err))
		default:
			err = fmt.Errorf("v1.HandleGetOrders -> h.svc.GetOrders -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.OrdersResponse{
		Message: "Orders Retrieved Successfully.",
		Orders:  lines,
	})
}

// HandleUpdateOrder godoc
// @Summary      Update one of the caller's orders
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request   body      request.UpdateOrderRequest true "request body"
// @Success      201      {object}   response.Message
// @Success      202      {object}   response.Message "order not updated"
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      406      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /updateOrderById [post]
// @Security BearerAuth
func (h *OrderHandler) HandleUpdateOrder(ctx *gin.Context) {
	var req request.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthenticated(service.ErrUnauthenticated))
		return
	}

	_, err := h.svc.UpdateOrder(ctx.Request.Context(), userID, domain.Order{
		ID:          req.ID,
		TicketID:    req.TicketID,
		TicketCount: *req.TicketCount,
	})
	if err != nil {
		if respErr := orderErr(err, "Order Not Updated"); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		err = fmt.Errorf("v1.HandleUpdateOrder -> h.svc.UpdateOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.Message{Message: "Order Updated Successfully"})
}

// HandleDeleteOrder godoc
// @Summary      Delete one of the caller's orders
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request   body      request.OrderIDRequest true "request body"
// @Success      201      {object}   response.Message
// @Success      202      {object}   response.Message "order not deleted"
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /deleteOrderById [post]
// @Security BearerAuth
func (h *OrderHandler) HandleDeleteOrder(ctx *gin.Context) {
	var req request.OrderIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthenticated(service.ErrUnauthenticated))
		return
	}

	err := h.svc.DeleteOrder(ctx.Request.Context(), userID, req.ID)
	if err != nil {
		if respErr := orderErr(err, "Order Not Deleted"); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		err = fmt.Errorf("v1.HandleDeleteOrder -> h.svc.DeleteOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.Message{Message: "Order Deleted Successfully"})
}

// orderErr maps order workflow failures. notApplied is the message for a
// write the store refused.
func orderErr(err error, notApplied string) *response.Err {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return response.ErrUnauthenticated(err)
	case errors.Is(err, service.ErrUserNotVerified):
		return response.ErrNotVerified(err)
	case errors.Is(err, service.ErrOrderNotFound):
		return response.ErrNotFound(msgOrderNotFound, err)
	case errors.Is(err, service.ErrTicketNotFound):
		return response.ErrNotFound("Ticket Not Found", err)
	case errors.Is(err, service.ErrInvalidTicketCount):
		return response.ErrInvalidCount(err)
	case errors.Is(err, service.ErrOrderNotAdded),
		errors.Is(err, service.ErrOrderNotUpdated),
		errors.Is(err, service.ErrOrderNotDeleted):
		return response.ErrNotApplied(notApplied, err)
	}

	return nil
}
