package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/repository"
)

var (
	ErrUnauthenticated    = errors.New("invalid authorization token")
	ErrUserNotVerified    = errors.New("not a verified user")
	ErrInvalidTicketCount = errors.New("count must be greater than 0")
	ErrOrderNotFound      = repository.ErrOrderNotFound
	ErrOrderNotAdded      = errors.New("order not added")
	ErrOrderNotUpdated    = errors.New("order not updated")
	ErrOrderNotDeleted    = errors.New("order not deleted")
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByIDAndUserID(ctx context.Context, id, userID uint) (domain.Order, error)
	FindLinesByUserID(ctx context.Context, userID uint) ([]domain.OrderLine, error)
	Update(ctx context.Context, order domain.Order) (domain.Order, error)
	Delete(ctx context.Context, id, userID uint) error
}

// OrderTicketRepository reads tickets for pricing. FindCurrentByID must skip
// any cache so the cost is the stored one.
type OrderTicketRepository interface {
	FindCurrentByID(ctx context.Context, id uint) (domain.Ticket, error)
}

type OrderService struct {
	repo       OrderRepository
	ticketRepo OrderTicketRepository
	userRepo   UserRepository
}

func NewOrderService(repo OrderRepository, ticketRepo OrderTicketRepository, userRepo UserRepository) *OrderService {
	return &OrderService{
		repo:       repo,
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
	}
}

// CreateOrder places an order for userID. The checks run in a fixed order:
// caller, verification, ticket, count.
func (s *OrderService) CreateOrder(ctx context.Context, userID, ticketID uint, ticketCount int) (domain.Order, error) {
	user, err := s.caller(ctx, userID)
	if err != nil {
		return domain.Order{}, err
	}

	if !user.IsVerified {
		return domain.Order{}, ErrUserNotVerified
	}

	ticket, err := s.ticket(ctx, ticketID)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{UserID: user.ID, TicketCount: ticketCount}
	if err = price(&order, ticket); err != nil {
		return domain.Order{}, err
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		zap.L().Error("order not added", zap.Uint("user_id", user.ID), zap.Error(err))
		return domain.Order{}, ErrOrderNotAdded
	}

	zap.L().Info("order added", zap.Uint("order_id", created.ID), zap.Uint("user_id", user.ID))

	return created, nil
}

// GetOrders lists the caller's orders with their tickets. No orders at all is
// reported as ErrOrderNotFound.
func (s *OrderService) GetOrders(ctx context.Context, userID uint) ([]domain.OrderLine, error) {
	user, err := s.caller(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.FindLinesByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindLinesByUserID -> %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrOrderNotFound
	}

	return lines, nil
}

// UpdateOrder moves the caller's order to another ticket and count, and
// re-prices it at the ticket's current cost.
func (s *OrderService) UpdateOrder(ctx context.Context, userID uint, changes domain.Order) (domain.Order, error) {
	user, err := s.caller(ctx, userID)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.owned(ctx, changes.ID, user.ID)
	if err != nil {
		return domain.Order{}, err
	}

	ticket, err := s.ticket(ctx, changes.TicketID)
	if err != nil {
		return domain.Order{}, err
	}

	order.TicketCount = changes.TicketCount
	if err = price(&order, ticket); err != nil {
		return domain.Order{}, err
	}

	updated, err := s.repo.Update(ctx, order)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domain.Order{}, ErrOrderNotFound
		}

		zap.L().Error("order not updated", zap.Uint("order_id", order.ID), zap.Error(err))
		return domain.Order{}, ErrOrderNotUpdated
	}

	return updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, userID, orderID uint) error {
	user, err := s.caller(ctx, userID)
	if err != nil {
		return err
	}

	order, err := s.owned(ctx, orderID, user.ID)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, order.ID, user.ID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return ErrOrderNotFound
		}

		zap.L().Error("order not deleted", zap.Uint("order_id", order.ID), zap.Error(err))
		return ErrOrderNotDeleted
	}

	return nil
}

// caller loads the user behind a verified token. A token whose user is gone
// is treated like an invalid token.
func (s *OrderService) caller(ctx context.Context, userID uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUnauthenticated
		}

		return domain.User{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	return user, nil
}

// owned hides orders of other users behind ErrOrderNotFound.
func (s *OrderService) owned(ctx context.Context, orderID, userID uint) (domain.Order, error) {
	order, err := s.repo.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domain.Order{}, ErrOrderNotFound
		}

		return domain.Order{}, fmt.Errorf("s.repo.FindByIDAndUserID -> %w", err)
	}

	return order, nil
}

// price rejects counts below one and counts whose total cost would not fit
// in an int.
func price(order *domain.Order, ticket domain.Ticket) error {
	if !order.IsValid() {
		return ErrInvalidTicketCount
	}
	if err := order.Price(ticket); err != nil {
		return ErrInvalidTicketCount
	}

	return nil
}

func (s *OrderService) ticket(ctx context.Context, ticketID uint) (domain.Ticket, error) {
	ticket, err := s.ticketRepo.FindCurrentByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return domain.Ticket{}, ErrTicketNotFound
		}

		return domain.Ticket{}, fmt.Errorf("s.ticketRepo.FindCurrentByID -> %w", err)
	}

	return ticket, nil
}
