package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/repository/dao"
)

var (
	ErrOrderNotFound = dao.ErrOrderNotFound
)

type OrderDAO interface {
	Insert(ctx context.Context, order dao.Order) (dao.Order, error)
	FindByIDAndUserID(ctx context.Context, id, userID uint) (dao.Order, error)
	FindByUserIDWithTicket(ctx context.Context, userID uint) ([]dao.OrderWithTicket, error)
	Update(ctx context.Context, order dao.Order) (dao.Order, error)
	Delete(ctx context.Context, id, userID uint) error
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(order))
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *OrderRepository) FindByIDAndUserID(ctx context.Context, id, userID uint) (domain.Order, error) {
	found, err := r.dao.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByIDAndUserID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *OrderRepository) FindLinesByUserID(ctx context.Context, userID uint) ([]domain.OrderLine, error) {
	rows, err := r.dao.FindByUserIDWithTicket(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserIDWithTicket -> %w", err)
	}

	lines := make([]domain.OrderLine, len(rows))
	for i, row := range rows {
		lines[i] = domain.OrderLine{
			ID:          row.ID,
			UserID:      row.UserID,
			TicketID:    row.TicketID,
			TicketCount: row.TicketCount,
			TotalCost:   row.TotalCost,
			Title:       row.Title,
			Cost:        row.Cost,
			CreatedAt:   row.CreatedAt,
		}
	}

	return lines, nil
}

func (r *OrderRepository) Update(ctx context.Context, order domain.Order) (domain.Order, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(order))
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id, userID uint) error {
	if err := r.dao.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *OrderRepository) domainToDao(o domain.Order) dao.Order {
	return dao.Order{
		ID:          o.ID,
		UserID:      o.UserID,
		TicketID:    o.TicketID,
		TicketCount: o.TicketCount,
		TotalCost:   o.TotalCost,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (r *OrderRepository) daoToDomain(o dao.Order) domain.Order {
	return domain.Order{
		ID:          o.ID,
		UserID:      o.UserID,
		TicketID:    o.TicketID,
		TicketCount: o.TicketCount,
		TotalCost:   o.TotalCost,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
