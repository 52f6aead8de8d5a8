package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietanh2810/ticket-order-api/internal/cache"
	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/repository/dao"
)

var (
	ErrTicketTitleExists = dao.ErrTicketTitleExists
	ErrTicketNotFound    = dao.ErrTicketNotFound
)

type TicketDAO interface {
	Insert(ctx context.Context, ticket dao.Ticket) (dao.Ticket, error)
	FindByID(ctx context.Context, id uint) (dao.Ticket, error)
	FindByTitle(ctx context.Context, title string) (dao.Ticket, error)
	FindAll(ctx context.Context) ([]dao.Ticket, error)
	Update(ctx context.Context, ticket dao.Ticket) (dao.Ticket, error)
	Delete(ctx context.Context, id uint) error
}

// TicketCache is the read-through cache in front of TicketDAO.FindByID.
type TicketCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

type TicketRepository struct {
	dao   TicketDAO
	cache TicketCache
}

// NewTicketRepository builds the repository. c may be nil to disable caching.
func NewTicketRepository(dao TicketDAO, c TicketCache) *TicketRepository {
	return &TicketRepository{
		dao:   dao,
		cache: c,
	}
}

func (r *TicketRepository) Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(ticket))
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	key := cache.MakeTicketKey(id)

	if r.cache != nil {
		var cached domain.Ticket
		err := r.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			zap.L().Warn("ticket cache read failed", zap.Uint("ticket_id", id), zap.Error(err))
		}
	}

	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}
	ticket := r.daoToDomain(found)

	if r.cache != nil {
		if err = r.cache.Set(ctx, key, ticket); err != nil {
			zap.L().Warn("ticket cache write failed", zap.Uint("ticket_id", id), zap.Error(err))
		}
	}

	return ticket, nil
}

// FindCurrentByID reads the row from the store, bypassing the cache. Order
// pricing uses it; a cache entry can hold a cost older than the row.
func (r *TicketRepository) FindCurrentByID(ctx context.Context, id uint) (domain.Ticket, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) FindByTitle(ctx context.Context, title string) (domain.Ticket, error) {
	found, err := r.dao.FindByTitle(ctx, title)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByTitle -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	tickets := make([]domain.Ticket, len(found))
	for i, t := range found {
		tickets[i] = r.daoToDomain(t)
	}

	return tickets, nil
}

func (r *TicketRepository) Update(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(ticket))
	r.invalidate(ctx, ticket.ID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	err := r.dao.Delete(ctx, id)
	r.invalidate(ctx, id)
	if err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *TicketRepository) invalidate(ctx context.Context, id uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, cache.MakeTicketKey(id)); err != nil {
		zap.L().Warn("ticket cache invalidation failed", zap.Uint("ticket_id", id), zap.Error(err))
	}
}

func (r *TicketRepository) domainToDao(t domain.Ticket) dao.Ticket {
	return dao.Ticket{
		ID:        t.ID,
		Title:     t.Title,
		Cost:      t.Cost,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (r *TicketRepository) daoToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:        t.ID,
		Title:     t.Title,
		Cost:      t.Cost,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
