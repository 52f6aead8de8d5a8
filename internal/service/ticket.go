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
	ErrTicketTitleExists = repository.ErrTicketTitleExists
	ErrTicketNotFound    = repository.ErrTicketNotFound
	ErrTicketNotUpdated  = errors.New("ticket not updated")
	ErrTicketNotDeleted  = errors.New("ticket not deleted")
)

type TicketRepository interface {
	Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	FindByID(ctx context.Context, id uint) (domain.Ticket, error)
	FindByTitle(ctx context.Context, title string) (domain.Ticket, error)
	FindAll(ctx context.Context) ([]domain.Ticket, error)
	Update(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	Delete(ctx context.Context, id uint) error
}

type TicketService struct {
	repo TicketRepository
}

func NewTicketService(repo TicketRepository) *TicketService {
	return &TicketService{
		repo: repo,
	}
}

func (s *TicketService) CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	if err := s.checkTitleFree(ctx, ticket.Title, 0); err != nil {
		return domain.Ticket{}, err
	}

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		if errors.Is(err, repository.ErrTicketTitleExists) {
			return domain.Ticket{}, ErrTicketTitleExists
		}

		return domain.Ticket{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("ticket created", zap.Uint("ticket_id", created.ID))

	return created, nil
}

func (s *TicketService) GetTicket(ctx context.Context, id uint) (domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return domain.Ticket{}, ErrTicketNotFound
		}

		return domain.Ticket{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return ticket, nil
}

func (s *TicketService) GetTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return tickets, nil
}

// UpdateTicket overwrites title and cost. Keeping the ticket's own title is
// not a collision.
func (s *TicketService) UpdateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	if _, err := s.GetTicket(ctx, ticket.ID); err != nil {
		return domain.Ticket{}, err
	}

	if err := s.checkTitleFree(ctx, ticket.Title, ticket.ID); err != nil {
		return domain.Ticket{}, err
	}

	updated, err := s.repo.Update(ctx, ticket)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTicketTitleExists):
			return domain.Ticket{}, ErrTicketTitleExists
		case errors.Is(err, repository.ErrTicketNotFound):
			return domain.Ticket{}, ErrTicketNotFound
		}

		zap.L().Error("ticket not updated", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
		return domain.Ticket{}, ErrTicketNotUpdated
	}

	zap.L().Info("ticket updated", zap.Uint("ticket_id", updated.ID))

	return updated, nil
}

func (s *TicketService) DeleteTicket(ctx context.Context, id uint) error {
	if _, err := s.GetTicket(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return ErrTicketNotFound
		}

		zap.L().Error("ticket not deleted", zap.Uint("ticket_id", id), zap.Error(err))
		return ErrTicketNotDeleted
	}

	zap.L().Info("ticket deleted", zap.Uint("ticket_id", id))

	return nil
}

// checkTitleFree fails when a ticket other than selfID already uses title.
func (s *TicketService) checkTitleFree(ctx context.Context, title string, selfID uint) error {
	existing, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil
		}

		return fmt.Errorf("s.repo.FindByTitle -> %w", err)
	}

	if existing.ID != selfID {
		return ErrTicketTitleExists
	}

	return nil
}
