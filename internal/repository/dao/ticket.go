package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTicketTitleExists = errors.New("ticket title already exists")
	ErrTicketNotFound    = errors.New("ticket not found")
)

const ticketTitleConstraint = "uni_tickets_title"

type Ticket struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"unique;not null"`
	Cost  int    `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

func (d *TicketDAO) Insert(ctx context.Context, ticket Ticket) (Ticket, error) {
	result := d.db.WithContext(ctx).Create(&ticket)
	if result.Error != nil {
		if isUniqueViolation(result.Error, ticketTitleConstraint) {
			return Ticket{}, ErrTicketTitleExists
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

// FindByTitle matches the title exactly, case included.
func (d *TicketDAO) FindByTitle(ctx context.Context, title string) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, "title = ?", title)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindAll(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).Order("id").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) Update(ctx context.Context, ticket Ticket) (Ticket, error) {
	result := d.db.WithContext(ctx).
		Model(&Ticket{ID: ticket.ID}).
		Updates(map[string]interface{}{
			"title": ticket.Title,
			"cost":  ticket.Cost,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error, ticketTitleConstraint) {
			return Ticket{}, ErrTicketTitleExists
		}

		return Ticket{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Ticket{}, ErrTicketNotFound
	}

	return d.FindByID(ctx, ticket.ID)
}

func (d *TicketDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Ticket{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}
