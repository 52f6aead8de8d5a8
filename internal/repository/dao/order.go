package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// Order keeps no foreign key on TicketID: orders outlive the tickets they
// were bought from, and TotalCost is a snapshot.
type Order struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"not null;index"`
	User        User `gorm:"foreignKey:UserID"`
	TicketID    uint `gorm:"not null;index"`
	TicketCount int  `gorm:"not null"`
	TotalCost   int  `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderWithTicket is one row of the orders LEFT JOIN tickets listing.
type OrderWithTicket struct {
	ID          uint
	UserID      uint
	TicketID    uint
	TicketCount int
	TotalCost   int
	Title       *string
	Cost        *int
	CreatedAt   time.Time
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db: db,
	}
}

func (d *OrderDAO) Insert(ctx context.Context, order Order) (Order, error) {
	result := d.db.WithContext(ctx).Omit("User").Create(&order)
	if result.Error != nil {
		return Order{}, result.Error
	}

	return order, nil
}

// FindByIDAndUserID scopes the lookup to the owner; another user's order is
// reported as ErrOrderNotFound.
func (d *OrderDAO) FindByIDAndUserID(ctx context.Context, id, userID uint) (Order, error) {
	var order Order

	result := d.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

func (d *OrderDAO) FindByUserIDWithTicket(ctx context.Context, userID uint) ([]OrderWithTicket, error) {
	var rows []OrderWithTicket

	result := d.db.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.user_id, orders.ticket_id, orders.ticket_count, orders.total_cost, orders.created_at, tickets.title, tickets.cost").
		Joins("LEFT JOIN tickets ON tickets.id = orders.ticket_id").
		Where("orders.user_id = ?", userID).
		Order("orders.id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *OrderDAO) Update(ctx context.Context, order Order) (Order, error) {
	result := d.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ? AND user_id = ?", order.ID, order.UserID).
		Updates(map[string]interface{}{
			"ticket_id":    order.TicketID,
			"ticket_count": order.TicketCount,
			"total_cost":   order.TotalCost,
		})
	if result.Error != nil {
		return Order{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Order{}, ErrOrderNotFound
	}

	return d.FindByIDAndUserID(ctx, order.ID, order.UserID)
}

func (d *OrderDAO) Delete(ctx context.Context, id, userID uint) error {
	result := d.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Order{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
