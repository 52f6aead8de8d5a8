package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/repository"
)

// memStore is an in-memory stand-in for the three repositories.
type memStore struct {
	mu      sync.Mutex
	users   map[uint]domain.User
	tickets map[uint]domain.Ticket
	orders  map[uint]domain.Order
	nextID  uint

	// staleTickets is served by FindByID ahead of tickets, like a cache
	// entry written after the row changed.
	staleTickets map[uint]domain.Ticket
	failWrites   bool
}

var errStoreDown = errors.New("store down")

func newMemStore() *memStore {
	return &memStore{
		users:   map[uint]domain.User{},
		tickets: map[uint]domain.Ticket{},
		orders:  map[uint]domain.Order{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

type memUsers struct{ *memStore }

func (m memUsers) Create(_ context.Context, user domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}
	user.ID = m.id()
	m.users[user.ID] = user
	return user, nil
}

func (m memUsers) FindByID(_ context.Context, id uint) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m memUsers) FindByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (m memUsers) MarkVerified(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.IsVerified {
		return false, nil
	}
	u.IsVerified = true
	m.users[id] = u
	return true, nil
}

type memTickets struct{ *memStore }

func (m memTickets) Create(_ context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tickets {
		if t.Title == ticket.Title {
			return domain.Ticket{}, repository.ErrTicketTitleExists
		}
	}
	ticket.ID = m.id()
	m.tickets[ticket.ID] = ticket
	return ticket, nil
}

func (m memTickets) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	m.mu.Lock()
	t, ok := m.staleTickets[id]
	m.mu.Unlock()
	if ok {
		return t, nil
	}
	return m.FindCurrentByID(ctx, id)
}

func (m memTickets) FindCurrentByID(_ context.Context, id uint) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}
	return t, nil
}

func (m memTickets) FindByTitle(_ context.Context, title string) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tickets {
		if t.Title == title {
			return t, nil
		}
	}
	return domain.Ticket{}, repository.ErrTicketNotFound
}

func (m memTickets) FindAll(_ context.Context) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tickets := make([]domain.Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		tickets = append(tickets, t)
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })
	return tickets, nil
}

func (m memTickets) Update(_ context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return domain.Ticket{}, errStoreDown
	}
	if _, ok := m.tickets[ticket.ID]; !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}
	m.tickets[ticket.ID] = ticket
	return ticket, nil
}

func (m memTickets) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errStoreDown
	}
	if _, ok := m.tickets[id]; !ok {
		return repository.ErrTicketNotFound
	}
	delete(m.tickets, id)
	return nil
}

type memOrders struct{ *memStore }

func (m memOrders) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return domain.Order{}, errStoreDown
	}
	order.ID = m.id()
	m.orders[order.ID] = order
	return order, nil
}

func (m memOrders) FindByIDAndUserID(_ context.Context, id, userID uint) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return o, nil
}

func (m memOrders) FindLinesByUserID(_ context.Context, userID uint) ([]domain.OrderLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var lines []domain.OrderLine
	for _, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		line := domain.OrderLine{
			ID:          o.ID,
			UserID:      o.UserID,
			TicketID:    o.TicketID,
			TicketCount: o.TicketCount,
			TotalCost:   o.TotalCost,
		}
		if t, ok := m.tickets[o.TicketID]; ok {
			title, cost := t.Title, t.Cost
			line.Title, line.Cost = &title, &cost
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

func (m memOrders) Update(_ context.Context, order domain.Order) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return domain.Order{}, errStoreDown
	}
	existing, ok := m.orders[order.ID]
	if !ok || existing.UserID != order.UserID {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	m.orders[order.ID] = order
	return order, nil
}

func (m memOrders) Delete(_ context.Context, id, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errStoreDown
	}
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return repository.ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

// stubIssuer hands out "token-<id>" strings.
type stubIssuer struct{}

func (stubIssuer) IssueToken(userID uint) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []domain.VerificationMail
	err  error
}

func (r *recordingMailer) Dispatch(_ context.Context, m domain.VerificationMail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, m)
	return nil
}

type services struct {
	store  *memStore
	mailer *recordingMailer
	auth   *AuthService
	users  *UserService
	ticket *TicketService
	order  *OrderService
}

func newServices() *services {
	store := newMemStore()
	mailer := &recordingMailer{}
	return &services{
		store:  store,
		mailer: mailer,
		auth:   NewAuthService(memUsers{store}, stubIssuer{}, mailer),
		users:  NewUserService(memUsers{store}),
		ticket: NewTicketService(memTickets{store}),
		order:  NewOrderService(memOrders{store}, memTickets{store}, memUsers{store}),
	}
}
