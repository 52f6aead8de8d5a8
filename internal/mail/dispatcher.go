package mail

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/ticket-order-api/internal/domain"
)

var (
	ErrQueueFull        = errors.New("mail queue is full")
	ErrDispatcherClosed = errors.New("mail dispatcher is stopped")
)

const sendTimeout = 30 * time.Second

// Dispatcher accepts a mail for later delivery. Dispatch never waits for the
// mail to be sent.
type Dispatcher interface {
	Dispatch(ctx context.Context, m domain.VerificationMail) error
}

// AsyncDispatcher delivers mails from a buffered channel with a fixed pool of workers.
type AsyncDispatcher struct {
	sender  Sender
	queue   chan domain.VerificationMail
	workers int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsyncDispatcher(sender Sender, workers, buffer int) *AsyncDispatcher {
	if workers < 1 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &AsyncDispatcher{
		sender:  sender,
		queue:   make(chan domain.VerificationMail, buffer),
		workers: workers,
	}
}

func (d *AsyncDispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
}

func (d *AsyncDispatcher) work() {
	defer d.wg.Done()

	for m := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.sender.Send(ctx, m)
		cancel()

		trackDelivery(err)
		if err != nil {
			zap.L().Error("failed to send verification mail", zap.String("to", m.Email), zap.Error(err))
		}
	}
}

func (d *AsyncDispatcher) Dispatch(_ context.Context, m domain.VerificationMail) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		dispatchTotal.WithLabelValues("async", "closed").Inc()
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- m:
		dispatchTotal.WithLabelValues("async", "queued").Inc()
		return nil
	default:
		dispatchTotal.WithLabelValues("async", "dropped").Inc()
		return ErrQueueFull
	}
}

// Stop rejects new mails and waits until the queued ones are sent.
func (d *AsyncDispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}
