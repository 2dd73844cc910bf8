// Package relay delivers best-effort email notifications for newly created
// contact messages. Delivery happens on a background worker decoupled from
// the request path: a slow or failing mail provider can never stall or fail
// an intake response.
package relay

import (
	"context"
	"log/slog"
	"sync"

	"github.com/portfolio/backend/internal/model"
)

// Sender delivers a notification for one message.
type Sender interface {
	Send(ctx context.Context, msg model.Message) error
}

// Nop is a Sender that does nothing.
type Nop struct{}

func (Nop) Send(context.Context, model.Message) error { return nil }

const defaultQueueSize = 64

// Relay consumes created messages from a queue and hands them to a Sender.
// Failures are logged and swallowed; a full queue drops the notification
// instead of blocking the caller.
type Relay struct {
	sender Sender
	queue  chan model.Message
	wg     sync.WaitGroup
}

// New creates a Relay. It does not deliver anything until Start is called.
func New(sender Sender) *Relay {
	return &Relay{
		sender: sender,
		queue:  make(chan model.Message, defaultQueueSize),
	}
}

// Start launches the worker goroutine. The worker runs until Close drains
// the queue or ctx is cancelled.
func (r *Relay) Start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case msg, ok := <-r.queue:
				if !ok {
					return
				}
				if err := r.sender.Send(ctx, msg); err != nil {
					slog.Error("notification delivery failed", "message_id", msg.ID, "error", err)
					continue
				}
				slog.Info("notification sent", "message_id", msg.ID)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Notify enqueues a message without blocking. Must not be called after
// Close.
func (r *Relay) Notify(msg model.Message) {
	select {
	case r.queue <- msg:
	default:
		slog.Warn("notification queue full, dropping", "message_id", msg.ID)
	}
}

// Close stops accepting messages and waits for the worker to drain and exit.
func (r *Relay) Close() {
	close(r.queue)
	r.wg.Wait()
}
