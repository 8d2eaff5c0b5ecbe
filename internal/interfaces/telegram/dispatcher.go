package telegram

import (
	"context"
	"log"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandlerFunc processes one Telegram update
type HandlerFunc func(ctx context.Context, update tgbotapi.Update)

// Dispatcher serializes updates per user while letting different users run
// in parallel: each active user id gets its own queue and worker goroutine,
// created lazily and reaped after an idle period. Updates for one user are
// handled strictly in arrival order.
type Dispatcher struct {
	handle      HandlerFunc
	queueSize   int
	idleTimeout time.Duration

	mu     sync.Mutex
	queues map[int64]chan tgbotapi.Update
}

// NewDispatcher creates a per-user serializing dispatcher
func NewDispatcher(handle HandlerFunc) *Dispatcher {
	return &Dispatcher{
		handle:      handle,
		queueSize:   64,
		idleTimeout: 5 * time.Minute,
		queues:      make(map[int64]chan tgbotapi.Update),
	}
}

// Enqueue routes an update into the owning user's queue, spawning the
// worker if the user has none. A full queue drops the update rather than
// blocking every other user behind one flooder.
func (d *Dispatcher) Enqueue(ctx context.Context, userID int64, update tgbotapi.Update) {
	d.mu.Lock()
	defer d.mu.Unlock()

	queue, ok := d.queues[userID]
	if !ok {
		queue = make(chan tgbotapi.Update, d.queueSize)
		d.queues[userID] = queue
		go d.worker(ctx, userID, queue)
	}

	select {
	case queue <- update:
	default:
		log.Printf("user %d: queue full, dropping update", userID)
	}
}

// worker drains one user's queue in order until cancelled or idle
func (d *Dispatcher) worker(ctx context.Context, userID int64, queue chan tgbotapi.Update) {
	idle := time.NewTimer(d.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-queue:
			d.handle(ctx, update)
			if !idle.Stop() {
				<-idle.C
			}
			idle.Reset(d.idleTimeout)
		case <-idle.C:
			if d.retire(userID, queue) {
				return
			}
			idle.Reset(d.idleTimeout)
		}
	}
}

// retire removes an idle queue from the table. It declines when an update
// slipped in after the idle timer fired, so no queued update is ever lost.
func (d *Dispatcher) retire(userID int64, queue chan tgbotapi.Update) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(queue) > 0 {
		return false
	}
	delete(d.queues, userID)
	return true
}

// ActiveUsers returns the number of user queues currently alive
func (d *Dispatcher) ActiveUsers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queues)
}
