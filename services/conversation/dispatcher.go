package conversation

import (
	"context"
	"sync"

	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	"github.com/sirupsen/logrus"
)

// Handler processes one message at a time for a user.
type Handler interface {
	Handle(ctx context.Context, msg structs.IncomingMessage)
}

// Dispatcher fans messages out to a fixed number of workers. Messages of one user always land
// on the same worker, so each user's updates are handled in arrival order.
type Dispatcher struct {
	handler Handler
	shards  []chan structs.IncomingMessage
	wg      sync.WaitGroup
	logger  *logrus.Entry
}

func NewDispatcher(handler Handler, workers, buffer int, logger *logrus.Entry) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	shards := make([]chan structs.IncomingMessage, workers)
	for i := range shards {
		shards[i] = make(chan structs.IncomingMessage, buffer)
	}
	return &Dispatcher{handler: handler, shards: shards, logger: logger}
}

// Start launches the workers; they exit when Stop closes their queues.
func (p *Dispatcher) Start(ctx context.Context) {
	for i, shard := range p.shards {
		p.wg.Add(1)
		go func(worker int, queue <-chan structs.IncomingMessage) {
			defer p.wg.Done()
			for msg := range queue {
				p.handler.Handle(ctx, msg)
			}
			p.logger.WithFields(logrus.Fields{"worker": worker}).Debug("dialog worker stopped")
		}(i, shard)
	}
	p.logger.WithFields(logrus.Fields{"workers": len(p.shards)}).Info("dialog workers started")
}

// Submit queues the message for its user's worker, waiting while the queue is full.
func (p *Dispatcher) Submit(ctx context.Context, msg structs.IncomingMessage) error {
	shard := p.shards[uint64(msg.UserID)%uint64(len(p.shards))]
	select {
	case shard <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the queues and waits for queued messages to be handled.
func (p *Dispatcher) Stop() {
	for _, shard := range p.shards {
		close(shard)
	}
	p.wg.Wait()
}
