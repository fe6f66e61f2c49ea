package workers

import (
	"context"
	"log/slog"
	"nearby-chat/contract"
	"nearby-chat/domain"
	"nearby-chat/messaging"
)

var _ contract.Worker = (*OutboxWorker)(nil)

// Outbound is one chat line to broadcast to the peers connected when it was typed.
type Outbound struct {
	Text  string
	Peers []domain.PeerIdentity
}

// OutboxWorker performs network sends off the session loop, one at a time,
// so frames leave in the order they were typed.
type OutboxWorker struct {
	bus    *messaging.Bus
	outbox chan Outbound
	log    *slog.Logger
}

func NewOutboxWorker(bus *messaging.Bus, outbox chan Outbound, log *slog.Logger) *OutboxWorker {
	return &OutboxWorker{bus: bus, outbox: outbox, log: log}
}

func (w *OutboxWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping outbox worker")
			return nil
		case out, ok := <-w.outbox:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			w.bus.Broadcast(ctx, out.Text, out.Peers)
		}
	}
}
