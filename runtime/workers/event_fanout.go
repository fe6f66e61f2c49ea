package workers

import (
	"context"
	"fmt"
	"log/slog"
	"nearby-chat/contract"
	"nearby-chat/domain"
	"time"
)

var _ contract.Worker = (*SnapshotFanout)(nil)

// SnapshotFanout broadcasts session snapshots to every registered sink.
//
// It provides best-effort fan-out with no guarantees regarding delivery or
// retries. Each snapshot is complete, so a sink that misses one catches up
// with the next. A slow sink is cut off after sinkTimeout and never blocks
// the session loop.
type SnapshotFanout struct {
	log         *slog.Logger
	registry    contract.IRegistry
	snapshots   chan domain.Snapshot
	sinkTimeout time.Duration
}

func NewSnapshotFanout(log *slog.Logger, registry contract.IRegistry,
	snapshots chan domain.Snapshot, sinkTimeout time.Duration) *SnapshotFanout {
	return &SnapshotFanout{log: log, registry: registry, snapshots: snapshots, sinkTimeout: sinkTimeout}
}

func (w *SnapshotFanout) Run(ctx context.Context) error {
	for {
		select {
		case snapshot := <-w.snapshots:
			w.Fanout(ctx, snapshot)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping snapshot fanout")
			return nil
		}
	}
}

// Fanout One sink for each snapshot
func (w *SnapshotFanout) Fanout(ctx context.Context, snapshot domain.Snapshot) {
	for _, sink := range w.registry.Sinks() {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, snapshot); err != nil {
			w.log.Debug("Sink failed to consume snapshot",
				"sink", fmt.Sprintf("%T", sink), "version", snapshot.Version, "error", err)
		}
		cancel()
	}
}
