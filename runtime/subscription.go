package runtime

import (
	"context"
	"nearby-chat/domain"
	"sync"
)

// channelSink exposes snapshots as a read-only stream.
// When the reader lags, the oldest pending snapshot is replaced by the newest:
// snapshots are complete, so only the latest one matters.
type channelSink struct {
	mu     sync.Mutex
	ch     chan domain.Snapshot
	closed bool
}

func newChannelSink(buffer int) *channelSink {
	if buffer < 1 {
		buffer = 1
	}
	return &channelSink{ch: make(chan domain.Snapshot, buffer)}
}

func (s *channelSink) Consume(_ context.Context, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	for {
		select {
		case s.ch <- snapshot:
			return nil
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

func (s *channelSink) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
