package workers

import (
	"context"
	"log/slog"
	"nearby-chat/domain"
	"nearby-chat/messaging"
	"nearby-chat/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOutboxWorker_SendsInOrder(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockLocalTransport(ctrl)
	outbox := make(chan Outbound, 2)
	bob := domain.PeerIdentity{ID: "bob", DisplayName: "Bob"}

	done := make(chan struct{})
	gomock.InOrder(
		transport.EXPECT().SendReliable(gomock.Any(), []byte("first"), []domain.PeerID{"bob"}).Return(nil),
		transport.EXPECT().SendReliable(gomock.Any(), []byte("second"), []domain.PeerID{"bob"}).
			DoAndReturn(func(context.Context, []byte, []domain.PeerID) error {
				close(done)
				return nil
			}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker := NewOutboxWorker(messaging.NewBus(transport, slog.Default()), outbox, slog.Default())
	go func() { _ = worker.Run(ctx) }()

	// When two lines are queued
	outbox <- Outbound{Text: "first", Peers: []domain.PeerIdentity{bob}}
	outbox <- Outbound{Text: "second", Peers: []domain.PeerIdentity{bob}}

	// Then they leave in the order they were typed
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("second frame was not sent")
	}
}

func TestOutboxWorker_StopsOnClosedChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockLocalTransport(ctrl)
	outbox := make(chan Outbound)
	close(outbox)

	worker := NewOutboxWorker(messaging.NewBus(transport, slog.Default()), outbox, slog.Default())

	require.NoError(t, worker.Run(context.Background()))
}
