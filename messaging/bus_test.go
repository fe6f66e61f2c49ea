package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"nearby-chat/domain"
	"nearby-chat/errors"
	"nearby-chat/mocks"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEncodeDecode_RawUTF8(t *testing.T) {
	// Given a multilingual message
	text := "héllo 👋 こんにちは"

	// When it is encoded
	frame := Encode(text)

	// Then the frame is exactly the UTF-8 bytes, and decodes back
	require.Equal(t, []byte(text), frame)
	decoded, err := Decode(frame)
	require.NoError(t, err)
	require.Equal(t, text, decoded)
}

func TestDecode_EmptyFrame(t *testing.T) {
	decoded, err := Decode([]byte{})
	require.NoError(t, err)
	require.Equal(t, "", decoded)
}

func TestDecode_InvalidUTF8(t *testing.T) {
	_, err := Decode([]byte{0xff, 0xfe, 'a'})
	require.ErrorIs(t, err, errors.ErrDecodeFailure)
}

func TestBus_Broadcast_SendsToEveryPeer(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockLocalTransport(ctrl)
	bus := NewBus(transport, slog.Default())
	peers := []domain.PeerIdentity{
		{ID: "a", DisplayName: "Alice"},
		{ID: "b", DisplayName: "Bob"},
	}

	// Given the transport expects one reliable send to both peers
	transport.EXPECT().
		SendReliable(gomock.Any(), []byte("hi"), []domain.PeerID{"a", "b"}).
		Return(nil).
		Times(1)

	// When broadcasting
	count := bus.Broadcast(context.Background(), "hi", peers)

	// Then both peers were targeted
	req.Equal(2, count)
}

func TestBus_Broadcast_NoPeer_NoTransportCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockLocalTransport(ctrl)
	bus := NewBus(transport, slog.Default())

	count := bus.Broadcast(context.Background(), "hi", nil)

	require.Equal(t, 0, count)
}

func TestBus_Broadcast_FailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockLocalTransport(ctrl)
	bus := NewBus(transport, slog.Default())

	transport.EXPECT().
		SendReliable(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: b", errors.ErrUnknownPeer)).
		Times(1)

	count := bus.Broadcast(context.Background(), "hi", []domain.PeerIdentity{{ID: "b"}})

	require.Equal(t, 1, count)
}
