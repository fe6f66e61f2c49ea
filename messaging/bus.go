// Package messaging turns chat text into transport frames and back.
// Frames are the raw UTF-8 text: no envelope, no length prefix, no metadata.
// Message boundaries are preserved by the reliable transport, and the sender
// identity comes from the transport, never from the payload.
package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"nearby-chat/contract"
	"nearby-chat/domain"
	"nearby-chat/errors"
	"unicode/utf8"

	"github.com/samber/lo"
)

type Bus struct {
	transport contract.LocalTransport
	log       *slog.Logger
}

func NewBus(transport contract.LocalTransport, log *slog.Logger) *Bus {
	return &Bus{transport: transport, log: log}
}

func Encode(text string) []byte {
	return []byte(text)
}

// Decode rejects frames that are not valid UTF-8 with ErrDecodeFailure.
func Decode(frame []byte) (string, error) {
	if !utf8.Valid(frame) {
		return "", errors.ErrDecodeFailure
	}
	return string(frame), nil
}

// Broadcast sends text to every given peer and returns how many were targeted.
// Delivery is best effort: failures are logged, never retried nor returned.
// No transport call happens when peers is empty.
func (b *Bus) Broadcast(ctx context.Context, text string, peers []domain.PeerIdentity) int {
	if len(peers) == 0 {
		b.log.Debug("No connected peer, broadcast skipped")
		return 0
	}
	ids := lo.Map(peers, func(p domain.PeerIdentity, _ int) domain.PeerID { return p.ID })
	if err := b.transport.SendReliable(ctx, Encode(text), ids); err != nil {
		b.log.Warn(fmt.Sprintf("%s", errors.ErrSendFailure), "peers", len(ids), "error", err)
	}
	return len(ids)
}
