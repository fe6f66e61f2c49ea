package sink

import (
	"context"
	"fmt"
	"log/slog"
	"nearby-chat/contract"
	"nearby-chat/domain"
	"nearby-chat/repositories"
	"sync/atomic"
)

var _ contract.EventSink = (*TranscriptSink)(nil)

// TranscriptSink writes each message of a session to disk once.
// The message log only grows, so the messages past the stored count are the new ones.
type TranscriptSink struct {
	repository repositories.ITranscriptRepository
	log        *slog.Logger
	stored     atomic.Int64
}

func NewTranscriptSink(repository repositories.ITranscriptRepository, log *slog.Logger) *TranscriptSink {
	return &TranscriptSink{repository: repository, log: log}
}

func (d *TranscriptSink) Consume(ctx context.Context, snapshot domain.Snapshot) error {
	for next := int(d.stored.Load()); next < len(snapshot.Messages); next++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		message := snapshot.Messages[next]
		if err := d.repository.StoreMessage(toDiskMessage(snapshot.Local.ID, message)); err != nil {
			return fmt.Errorf("storing message %s: %w", message.ID, err)
		}
		d.stored.Add(1)
	}
	return nil
}

// Stored returns how many messages reached the repository.
func (d *TranscriptSink) Stored() int {
	return int(d.stored.Load())
}

func toDiskMessage(session domain.PeerID, message domain.Message) repositories.DiskMessage {
	return repositories.DiskMessage{
		ID:      message.ID,
		Session: string(session),
		Sender:  message.Sender,
		Text:    message.Text,
		At:      message.At,
		Local:   message.Local,
	}
}
