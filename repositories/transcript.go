//go:generate go run go.uber.org/mock/mockgen -source=transcript.go -destination=../mocks/mock_transcript_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type ITranscriptRepository interface {
	StoreMessage(message DiskMessage) error
	GetMessages(session string, cursor *string) ([]DiskMessage, *string, error)
}

// TranscriptRepository keeps the chat transcript of every session on disk.
type TranscriptRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewTranscriptRepository(db *badger.DB, log *slog.Logger, limitMessages *int) TranscriptRepository {
	return TranscriptRepository{db: db, log: log, limitMessages: limitMessages}
}

type DiskMessage struct {
	ID      uuid.UUID
	Session string
	Sender  string
	Text    string
	At      time.Time
	Local   bool
}

// StoreMessage persists a message in BadgerDB.
// The key is formatted as "msg:{session}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two messages
//     arrive at the same nanosecond.
func (m TranscriptRepository) StoreMessage(message DiskMessage) error {
	key := fmt.Sprintf("msg:%s:%019d:%s",
		message.Session,
		message.At.UnixNano(),
		message.ID,
	)
	value, err := fromDiskMessage(message)
	if err != nil {
		return err
	}
	bytes, err := proto.Marshal(value)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetMessages retrieves the messages of a session, newest first, using a prefix scan.
// Thanks to the padded timestamp in the key, messages are naturally sorted by time.
// The returned cursor resumes the scan right after the last message returned.
func (m TranscriptRepository) GetMessages(session string, cursor *string) ([]DiskMessage, *string, error) {
	var byteMessages [][]byte
	var diskMessages []DiskMessage
	var lastKey string
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%s:", session)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Start past the newest possible key, then walk back in time
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(byteMessages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", *m.limitMessages))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				byteMessages = append(byteMessages, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	for _, b := range byteMessages {
		var value structpb.Struct
		if err = proto.Unmarshal(b, &value); err != nil {
			return nil, nil, err
		}
		message, err := toDiskMessage(session, &value)
		if err != nil {
			return nil, nil, err
		}
		diskMessages = append(diskMessages, message)
	}
	return diskMessages, &lastKey, nil
}

// DecodeEntry rebuilds a message from a raw key/value pair, for inspection tools.
func DecodeEntry(key, value []byte) (DiskMessage, error) {
	parts := strings.Split(string(key), ":")
	if len(parts) != 4 || parts[0] != "msg" {
		return DiskMessage{}, fmt.Errorf("not a transcript key: %q", key)
	}
	var st structpb.Struct
	if err := proto.Unmarshal(value, &st); err != nil {
		return DiskMessage{}, err
	}
	return toDiskMessage(parts[1], &st)
}

func fromDiskMessage(message DiskMessage) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":     message.ID.String(),
		"sender": message.Sender,
		"text":   message.Text,
		"at":     message.At.UTC().Format(time.RFC3339Nano),
		"local":  message.Local,
	})
}

func toDiskMessage(session string, value *structpb.Struct) (DiskMessage, error) {
	fields := value.GetFields()
	parsedID, err := uuid.Parse(fields["id"].GetStringValue())
	if err != nil {
		return DiskMessage{}, err
	}
	at, err := time.Parse(time.RFC3339Nano, fields["at"].GetStringValue())
	if err != nil {
		return DiskMessage{}, err
	}
	return DiskMessage{
		ID:      parsedID,
		Session: session,
		Sender:  fields["sender"].GetStringValue(),
		Text:    fields["text"].GetStringValue(),
		At:      at.UTC(),
		Local:   fields["local"].GetBoolValue(),
	}, nil
}
