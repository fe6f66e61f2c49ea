package internal

import (
	"fmt"
	"log/slog"
	"nearby-chat/repositories"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDefaultMapper_TranscriptKey(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 5, 1, 13, 45, 10, 0, time.Local)
	key := fmt.Sprintf("msg:0f8fad5b-d9cb-469f-a165-70867728950e:%019d:7c9e6679-7425-40de-944b-e07fc1f90ae7", at.UnixNano())

	row := DefaultMapper(key, []byte("abc"))

	req.Equal("0f8fad5b", row.Session)
	req.Equal("7c9e6679", row.EntityID)
	req.Equal("13:45:10", row.Timestamp)
	req.Equal("Size: 3 bytes", row.Detail)
}

func TestDefaultMapper_UnknownKey(t *testing.T) {
	row := DefaultMapper("idx:foo", nil)
	require.Equal(t, "RAW", row.Type)
	require.Equal(t, "default", row.Session)
}

func TestTranscriptMapper_DecodesMessages(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	// Given a message stored by the transcript repository
	repository := repositories.NewTranscriptRepository(db, slog.Default(), nil)
	req.NoError(repository.StoreMessage(repositories.DiskMessage{
		ID:      uuid.New(),
		Session: "session-1",
		Sender:  "Bob",
		Text:    "hello",
		At:      time.Now(),
	}))

	// When the raw entry is mapped
	var row InspectRow
	req.NoError(db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		it.Rewind()
		req.True(it.Valid())
		return it.Item().Value(func(val []byte) error {
			row = TranscriptMapper(string(it.Item().Key()), val)
			return nil
		})
	}))

	// Then the message is readable
	req.Equal("CHAT", row.Type)
	req.Equal("Bob: hello", row.Detail)
	req.Equal("session-", row.Session)
}

func TestTranscriptMapper_FallsBack(t *testing.T) {
	row := TranscriptMapper("msg:a:b:c", []byte{0xff})
	require.Equal(t, "RAW", row.Type)
}

func TestMergeStats(t *testing.T) {
	merged := MergeStats(
		func() map[string]any { return map[string]any{"Mode": "1:1", "PID": 1} },
		func() map[string]any { return map[string]any{"PID": 2} },
	)

	require.Equal(t, map[string]any{"Mode": "1:1", "PID": 2}, merged())
}

func TestProcessStats(t *testing.T) {
	stats := ProcessStats()
	require.Contains(t, stats, "PID")
}
