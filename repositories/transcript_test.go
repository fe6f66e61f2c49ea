package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func transcript(session string, at time.Time) []DiskMessage {
	return []DiskMessage{
		{uuid.New(), session, "Alice", "hello", at, true},
		{uuid.New(), session, "Bob", "hi there", at.Add(1 * time.Minute), false},
		{uuid.New(), session, "Clara", "", at.Add(2 * time.Minute), false},
	}
}

func Test_Record_Multiple_Message(t *testing.T) {
	req := require.New(t)
	repository := NewTranscriptRepository(openDB(t), slog.Default(), nil)
	at := time.Now().UTC()
	diskMessages := transcript("session-1", at)

	// Given three messages stored, plus one from another session
	for _, dm := range diskMessages {
		req.NoError(repository.StoreMessage(dm))
	}
	req.NoError(repository.StoreMessage(transcript("session-2", at)[0]))

	// When the first session is read back
	fetched, cursor, err := repository.GetMessages("session-1", nil)

	// Then every message is returned, newest first
	req.NoError(err)
	req.NotNil(cursor)
	req.Equal([]DiskMessage{diskMessages[2], diskMessages[1], diskMessages[0]}, fetched)
}

func Test_Record_Multiple_Message_And_Limit(t *testing.T) {
	req := require.New(t)
	limit := 2
	repository := NewTranscriptRepository(openDB(t), slog.Default(), &limit)
	diskMessages := transcript("session-1", time.Now().UTC())
	for _, dm := range diskMessages {
		req.NoError(repository.StoreMessage(dm))
	}

	// When the first page is read
	page, cursor, err := repository.GetMessages("session-1", nil)
	req.NoError(err)
	req.Len(page, limit)
	req.Equal("Clara", page[0].Sender)
	req.Equal("Bob", page[1].Sender)

	// Then the cursor resumes with the oldest message
	page, _, err = repository.GetMessages("session-1", cursor)
	req.NoError(err)
	req.Len(page, 1)
	req.Equal("Alice", page[0].Sender)
	req.True(page[0].Local)
}

func Test_DecodeEntry(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewTranscriptRepository(db, slog.Default(), nil)
	message := transcript("session-1", time.Now().UTC())[1]
	req.NoError(repository.StoreMessage(message))

	// When the raw entry is read back from badger
	var decoded DiskMessage
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		it.Rewind()
		req.True(it.Valid())
		value, err := it.Item().ValueCopy(nil)
		if err != nil {
			return err
		}
		decoded, err = DecodeEntry(it.Item().KeyCopy(nil), value)
		return err
	})

	// Then it matches what was stored
	req.NoError(err)
	req.Equal(message, decoded)

	_, err = DecodeEntry([]byte("idx:nope"), nil)
	req.Error(err)
}
