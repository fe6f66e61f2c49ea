package test

import (
	"log/slog"
	"nearby-chat/domain"
	"nearby-chat/moderation"
	"nearby-chat/repositories"
	"nearby-chat/runtime"
	"nearby-chat/sink"
	"nearby-chat/transport/memory"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

// Two one-to-one sessions over an in-memory network: Bob censors what he
// receives and keeps a transcript of the conversation on disk.
func Test_Scenario(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	// Reduced to 16 Mo for testing
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	defer db.Close()

	hub := memory.NewHub(log)
	repository := repositories.NewTranscriptRepository(db, log, lo.ToPtr(100))
	transcript := sink.NewTranscriptSink(repository, log)
	moderator, err := moderation.NewModerator([]string{"badger"}, '*', log)
	req.NoError(err)

	alice := runtime.NewPeerSession(log, hub.Endpoint("alice"), domain.OneToOne, "Alice",
		runtime.WithInviteTimeout(time.Second))
	bob := runtime.NewPeerSession(log, hub.Endpoint("bob"), domain.OneToOne, "Bob",
		runtime.WithInviteTimeout(time.Second),
		runtime.WithCensor(moderator),
		runtime.WithSink("transcript", transcript))
	req.NoError(alice.Create(t.Context()))
	defer alice.Teardown()
	req.NoError(bob.Create(t.Context()))
	defer bob.Teardown()

	// 1. Alice picks Bob from the discovered list
	req.Eventually(func() bool { return len(alice.Snapshot().Invitable()) == 1 }, 2*time.Second, 10*time.Millisecond)
	req.NoError(alice.Invite(alice.Snapshot().Invitable()[0].ID))
	req.Eventually(func() bool {
		return len(alice.ConnectedPeers()) == 1 && len(bob.ConnectedPeers()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// 2. They chat
	alice.Send("have you seen the b4dger?")
	req.Eventually(func() bool { return len(bob.Messages()) == 1 }, 2*time.Second, 10*time.Millisecond)
	bob.Send("not yet")

	// 3. Bob only ever sees the censored line, and both lines reach the disk
	req.Equal("have you seen the ******?", bob.Messages()[0].Text)
	req.Eventually(func() bool { return transcript.Stored() == 2 }, 2*time.Second, 10*time.Millisecond)

	stored, _, err := repository.GetMessages(string(bob.Snapshot().Local.ID), nil)
	req.NoError(err)
	req.Len(stored, 2)
	// Newest first
	req.Equal("not yet", stored[0].Text)
	req.True(stored[0].Local)
	req.Equal("Alice", stored[1].Sender)
	req.Equal("have you seen the ******?", stored[1].Text)

	// 4. Alice hangs up
	alice.Teardown()
	req.Eventually(func() bool { return len(bob.ConnectedPeers()) == 0 }, 2*time.Second, 10*time.Millisecond)
	req.Equal(domain.Preparing, bob.Snapshot().Status())
}
