package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSession_PostMessage_TracksLastReceived(t *testing.T) {
	// Given a session
	session := NewSession(Group, NewLocalIdentity("me"))
	now := time.Now()

	// When a local then a remote message are posted
	session.PostMessage(NewMessage("me", "hello", now, true))
	session.PostMessage(NewMessage("Bob", "hi there", now.Add(time.Second), false))
	session.PostMessage(NewMessage("me", "how are you?", now.Add(2*time.Second), true))

	// Then the log keeps insertion order and the last received line comes from Bob
	snapshot := session.Snapshot()
	require.Len(t, snapshot.Messages, 3)
	require.Equal(t, "hello", snapshot.Messages[0].Text)
	require.Equal(t, "how are you?", snapshot.Messages[2].Text)
	require.Equal(t, "Bob: hi there", snapshot.LastReceived)
}

func TestSession_Snapshot_IsIsolatedFromLaterMutations(t *testing.T) {
	// Given a snapshot taken with one message and one connected peer
	session := NewSession(Group, NewLocalIdentity("me"))
	bob := PeerIdentity{ID: "bob", DisplayName: "Bob"}
	session.Machine.RecordConnected(bob)
	session.PostMessage(NewMessage("Bob", "first", time.Now(), false))
	before := session.Snapshot()

	// When the session keeps changing
	session.PostMessage(NewMessage("Bob", "second", time.Now(), false))
	session.Machine.RecordDisconnected(bob.ID)
	after := session.Snapshot()

	// Then the first snapshot is untouched and versions grow
	require.Len(t, before.Messages, 1)
	require.Equal(t, []PeerIdentity{bob}, before.Connected)
	state, ok := before.StateOf(bob.ID)
	require.True(t, ok)
	require.Equal(t, Connected, state)

	require.Len(t, after.Messages, 2)
	require.Empty(t, after.Connected)
	require.Greater(t, after.Version, before.Version)
}

func TestSnapshot_Status(t *testing.T) {
	bob := PeerIdentity{ID: "bob", DisplayName: "Bob"}
	tests := []struct {
		name      string
		mode      SessionMode
		connected []PeerIdentity
		status    RoomStatus
		discovery bool
	}{
		{name: "one to one without partner", mode: OneToOne, status: Preparing, discovery: true},
		{name: "group without peer", mode: Group, status: Waiting},
		{name: "one to one with partner", mode: OneToOne, connected: []PeerIdentity{bob}, status: Active},
		{name: "group with peer", mode: Group, connected: []PeerIdentity{bob}, status: Active},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := Snapshot{Mode: tt.mode, Connected: tt.connected}
			require.Equal(t, tt.status, snapshot.Status())
			require.Equal(t, tt.discovery, snapshot.ShowDiscovery())
		})
	}
}

func TestSnapshot_Invitable_OnlyListsDiscoveredPeers(t *testing.T) {
	// Given three visible peers in different states
	session := NewSession(OneToOne, NewLocalIdentity("me"))
	alice := PeerIdentity{ID: "alice", DisplayName: "Alice"}
	bob := PeerIdentity{ID: "bob", DisplayName: "Bob"}
	carol := PeerIdentity{ID: "carol", DisplayName: "Carol"}
	for _, p := range []PeerIdentity{alice, bob, carol} {
		session.Directory.Found(p)
		session.Machine.Discover(p)
	}
	session.Machine.RecordInviteSent(bob.ID)
	session.Machine.RecordConnected(carol)

	// When listing the invitable peers
	invitable := session.Snapshot().Invitable()

	// Then only Alice is offered
	require.Equal(t, []PeerIdentity{alice}, invitable)
}

func TestMessageLog_Copy(t *testing.T) {
	log := NewMessageLog()
	_, ok := log.Last()
	require.False(t, ok)

	log.Append(NewMessage("a", "one", time.Now(), true))
	log.Append(NewMessage("b", "two", time.Now(), false))

	copied := log.Copy()
	copied[0].Text = "changed"

	require.Equal(t, 2, log.Len())
	last, ok := log.Last()
	require.True(t, ok)
	require.Equal(t, "two", last.Text)
	require.Equal(t, "one", log.Copy()[0].Text)
}
