package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionStateMachine_HappyPath(t *testing.T) {
	// Given a discovered peer
	m := NewSessionStateMachine(Group)
	bob := PeerIdentity{ID: "bob", DisplayName: "Bob"}
	require.Equal(t, Changed, m.Discover(bob))

	// When it is invited then connects then leaves
	require.Equal(t, Changed, m.RecordInviteSent(bob.ID))
	state, _ := m.State(bob.ID)
	require.Equal(t, InvitePending, state)
	require.Equal(t, []PeerIdentity{bob}, m.PendingPeers())

	require.Equal(t, Changed, m.RecordConnected(bob))
	require.Equal(t, 1, m.ConnectedCount())
	require.Equal(t, []PeerIdentity{bob}, m.ConnectedPeers())

	require.Equal(t, Changed, m.RecordDisconnected(bob.ID))

	// Then it ends disconnected and out of the connected list
	state, _ = m.State(bob.ID)
	require.Equal(t, Disconnected, state)
	require.Equal(t, 0, m.ConnectedCount())
	require.Empty(t, m.ConnectedPeers())
}

func TestSessionStateMachine_RepeatedCallsAreIdempotent(t *testing.T) {
	m := NewSessionStateMachine(Group)
	bob := PeerIdentity{ID: "bob", DisplayName: "Bob"}
	m.Discover(bob)

	require.Equal(t, Unchanged, m.Discover(bob))
	m.RecordInviteSent(bob.ID)
	require.Equal(t, Unchanged, m.RecordInviteSent(bob.ID))
	m.RecordConnected(bob)
	require.Equal(t, Unchanged, m.RecordConnected(bob))
	require.Equal(t, 1, m.ConnectedCount())
	m.RecordDisconnected(bob.ID)
	require.Equal(t, Unchanged, m.RecordDisconnected(bob.ID))
	require.Equal(t, 0, m.ConnectedCount())
}

func TestSessionStateMachine_InviteSent_RequiresDiscovered(t *testing.T) {
	m := NewSessionStateMachine(Group)

	require.Equal(t, Unchanged, m.RecordInviteSent("ghost"))

	bob := PeerIdentity{ID: "bob", DisplayName: "Bob"}
	m.RecordConnected(bob)
	require.Equal(t, Unchanged, m.RecordInviteSent(bob.ID))
}

func TestSessionStateMachine_ConnectedWithoutDiscovery(t *testing.T) {
	// Given a peer connecting on its own invitation, never seen by discovery
	m := NewSessionStateMachine(OneToOne)
	carol := PeerIdentity{ID: "carol", DisplayName: "Carol"}

	// When the invitation is accepted then the link comes up
	require.Equal(t, Changed, m.RecordInviteReceived(carol))
	require.Equal(t, Changed, m.RecordConnected(carol))

	// Then it is tracked as connected
	identity, ok := m.Identity(carol.ID)
	require.True(t, ok)
	require.Equal(t, carol, identity)
	require.Equal(t, 1, m.ConnectedCount())
}

func TestSessionStateMachine_RefusesBeyondCapacity(t *testing.T) {
	tests := []struct {
		mode SessionMode
	}{
		{mode: OneToOne},
		{mode: Group},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			// Given a full session
			m := NewSessionStateMachine(tt.mode)
			for i := 0; i < tt.mode.Capacity(); i++ {
				require.Equal(t, Changed, m.RecordConnected(PeerIdentity{ID: PeerID(fmt.Sprint(i))}))
			}

			// When one more peer connects
			transition := m.RecordConnected(PeerIdentity{ID: "extra", DisplayName: "Extra"})

			// Then it is refused and the count never exceeds capacity
			require.Equal(t, Refused, transition)
			require.Equal(t, tt.mode.Capacity(), m.ConnectedCount())
			_, ok := m.State("extra")
			require.False(t, ok)
		})
	}
}

func TestSessionStateMachine_DisconnectedPeerCanBeRediscovered(t *testing.T) {
	m := NewSessionStateMachine(OneToOne)
	bob := PeerIdentity{ID: "bob", DisplayName: "Bob"}
	m.Discover(bob)
	m.RecordInviteSent(bob.ID)
	m.RecordDisconnected(bob.ID)

	require.Equal(t, Changed, m.Discover(bob))
	state, _ := m.State(bob.ID)
	require.Equal(t, Discovered, state)
	require.Equal(t, Changed, m.RecordInviteSent(bob.ID))
}

func TestSessionStateMachine_Forget(t *testing.T) {
	m := NewSessionStateMachine(Group)
	alice := PeerIdentity{ID: "alice", DisplayName: "Alice"}
	bob := PeerIdentity{ID: "bob", DisplayName: "Bob"}
	carol := PeerIdentity{ID: "carol", DisplayName: "Carol"}
	m.Discover(alice)
	m.Discover(bob)
	m.RecordConnected(bob)
	m.RecordInviteReceived(carol)

	require.True(t, m.Forget(alice.ID))
	require.False(t, m.Forget(bob.ID))
	require.True(t, m.Forget(carol.ID))
	require.False(t, m.Forget("ghost"))
	require.Len(t, m.States(), 1)
}

func TestSessionStateMachine_ConnectedPeers_SortedByName(t *testing.T) {
	m := NewSessionStateMachine(Group)
	m.RecordConnected(PeerIdentity{ID: "3", DisplayName: "Zoe"})
	m.RecordConnected(PeerIdentity{ID: "2", DisplayName: "Adam"})
	m.RecordConnected(PeerIdentity{ID: "1", DisplayName: "Adam"})

	require.Equal(t, []PeerIdentity{
		{ID: "1", DisplayName: "Adam"},
		{ID: "2", DisplayName: "Adam"},
		{ID: "3", DisplayName: "Zoe"},
	}, m.ConnectedPeers())
}

func TestPeerState_String(t *testing.T) {
	require.Equal(t, "discovered", Discovered.String())
	require.Equal(t, "invite-pending", InvitePending.String())
	require.Equal(t, "connected", Connected.String())
	require.Equal(t, "disconnected", Disconnected.String())
	require.Equal(t, "PeerState(9)", PeerState(9).String())
}
