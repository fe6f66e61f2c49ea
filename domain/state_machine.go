package domain

import (
	"sort"

	"github.com/samber/lo"
)

// Transition describes the outcome of a state machine call.
type Transition int

const (
	// Unchanged means the call was a no-op (idempotent repeat or invalid source state).
	Unchanged Transition = iota
	// Changed means the peer moved to a new state.
	Changed
	// Refused means the transition would break the capacity invariant.
	Refused
)

type peerEntry struct {
	identity PeerIdentity
	state    PeerState
}

// SessionStateMachine holds the connection lifecycle of every known peer:
//
//	Discovered -> InvitePending -> Connected -> Disconnected
//
// Disconnected is terminal; a peer seen again re-enters at Discovered.
// It is not safe for concurrent use; the session loop is its only writer.
type SessionStateMachine struct {
	mode      SessionMode
	peers     map[PeerID]*peerEntry
	connected int
}

func NewSessionStateMachine(mode SessionMode) *SessionStateMachine {
	return &SessionStateMachine{
		mode:  mode,
		peers: make(map[PeerID]*peerEntry),
	}
}

// Discover registers a peer as Discovered unless it is already tracked in a live state.
func (m *SessionStateMachine) Discover(peer PeerIdentity) Transition {
	entry, ok := m.peers[peer.ID]
	if ok && entry.state != Disconnected {
		entry.identity = peer
		return Unchanged
	}
	m.peers[peer.ID] = &peerEntry{identity: peer, state: Discovered}
	return Changed
}

// RecordInviteSent moves Discovered -> InvitePending and is a no-op otherwise.
func (m *SessionStateMachine) RecordInviteSent(id PeerID) Transition {
	entry, ok := m.peers[id]
	if !ok || entry.state != Discovered {
		return Unchanged
	}
	entry.state = InvitePending
	return Changed
}

// RecordInviteReceived tracks a peer we accepted an invitation from, even if
// discovery never reported it.
func (m *SessionStateMachine) RecordInviteReceived(peer PeerIdentity) Transition {
	entry, ok := m.peers[peer.ID]
	if ok && (entry.state == Connected || entry.state == InvitePending) {
		return Unchanged
	}
	m.peers[peer.ID] = &peerEntry{identity: peer, state: InvitePending}
	return Changed
}

// RecordConnected moves any prior state to Connected. Repeated calls for an
// already connected peer are Unchanged. A connection beyond the mode capacity is Refused.
func (m *SessionStateMachine) RecordConnected(peer PeerIdentity) Transition {
	entry, ok := m.peers[peer.ID]
	if ok && entry.state == Connected {
		return Unchanged
	}
	if m.connected >= m.mode.Capacity() {
		return Refused
	}
	if !ok {
		entry = &peerEntry{identity: peer}
		m.peers[peer.ID] = entry
	}
	if peer.DisplayName != "" {
		entry.identity = peer
	}
	entry.state = Connected
	m.connected++
	return Changed
}

// RecordDisconnected moves any state to Disconnected and drops the peer from the connected list.
func (m *SessionStateMachine) RecordDisconnected(id PeerID) Transition {
	entry, ok := m.peers[id]
	if !ok || entry.state == Disconnected {
		return Unchanged
	}
	if entry.state == Connected {
		m.connected--
	}
	entry.state = Disconnected
	return Changed
}

// Forget drops a peer that left range unless it is connected. A pending
// invitation with a peer out of range can not complete.
func (m *SessionStateMachine) Forget(id PeerID) bool {
	entry, ok := m.peers[id]
	if !ok || entry.state == Connected {
		return false
	}
	delete(m.peers, id)
	return true
}

func (m *SessionStateMachine) State(id PeerID) (PeerState, bool) {
	entry, ok := m.peers[id]
	if !ok {
		return 0, false
	}
	return entry.state, true
}

func (m *SessionStateMachine) Identity(id PeerID) (PeerIdentity, bool) {
	entry, ok := m.peers[id]
	if !ok {
		return PeerIdentity{}, false
	}
	return entry.identity, true
}

// States returns a copy of every tracked peer state.
func (m *SessionStateMachine) States() map[PeerID]PeerState {
	out := make(map[PeerID]PeerState, len(m.peers))
	for id, entry := range m.peers {
		out[id] = entry.state
	}
	return out
}

func (m *SessionStateMachine) ConnectedCount() int {
	return m.connected
}

// ConnectedPeers returns the connected peers sorted by display name then id,
// so two snapshots of the same set compare equal.
func (m *SessionStateMachine) ConnectedPeers() []PeerIdentity {
	return m.peersIn(Connected)
}

func (m *SessionStateMachine) PendingPeers() []PeerIdentity {
	return m.peersIn(InvitePending)
}

func (m *SessionStateMachine) peersIn(state PeerState) []PeerIdentity {
	entries := lo.Filter(lo.Values(m.peers), func(e *peerEntry, _ int) bool {
		return e.state == state
	})
	out := lo.Map(entries, func(e *peerEntry, _ int) PeerIdentity {
		return e.identity
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayName != out[j].DisplayName {
			return out[i].DisplayName < out[j].DisplayName
		}
		return out[i].ID < out[j].ID
	})
	return out
}
