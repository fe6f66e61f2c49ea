package domain

import (
	"fmt"

	"github.com/samber/lo"
)

// Session is the aggregate root of one chat room: mode, local identity,
// per-peer states, the discovery directory and the message log.
// Only the session loop mutates it; everything else reads Snapshots.
type Session struct {
	Mode      SessionMode
	Local     PeerIdentity
	Machine   *SessionStateMachine
	Directory *PeerDirectory
	Log       *MessageLog

	version      uint64
	lastReceived string
}

func NewSession(mode SessionMode, local PeerIdentity) *Session {
	return &Session{
		Mode:      mode,
		Local:     local,
		Machine:   NewSessionStateMachine(mode),
		Directory: NewPeerDirectory(),
		Log:       NewMessageLog(),
	}
}

// PostMessage appends to the log and remembers the last line received from a peer.
func (s *Session) PostMessage(message Message) {
	s.Log.Append(message)
	if !message.Local {
		s.lastReceived = fmt.Sprintf("%s: %s", message.Sender, message.Text)
	}
}

// Snapshot captures a consistent, immutable copy of the session and bumps its version.
func (s *Session) Snapshot() Snapshot {
	s.version++
	return Snapshot{
		Version:      s.version,
		Mode:         s.Mode,
		Local:        s.Local,
		Connected:    s.Machine.ConnectedPeers(),
		Pending:      s.Machine.PendingPeers(),
		Discovered:   s.Directory.List(),
		Messages:     s.Log.Copy(),
		LastReceived: s.lastReceived,
		states:       s.Machine.States(),
	}
}

// RoomStatus mirrors the header shown on top of a chat room.
type RoomStatus int

const (
	// Preparing is a one-to-one room still choosing its partner.
	Preparing RoomStatus = iota
	// Waiting is a group room nobody joined yet.
	Waiting
	Active
)

func (s RoomStatus) String() string {
	switch s {
	case Preparing:
		return "preparing 1:1 connection"
	case Waiting:
		return "waiting..."
	default:
		return "session active"
	}
}

// Snapshot is a read-only view of a Session at one point in time.
// Connected peers and messages always come from the same mutation.
type Snapshot struct {
	Version      uint64
	Mode         SessionMode
	Local        PeerIdentity
	Connected    []PeerIdentity
	Pending      []PeerIdentity
	Discovered   []PeerIdentity
	Messages     []Message
	LastReceived string

	states map[PeerID]PeerState
}

// StateOf returns the connection state a peer had when the snapshot was taken.
func (s Snapshot) StateOf(id PeerID) (PeerState, bool) {
	state, ok := s.states[id]
	return state, ok
}

// Invitable returns the visible peers that can still be invited manually.
func (s Snapshot) Invitable() []PeerIdentity {
	return lo.Filter(s.Discovered, func(p PeerIdentity, _ int) bool {
		state, ok := s.states[p.ID]
		return !ok || state == Discovered
	})
}

func (s Snapshot) Status() RoomStatus {
	if len(s.Connected) > 0 {
		return Active
	}
	if s.Mode == OneToOne {
		return Preparing
	}
	return Waiting
}

// ShowDiscovery reports whether the discovered peer list should be offered for manual selection.
func (s Snapshot) ShowDiscovery() bool {
	return s.Mode == OneToOne && len(s.Connected) == 0
}
