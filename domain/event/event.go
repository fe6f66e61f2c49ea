// Package event turns transport callbacks into one tagged union consumed by the
// session loop, so transitions can be driven without a live transport.
package event

import (
	"nearby-chat/domain"
	"time"
)

// Type tags a TransportEvent.
type Type string

const (
	FoundType              Type = "PEER_FOUND"
	LostType               Type = "PEER_LOST"
	StateChangedType       Type = "STATE_CHANGED"
	InvitationReceivedType Type = "INVITATION_RECEIVED"
	DataReceivedType       Type = "DATA_RECEIVED"
)

// TransportEvent is anything the transport reports about a remote peer.
type TransportEvent interface {
	Type() Type
	Peer() domain.PeerIdentity
}

type Found struct {
	From domain.PeerIdentity
}

func (Found) Type() Type                  { return FoundType }
func (e Found) Peer() domain.PeerIdentity { return e.From }

type Lost struct {
	From domain.PeerIdentity
}

func (Lost) Type() Type                  { return LostType }
func (e Lost) Peer() domain.PeerIdentity { return e.From }

// StateChanged carries the connection state reported by the transport.
// An abandoned invitation is reported as Disconnected.
type StateChanged struct {
	From  domain.PeerIdentity
	State domain.PeerState
}

func (StateChanged) Type() Type                  { return StateChangedType }
func (e StateChanged) Peer() domain.PeerIdentity { return e.From }

// InvitationReceived is recorded by the loop after the accept decision was
// already given to the transport.
type InvitationReceived struct {
	From     domain.PeerIdentity
	Accepted bool
}

func (InvitationReceived) Type() Type                  { return InvitationReceivedType }
func (e InvitationReceived) Peer() domain.PeerIdentity { return e.From }

type DataReceived struct {
	From domain.PeerIdentity
	Data []byte
	At   time.Time
}

func (DataReceived) Type() Type                  { return DataReceivedType }
func (e DataReceived) Peer() domain.PeerIdentity { return e.From }
