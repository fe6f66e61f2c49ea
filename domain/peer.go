// Package domain contains core concepts of the nearby chat session.
// Peers, modes, connection states and the message log live here.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"fmt"
	"nearby-chat/errors"
	"strings"

	"github.com/google/uuid"
)

// PeerID is the opaque identifier of a peer, unique for the lifetime of a session.
type PeerID string

// PeerIdentity pairs a PeerID with the human-readable name shown to users.
type PeerIdentity struct {
	ID          PeerID
	DisplayName string
}

// NewLocalIdentity allocates a fresh identity for the local participant.
func NewLocalIdentity(displayName string) PeerIdentity {
	return PeerIdentity{ID: PeerID(uuid.NewString()), DisplayName: displayName}
}

func (p PeerIdentity) String() string {
	return fmt.Sprintf("%s(%s)", p.DisplayName, p.ID)
}

// SessionMode is the capacity policy of a session, fixed at creation.
type SessionMode int

const (
	OneToOne SessionMode = iota
	Group
)

const (
	oneToOneCapacity = 1
	// Multipeer sessions hold 8 devices, self excluded.
	groupCapacity = 7
)

// Capacity returns the maximum number of connected peers, self excluded.
func (m SessionMode) Capacity() int {
	switch m {
	case Group:
		return groupCapacity
	default:
		return oneToOneCapacity
	}
}

func (m SessionMode) String() string {
	switch m {
	case Group:
		return "1:N"
	default:
		return "1:1"
	}
}

// ParseSessionMode accepts the lobby labels ("1:1", "1:N") and their spelled-out forms.
func ParseSessionMode(s string) (SessionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1:1", "one-to-one", "onetoone", "direct":
		return OneToOne, nil
	case "1:n", "group":
		return Group, nil
	}
	return OneToOne, fmt.Errorf("%w: %q", errors.ErrUnknownMode, s)
}

// PeerState is the connection lifecycle position of one peer.
type PeerState int

const (
	Discovered PeerState = iota
	InvitePending
	Connected
	Disconnected
)

func (s PeerState) String() string {
	switch s {
	case Discovered:
		return "discovered"
	case InvitePending:
		return "invite-pending"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	}
	return fmt.Sprintf("PeerState(%d)", int(s))
}
