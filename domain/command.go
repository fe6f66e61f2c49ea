package domain

import (
	"time"
)

// Command is a local, user-initiated request handled by the session loop.
type Command interface {
	CommandName() string
}

type SendCommand struct {
	Text string
	At   time.Time
}

func (SendCommand) CommandName() string { return "send" }

type InviteCommand struct {
	Peer PeerID
}

func (InviteCommand) CommandName() string { return "invite" }
