package bridge

import (
	"nearby-chat/domain"
	"nearby-chat/projection"
	"time"

	"github.com/samber/lo"
)

type PeerView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MessageView struct {
	ID     string    `json:"id"`
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
	Local  bool      `json:"local"`
}

type SessionView struct {
	Version       uint64     `json:"version"`
	Mode          string     `json:"mode"`
	Status        string     `json:"status"`
	Local         PeerView   `json:"local"`
	Connected     []PeerView `json:"connected"`
	Pending       []PeerView `json:"pending"`
	Discovered    []PeerView `json:"discovered"`
	Invitable     []PeerView `json:"invitable"`
	ShowDiscovery bool       `json:"show_discovery"`
	LastReceived  string     `json:"last_received,omitempty"`
}

// Update is pushed to websocket clients after every session change.
type Update struct {
	Type     string        `json:"type"`
	Session  *SessionView  `json:"session,omitempty"`
	Messages []MessageView `json:"messages,omitempty"`
	Joined   []PeerView    `json:"joined,omitempty"`
	Left     []PeerView    `json:"left,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// Command is what websocket clients send.
type Command struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	Peer string `json:"peer,omitempty"`
}

const (
	updateSnapshot = "snapshot"
	updateError    = "error"
	commandSend    = "send"
	commandInvite  = "invite"
)

func toPeerView(p domain.PeerIdentity) PeerView {
	return PeerView{ID: string(p.ID), Name: p.DisplayName}
}

func toPeerViews(peers []domain.PeerIdentity) []PeerView {
	return lo.Map(peers, func(p domain.PeerIdentity, _ int) PeerView { return toPeerView(p) })
}

func toMessageViews(messages []domain.Message) []MessageView {
	return lo.Map(messages, func(m domain.Message, _ int) MessageView {
		return MessageView{ID: m.ID.String(), Sender: m.Sender, Text: m.Text, At: m.At, Local: m.Local}
	})
}

func toSessionView(s domain.Snapshot) SessionView {
	return SessionView{
		Version:       s.Version,
		Mode:          s.Mode.String(),
		Status:        s.Status().String(),
		Local:         toPeerView(s.Local),
		Connected:     toPeerViews(s.Connected),
		Pending:       toPeerViews(s.Pending),
		Discovered:    toPeerViews(s.Discovered),
		Invitable:     toPeerViews(s.Invitable()),
		ShowDiscovery: s.ShowDiscovery(),
		LastReceived:  s.LastReceived,
	}
}

func toUpdate(s domain.Snapshot, change projection.Change) Update {
	view := toSessionView(s)
	return Update{
		Type:     updateSnapshot,
		Session:  &view,
		Messages: toMessageViews(change.Messages),
		Joined:   toPeerViews(change.Joined),
		Left:     toPeerViews(change.Left),
	}
}
