package workers

import (
	"context"
	"fmt"
	"log/slog"
	"nearby-chat/contract"
	"nearby-chat/domain"
	"nearby-chat/domain/event"
	"nearby-chat/messaging"
	"strings"
	"time"
)

var _ contract.Worker = (*SessionLoop)(nil)

// Censor masks forbidden words in inbound text.
type Censor interface {
	Censor(original string) (string, []string)
}

// SessionLoop is the single writer of a session. Transport events and local
// commands are queued on one inbox and applied here one by one; after each
// mutation a complete snapshot is published, so readers never observe the
// connected peers and the message log out of step.
type SessionLoop struct {
	session       *domain.Session
	inbox         chan any
	outbox        chan Outbound
	transport     contract.LocalTransport
	admission     *Admission
	censor        Censor
	publish       func(domain.Snapshot)
	inviteTimeout time.Duration
	log           *slog.Logger
	now           func() time.Time
}

type SessionLoopConfig struct {
	Session       *domain.Session
	Inbox         chan any
	Outbox        chan Outbound
	Transport     contract.LocalTransport
	Admission     *Admission
	Censor        Censor
	Publish       func(domain.Snapshot)
	InviteTimeout time.Duration
	Log           *slog.Logger
}

func NewSessionLoop(cfg SessionLoopConfig) *SessionLoop {
	return &SessionLoop{
		session:       cfg.Session,
		inbox:         cfg.Inbox,
		outbox:        cfg.Outbox,
		transport:     cfg.Transport,
		admission:     cfg.Admission,
		censor:        cfg.Censor,
		publish:       cfg.Publish,
		inviteTimeout: cfg.InviteTimeout,
		log:           cfg.Log,
		now:           time.Now,
	}
}

func (w *SessionLoop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping session loop")
			return nil
		case item, ok := <-w.inbox:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			// Items still queued when teardown begins are dropped.
			if ctx.Err() != nil {
				w.log.Debug("Stopping session loop", "dropped", len(w.inbox)+1)
				return nil
			}
			if w.Handle(ctx, item) {
				w.publish(w.session.Snapshot())
			}
		}
	}
}

// Handle applies one inbox item and reports whether the session changed.
func (w *SessionLoop) Handle(ctx context.Context, item any) bool {
	switch it := item.(type) {
	case event.Found:
		return w.onFound(ctx, it.From)
	case event.Lost:
		return w.onLost(it.From)
	case event.StateChanged:
		return w.onStateChanged(ctx, it.From, it.State)
	case event.InvitationReceived:
		return w.onInvitationReceived(it)
	case event.DataReceived:
		return w.onDataReceived(it)
	case domain.SendCommand:
		return w.onSend(it)
	case domain.InviteCommand:
		return w.onInvite(ctx, it.Peer)
	default:
		w.log.Warn(fmt.Sprintf("Unknown inbox item %T", item))
		return false
	}
}

func (w *SessionLoop) onFound(ctx context.Context, peer domain.PeerIdentity) bool {
	if peer.ID == w.session.Local.ID {
		return false
	}
	added := w.session.Directory.Found(peer)
	discovered := w.session.Machine.Discover(peer) == domain.Changed
	if added {
		w.log.Debug("Peer found", "peer", peer.String())
	}

	if discovered {
		w.autoInvite(ctx, peer.ID)
	}
	return added || discovered
}

// autoInvite invites a discovered peer when the mode asks for it and a seat is
// free. It reports false when the group is full.
func (w *SessionLoop) autoInvite(ctx context.Context, id domain.PeerID) bool {
	mode, connected := w.session.Mode, w.session.Machine.ConnectedCount()
	if domain.DecideOnDiscovery(mode) != domain.AutoInvite || !domain.ShouldAutoInvite(mode, connected) {
		return false
	}
	if !domain.ShouldAcceptInvitation(mode, connected) {
		w.log.Debug("Group full, peer left discovered", "peer", id)
		return false
	}
	w.invite(ctx, id)
	return true
}

// fillSeats invites the peers left discovered while the group was full.
func (w *SessionLoop) fillSeats(ctx context.Context) {
	for _, peer := range w.session.Directory.List() {
		if state, ok := w.session.Machine.State(peer.ID); !ok || state != domain.Discovered {
			continue
		}
		if !w.autoInvite(ctx, peer.ID) {
			return
		}
	}
}

func (w *SessionLoop) onLost(peer domain.PeerIdentity) bool {
	lost := w.session.Directory.Lost(peer.ID)
	forgotten := w.session.Machine.Forget(peer.ID)
	if lost {
		w.log.Debug("Peer lost", "peer", peer.String())
	}
	return lost || forgotten
}

func (w *SessionLoop) onStateChanged(ctx context.Context, peer domain.PeerIdentity, state domain.PeerState) bool {
	machine := w.session.Machine
	if known, ok := machine.Identity(peer.ID); ok && peer.DisplayName == "" {
		peer = known
	}

	switch state {
	case domain.Connected:
		transition := machine.RecordConnected(peer)
		w.admission.Record(machine.ConnectedCount())
		switch transition {
		case domain.Changed:
			w.log.Info("Peer connected", "peer", peer.String(), "connected", machine.ConnectedCount())
			return true
		case domain.Refused:
			w.log.Warn("Peer connected beyond capacity, dropping it",
				"peer", peer.String(), "capacity", w.session.Mode.Capacity())
			if err := w.transport.Disconnect(peer.ID); err != nil {
				w.log.Warn("Failed to drop peer", "peer", peer.String(), "error", err)
			}
		}
		return false

	case domain.InvitePending:
		return machine.RecordInviteSent(peer.ID) == domain.Changed

	case domain.Disconnected:
		wasConnected := machine.ConnectedCount()
		transition := machine.RecordDisconnected(peer.ID)
		w.admission.Record(machine.ConnectedCount())
		if transition != domain.Changed {
			return false
		}
		w.log.Info("Peer disconnected", "peer", peer.String(), "connected", machine.ConnectedCount())
		// Still in range: it can be invited again as a fresh peer.
		if visible, ok := w.session.Directory.Get(peer.ID); ok {
			machine.Discover(visible)
		}
		if machine.ConnectedCount() < wasConnected {
			w.fillSeats(ctx)
		}
		return true
	}
	return false
}

func (w *SessionLoop) onInvitationReceived(evt event.InvitationReceived) bool {
	if !evt.Accepted {
		w.log.Info("Invitation rejected", "peer", evt.From.String(),
			"connected", w.session.Machine.ConnectedCount(), "capacity", w.session.Mode.Capacity())
		return false
	}
	w.log.Info("Invitation accepted", "peer", evt.From.String())
	return w.session.Machine.RecordInviteReceived(evt.From) == domain.Changed
}

func (w *SessionLoop) onDataReceived(evt event.DataReceived) bool {
	text, err := messaging.Decode(evt.Data)
	if err != nil {
		w.log.Debug("Frame dropped", "peer", evt.From.String(), "size", len(evt.Data), "error", err)
		return false
	}
	sender := evt.From
	if known, ok := w.session.Machine.Identity(sender.ID); ok && sender.DisplayName == "" {
		sender = known
	}
	if w.censor != nil {
		var words []string
		if text, words = w.censor.Censor(text); len(words) > 0 {
			w.log.Debug("Inbound message censored", "peer", sender.String(), "words", len(words))
		}
	}
	at := evt.At
	if at.IsZero() {
		at = w.now()
	}
	w.session.PostMessage(domain.NewMessage(sender.DisplayName, text, at, false))
	return true
}

// onSend echoes the message locally before, and independently of, the network send.
// A message appended here was sent, not necessarily delivered.
func (w *SessionLoop) onSend(cmd domain.SendCommand) bool {
	if strings.TrimSpace(cmd.Text) == "" {
		return false
	}
	at := cmd.At
	if at.IsZero() {
		at = w.now()
	}
	w.session.PostMessage(domain.NewMessage(w.session.Local.DisplayName, cmd.Text, at, true))

	peers := w.session.Machine.ConnectedPeers()
	if len(peers) == 0 {
		return true
	}
	select {
	case w.outbox <- Outbound{Text: cmd.Text, Peers: peers}:
	default:
		w.log.Warn("Outbox full, message not sent", "peers", len(peers))
	}
	return true
}

func (w *SessionLoop) onInvite(ctx context.Context, id domain.PeerID) bool {
	state, ok := w.session.Machine.State(id)
	if !ok || state != domain.Discovered {
		w.log.Debug("Invite ignored, peer no longer discovered", "peer", id)
		return false
	}
	w.invite(ctx, id)
	return true
}

func (w *SessionLoop) invite(ctx context.Context, id domain.PeerID) {
	machine := w.session.Machine
	if machine.RecordInviteSent(id) != domain.Changed {
		return
	}
	if err := w.transport.Invite(ctx, id, w.inviteTimeout); err != nil {
		w.log.Warn("Invitation failed", "peer", id, "error", err)
		machine.RecordDisconnected(id)
		if visible, ok := w.session.Directory.Get(id); ok {
			machine.Discover(visible)
		}
		return
	}
	w.log.Debug("Invitation sent", "peer", id, "timeout", w.inviteTimeout)
}
