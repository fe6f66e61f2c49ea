package memory

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"nearby-chat/contract"
	"nearby-chat/domain"
	"nearby-chat/errors"
	"sync"
	"time"
)

var _ contract.LocalTransport = (*Endpoint)(nil)

// Endpoint is one device on a Hub. Callbacks reach its handler on a single
// goroutine, in the order the hub produced them.
type Endpoint struct {
	hub  *Hub
	name string
	box  *mailbox
	log  *slog.Logger

	handlerMu sync.RWMutex
	handler   contract.TransportHandler

	// guarded by hub.mu
	identity    domain.PeerIdentity
	advertising string
	browsing    string
	links       map[domain.PeerID]*Endpoint
	closed      bool
}

type invitation struct {
	timer    *time.Timer
	from, to *Endpoint
}

func (e *Endpoint) SetHandler(handler contract.TransportHandler) {
	e.handlerMu.Lock()
	defer e.handlerMu.Unlock()
	e.handler = handler
}

func (e *Endpoint) currentHandler() contract.TransportHandler {
	e.handlerMu.RLock()
	defer e.handlerMu.RUnlock()
	return e.handler
}

// deliver queues fn for the handler set at delivery time; nothing happens without one.
func (e *Endpoint) deliver(fn func(h contract.TransportHandler)) {
	e.box.post(func() {
		if h := e.currentHandler(); h != nil {
			fn(h)
		}
	})
}

func (e *Endpoint) StartAdvertising(identity domain.PeerIdentity, serviceTag string) error {
	e.hub.mu.Lock()
	defer e.hub.mu.Unlock()
	if e.closed {
		return errors.ErrSessionClosed
	}
	e.identity = identity
	e.advertising = serviceTag
	for _, browser := range e.hub.browsers(serviceTag, e) {
		browser.deliver(func(h contract.TransportHandler) { h.OnPeerFound(identity) })
	}
	e.log.Debug("Advertising", "peer", identity.String(), "service", serviceTag)
	return nil
}

func (e *Endpoint) StopAdvertising() {
	e.hub.mu.Lock()
	defer e.hub.mu.Unlock()
	e.stopAdvertising()
}

func (e *Endpoint) stopAdvertising() {
	if e.advertising == "" {
		return
	}
	identity := e.identity
	for _, browser := range e.hub.browsers(e.advertising, e) {
		browser.deliver(func(h contract.TransportHandler) { h.OnPeerLost(identity) })
	}
	e.advertising = ""
}

func (e *Endpoint) StartBrowsing(serviceTag string) error {
	e.hub.mu.Lock()
	defer e.hub.mu.Unlock()
	if e.closed {
		return errors.ErrSessionClosed
	}
	e.browsing = serviceTag
	for _, peer := range e.hub.advertisers(serviceTag, e) {
		e.deliver(func(h contract.TransportHandler) { h.OnPeerFound(peer) })
	}
	return nil
}

func (e *Endpoint) StopBrowsing() {
	e.hub.mu.Lock()
	defer e.hub.mu.Unlock()
	e.browsing = ""
}

// Invite returns once the invitation is queued. Acceptance, refusal and
// timeout are all reported through OnConnectionStateChanged.
func (e *Endpoint) Invite(ctx context.Context, peer domain.PeerID, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.hub.mu.Lock()
	defer e.hub.mu.Unlock()
	if e.closed {
		return errors.ErrSessionClosed
	}
	if e.advertising == "" {
		return fmt.Errorf("%w: %s is not advertising", errors.ErrInvalidTarget, e.name)
	}
	target, ok := e.hub.advertiser(peer)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrUnknownPeer, peer)
	}
	key := invitationKey{from: e.identity.ID, to: peer}
	if _, ok := e.hub.pending[key]; ok {
		return nil
	}

	inv := &invitation{from: e, to: target}
	inv.timer = time.AfterFunc(timeout, func() { e.hub.expire(key, inv) })
	e.hub.pending[key] = inv

	from := e.identity
	target.box.post(func() {
		h := target.currentHandler()
		if h == nil {
			e.hub.answer(key, inv, false)
			return
		}
		var once sync.Once
		h.OnInvitationReceived(from, func(accept bool) {
			once.Do(func() { e.hub.answer(key, inv, accept) })
		})
	})
	return nil
}

// answer settles an invitation still pending; late answers are ignored.
func (h *Hub) answer(key invitationKey, inv *invitation, accept bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending[key] != inv {
		return
	}
	delete(h.pending, key)
	inv.timer.Stop()

	from, to := inv.from, inv.to
	if !accept || from.closed || to.closed {
		target := to.identity
		from.deliver(func(th contract.TransportHandler) { th.OnConnectionStateChanged(target, domain.Disconnected) })
		return
	}
	from.links[to.identity.ID] = to
	to.links[from.identity.ID] = from
	fromID, toID := from.identity, to.identity
	to.deliver(func(th contract.TransportHandler) { th.OnConnectionStateChanged(fromID, domain.Connected) })
	from.deliver(func(th contract.TransportHandler) { th.OnConnectionStateChanged(toID, domain.Connected) })
}

func (h *Hub) expire(key invitationKey, inv *invitation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending[key] != inv {
		return
	}
	delete(h.pending, key)
	target := inv.to.identity
	h.log.Debug("Invitation timed out", "from", key.from, "to", key.to)
	inv.from.deliver(func(th contract.TransportHandler) { th.OnConnectionStateChanged(target, domain.Disconnected) })
}

// SendReliable delivers a copy of data to each linked peer, in order.
// Peers that are not linked are reported in the joined error; the others still receive the frame.
func (e *Endpoint) SendReliable(_ context.Context, data []byte, to []domain.PeerID) error {
	e.hub.mu.Lock()
	defer e.hub.mu.Unlock()
	if e.closed {
		return errors.ErrSessionClosed
	}
	var errs []error
	from := e.identity
	for _, id := range to {
		peer, ok := e.links[id]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", errors.ErrUnknownPeer, id))
			continue
		}
		frame := append([]byte(nil), data...)
		peer.deliver(func(h contract.TransportHandler) { h.OnDataReceived(from, frame) })
	}
	return goerrors.Join(errs...)
}

func (e *Endpoint) Disconnect(peer domain.PeerID) error {
	e.hub.mu.Lock()
	defer e.hub.mu.Unlock()
	other, ok := e.links[peer]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrUnknownPeer, peer)
	}
	e.unlink(other)
	return nil
}

// unlink drops the link both ways and tells both sides. Callers hold hub.mu.
func (e *Endpoint) unlink(other *Endpoint) {
	delete(e.links, other.identity.ID)
	delete(other.links, e.identity.ID)
	self, peer := e.identity, other.identity
	e.deliver(func(h contract.TransportHandler) { h.OnConnectionStateChanged(peer, domain.Disconnected) })
	other.deliver(func(h contract.TransportHandler) { h.OnConnectionStateChanged(self, domain.Disconnected) })
}

// Close leaves the hub: browsers lose this peer and every link is dropped.
func (e *Endpoint) Close() error {
	e.hub.mu.Lock()
	if e.closed {
		e.hub.mu.Unlock()
		return nil
	}
	e.stopAdvertising()
	e.browsing = ""
	for _, other := range e.links {
		e.unlink(other)
	}
	for key, inv := range e.hub.pending {
		if inv.from != e && inv.to != e {
			continue
		}
		inv.timer.Stop()
		delete(e.hub.pending, key)
		if inv.from != e {
			target := e.identity
			inv.from.deliver(func(h contract.TransportHandler) { h.OnConnectionStateChanged(target, domain.Disconnected) })
		}
	}
	e.closed = true
	delete(e.hub.endpoints, e)
	e.hub.mu.Unlock()

	e.box.close()
	return nil
}

// Identity returns the identity last advertised.
func (e *Endpoint) Identity() domain.PeerIdentity {
	e.hub.mu.Lock()
	defer e.hub.mu.Unlock()
	return e.identity
}

// Links returns the ids of the peers currently linked to this endpoint.
func (e *Endpoint) Links() []domain.PeerID {
	e.hub.mu.Lock()
	defer e.hub.mu.Unlock()
	out := make([]domain.PeerID, 0, len(e.links))
	for id := range e.links {
		out = append(out, id)
	}
	return out
}
