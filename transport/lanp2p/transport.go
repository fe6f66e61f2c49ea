// Package lanp2p is the LocalTransport of real devices: a libp2p host on the
// local network, discovered through mDNS under the session service tag.
package lanp2p

import (
	"bufio"
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"log/slog"
	"nearby-chat/contract"
	"nearby-chat/domain"
	"nearby-chat/errors"
	"sync"
	"time"

	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/p2p/discovery/mdns"
	ma "github.com/multiformats/go-multiaddr"
)

const (
	DefaultListenAddr   = "/ip4/0.0.0.0/tcp/0"
	DefaultDiscoveryTTL = 2 * time.Minute
	helloTimeout        = 5 * time.Second
)

var (
	_ contract.LocalTransport = (*Transport)(nil)
	_ mdns.Notifee            = (*Transport)(nil)
)

type Config struct {
	ListenAddr string
	// DiscoveryTTL is how long an unreachable peer stays listed after its last announcement.
	DiscoveryTTL time.Duration
	DisableMDNS  bool
}

type Transport struct {
	log  *slog.Logger
	host host.Host
	ttl  time.Duration
	mdns bool

	handlerMu sync.RWMutex
	handler   contract.TransportHandler

	mu          sync.Mutex
	identity    domain.PeerIdentity
	serviceTag  string
	advertising bool
	browsing    bool
	discovery   mdns.Service
	peers       map[peer.ID]*remote
	byID        map[domain.PeerID]peer.ID
	links       map[peer.ID]*link
	closed      bool

	ctx    context.Context
	cancel context.CancelFunc
}

type remote struct {
	identity domain.PeerIdentity
	lastSeen time.Time
}

// link is an accepted connection; frames go through one long-lived stream so they arrive in order.
type link struct {
	mu       sync.Mutex
	identity domain.PeerIdentity
	stream   network.Stream
}

func New(log *slog.Logger, cfg Config) (*Transport, error) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.DiscoveryTTL <= 0 {
		cfg.DiscoveryTTL = DefaultDiscoveryTTL
	}
	addr, err := ma.NewMultiaddr(cfg.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: listen address %q: %w", errors.ErrTransportStart, cfg.ListenAddr, err)
	}
	h, err := libp2p.New(libp2p.ListenAddrs(addr))
	if err != nil {
		return nil, fmt.Errorf("%w: libp2p host: %w", errors.ErrTransportStart, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Transport{
		log:    log.With("host", h.ID().String()),
		host:   h,
		ttl:    cfg.DiscoveryTTL,
		mdns:   !cfg.DisableMDNS,
		peers:  make(map[peer.ID]*remote),
		byID:   make(map[domain.PeerID]peer.ID),
		links:  make(map[peer.ID]*link),
		ctx:    ctx,
		cancel: cancel,
	}
	h.SetStreamHandler(helloProtocol, t.handleHello)
	h.SetStreamHandler(inviteProtocol, t.handleInvite)
	h.SetStreamHandler(frameProtocol, t.handleFrames)
	h.Network().Notify(&network.NotifyBundle{DisconnectedF: t.onConnClosed})
	go t.sweep()

	t.log.Info("LAN transport listening", "addrs", h.Addrs())
	return t, nil
}

// AddrInfo is what another host needs to reach this one without mDNS.
func (t *Transport) AddrInfo() peer.AddrInfo {
	return peer.AddrInfo{ID: t.host.ID(), Addrs: t.host.Addrs()}
}

func (t *Transport) SetHandler(handler contract.TransportHandler) {
	t.handlerMu.Lock()
	defer t.handlerMu.Unlock()
	t.handler = handler
}

func (t *Transport) notify(fn func(h contract.TransportHandler)) {
	t.handlerMu.RLock()
	h := t.handler
	t.handlerMu.RUnlock()
	if h != nil {
		fn(h)
	}
}

func (t *Transport) StartAdvertising(identity domain.PeerIdentity, serviceTag string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return errors.ErrSessionClosed
	}
	t.identity = identity
	t.advertising = true
	return t.startDiscovery(serviceTag)
}

func (t *Transport) StopAdvertising() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.advertising = false
	if !t.browsing {
		t.stopDiscovery()
	}
}

func (t *Transport) StartBrowsing(serviceTag string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return errors.ErrSessionClosed
	}
	t.browsing = true
	return t.startDiscovery(serviceTag)
}

func (t *Transport) StopBrowsing() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.browsing = false
	if !t.advertising {
		t.stopDiscovery()
	}
}

// startDiscovery runs one mDNS service for both advertising and browsing. Callers hold t.mu.
func (t *Transport) startDiscovery(serviceTag string) error {
	t.serviceTag = serviceTag
	if !t.mdns || t.discovery != nil {
		return nil
	}
	svc := mdns.NewMdnsService(t.host, fmt.Sprintf("_%s._udp", serviceTag), t)
	if err := svc.Start(); err != nil {
		return fmt.Errorf("mdns: %w", err)
	}
	t.discovery = svc
	return nil
}

func (t *Transport) stopDiscovery() {
	if t.discovery == nil {
		return
	}
	if err := t.discovery.Close(); err != nil {
		t.log.Debug("Failed to stop mdns", "error", err)
	}
	t.discovery = nil
}

// HandlePeerFound is called by mDNS for every announcement, repeated ones included.
func (t *Transport) HandlePeerFound(info peer.AddrInfo) {
	if info.ID == t.host.ID() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(t.ctx, helloTimeout)
		defer cancel()
		if err := t.AddPeer(ctx, info); err != nil {
			t.log.Debug("Peer not identified", "peer", info.ID.String(), "error", err)
		}
	}()
}

// AddPeer connects to a host and asks for the identity it advertises.
func (t *Transport) AddPeer(ctx context.Context, info peer.AddrInfo) error {
	t.mu.Lock()
	browsing := t.browsing
	t.mu.Unlock()
	if !browsing {
		return nil
	}

	if err := t.host.Connect(ctx, info); err != nil {
		return err
	}
	s, err := t.host.NewStream(ctx, info.ID, helloProtocol)
	if err != nil {
		return err
	}
	defer s.Close()
	_ = s.SetReadDeadline(time.Now().Add(helloTimeout))
	identity, err := readIdentity(bufio.NewReader(s))
	if err != nil {
		return err
	}
	t.found(info.ID, identity)
	return nil
}

func (t *Transport) found(pid peer.ID, identity domain.PeerIdentity) {
	t.mu.Lock()
	if identity.ID == t.identity.ID || !t.browsing {
		t.mu.Unlock()
		return
	}
	r, ok := t.peers[pid]
	if ok && r.identity == identity {
		r.lastSeen = time.Now()
		t.mu.Unlock()
		return
	}
	t.peers[pid] = &remote{identity: identity, lastSeen: time.Now()}
	t.byID[identity.ID] = pid
	t.mu.Unlock()

	t.notify(func(h contract.TransportHandler) { h.OnPeerFound(identity) })
}

func (t *Transport) handleHello(s network.Stream) {
	defer s.Close()
	t.mu.Lock()
	advertising, identity := t.advertising, t.identity
	t.mu.Unlock()
	if !advertising {
		_ = s.Reset()
		return
	}
	if err := writeIdentity(s, identity); err != nil {
		_ = s.Reset()
	}
}

// Invite only resolves the peer; the exchange runs in the background and
// ends with Connected or Disconnected.
func (t *Transport) Invite(_ context.Context, id domain.PeerID, timeout time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return errors.ErrSessionClosed
	}
	if !t.advertising {
		return fmt.Errorf("%w: local peer is not advertising", errors.ErrInvalidTarget)
	}
	pid, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrUnknownPeer, id)
	}
	target := t.peers[pid].identity
	go t.invite(pid, t.identity, target, timeout)
	return nil
}

func (t *Transport) invite(pid peer.ID, local, target domain.PeerIdentity, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(t.ctx, timeout)
	defer cancel()

	answer, err := func() (byte, error) {
		s, err := t.host.NewStream(ctx, pid, inviteProtocol)
		if err != nil {
			return rejected, err
		}
		defer s.Close()
		_ = s.SetDeadline(time.Now().Add(timeout))
		if err := writeIdentity(s, local); err != nil {
			return rejected, err
		}
		var buf [1]byte
		if _, err := io.ReadFull(s, buf[:]); err != nil {
			return rejected, err
		}
		if buf[0] != accepted {
			return rejected, nil
		}
		// The invitee links only once it reads this ack.
		if _, err := s.Write([]byte{accepted}); err != nil {
			return rejected, err
		}
		return accepted, nil
	}()
	if err != nil {
		t.log.Debug("Invitation failed", "peer", target.String(), "error", err)
	}
	if answer != accepted {
		t.notify(func(h contract.TransportHandler) { h.OnConnectionStateChanged(target, domain.Disconnected) })
		return
	}
	t.link(pid, target)
	t.notify(func(h contract.TransportHandler) { h.OnConnectionStateChanged(target, domain.Connected) })
}

// handleInvite answers an invitation. An accepted one becomes a link only
// after the inviter acks the answer, so an inviter that gave up in between
// never leaves a one-sided connection behind.
func (t *Transport) handleInvite(s network.Stream) {
	defer s.Close()
	pid := s.Conn().RemotePeer()
	_ = s.SetDeadline(time.Now().Add(helloTimeout))
	r := bufio.NewReader(s)
	from, err := readIdentity(r)
	if err != nil {
		_ = s.Reset()
		return
	}

	answer := rejected
	t.notify(func(h contract.TransportHandler) {
		var once sync.Once
		h.OnInvitationReceived(from, func(accept bool) {
			once.Do(func() {
				if accept {
					answer = accepted
				}
			})
		})
	})
	if _, err := s.Write([]byte{answer}); err != nil {
		t.log.Debug("Invitation answer lost", "peer", from.String(), "error", err)
		return
	}
	if answer != accepted {
		return
	}

	_ = s.SetDeadline(time.Now().Add(helloTimeout))
	var ack [1]byte
	if _, err := io.ReadFull(r, ack[:]); err != nil || ack[0] != accepted {
		t.log.Debug("Invitation abandoned by the inviter", "peer", from.String(), "error", err)
		t.dropHalfOpen(pid)
		return
	}
	t.link(pid, from)
	t.notify(func(h contract.TransportHandler) { h.OnConnectionStateChanged(from, domain.Connected) })
}

// dropHalfOpen closes the connection to an unlinked peer whose ack never
// arrived; if the inviter did link, losing the connection unlinks it.
func (t *Transport) dropHalfOpen(pid peer.ID) {
	t.mu.Lock()
	_, linked := t.links[pid]
	t.mu.Unlock()
	if linked {
		return
	}
	if err := t.host.Network().ClosePeer(pid); err != nil {
		t.log.Debug("Failed to close half-open connection", "peer", pid.String(), "error", err)
	}
}

func (t *Transport) link(pid peer.ID, identity domain.PeerIdentity) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.links[pid] = &link{identity: identity}
	t.byID[identity.ID] = pid
}

// unlink drops a link and reports the disconnect once.
func (t *Transport) unlink(pid peer.ID) bool {
	t.mu.Lock()
	l, ok := t.links[pid]
	delete(t.links, pid)
	t.mu.Unlock()
	if !ok {
		return false
	}
	l.close()
	identity := l.identity
	t.notify(func(h contract.TransportHandler) { h.OnConnectionStateChanged(identity, domain.Disconnected) })
	return true
}

func (t *Transport) SendReliable(ctx context.Context, data []byte, to []domain.PeerID) error {
	var errs []error
	for _, id := range to {
		t.mu.Lock()
		pid := t.byID[id]
		l := t.links[pid]
		t.mu.Unlock()
		if l == nil {
			errs = append(errs, fmt.Errorf("%w: %s", errors.ErrUnknownPeer, id))
			continue
		}
		if err := l.send(ctx, t.host, pid, data); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}
	return goerrors.Join(errs...)
}

func (l *link) send(ctx context.Context, h host.Host, pid peer.ID, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stream == nil {
		s, err := h.NewStream(ctx, pid, frameProtocol)
		if err != nil {
			return err
		}
		l.stream = s
	}
	if err := writeFrame(l.stream, data); err != nil {
		_ = l.stream.Reset()
		l.stream = nil
		return err
	}
	return nil
}

func (l *link) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stream != nil {
		_ = l.stream.Close()
		l.stream = nil
	}
}

func (t *Transport) handleFrames(s network.Stream) {
	defer s.Close()
	pid := s.Conn().RemotePeer()
	r := bufio.NewReader(s)
	for {
		data, err := readFrame(r)
		if err != nil {
			return
		}
		t.mu.Lock()
		l := t.links[pid]
		t.mu.Unlock()
		if l == nil {
			t.log.Debug("Frame from unlinked peer dropped", "peer", pid.String())
			continue
		}
		sender := l.identity
		t.notify(func(h contract.TransportHandler) { h.OnDataReceived(sender, data) })
	}
}

func (t *Transport) Disconnect(id domain.PeerID) error {
	t.mu.Lock()
	pid, ok := t.byID[id]
	t.mu.Unlock()
	if !ok || !t.unlink(pid) {
		return fmt.Errorf("%w: %s", errors.ErrUnknownPeer, id)
	}
	return t.host.Network().ClosePeer(pid)
}

func (t *Transport) onConnClosed(n network.Network, c network.Conn) {
	pid := c.RemotePeer()
	if n.Connectedness(pid) == network.Connected {
		return
	}
	t.unlink(pid)
}

// sweep reports as lost the peers that are neither reachable nor announced within the TTL.
func (t *Transport) sweep() {
	ticker := time.NewTicker(t.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
		}

		var lost []domain.PeerIdentity
		now := time.Now()
		t.mu.Lock()
		for pid, r := range t.peers {
			if _, linked := t.links[pid]; linked || t.host.Network().Connectedness(pid) == network.Connected {
				r.lastSeen = now
				continue
			}
			if now.Sub(r.lastSeen) > t.ttl {
				delete(t.peers, pid)
				delete(t.byID, r.identity.ID)
				lost = append(lost, r.identity)
			}
		}
		t.mu.Unlock()

		for _, identity := range lost {
			t.notify(func(h contract.TransportHandler) { h.OnPeerLost(identity) })
		}
	}
}

func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.advertising, t.browsing = false, false
	t.stopDiscovery()
	links := t.links
	t.links = make(map[peer.ID]*link)
	t.mu.Unlock()

	t.cancel()
	for _, l := range links {
		l.close()
	}
	return t.host.Close()
}
