// Package runtime owns the lifetime of a peer session: it wires the transport
// callbacks into the single-writer session loop, runs it under supervision and
// exposes read-only snapshots to the presentation layer.
// It contains no connection policy; that lives in the domain.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"nearby-chat/contract"
	"nearby-chat/domain"
	"nearby-chat/domain/event"
	"nearby-chat/errors"
	"nearby-chat/messaging"
	"nearby-chat/runtime/workers"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	DefaultServiceTag     = "mpc-demo"
	DefaultInviteTimeout  = 10 * time.Second
	defaultInboxSize      = 256
	defaultSinkTimeout    = time.Second
	defaultMetricInterval = 10 * time.Second
)

var (
	_ contract.IPeerSession     = (*PeerSession)(nil)
	_ contract.TransportHandler = (*PeerSession)(nil)
)

// PeerSession is the peer session manager of one chat room.
// It exclusively owns the transport handles from Create until Teardown.
type PeerSession struct {
	log         *slog.Logger
	transport   contract.LocalTransport
	mode        domain.SessionMode
	displayName string

	serviceTag      string
	inviteTimeout   time.Duration
	inboxSize       int
	sinkTimeout     time.Duration
	restartInterval time.Duration
	metricInterval  time.Duration
	lowCapacity     int
	censor          workers.Censor

	registry   *Registry
	admission  *workers.Admission
	supervisor *workers.Supervisor
	inbox      chan any
	outbox     chan workers.Outbound
	snapshots  chan domain.Snapshot

	mu            sync.RWMutex
	current       domain.Snapshot
	subscriptions map[string]*channelSink

	lifecycle sync.Mutex
	created   bool
	running   atomic.Bool
	closing   atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	teardown  sync.Once
}

type Option func(*PeerSession)

func WithServiceTag(tag string) Option {
	return func(s *PeerSession) { s.serviceTag = tag }
}

func WithInviteTimeout(timeout time.Duration) Option {
	return func(s *PeerSession) { s.inviteTimeout = timeout }
}

func WithInboxSize(size int) Option {
	return func(s *PeerSession) { s.inboxSize = size }
}

func WithSinkTimeout(timeout time.Duration) Option {
	return func(s *PeerSession) { s.sinkTimeout = timeout }
}

func WithRestartInterval(interval time.Duration) Option {
	return func(s *PeerSession) { s.restartInterval = interval }
}

// WithCapacityMonitor samples the session channels every interval and warns
// when fewer than threshold slots are left.
func WithCapacityMonitor(interval time.Duration, threshold int) Option {
	return func(s *PeerSession) {
		s.metricInterval = interval
		s.lowCapacity = threshold
	}
}

// WithCensor masks forbidden words in every inbound message.
func WithCensor(censor workers.Censor) Option {
	return func(s *PeerSession) { s.censor = censor }
}

// WithSink registers a permanent sink, fed with every snapshot.
func WithSink(name string, sink contract.EventSink) Option {
	return func(s *PeerSession) { s.registry.Subscribe(name, sink) }
}

func NewPeerSession(log *slog.Logger, transport contract.LocalTransport,
	mode domain.SessionMode, displayName string, opts ...Option) *PeerSession {
	s := &PeerSession{
		log:            log,
		transport:      transport,
		mode:           mode,
		displayName:    displayName,
		serviceTag:     DefaultServiceTag,
		inviteTimeout:  DefaultInviteTimeout,
		inboxSize:      defaultInboxSize,
		sinkTimeout:    defaultSinkTimeout,
		metricInterval: defaultMetricInterval,
		registry:       NewRegistry(),
		admission:      workers.NewAdmission(mode),
		subscriptions:  make(map[string]*channelSink),
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.lowCapacity <= 0 {
		s.lowCapacity = s.inboxSize / 8
	}
	return s
}

// Create allocates the local identity, starts the session loop, then starts
// advertising and browsing. Transport start failures are logged and the
// session keeps running degraded. Cancelling ctx tears the session down.
func (s *PeerSession) Create(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.closing.Load() {
		return errors.ErrSessionClosed
	}
	if s.created {
		return errors.ErrAlreadyCreated
	}
	if err := domain.ValidateServiceTag(s.serviceTag); err != nil {
		return err
	}
	s.created = true

	local := domain.NewLocalIdentity(s.displayName)
	session := domain.NewSession(s.mode, local)
	log := s.log.With("local", local.DisplayName, "mode", s.mode.String())

	s.inbox = make(chan any, s.inboxSize)
	s.outbox = make(chan workers.Outbound, s.inboxSize)
	s.snapshots = make(chan domain.Snapshot, s.inboxSize)
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.publish(session.Snapshot())

	bus := messaging.NewBus(s.transport, log)
	loop := workers.NewSessionLoop(workers.SessionLoopConfig{
		Session:       session,
		Inbox:         s.inbox,
		Outbox:        s.outbox,
		Transport:     s.transport,
		Admission:     s.admission,
		Censor:        s.censor,
		Publish:       s.publish,
		InviteTimeout: s.inviteTimeout,
		Log:           log,
	})
	s.supervisor = workers.NewSupervisor(log, s.restartInterval)
	s.supervisor.Add(
		loop,
		workers.NewOutboxWorker(bus, s.outbox, log),
		workers.NewSnapshotFanout(log, s.registry, s.snapshots, s.sinkTimeout),
		workers.NewChannelCapacityWorker(log, []workers.NamedChannel{
			{Name: "inbox", Channel: s.inbox},
			{Name: "outbox", Channel: s.outbox},
			{Name: "snapshots", Channel: s.snapshots},
		}, s.metricInterval, s.lowCapacity),
	)

	s.running.Store(true)
	s.transport.SetHandler(s)
	go func() {
		defer close(s.done)
		s.supervisor.Run(s.ctx)
	}()
	go func() {
		<-s.ctx.Done()
		s.Teardown()
	}()

	if err := s.transport.StartAdvertising(local, s.serviceTag); err != nil {
		log.Warn("Session is not discoverable", "error", fmt.Errorf("%w: advertising: %w", errors.ErrTransportStart, err))
	}
	if err := s.transport.StartBrowsing(s.serviceTag); err != nil {
		log.Warn("Session is not discovering", "error", fmt.Errorf("%w: browsing: %w", errors.ErrTransportStart, err))
	}
	log.Info("Session created", "service", s.serviceTag, "capacity", s.mode.Capacity())
	return nil
}

// Invite manually invites a discovered peer. It returns ErrInvalidTarget when
// the peer is not in Discovered state or no seat is left, the latter also
// matching ErrCapacityReached. The invitation itself is sent asynchronously.
func (s *PeerSession) Invite(peer domain.PeerID) error {
	if err := s.usable(); err != nil {
		return err
	}
	snapshot := s.Snapshot()
	if state, ok := snapshot.StateOf(peer); !ok || state != domain.Discovered {
		return fmt.Errorf("%w: %s", errors.ErrInvalidTarget, peer)
	}
	if !domain.ShouldAcceptInvitation(s.mode, len(snapshot.Connected)) {
		return fmt.Errorf("%w: %s: %w", errors.ErrInvalidTarget, peer, errors.ErrCapacityReached)
	}
	s.dispatch(domain.InviteCommand{Peer: peer})
	return nil
}

// Send appends the text to the log right away and broadcasts it to the
// connected peers. Blank text is ignored.
func (s *PeerSession) Send(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if s.usable() != nil {
		s.log.Debug("Send ignored, session not running")
		return
	}
	s.dispatch(domain.SendCommand{Text: text, At: time.Now()})
}

// Teardown stops callback delivery, waits for the session loop to exit, then
// stops advertising and browsing and closes the transport. Safe to call many times.
func (s *PeerSession) Teardown() {
	s.teardown.Do(func() {
		s.closing.Store(true)
		s.lifecycle.Lock()
		defer s.lifecycle.Unlock()
		if !s.created {
			close(s.done)
			return
		}
		s.transport.SetHandler(nil)
		s.cancel()
		s.supervisor.Stop()
		<-s.done

		s.transport.StopAdvertising()
		s.transport.StopBrowsing()
		if err := s.transport.Close(); err != nil {
			s.log.Warn("Failed to close transport", "error", err)
		}

		s.mu.Lock()
		for name, sub := range s.subscriptions {
			s.registry.Unsubscribe(name)
			sub.close()
		}
		s.subscriptions = map[string]*channelSink{}
		s.mu.Unlock()
		s.log.Info("Session torn down")
	})
}

// Done is closed once the session loop has stopped.
func (s *PeerSession) Done() <-chan struct{} {
	return s.done
}

func (s *PeerSession) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *PeerSession) ConnectedPeers() []domain.PeerIdentity {
	return s.Snapshot().Connected
}

func (s *PeerSession) DiscoveredPeers() []domain.PeerIdentity {
	return s.Snapshot().Discovered
}

func (s *PeerSession) Messages() []domain.Message {
	return s.Snapshot().Messages
}

func (s *PeerSession) Mode() domain.SessionMode {
	return s.mode
}

// Subscribe returns a stream of snapshots starting with the current one, and a
// function ending the subscription. The stream is closed on Teardown.
func (s *PeerSession) Subscribe(name string, buffer int) (<-chan domain.Snapshot, func()) {
	sink := newChannelSink(buffer)

	s.mu.Lock()
	if previous, ok := s.subscriptions[name]; ok {
		previous.close()
	}
	if s.closing.Load() {
		s.mu.Unlock()
		sink.close()
		return sink.ch, func() {}
	}
	s.subscriptions[name] = sink
	_ = sink.Consume(context.Background(), s.current)
	s.mu.Unlock()

	s.registry.Subscribe(name, sink)
	return sink.ch, func() {
		s.mu.Lock()
		if s.subscriptions[name] == sink {
			delete(s.subscriptions, name)
			s.registry.Unsubscribe(name)
		}
		s.mu.Unlock()
		sink.close()
	}
}

// OnPeerFound queues a discovery; group sessions auto-invite from the loop.
func (s *PeerSession) OnPeerFound(peer domain.PeerIdentity) {
	s.enqueue(event.Found{From: peer})
}

func (s *PeerSession) OnPeerLost(peer domain.PeerIdentity) {
	s.enqueue(event.Lost{From: peer})
}

func (s *PeerSession) OnConnectionStateChanged(peer domain.PeerIdentity, state domain.PeerState) {
	s.enqueue(event.StateChanged{From: peer, State: state})
}

// OnInvitationReceived answers before returning; the decision never waits on I/O.
func (s *PeerSession) OnInvitationReceived(peer domain.PeerIdentity, respond func(accept bool)) {
	if s.closing.Load() || !s.running.Load() {
		respond(false)
		return
	}
	accept := s.admission.Admit(peer.ID)
	respond(accept)
	s.enqueue(event.InvitationReceived{From: peer, Accepted: accept})
}

func (s *PeerSession) OnDataReceived(peer domain.PeerIdentity, data []byte) {
	s.enqueue(event.DataReceived{From: peer, Data: data, At: time.Now()})
}

// enqueue hands a transport event to the loop. Events arriving once teardown
// has begun are discarded.
func (s *PeerSession) enqueue(evt event.TransportEvent) {
	if s.closing.Load() || !s.running.Load() {
		return
	}
	select {
	case s.inbox <- evt:
	case <-s.ctx.Done():
	}
}

// dispatch never blocks the caller; commands are dropped when the inbox is full.
func (s *PeerSession) dispatch(cmd domain.Command) {
	select {
	case s.inbox <- cmd:
	default:
		s.log.Warn(fmt.Sprintf("%s, dropping %s command", errors.ErrInboxFull, cmd.CommandName()))
	}
}

// publish is called by the session loop after every mutation.
func (s *PeerSession) publish(snapshot domain.Snapshot) {
	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	select {
	case s.snapshots <- snapshot:
	default:
		s.log.Debug("Snapshot fanout lagging, intermediate snapshot skipped", "version", snapshot.Version)
	}
}

func (s *PeerSession) usable() error {
	if s.closing.Load() {
		return errors.ErrSessionClosed
	}
	if !s.running.Load() {
		return errors.ErrNotCreated
	}
	return nil
}
