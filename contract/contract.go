//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"nearby-chat/domain"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// TransportHandler receives the callbacks of a LocalTransport.
// Calls may arrive from any goroutine.
type TransportHandler interface {
	OnPeerFound(peer domain.PeerIdentity)
	OnPeerLost(peer domain.PeerIdentity)
	OnConnectionStateChanged(peer domain.PeerIdentity, state domain.PeerState)
	// OnInvitationReceived must call respond exactly once, before returning.
	OnInvitationReceived(peer domain.PeerIdentity, respond func(accept bool))
	OnDataReceived(peer domain.PeerIdentity, data []byte)
}

// LocalTransport is the nearby-network collaborator: discovery broadcast,
// invitations and reliable, boundary-preserving frames between peers.
type LocalTransport interface {
	SetHandler(handler TransportHandler)
	StartAdvertising(identity domain.PeerIdentity, serviceTag string) error
	StopAdvertising()
	StartBrowsing(serviceTag string) error
	StopBrowsing()
	// Invite asks a peer to join. The transport abandons an unanswered
	// invitation after timeout and reports it as a disconnect.
	Invite(ctx context.Context, peer domain.PeerID, timeout time.Duration) error
	// SendReliable delivers data to each peer; the error joins per-peer failures.
	SendReliable(ctx context.Context, data []byte, to []domain.PeerID) error
	Disconnect(peer domain.PeerID) error
	Close() error
}

// EventSink consumes every snapshot published by a session.
type EventSink interface {
	Consume(ctx context.Context, snapshot domain.Snapshot) error
}

type IRegistry interface {
	Sinks() []EventSink
	Subscribe(name string, sink EventSink)
	Unsubscribe(name string)
}

// IPeerSession is the surface offered to the presentation layer.
type IPeerSession interface {
	Create(ctx context.Context) error
	Invite(peer domain.PeerID) error
	Send(text string)
	Teardown()
	Snapshot() domain.Snapshot
	Subscribe(name string, buffer int) (<-chan domain.Snapshot, func())
}
