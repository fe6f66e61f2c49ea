package domain

import (
	"sync"

	"github.com/samber/lo"
)

// PeerDirectory tracks peers currently visible through discovery broadcasts,
// independently of their connection state. A peer can be lost from the
// directory while still connected.
type PeerDirectory struct {
	mu    sync.RWMutex
	order []PeerID
	peers map[PeerID]PeerIdentity
}

func NewPeerDirectory() *PeerDirectory {
	return &PeerDirectory{
		peers: make(map[PeerID]PeerIdentity),
	}
}

// Found adds the peer if absent. It reports whether the peer was new.
// A known peer whose display name changed is updated in place.
func (d *PeerDirectory) Found(peer PeerIdentity) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.peers[peer.ID]; ok {
		d.peers[peer.ID] = peer
		return false
	}
	d.peers[peer.ID] = peer
	d.order = append(d.order, peer.ID)
	return true
}

// Lost removes the peer. It reports whether the peer was present.
func (d *PeerDirectory) Lost(id PeerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.peers[id]; !ok {
		return false
	}
	delete(d.peers, id)
	d.order = lo.Without(d.order, id)
	return true
}

// List returns a consistent copy of the visible peers in discovery order.
func (d *PeerDirectory) List() []PeerIdentity {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return lo.Map(d.order, func(id PeerID, _ int) PeerIdentity {
		return d.peers[id]
	})
}

func (d *PeerDirectory) Get(id PeerID) (PeerIdentity, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.peers[id]
	return p, ok
}

func (d *PeerDirectory) Contains(id PeerID) bool {
	_, ok := d.Get(id)
	return ok
}

func (d *PeerDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.order)
}
