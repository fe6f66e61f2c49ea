// Package memory is an in-process LocalTransport. Endpoints attached to the
// same Hub discover, invite and message each other without any network,
// which makes it the transport of tests and of the simulator.
package memory

import (
	"fmt"
	"log/slog"
	"nearby-chat/domain"
	"sync"
)

// Hub is the shared medium of a set of endpoints, the equivalent of one radio range.
// Its mutex guards the tags, identities and links of every attached endpoint.
type Hub struct {
	mu        sync.Mutex
	log       *slog.Logger
	endpoints map[*Endpoint]struct{}
	pending   map[invitationKey]*invitation
}

type invitationKey struct {
	from domain.PeerID
	to   domain.PeerID
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:       log,
		endpoints: make(map[*Endpoint]struct{}),
		pending:   make(map[invitationKey]*invitation),
	}
}

// Endpoint attaches a new transport to the hub.
func (h *Hub) Endpoint(name string) *Endpoint {
	e := &Endpoint{
		hub:   h,
		name:  name,
		links: make(map[domain.PeerID]*Endpoint),
		box:   newMailbox(),
		log:   h.log.With("endpoint", name),
	}
	h.mu.Lock()
	h.endpoints[e] = struct{}{}
	h.mu.Unlock()
	return e
}

// Len returns the number of attached endpoints.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.endpoints)
}

// advertiser returns the endpoint advertising id. Callers hold h.mu.
func (h *Hub) advertiser(id domain.PeerID) (*Endpoint, bool) {
	for e := range h.endpoints {
		if e.advertising != "" && e.identity.ID == id {
			return e, true
		}
	}
	return nil, false
}

// browsers returns the endpoints browsing tag, except self. Callers hold h.mu.
func (h *Hub) browsers(tag string, self *Endpoint) []*Endpoint {
	var out []*Endpoint
	for e := range h.endpoints {
		if e != self && e.browsing == tag {
			out = append(out, e)
		}
	}
	return out
}

// advertisers returns the identities advertised under tag, except self. Callers hold h.mu.
func (h *Hub) advertisers(tag string, self *Endpoint) []domain.PeerIdentity {
	var out []domain.PeerIdentity
	for e := range h.endpoints {
		if e != self && e.advertising == tag {
			out = append(out, e.identity)
		}
	}
	return out
}

func (h *Hub) String() string {
	return fmt.Sprintf("memory.Hub(%d endpoints)", h.Len())
}
