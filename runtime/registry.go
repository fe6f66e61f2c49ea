package runtime

import (
	"nearby-chat/contract"
	"sort"
	"sync"

	"github.com/samber/lo"
)

var _ contract.IRegistry = (*Registry)(nil)

// Registry holds the sinks observing a session, by name.
type Registry struct {
	mu    sync.RWMutex
	sinks map[string]contract.EventSink
}

func NewRegistry() *Registry {
	return &Registry{
		sinks: make(map[string]contract.EventSink),
	}
}

// Sinks returns the registered sinks ordered by name, so delivery order is stable.
func (r *Registry) Sinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.sinks)
	sort.Strings(names)
	return lo.Map(names, func(name string, _ int) contract.EventSink {
		return r.sinks[name]
	})
}

// Subscribe registers a sink, replacing any sink already registered under that name.
func (r *Registry) Subscribe(name string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks[name] = sink
}

func (r *Registry) Unsubscribe(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sinks, name)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sinks)
}
