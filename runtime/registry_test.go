package runtime

import (
	"context"
	"nearby-chat/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

type Sink struct {
	name string
}

func (s *Sink) Consume(_ context.Context, _ domain.Snapshot) error {
	return nil
}

func TestRegistry_Subscribe_One_Sink(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink := &Sink{name: "console"}

	// Given no sink is registered
	req.Empty(registry.Sinks())

	// When a sink subscribes
	registry.Subscribe("console", sink)

	// Then
	req.Equal(1, registry.Len())
	req.Same(sink, registry.Sinks()[0])
}

func TestRegistry_Sinks_OrderedByName(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	transcript := &Sink{name: "transcript"}
	bridge := &Sink{name: "bridge"}
	console := &Sink{name: "console"}

	// When sinks subscribe in any order
	registry.Subscribe("transcript", transcript)
	registry.Subscribe("bridge", bridge)
	registry.Subscribe("console", console)

	// Then they are delivered by name
	sinks := registry.Sinks()
	req.Len(sinks, 3)
	req.Same(bridge, sinks[0])
	req.Same(console, sinks[1])
	req.Same(transcript, sinks[2])
}

func TestRegistry_Subscribe_ReplacesSameName(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	first := &Sink{name: "first"}
	second := &Sink{name: "second"}

	registry.Subscribe("ws", first)
	registry.Subscribe("ws", second)

	req.Equal(1, registry.Len())
	req.Same(second, registry.Sinks()[0])
}

func TestRegistry_UnSubscribe(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink1 := &Sink{name: "a"}
	sink2 := &Sink{name: "b"}

	// Given two sinks
	registry.Subscribe("a", sink1)
	registry.Subscribe("b", sink2)

	// When one unsubscribes, twice
	registry.Unsubscribe("a")
	registry.Unsubscribe("a")

	// Then only the other one is left
	req.Equal(1, registry.Len())
	req.Same(sink2, registry.Sinks()[0])
}
