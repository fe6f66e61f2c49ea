package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeerDirectory_FoundAndLost(t *testing.T) {
	// Given an empty directory
	d := NewPeerDirectory()
	alice := PeerIdentity{ID: "a", DisplayName: "Alice"}
	bob := PeerIdentity{ID: "b", DisplayName: "Bob"}

	// When peers are found, one of them twice
	require.True(t, d.Found(alice))
	require.True(t, d.Found(bob))
	require.False(t, d.Found(alice))

	// Then each peer is listed once, in discovery order
	require.Equal(t, []PeerIdentity{alice, bob}, d.List())
	require.True(t, d.Contains("a"))

	// When a peer is lost twice
	require.True(t, d.Lost("a"))
	require.False(t, d.Lost("a"))

	// Then only the other one remains
	require.Equal(t, []PeerIdentity{bob}, d.List())
	require.Equal(t, 1, d.Len())
}

func TestPeerDirectory_Found_UpdatesDisplayName(t *testing.T) {
	d := NewPeerDirectory()
	d.Found(PeerIdentity{ID: "a", DisplayName: "Alice"})

	added := d.Found(PeerIdentity{ID: "a", DisplayName: "Alice's phone"})

	require.False(t, added)
	peer, ok := d.Get("a")
	require.True(t, ok)
	require.Equal(t, "Alice's phone", peer.DisplayName)
	require.Equal(t, 1, d.Len())
}

func TestPeerDirectory_List_ReturnsACopy(t *testing.T) {
	d := NewPeerDirectory()
	d.Found(PeerIdentity{ID: "a", DisplayName: "Alice"})

	list := d.List()
	list[0].DisplayName = "Mallory"

	peer, _ := d.Get("a")
	require.Equal(t, "Alice", peer.DisplayName)
}

func TestPeerDirectory_ConcurrentAccess(t *testing.T) {
	d := NewPeerDirectory()
	ids := []PeerID{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Found(PeerIdentity{ID: id, DisplayName: string(id)})
		}()
		go func() {
			defer wg.Done()
			_ = d.List()
		}()
	}
	wg.Wait()

	require.Equal(t, len(ids), d.Len())
}
