// Package projection builds local timelines from observed session snapshots.
// Handles ordering, deduplication, and projections.
// Does not emit events or interact with UI directly.
package projection

import (
	"context"
	"nearby-chat/contract"
	"nearby-chat/domain"

	"github.com/samber/lo"
)

var _ contract.EventSink = (*Timeline)(nil)

// Change is what happened between two consecutive snapshots.
type Change struct {
	Joined        []domain.PeerIdentity
	Left          []domain.PeerIdentity
	Appeared      []domain.PeerIdentity
	Vanished      []domain.PeerIdentity
	Messages      []domain.Message
	Status        domain.RoomStatus
	StatusChanged bool
}

func (c Change) Empty() bool {
	return len(c.Joined) == 0 && len(c.Left) == 0 && len(c.Appeared) == 0 &&
		len(c.Vanished) == 0 && len(c.Messages) == 0 && !c.StatusChanged
}

// Timeline holds a simple local timeline
type Timeline struct {
	Owner    string
	Messages []domain.Message
	last     *domain.Snapshot
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{
		Owner:    owner,
		Messages: nil,
	}
}

func (t *Timeline) Consume(_ context.Context, snapshot domain.Snapshot) error {
	t.Apply(snapshot)
	return nil
}

// Apply folds a snapshot into the timeline and returns the change since the
// previous one. Snapshots older than the last applied one are ignored.
func (t *Timeline) Apply(snapshot domain.Snapshot) Change {
	var prev domain.Snapshot
	if t.last != nil {
		if snapshot.Version <= t.last.Version {
			return Change{Status: t.last.Status()}
		}
		prev = *t.last
	}
	change := Diff(prev, snapshot)
	if t.last == nil {
		change.StatusChanged = true
	}
	t.Messages = append(t.Messages, change.Messages...)
	t.last = &snapshot
	return change
}

// Diff compares two snapshots of the same session.
func Diff(prev, next domain.Snapshot) Change {
	var messages []domain.Message
	if len(next.Messages) > len(prev.Messages) {
		messages = next.Messages[len(prev.Messages):]
	}
	joined, left := lo.Difference(ids(next.Connected), ids(prev.Connected))
	appeared, vanished := lo.Difference(ids(next.Discovered), ids(prev.Discovered))
	return Change{
		Joined:        pick(next.Connected, joined),
		Left:          pick(prev.Connected, left),
		Appeared:      pick(next.Discovered, appeared),
		Vanished:      pick(prev.Discovered, vanished),
		Messages:      messages,
		Status:        next.Status(),
		StatusChanged: prev.Status() != next.Status(),
	}
}

func ids(peers []domain.PeerIdentity) []domain.PeerID {
	return lo.Map(peers, func(p domain.PeerIdentity, _ int) domain.PeerID { return p.ID })
}

func pick(peers []domain.PeerIdentity, wanted []domain.PeerID) []domain.PeerIdentity {
	return lo.Filter(peers, func(p domain.PeerIdentity, _ int) bool {
		return lo.Contains(wanted, p.ID)
	})
}
