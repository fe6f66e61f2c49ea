package domain

// DiscoveryDecision is what a session does with a freshly discovered peer.
type DiscoveryDecision int

const (
	// AutoInvite sends an invitation as soon as the peer is seen.
	AutoInvite DiscoveryDecision = iota
	// ManualListOnly lists the peer and waits for the user to pick it.
	ManualListOnly
)

func (d DiscoveryDecision) String() string {
	if d == AutoInvite {
		return "auto-invite"
	}
	return "manual-list-only"
}

// ShouldAutoInvite reports whether discovered peers are invited without user action.
// Only group sessions auto-invite; free seats are checked with ShouldAcceptInvitation.
// Every mode-dependent branch of the session goes through the three functions below.
func ShouldAutoInvite(mode SessionMode, _ int) bool {
	return mode == Group
}

// ShouldAcceptInvitation reports whether an incoming invitation fits the remaining capacity.
func ShouldAcceptInvitation(mode SessionMode, connected int) bool {
	return connected < mode.Capacity()
}

func DecideOnDiscovery(mode SessionMode) DiscoveryDecision {
	if mode == Group {
		return AutoInvite
	}
	return ManualListOnly
}
