package workers

import (
	"nearby-chat/domain"
	"sync"
)

// Admission answers invitations synchronously from a transport goroutine.
// It decides on the connected count last recorded by the session loop; an
// accepted invitation takes no seat until the transport reports it connected,
// so an invitation abandoned without any report costs nothing.
// Two invitations accepted for the last seat are settled by the state machine,
// which refuses the second connection.
type Admission struct {
	mu        sync.Mutex
	mode      domain.SessionMode
	connected int
}

func NewAdmission(mode domain.SessionMode) *Admission {
	return &Admission{mode: mode}
}

// Admit decides on an invitation without blocking on I/O.
func (a *Admission) Admit(domain.PeerID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return domain.ShouldAcceptInvitation(a.mode, a.connected)
}

// Record stores the connected count published by the session loop.
func (a *Admission) Record(connected int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.connected = connected
}

func (a *Admission) Connected() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connected
}
