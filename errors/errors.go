package errors

import "fmt"

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrEmptyWords        = fmt.Errorf("no words have been found")
	ErrTransportStart    = fmt.Errorf("transport failed to start")
	ErrInvalidTarget     = fmt.Errorf("peer is not in discovered state")
	ErrDecodeFailure     = fmt.Errorf("frame is not valid utf-8")
	ErrSendFailure       = fmt.Errorf("failed to send frame to peer")
	ErrAlreadyCreated    = fmt.Errorf("session already created")
	ErrSessionClosed     = fmt.Errorf("session is closed")
	ErrNotCreated        = fmt.Errorf("session not created")
	ErrInvalidServiceTag = fmt.Errorf("service tag must be 1-15 lowercase letters, digits or hyphens")
	ErrCapacityReached   = fmt.Errorf("session capacity reached")
	ErrUnknownMode       = fmt.Errorf("unknown session mode")
	ErrUnknownPeer       = fmt.Errorf("unknown peer")
	ErrInboxFull         = fmt.Errorf("session inbox full")
)
