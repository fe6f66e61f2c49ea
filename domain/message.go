// Package domain contains core concepts of the nearby chat session.
// This file defines Message values and the append-only log holding them.
// Messages are immutable once created.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable chat line.
type Message struct {
	ID     uuid.UUID // unique identifier
	Sender string
	Text   string
	At     time.Time
	// Local is true for messages typed on this device (optimistic echo).
	Local bool
}

func NewMessage(sender, text string, at time.Time, local bool) Message {
	return Message{
		ID:     uuid.New(),
		Sender: sender,
		Text:   text,
		At:     at,
		Local:  local,
	}
}

// MessageLog is the ordered, append-only record of a session.
// It is owned by a single writer; readers only ever see copies.
type MessageLog struct {
	messages []Message
}

func NewMessageLog() *MessageLog {
	return &MessageLog{messages: nil}
}

func (l *MessageLog) Append(message Message) {
	l.messages = append(l.messages, message)
}

func (l *MessageLog) Len() int {
	return len(l.messages)
}

// Copy returns the messages in insertion order.
func (l *MessageLog) Copy() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Last returns the most recent message, if any.
func (l *MessageLog) Last() (Message, bool) {
	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}
