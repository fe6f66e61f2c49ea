package bridge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"nearby-chat/contract"
	"nearby-chat/domain"
	"nearby-chat/projection"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// client is one websocket connection following the session.
// writePump is the only writer of conn.
type client struct {
	id          string
	log         *slog.Logger
	conn        *websocket.Conn
	session     contract.IPeerSession
	updates     <-chan domain.Snapshot
	unsubscribe func()
	replies     chan Update
	timeline    *projection.Timeline
	done        chan struct{}
}

func newClient(log *slog.Logger, conn *websocket.Conn, session contract.IPeerSession, buffer int) *client {
	id := uuid.NewString()
	updates, unsubscribe := session.Subscribe("ws-"+id, buffer)
	return &client{
		id:          id,
		log:         log.With("client", id),
		conn:        conn,
		session:     session,
		updates:     updates,
		unsubscribe: unsubscribe,
		replies:     make(chan Update, 16),
		timeline:    projection.NewTimeline(id),
		done:        make(chan struct{}),
	}
}

func (c *client) readPump() {
	defer func() {
		close(c.done)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("Websocket closed unexpectedly", "error", err)
			}
			return
		}
		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.reply(fmt.Errorf("malformed command: %w", err))
			continue
		}
		c.apply(cmd)
	}
}

func (c *client) apply(cmd Command) {
	switch cmd.Type {
	case commandSend:
		c.session.Send(cmd.Text)
	case commandInvite:
		if err := c.session.Invite(domain.PeerID(cmd.Peer)); err != nil {
			c.reply(err)
		}
	default:
		c.reply(fmt.Errorf("unknown command %q", cmd.Type))
	}
}

func (c *client) reply(err error) {
	select {
	case c.replies <- Update{Type: updateError, Error: err.Error()}:
	default:
		c.log.Debug("Reply dropped, client too slow", "error", err)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.unsubscribe()
		_ = c.conn.Close()
	}()

	for {
		select {
		case snapshot, ok := <-c.updates:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			change := c.timeline.Apply(snapshot)
			if err := c.conn.WriteJSON(toUpdate(snapshot, change)); err != nil {
				return
			}

		case update := <-c.replies:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(update); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}
