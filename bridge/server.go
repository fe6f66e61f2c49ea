// Package bridge exposes a running session over HTTP and websocket, so a
// browser or another process can follow the room and type into it.
package bridge

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"nearby-chat/contract"
	"nearby-chat/domain"
	"nearby-chat/errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const shutdownTimeout = 5 * time.Second

var _ contract.Worker = (*Server)(nil)

type Server struct {
	log              *slog.Logger
	session          contract.IPeerSession
	addr             string
	subscriberBuffer int
	engine           *gin.Engine
	upgrader         websocket.Upgrader
}

type sendRequest struct {
	Text string `json:"text" binding:"required"`
}

func NewServer(log *slog.Logger, session contract.IPeerSession, addr string, subscriberBuffer int) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		log:              log,
		session:          session,
		addr:             addr,
		subscriberBuffer: subscriberBuffer,
		engine:           gin.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The bridge is meant for local tools only
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.engine.Use(gin.Recovery(), s.logRequests())
	s.engine.GET("/peers", s.getPeers)
	s.engine.GET("/messages", s.getMessages)
	s.engine.POST("/invite/:peer", s.postInvite)
	s.engine.POST("/send", s.postSend)
	s.engine.GET("/ws", s.handleWebsocket)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.engine}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Bridge listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if goerrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("Bridge shutdown", "error", err)
		}
		return nil
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("Bridge request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) getPeers(c *gin.Context) {
	c.JSON(http.StatusOK, toSessionView(s.session.Snapshot()))
}

func (s *Server) getMessages(c *gin.Context) {
	c.JSON(http.StatusOK, toMessageViews(s.session.Snapshot().Messages))
}

func (s *Server) postInvite(c *gin.Context) {
	peer := domain.PeerID(c.Param("peer"))
	if err := s.session.Invite(peer); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusAccepted)
}

func (s *Server) postSend(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.session.Send(req.Text)
	c.Status(http.StatusAccepted)
}

func statusOf(err error) int {
	switch {
	case goerrors.Is(err, errors.ErrCapacityReached):
		return http.StatusConflict
	case goerrors.Is(err, errors.ErrInvalidTarget):
		return http.StatusNotFound
	case goerrors.Is(err, errors.ErrSessionClosed), goerrors.Is(err, errors.ErrNotCreated):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleWebsocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Failed to upgrade connection: %v", err))
		return
	}
	client := newClient(s.log, conn, s.session, s.subscriberBuffer)
	go client.writePump()
	go client.readPump()
}
