// Package server exposes the rules engine's dispatch surface over
// websockets. The engine assumes a single authoritative writer per round;
// the first connection claims the writer role, later ones observe.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/stuagano/wolf-goat-pig-sub000/internal/game"
)

// Server serves one round.
type Server struct {
	roundID  string
	engine   *game.Engine
	logger   *log.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server

	mu          sync.Mutex
	connections map[*Connection]bool
	writerConn  *Connection
}

// New creates a server for the given engine.
func New(roundID string, engine *game.Engine, logger *log.Logger) *Server {
	return &Server{
		roundID: roundID,
		engine:  engine,
		logger:  logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		connections: map[*Connection]bool{},
	}
}

// ListenAndServe blocks serving websocket clients on addr until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.httpSrv = &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "round", s.roundID)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	conn := NewConnection(ws, s.logger, s)

	s.mu.Lock()
	s.connections[conn] = true
	if s.writerConn == nil {
		s.writerConn = conn
		conn.writer = true
	}
	s.mu.Unlock()

	conn.Start()

	welcome, _ := NewMessage(MessageWelcome, WelcomeData{RoundID: s.roundID, Writer: conn.writer})
	_ = conn.SendMessage(welcome)

	state, _ := NewMessage(MessageState, s.engine.Snapshot())
	_ = conn.SendMessage(state)
}

func (s *Server) removeConnection(conn *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connections, conn)
	if s.writerConn == conn {
		// The writer claim is not transferred automatically: a reconnecting
		// scorekeeper gets it back by being first in again.
		s.writerConn = nil
	}
}

// handleMessage processes a client message. Actions are only accepted from
// the writer connection and are serialized through the server mutex, which
// preserves the engine's single-actor assumption.
func (s *Server) handleMessage(conn *Connection, msg *Message) {
	if msg.Type != MessageAction {
		s.sendError(conn, msg.RequestID, fmt.Sprintf("unknown message type %q", msg.Type))
		return
	}
	if !conn.writer {
		s.sendError(conn, msg.RequestID, "this connection does not hold the writer claim")
		return
	}

	var action game.Action
	if err := json.Unmarshal(msg.Data, &action); err != nil {
		s.sendError(conn, msg.RequestID, fmt.Sprintf("malformed action: %v", err))
		return
	}

	s.mu.Lock()
	snap, err := s.engine.Dispatch(action)
	s.mu.Unlock()

	if err != nil {
		s.sendError(conn, msg.RequestID, err.Error())
		return
	}

	s.broadcastState(snap, msg.RequestID)
}

func (s *Server) sendError(conn *Connection, requestID, message string) {
	msg, err := NewMessage(MessageError, ErrorData{Message: message})
	if err != nil {
		return
	}
	msg.RequestID = requestID
	_ = conn.SendMessage(msg)
}

func (s *Server) broadcastState(snap *game.Snapshot, requestID string) {
	msg, err := NewMessage(MessageState, snap)
	if err != nil {
		s.logger.Error("failed to encode state", "error", err)
		return
	}

	s.mu.Lock()
	conns := make([]*Connection, 0, len(s.connections))
	for c := range s.connections {
		conns = append(conns, c)
	}
	writer := s.writerConn
	s.mu.Unlock()

	for _, c := range conns {
		out := *msg
		if c == writer {
			out.RequestID = requestID
		}
		_ = c.SendMessage(&out)
	}
}
