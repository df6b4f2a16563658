package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/lighting"
	"github.com/Faultbox/spotlight/internal/logger"
)

// Path is the WebSocket endpoint.
const Path = "/light"

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 2 * time.Second
	maxMessageSize  = 4096
)

// Server accepts remote control connections and forwards their commands to
// an edit queue.
type Server struct {
	addr     string
	queue    *lighting.EditQueue
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	http     *http.Server
	conns    map[*websocket.Conn]struct{}
	done     chan struct{}
}

// NewServer creates a server that will listen on addr once started.
func NewServer(addr string, queue *lighting.EditQueue) *Server {
	return &Server{
		addr:  addr,
		queue: queue,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log:   logger.Component("remote"),
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the HTTP handler serving the WebSocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.serveWS)
	return mux
}

// Start binds the listener and serves in the background until ctx is
// cancelled or Close is called.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("remote listen %s: %w", s.addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.mu.Lock()
	s.listener = ln
	s.http = srv
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	s.log.Info("remote control listening", zap.String("addr", ln.Addr().String()), zap.String("path", Path))

	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("remote server stopped", zap.Error(err))
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			if err := s.Close(); err != nil {
				s.log.Warn("remote shutdown", zap.Error(err))
			}
		case <-done:
		}
	}()

	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Close stops the server and drops every open connection.
func (s *Server) Close() error {
	s.mu.Lock()
	srv := s.http
	done := s.done
	s.http = nil
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	// Hijacked connections are not tracked by http.Server.
	var err error
	for _, c := range conns {
		if cerr := c.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = multierr.Append(err, fmt.Errorf("close %s: %w", c.RemoteAddr(), cerr))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = multierr.Append(err, srv.Shutdown(ctx))
	<-done
	return err
}

func (s *Server) track(c *websocket.Conn, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.conns[c] = struct{}{}
	} else {
		delete(s.conns, c)
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s.track(conn, true)
	defer s.track(conn, false)

	peer := conn.RemoteAddr().String()
	s.log.Info("remote peer connected", zap.String("peer", peer))
	conn.SetReadLimit(maxMessageSize)

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("remote peer dropped", zap.String("peer", peer), zap.Error(err))
			} else {
				s.log.Info("remote peer disconnected", zap.String("peer", peer))
			}
			return
		}

		reply := s.handle(msgType, msg)
		if !reply.OK {
			s.log.Debug("remote command rejected", zap.String("peer", peer), zap.String("error", reply.Error))
		}

		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			s.log.Debug("remote write deadline failed", zap.String("peer", peer), zap.Error(err))
			return
		}
		if err := conn.WriteJSON(reply); err != nil {
			s.log.Warn("remote reply failed", zap.String("peer", peer), zap.Error(err))
			return
		}
	}
}

func (s *Server) handle(msgType int, msg []byte) Reply {
	if msgType != websocket.TextMessage {
		return errReply(errors.New("commands must be text frames"))
	}
	edit, err := Decode(msg)
	if err != nil {
		return errReply(err)
	}
	if err := s.queue.Push(edit); err != nil {
		return errReply(err)
	}
	return okReply()
}
