// Package server exposes generator output over WebSocket. Every accepted
// connection receives its own jump-derived substream, so concurrent clients
// consume non-overlapping parts of the stream without any locking on the hot
// path.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/xoshiro/internal/config"
	"github.com/lox/xoshiro/internal/emitter"
	"github.com/lox/xoshiro/rng"
)

// Server is the WebSocket stream server.
type Server struct {
	cfg      *config.Config
	upgrader websocket.Upgrader
	logger   *log.Logger
	clock    quartz.Clock

	mu    sync.Mutex
	next  *rng.Rng // seed point of the next substream, advanced by Jump per connection
	conns map[*websocket.Conn]struct{}

	httpServer *http.Server
	ctx        context.Context
	cancel     context.CancelFunc
}

// New creates a stream server. A zero seed in the configuration seeds the
// base generator from entropy; any other value gives a fully deterministic
// set of substreams. A nil clock means the real clock.
func New(cfg *config.Config, logger *log.Logger, clock quartz.Clock) *Server {
	base := rng.FromEntropy()
	if cfg.Stream.Seed != 0 {
		base = rng.SeedFromUint64(cfg.Stream.Seed)
	}
	if clock == nil {
		clock = quartz.NewReal()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
		clock:  clock,
		next:   base,
		conns:  make(map[*websocket.Conn]struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handler returns the HTTP handler serving /stream and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/stream", s.handleStream)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start runs the server until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.Server.Listen,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting stream server", "addr", s.cfg.Server.Listen)
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down and closes all open connections.
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close() // ignore close errors during shutdown
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

// nextStream hands out the next non-overlapping substream: a clone of the
// current seed point, after which the seed point jumps ahead 2^128 draws.
func (s *Server) nextStream() *rng.Rng {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := s.next.Clone()
	s.next.Jump()
	return sub
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	s.register(conn)
	defer s.unregister(conn)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	// Clients only ever receive; the read loop exists to notice disconnects
	// and answer control frames.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	sub := s.nextStream()
	em := emitter.New(sub, s.cfg.Stream.ChunkSize, s.cfg.Stream.Rate, s.clock, s.logger)
	err = em.Run(ctx, func(chunk []byte) error {
		return conn.WriteMessage(websocket.BinaryMessage, chunk)
	})
	if err != nil && ctx.Err() == nil {
		s.logger.Error("Stream ended", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) register(conn *websocket.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	total := len(s.conns)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)
}

func (s *Server) unregister(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	total := len(s.conns)
	s.mu.Unlock()
	_ = conn.Close()
	s.logger.Info("Client disconnected", "total", total)
}
