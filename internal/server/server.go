// Package server runs the game's network front: a TCP listener speaking
// the JSON round protocol, one goroutine per connection, one tick-driver
// goroutine, and an optional HTTP listener for the websocket gateway and
// the ops endpoints.
package server

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mavstuff/snake/internal/config"
	"github.com/mavstuff/snake/internal/game"
	"github.com/mavstuff/snake/internal/protocol"
)

type Server struct {
	cfg     config.Config
	world   *game.World
	metrics *metrics

	listener net.Listener
	stop     chan struct{}
	stopOnce sync.Once
	fatal    chan error
	wg       sync.WaitGroup

	connMu sync.Mutex
	conns  map[net.Conn]struct{}
}

func New(cfg config.Config, world *game.World) *Server {
	return &Server{
		cfg:     cfg,
		world:   world,
		metrics: newMetrics(world),
		stop:    make(chan struct{}),
		fatal:   make(chan error, 1),
		conns:   make(map[net.Conn]struct{}),
	}
}

// Start binds the game listener and launches the accept loop and the tick
// driver. It returns once the listener is up.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = l

	s.wg.Add(2)
	go s.tickDriver()
	go s.acceptLoop()
	return nil
}

// Addr is the bound game listener address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Fatal delivers a listener-level error: the one failure class that takes
// the whole server down.
func (s *Server) Fatal() <-chan error {
	return s.fatal
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stop:
				return
			default:
			}
			select {
			case s.fatal <- err:
			default:
			}
			return
		}
		s.track(conn)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			defer conn.Close()
			s.handleConn(conn)
		}()
	}
}

// tickDriver advances the world on a fixed cadence so the simulation runs
// even with no client traffic. It wakes at half the tick interval; the
// world itself gates actual advances to the full interval.
func (s *Server) tickDriver() {
	defer s.wg.Done()
	ticker := time.NewTicker(game.TickInterval / 2)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if s.world.Tick() {
				s.metrics.ticks.Inc()
			}
		}
	}
}

func (s *Server) handleConn(conn net.Conn) {
	logger := log.WithFields(log.Fields{
		"conn_id": uuid.NewString(),
		"remote":  conn.RemoteAddr().String(),
	})
	logger.Debug("connection accepted")
	s.runSession(protocol.NewStreamCodec(conn), logger)
}

// Shutdown closes the listener and every live connection, then waits for
// the handlers and the tick driver to drain out of their current critical
// sections. World state is simply abandoned; nothing persists.
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() { close(s.stop) })
	if s.listener != nil {
		s.listener.Close()
	}
	s.connMu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.connMu.Unlock()
	s.wg.Wait()
}

func (s *Server) track(conn net.Conn) {
	s.connMu.Lock()
	s.conns[conn] = struct{}{}
	s.connMu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.connMu.Lock()
	delete(s.conns, conn)
	s.connMu.Unlock()
}
