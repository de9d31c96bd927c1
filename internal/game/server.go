package game

import (
	"errors"
	"net"
	"os"
	"time"

	"go.uber.org/zap"
)

// Server ties the listener to the shared realm. Construction wires the
// collaborators; ListenAndServe runs the accept loop.
type Server struct {
	realm    *Realm
	screen   *NameScreen
	dispatch Dispatcher
	log      *zap.Logger
}

// NewServer builds a server over an already-validated realm.
func NewServer(realm *Realm, screen *NameScreen, dispatch Dispatcher) *Server {
	if screen == nil {
		screen = NewNameScreen()
	}
	return &Server{
		realm:    realm,
		screen:   screen,
		dispatch: dispatch,
		log:      realm.World.Logger().Named("server"),
	}
}

// ListenAndServe accepts telnet connections until the listener fails with a
// permanent error.
func (s *Server) ListenAndServe(addr string) error {
	if s.dispatch == nil {
		return errors.New("server: dispatcher must not be nil")
	}
	ln, err := netListenFunc("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	s.log.Info("listening", zap.String("addr", ln.Addr().String()))
	return s.acceptConnections(ln)
}

// Serve runs the accept loop on a caller-provided listener, for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.acceptConnections(ln)
}

const (
	acceptBackoffStart = 50 * time.Millisecond
	acceptBackoffMax   = time.Second
)

var (
	netListenFunc = net.Listen
	acceptSleep   = time.Sleep
)

// acceptConnections retries transient accept failures with exponential
// backoff and hands each connection its own session goroutine.
func (s *Server) acceptConnections(ln net.Listener) error {
	backoff := acceptBackoffStart
	for {
		conn, err := ln.Accept()
		if err != nil {
			if isTemporaryAcceptError(err) {
				s.log.Warn("temporary accept error",
					zap.Error(err),
					zap.Duration("backoff", backoff))
				acceptSleep(backoff)
				backoff *= 2
				if backoff > acceptBackoffMax {
					backoff = acceptBackoffMax
				}
				continue
			}
			return err
		}
		backoff = acceptBackoffStart
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	addr := conn.RemoteAddr().String()
	session := NewSession(s.realm, NewTelnetSession(conn), s.screen, s.dispatch)
	session.Run(addr)
}

func isTemporaryAcceptError(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() || ne.Temporary() {
			return true
		}
	}
	return errors.Is(err, os.ErrDeadlineExceeded)
}
