package ircd

import (
	"log/slog"
	"net"

	"github.com/google/uuid"
)

// Server owns the listening socket alone, accepts connections, mints a
// 128-bit connection identity for each, and hands it to HandleSession.
type Server struct {
	addr     string
	logger   *slog.Logger
	mgr      *Manager
	logSink  *LogSink
	listener net.Listener
}

// NewServer builds a Server with its own CommandRegistry and Manager.
// logSink may be nil to disable the append-only mirror (tests typically
// pass nil).
func NewServer(addr string, logger *slog.Logger, logSink *LogSink) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	cmds := NewCommandRegistry()
	mgr := NewManager(256, logger, cmds, logSink)
	return &Server{
		addr:    addr,
		logger:  logger,
		mgr:     mgr,
		logSink: logSink,
	}
}

// Start binds the listener and launches the manager's event loop and
// the accept loop.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln

	go s.mgr.Run()
	go s.acceptLoop(ln)

	s.logger.Info("server started", "addr", s.addr)
	return nil
}

// Stop closes the listener, stops the manager and waits for its loop
// to exit (events still queued are not processed), and closes the log
// sink. Safe to call once after Start.
func (s *Server) Stop() {
	s.logger.Info("shutting down")

	if s.listener != nil {
		s.listener.Close()
	}

	s.mgr.Stop()
	s.mgr.Wait()

	if s.logSink != nil {
		s.logSink.Close()
	}

	s.logger.Info("shutdown complete")
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			// Listener closed: normal shutdown path.
			return
		}

		s.logger.Info("connection accepted", "remote", conn.RemoteAddr().String())

		c := &Client{
			ID:   uuid.NewString(),
			Conn: conn,
			Out:  make(chan []byte, 32),
		}
		go HandleSession(c, s.mgr.Events())
	}
}
