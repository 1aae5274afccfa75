package ircd

import (
	"log/slog"
	"time"

	"github.com/wireline-chat/ircwsd/internal/ircd/wsproto"
)

// Manager is the connection manager and the sole mutator of the client
// table. The table is a single map, owned exclusively by the goroutine
// running Run, carrying each connection's protocol, nickname, and
// liveness. Every read of that map (broadcast fan-out, nickname lookup)
// happens on the same goroutine, which trivially satisfies "reads never
// observe a partially updated mapping" without needing a mutex at all.
type Manager struct {
	events  chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	logger  *slog.Logger
	cmds    *CommandRegistry
	logSink *LogSink
}

// NewManager wires a Manager with the given event buffer and logger.
func NewManager(buffer int, logger *slog.Logger, cmds *CommandRegistry, logSink *LogSink) *Manager {
	if buffer <= 0 {
		buffer = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		events:  make(chan Event, buffer),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		logger:  logger,
		cmds:    cmds,
		logSink: logSink,
	}
}

// Events returns the send-only side of the event channel; the server
// loop and sessions post to it, never read from it.
func (m *Manager) Events() chan<- Event {
	return m.events
}

// Stop signals Run to exit.
func (m *Manager) Stop() {
	close(m.stopCh)
}

// Wait blocks until Run has fully exited.
func (m *Manager) Wait() {
	<-m.doneCh
}

// Run drains the event channel and the idle-eviction ticker on a single
// goroutine. Ticks never overlap: time.Ticker only ever has one pending
// tick queued, and this loop processes everything, events and ticks
// alike, strictly sequentially.
func (m *Manager) Run() {
	defer close(m.doneCh)

	clients := make(map[string]*Client)
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-m.events:
			start := time.Now()
			var label string
			switch ev.Type {
			case EventRegisterConn:
				label = "register"
				m.handleRegister(clients, ev)
			case EventInbound:
				label = "inbound"
				m.handleInbound(clients, ev)
			case EventUnregisterConn:
				label = "unregister"
				m.disconnectLocked(clients, ev.Client.ID)
			}
			EventProcessingDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
		case <-ticker.C:
			start := time.Now()
			m.handleCleanupTick(clients)
			EventProcessingDuration.WithLabelValues("cleanup").Observe(time.Since(start).Seconds())
		case <-m.stopCh:
			return
		}
	}
}

func (m *Manager) handleRegister(clients map[string]*Client, ev Event) {
	c := ev.Client
	c.Nick = AnonymousNick
	c.LastActive = time.Now()
	clients[c.ID] = c

	ConnectedClients.WithLabelValues(c.Protocol.String()).Inc()
	m.logger.Info("client connected", "id", c.ID, "protocol", c.Protocol.String())
}

func (m *Manager) handleInbound(clients map[string]*Client, ev Event) {
	c, ok := clients[ev.Client.ID]
	if !ok {
		return
	}
	c.LastActive = time.Now()

	if ev.Text == "" {
		return // FrameError or blank line: dispatch skips empty messages
	}

	if m.logSink != nil {
		m.logSink.Append(ev.Text)
	}

	name, tokens := SplitCommandLine(ev.Text)
	if name == "" {
		return
	}
	MessagesTotal.WithLabelValues(name).Inc()
	m.cmds.Dispatch(name, c.ID, tokens, capAdapter{m: m, clients: clients})
}

// isStale reports whether lastActive is far enough in the past, as of
// now, to be evicted by the cleanup tick: strictly greater than IdleTTL.
func isStale(now, lastActive time.Time) bool {
	return now.Sub(lastActive) > IdleTTL
}

func (m *Manager) handleCleanupTick(clients map[string]*Client) {
	now := time.Now()
	var stale []string
	for id, c := range clients {
		if isStale(now, c.LastActive) {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		IdleEvictionsTotal.Inc()
		m.logger.Info("idle eviction", "id", id)
		m.disconnectLocked(clients, id)
	}
}

// disconnectLocked removes id from the tables and lets the writer drain
// and close the transport. Idempotent: a second call finds nothing to
// remove.
func (m *Manager) disconnectLocked(clients map[string]*Client, id string) {
	c, ok := clients[id]
	if !ok {
		return
	}
	delete(clients, id)
	close(c.Out)

	ConnectedClients.WithLabelValues(c.Protocol.String()).Dec()
	m.logger.Info("client disconnected", "id", id, "nick", c.Nick)
}

// capAdapter implements ServerCap by operating directly on the
// manager's clients map. It is only ever constructed and used from
// within Run's goroutine, so it needs no locking of its own.
type capAdapter struct {
	m       *Manager
	clients map[string]*Client
}

func (a capAdapter) Send(id, text string) {
	c, ok := a.clients[id]
	if !ok {
		return
	}
	enqueue(c, text)
}

func (a capAdapter) Broadcast(text string) {
	for _, c := range a.clients {
		enqueue(c, text)
	}
}

func (a capAdapter) Disconnect(id string) {
	a.m.disconnectLocked(a.clients, id)
}

func (a capAdapter) SetNick(id, nick string) {
	if c, ok := a.clients[id]; ok {
		c.Nick = nick
	}
}

func (a capAdapter) GetNick(id string) string {
	if c, ok := a.clients[id]; ok {
		return c.Nick
	}
	return AnonymousNick
}

// enqueue frames text per the client's protocol and performs a
// non-blocking send to its outbound channel. A slow or vanished peer
// simply drops the message rather than blocking the event loop.
func enqueue(c *Client, text string) {
	payload := []byte(text + "\n")

	var framed []byte
	if c.Protocol == ProtoWebSocket {
		framed = wsproto.EncodeTextFrame(payload)
	} else {
		framed = payload
	}

	select {
	case c.Out <- framed:
	default:
		// Backpressure: drop rather than block the single event-loop goroutine.
	}
}
