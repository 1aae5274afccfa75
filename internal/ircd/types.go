package ircd

import (
	"net"
	"time"
)

// Protocol identifies which wire format a connection speaks. It is
// assigned exactly once, on the first inbound read, and never changes.
type Protocol int

const (
	ProtoUnknown Protocol = iota
	ProtoPlain
	ProtoWebSocket
)

func (p Protocol) String() string {
	switch p {
	case ProtoPlain:
		return "plain"
	case ProtoWebSocket:
		return "websocket"
	default:
		return "unknown"
	}
}

// AnonymousNick is the sentinel nickname returned for any connection id
// that has never called NICK.
const AnonymousNick = "Anonymous"

// IdleTTL is the idle window beyond which a connection is evicted by the
// cleanup tick.
const IdleTTL = 600 * time.Second

// CleanupInterval is the period between idle-eviction ticks.
const CleanupInterval = 60 * time.Second

// FirstReadBufferSize bounds the first read used to classify a
// connection as Plain or WebSocket.
const FirstReadBufferSize = 1024

// Client is a live connection: its transport handle, its wire protocol,
// its outbound queue, and its liveness timestamp. The session goroutine
// sets Protocol once, before posting EventRegisterConn; from then on the
// Manager's Run goroutine is the sole owner of the Protocol, LastActive,
// and Nick fields, and handlers only ever reach them through ServerCap.
type Client struct {
	ID         string
	Conn       net.Conn
	Protocol   Protocol
	Nick       string
	LastActive time.Time
	Out        chan []byte // outbound frames/lines, written by the connection's writer goroutine
}

// EventType enumerates everything the event loop (the sole mutator of
// ConnectionTable and UserRegistry) can be asked to do.
type EventType int

const (
	EventRegisterConn EventType = iota // new connection admitted, protocol known
	EventInbound                       // a decoded line/frame ready for dispatch
	EventUnregisterConn
)

// Event is the single message type flowing through the event loop.
type Event struct {
	Type   EventType
	Client *Client
	Text   string // raw decoded message, for EventInbound
}
