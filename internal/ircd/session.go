package ircd

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/wireline-chat/ircwsd/internal/ircd/wsproto"
)

// HandleSession drives one connection through its whole lifetime: a
// single classifying first read, then either the WebSocket frame loop
// or the plain line loop, posting every admitted message to the
// connection manager as an EventInbound. The session goroutine itself
// never mutates the client table; it only ever posts events.
//
// Registration with the manager only happens once the connection has
// been classified and (for WebSocket) the handshake has succeeded. If
// the connection never reaches that point, it was never registered, so
// there is nothing for the manager to unregister: the writer's out
// channel is closed directly instead, which lets the writer goroutine
// exit its drain loop and close the transport.
func HandleSession(c *Client, events chan<- Event) {
	startOutboundWriter(c.Conn, c.Out)

	registered := false
	defer func() {
		if registered {
			events <- Event{Type: EventUnregisterConn, Client: c}
			return
		}
		close(c.Out)
	}()

	first := make([]byte, FirstReadBufferSize)
	n, err := c.Conn.Read(first)
	if err != nil {
		return
	}
	first = first[:n]

	if wsproto.LooksLikeUpgrade(first) {
		if runWebSocketHandshake(c, first, events) {
			registered = true
			runWebSocketLoop(c, events)
		}
		return
	}

	c.Protocol = ProtoPlain
	events <- Event{Type: EventRegisterConn, Client: c}
	registered = true
	runPlainLoop(c, first, events)
}

// runWebSocketHandshake validates the Sec-WebSocket-Key and sends the
// 101 response. It returns true only once the connection has also been
// registered with the manager; a missing key or a failed send leaves
// the connection unregistered and the caller tears it down.
func runWebSocketHandshake(c *Client, request []byte, events chan<- Event) bool {
	key, ok := wsproto.ExtractKey(request)
	if !ok {
		HandshakeFailuresTotal.Inc()
		return false
	}

	resp := wsproto.SwitchingProtocolsResponse(key)
	if _, err := c.Conn.Write(resp); err != nil {
		HandshakeFailuresTotal.Inc()
		return false
	}

	c.Protocol = ProtoWebSocket
	events <- Event{Type: EventRegisterConn, Client: c}
	return true
}

// runPlainLoop reads LF-terminated lines, reprocessing the bytes from
// the classifying first read rather than discarding them.
func runPlainLoop(c *Client, firstRead []byte, events chan<- Event) {
	reader := bufio.NewReader(io.MultiReader(bytes.NewReader(firstRead), c.Conn))

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			events <- Event{Type: EventInbound, Client: c, Text: normalizeLine(line)}
		}
		if err != nil {
			return
		}
	}
}

// runWebSocketLoop reads one frame per Conn.Read call: it assumes each
// read returns exactly one frame's worth of bytes, which holds for the
// small, non-fragmented text frames this server accepts.
func runWebSocketLoop(c *Client, events chan<- Event) {
	buf := make([]byte, FirstReadBufferSize)
	for {
		n, err := c.Conn.Read(buf)
		if err != nil {
			return
		}
		raw := buf[:n]

		if wsproto.IsCloseFrame(raw) {
			events <- Event{Type: EventInbound, Client: c, Text: ""}
			return
		}

		text, ok := wsproto.DecodeFrame(raw)
		if !ok {
			FrameDecodeErrorsTotal.Inc()
			events <- Event{Type: EventInbound, Client: c, Text: ""}
			continue
		}
		events <- Event{Type: EventInbound, Client: c, Text: normalizeLine(text)}
	}
}

func normalizeLine(line string) string {
	return strings.TrimSpace(line)
}
