package ircd

import (
	"bufio"
	"net"
)

// startOutboundWriter drains a connection's outbound channel, one
// already-framed message at a time, and flushes each to the socket.
// This goroutine owns the final net.Conn.Close(), closing the
// transport only once out has been both closed and fully drained. That
// ordering guarantees a QUIT's "Goodbye!" reaches the socket before the
// connection is torn down, regardless of scheduling.
func startOutboundWriter(conn net.Conn, out <-chan []byte) {
	go func() {
		defer conn.Close()

		w := bufio.NewWriter(conn)
		for msg := range out {
			if _, err := w.Write(msg); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}()
}
