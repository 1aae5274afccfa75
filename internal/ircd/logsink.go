package ircd

import (
	"fmt"
	"os"
	"time"
)

// DefaultLogPath is the append-only file every inbound line is mirrored
// to, per the external-interfaces log sink contract.
const DefaultLogPath = "irc_server.log"

// LogSink is a single-writer append-only sink: one goroutine owns the
// file handle, so concurrent Append calls from many connections never
// interleave within a line (the "Log sink race" design note).
type LogSink struct {
	lines chan string
	file  *os.File
	done  chan struct{}
}

// NewLogSink opens (creating if absent) path in append mode and starts
// its writer goroutine.
func NewLogSink(path string) (*LogSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log sink: %w", err)
	}
	s := &LogSink{
		lines: make(chan string, 256),
		file:  f,
		done:  make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Append enqueues a line for the writer goroutine. Best-effort: a full
// buffer drops the line rather than blocking the caller (the caller is
// almost always the single event-loop goroutine).
func (s *LogSink) Append(line string) {
	select {
	case s.lines <- line:
	default:
	}
}

// Close stops the writer goroutine after it drains and closes the file.
func (s *LogSink) Close() {
	close(s.lines)
	<-s.done
}

func (s *LogSink) run() {
	defer close(s.done)
	defer s.file.Close()

	for line := range s.lines {
		stamp := time.Now().Format(time.RFC3339)
		if _, err := fmt.Fprintf(s.file, "[%s] %s\n", stamp, line); err != nil {
			// LogError: caught and printed, never propagated to the client path.
			fmt.Fprintln(os.Stderr, "ircd: log sink write failed:", err)
		}
	}
}
