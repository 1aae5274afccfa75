package ircd

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLogSink_AppendsLines(t *testing.T) {
	path := t.TempDir() + "/irc_test.log"
	sink, err := NewLogSink(path)
	if err != nil {
		t.Fatalf("NewLogSink: %v", err)
	}

	sink.Append("NICK alice")
	sink.Append("MSG hello")
	sink.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}
	if !strings.Contains(lines[0], "NICK alice") {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}

func TestLogSink_CloseAfterAppendDoesNotPanic(t *testing.T) {
	path := t.TempDir() + "/irc_test2.log"
	sink, err := NewLogSink(path)
	if err != nil {
		t.Fatalf("NewLogSink: %v", err)
	}
	sink.Append("line one")
	time.Sleep(5 * time.Millisecond)
	sink.Close()
}
