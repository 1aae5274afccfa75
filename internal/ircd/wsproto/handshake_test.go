package wsproto

import "testing"

func TestAcceptKey_RFC6455Vector(t *testing.T) {
	got := AcceptKey("dGhlIHNhbXBsZSBub25jZQ==")
	want := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	if got != want {
		t.Fatalf("AcceptKey = %q, want %q", got, want)
	}
}

func TestLooksLikeUpgrade(t *testing.T) {
	if !LooksLikeUpgrade([]byte("GET / HTTP/1.1\r\n")) {
		t.Fatalf("expected GET request to look like an upgrade")
	}
	if LooksLikeUpgrade([]byte("NICK alice\n")) {
		t.Fatalf("plain command line misclassified as upgrade")
	}
}

func TestExtractKey(t *testing.T) {
	req := "GET / HTTP/1.1\r\nHost: example.com\r\nSec-WebSocket-Key: dGhlIHNhbXBsZSBub25jZQ==\r\nConnection: Upgrade\r\n\r\n"
	key, ok := ExtractKey([]byte(req))
	if !ok {
		t.Fatalf("expected key to be found")
	}
	if key != "dGhlIHNhbXBsZSBub25jZQ==" {
		t.Fatalf("ExtractKey = %q", key)
	}
}

func TestExtractKey_Missing(t *testing.T) {
	req := "GET / HTTP/1.1\r\nHost: example.com\r\n\r\n"
	_, ok := ExtractKey([]byte(req))
	if ok {
		t.Fatalf("expected missing key to report ok=false")
	}
}
