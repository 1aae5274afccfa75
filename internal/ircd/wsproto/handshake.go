package wsproto

import (
	"encoding/base64"
	"strings"

	"github.com/wireline-chat/ircwsd/internal/ircd/digest"
)

// GUID is the magic constant RFC 6455 §1.3 mixes into the client's
// Sec-WebSocket-Key before hashing.
const GUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

const keyHeaderPrefix = "Sec-WebSocket-Key:"

// AcceptKey derives the Sec-WebSocket-Accept value for a client key.
func AcceptKey(clientKey string) string {
	sum := digest.Sum([]byte(clientKey + GUID))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// LooksLikeUpgrade reports whether the first bytes of a connection begin
// an HTTP upgrade request rather than a plain-protocol command line.
func LooksLikeUpgrade(first []byte) bool {
	return strings.HasPrefix(string(first), "GET ")
}

// ExtractKey scans CRLF-delimited header lines for Sec-WebSocket-Key and
// returns its trimmed value. ok is false if the header is absent.
func ExtractKey(request []byte) (string, bool) {
	lines := strings.Split(string(request), "\r\n")
	for _, line := range lines {
		if strings.HasPrefix(line, keyHeaderPrefix) {
			return strings.TrimSpace(line[len(keyHeaderPrefix):]), true
		}
	}
	return "", false
}

// SwitchingProtocolsResponse builds the literal 101 response for the
// given client key.
func SwitchingProtocolsResponse(clientKey string) []byte {
	accept := AcceptKey(clientKey)
	resp := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + accept + "\r\n" +
		"\r\n"
	return []byte(resp)
}
