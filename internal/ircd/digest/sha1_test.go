package digest

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestSum_NISTVectors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{
			"two-block",
			"abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
			"84983e441c3bd26ebaae4aa1f95129e5e54670f1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sum([]byte(tc.in))
			if hex.EncodeToString(got[:]) != tc.want {
				t.Fatalf("Sum(%q) = %x, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestSum_LongRepeated(t *testing.T) {
	// NIST vector: "a" repeated one million times.
	want := "34aa973cd4c4daa4f61eeb2bdbad27316534016f"
	got := Sum([]byte(strings.Repeat("a", 1_000_000)))
	if hex.EncodeToString(got[:]) != want {
		t.Fatalf("Sum(a*1e6) = %x, want %s", got, want)
	}
}
