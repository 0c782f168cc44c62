package glot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single_quoted", "'Hello!'", "Hello!"},
		{"double_quoted", `"js"`, "js"},
		{"empty", "", ""},
		{"one_char", "x", ""},
		{"two_chars", `""`, ""},
		{"unicode", `"héllo"`, "héllo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, StripQuotes(tc.in))
		})
	}
}

// Stripping removes the outer characters unconditionally, so a second
// application truncates an already-unquoted string. This mirrors how call
// payloads are unwrapped and is relied on elsewhere; it is not a bug to fix
// quietly.
func TestStripQuotesNotIdempotent(t *testing.T) {
	stripped := StripQuotes("'Hello!'")
	require.Equal(t, "Hello!", stripped)
	require.Equal(t, "ello", StripQuotes(stripped))
}
