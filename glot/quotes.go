package glot

// StripQuotes removes exactly one leading and one trailing character from s.
// In practice this unwraps quoted string literals, but the characters are
// removed unconditionally: the function does not check that they are quotes,
// so applying it to an already-unquoted string truncates it further
// (StripQuotes("'Hello!'") == "Hello!", StripQuotes("Hello!") == "ello").
// Callers are expected to pass well-formed single- or double-quoted
// literals.
func StripQuotes(s string) string {
	runes := []rune(s)
	if len(runes) <= 2 {
		return ""
	}
	return string(runes[1 : len(runes)-1])
}
