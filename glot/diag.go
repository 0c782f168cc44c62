package glot

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLanguage is returned when a language name does not resolve
	// to a supported language.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrInvalidArgument is returned when an operation is asked of a node
	// that cannot answer it, such as a binding name on a non-import node.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Position is a row/column location in source text, zero-based as reported
// by tree-sitter.
type Position struct {
	Row    uint32 `json:"row"`
	Column uint32 `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// Diagnostic describes one omitted polyglot link. Subtree construction never
// hard-fails the surrounding build; each failure is recorded as a diagnostic
// on the tree whose build detected it.
type Diagnostic struct {
	// Path is the source file of the tree that produced the diagnostic,
	// empty for trees parsed from in-memory code.
	Path string `json:"path,omitempty"`

	// Pos locates the offending call site within that tree's source.
	Pos Position `json:"pos"`

	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Path != "" {
		return fmt.Sprintf("%s:%s: %s", d.Path, d.Pos, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}
