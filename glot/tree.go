package glot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

const defaultMaxDepth = 32

// options holds construction settings shared by a tree and all of its
// subtrees.
type options struct {
	maxDepth int
}

// Option configures tree construction.
type Option func(*options)

// WithMaxDepth bounds how deeply nested polyglot evaluate calls are
// followed. Mutually referencing file payloads would otherwise recurse
// forever; links beyond the limit are omitted with a diagnostic.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

func newOptions(opts []Option) options {
	o := options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// nodeKey identifies a node within the tree that produced it. Keys are only
// meaningful for that one tree; the byte range plus kind pins down a unique
// node for the grammars in use.
type nodeKey struct {
	kind       string
	start, end uint32
}

func keyOf(n *sitter.Node) nodeKey {
	return nodeKey{kind: n.Type(), start: n.StartByte(), end: n.EndByte()}
}

// Tree is a syntax tree spanning multiple languages. It owns one parsed
// program fragment plus a subtree for every polyglot evaluate call resolved
// inside it, recursively. Zippers obtained from Root traverse the whole
// forest as if it were a single tree.
type Tree struct {
	tree       *sitter.Tree
	code       []byte
	path       string
	workingDir string
	lang       Language
	subtrees   map[nodeKey]*Tree
	diags      []Diagnostic
	opts       options
}

// Parse builds a polyglot tree from source code. Relative file payloads
// found inside the code resolve against the process working directory.
// Construction only fails if the fragment itself cannot be parsed; failures
// inside nested polyglot calls surface as Diagnostics instead.
func Parse(code []byte, lang Language, opts ...Option) (*Tree, error) {
	return construct(code, lang, "", "", 0, newOptions(opts))
}

// ParseFile reads and builds a polyglot tree from a file. Relative file
// payloads inside it resolve against the file's own directory.
func ParseFile(path string, lang Language, opts ...Option) (*Tree, error) {
	return constructFile(path, lang, 0, newOptions(opts))
}

func constructFile(path string, lang Language, depth int, o options) (*Tree, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return construct(code, lang, path, filepath.Dir(path), depth, o)
}

func construct(code []byte, lang Language, path, workingDir string, depth int, o options) (*Tree, error) {
	p := newParser(lang)
	tree, err := p.parse(code)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, errors.New("parser produced no tree")
	}

	t := &Tree{
		tree:       tree,
		code:       code,
		path:       path,
		workingDir: workingDir,
		lang:       lang,
		opts:       o,
	}

	// The link map is filled into a local map and only published once the
	// full pass is done.
	m := make(map[nodeKey]*Tree)
	t.buildLinks(m, t.rootNode(), depth)
	t.subtrees = m
	return t, nil
}

// Language returns the language this tree was parsed as.
func (t *Tree) Language() Language {
	return t.lang
}

// Path returns the source file of the tree, empty for in-memory code.
func (t *Tree) Path() string {
	return t.path
}

// SubtreeCount returns the number of polyglot links resolved directly in
// this tree, not counting links nested deeper in the forest.
func (t *Tree) SubtreeCount() int {
	return len(t.subtrees)
}

// Root returns a zipper positioned at the root of the tree.
func (t *Tree) Root() *Zipper {
	return newZipper(t, t.rootNode())
}

// Apply hands p a zipper positioned at the root of the tree.
func (t *Tree) Apply(p Processor) {
	p.Process(t.Root())
}

// Diagnostics returns every omitted-link diagnostic collected while building
// this tree and its subtrees, in source order per tree.
func (t *Tree) Diagnostics() []Diagnostic {
	diags := append([]Diagnostic(nil), t.diags...)
	for _, sub := range t.orderedSubtrees() {
		diags = append(diags, sub.Diagnostics()...)
	}
	return diags
}

// orderedSubtrees returns the owned subtrees sorted by call-site position.
func (t *Tree) orderedSubtrees() []*Tree {
	keys := make([]nodeKey, 0, len(t.subtrees))
	for k := range t.subtrees {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].start != keys[j].start {
			return keys[i].start < keys[j].start
		}
		return keys[i].end < keys[j].end
	})
	subs := make([]*Tree, len(keys))
	for i, k := range keys {
		subs[i] = t.subtrees[k]
	}
	return subs
}

// subtree returns the tree linked to the given call-site node, if any.
func (t *Tree) subtree(n *sitter.Node) *Tree {
	return t.subtrees[keyOf(n)]
}

// nodeText returns the exact source substring spanned by a node.
func (t *Tree) nodeText(n *sitter.Node) string {
	return n.Content(t.code)
}

func (t *Tree) rootNode() *sitter.Node {
	return t.tree.RootNode()
}
