package glot

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Zipper is a read-only cursor over a polyglot tree forest. It holds the
// tree it is currently positioned in and one of that tree's nodes; moving
// into a polyglot evaluate call transparently rebinds the cursor to the
// linked subtree, so consumers can walk the combined structure without
// knowing where language boundaries are.
//
// A zipper never mutates the underlying trees and must not outlive the tree
// it was created from. Copies navigate independently.
type Zipper struct {
	tree *Tree
	node *sitter.Node
}

func newZipper(t *Tree, n *sitter.Node) *Zipper {
	return &Zipper{tree: t, node: n}
}

// Clone returns an independent copy of the zipper at the same position.
func (z *Zipper) Clone() *Zipper {
	return newZipper(z.tree, z.node)
}

// Language returns the language of the tree the zipper is currently in.
func (z *Zipper) Language() Language {
	return z.tree.lang
}

// IsEvalCall reports whether the current node is a polyglot evaluate call.
func (z *Zipper) IsEvalCall() bool {
	return z.tree.isEvalCall(z.node)
}

// IsImportCall reports whether the current node is a polyglot import call.
func (z *Zipper) IsImportCall() bool {
	return z.tree.isImportCall(z.node)
}

// IsExportCall reports whether the current node is a polyglot export call.
func (z *Zipper) IsExportCall() bool {
	return z.tree.isExportCall(z.node)
}

// Kind returns the current node's type. Polyglot call sites report one of
// the synthetic kinds "polyglot_eval_call", "polyglot_import_call" or
// "polyglot_export_call" instead of their structural type.
func (z *Zipper) Kind() string {
	switch {
	case z.IsEvalCall():
		return "polyglot_eval_call"
	case z.IsImportCall():
		return "polyglot_import_call"
	case z.IsExportCall():
		return "polyglot_export_call"
	}
	return z.node.Type()
}

// Code returns the current node's source code.
func (z *Zipper) Code() string {
	return z.tree.nodeText(z.node)
}

// StartPosition returns the node's start position within its owning tree's
// source text.
func (z *Zipper) StartPosition() Position {
	p := z.node.StartPoint()
	return Position{Row: p.Row, Column: p.Column}
}

// EndPosition returns the node's end position within its owning tree's
// source text.
func (z *Zipper) EndPosition() Position {
	p := z.node.EndPoint()
	return Position{Row: p.Row, Column: p.Column}
}

// BindingName returns the externally visible name declared by an import or
// export call. The result is empty when the call carries no static name,
// such as a name computed at runtime. Asking any other node returns
// ErrInvalidArgument.
func (z *Zipper) BindingName() (string, error) {
	if !z.IsImportCall() && !z.IsExportCall() {
		return "", ErrInvalidArgument
	}
	return z.tree.bindingName(z.node), nil
}

// isStringLiteral covers the quoted-literal node kinds of the supported
// grammars.
func isStringLiteral(n *sitter.Node) bool {
	switch n.Type() {
	case "string", "string_literal":
		return true
	}
	return false
}

// GotoFirstChild moves the zipper to the first child of the current node.
// If the current node is an evaluate call with a resolved subtree, the
// zipper instead crosses into that subtree and repositions at its root.
// Returns false and stays put if there is neither.
func (z *Zipper) GotoFirstChild() bool {
	if sub := z.tree.subtree(z.node); sub != nil {
		z.tree = sub
		z.node = sub.rootNode()
		return true
	}
	child := z.node.Child(0)
	if child == nil {
		return false
	}
	z.node = child
	return true
}

// GotoNextSibling moves the zipper to the next sibling of the current node,
// always within the current tree. Returns false and stays put at the last
// sibling.
func (z *Zipper) GotoNextSibling() bool {
	sibling := z.node.NextSibling()
	if sibling == nil {
		return false
	}
	z.node = sibling
	return true
}

// Child returns a zipper for the i-th child of the current node. An
// evaluate call site redirects to the root of its linked subtree regardless
// of i; call sites are opaque except through their subtree.
func (z *Zipper) Child(i int) *Zipper {
	if z.IsEvalCall() {
		sub := z.tree.subtree(z.node)
		if sub == nil {
			return nil
		}
		return sub.Root()
	}
	child := z.node.Child(i)
	if child == nil {
		return nil
	}
	return newZipper(z.tree, child)
}

// NextSibling returns a zipper for the next sibling node, or nil.
func (z *Zipper) NextSibling() *Zipper {
	sibling := z.node.NextSibling()
	if sibling == nil {
		return nil
	}
	return newZipper(z.tree, sibling)
}

// PrevSibling returns a zipper for the previous sibling node, or nil.
func (z *Zipper) PrevSibling() *Zipper {
	sibling := z.node.PrevSibling()
	if sibling == nil {
		return nil
	}
	return newZipper(z.tree, sibling)
}
