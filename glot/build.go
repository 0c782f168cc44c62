package glot

import (
	"errors"
	"fmt"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
)

// buildLinks is the single recursive pass that resolves polyglot evaluate
// calls into subtrees. It walks every node through first-child then
// next-sibling recursion; evaluate call sites are leaves of this traversal,
// since their substance lives in the linked subtree.
func (t *Tree) buildLinks(m map[nodeKey]*Tree, node *sitter.Node, depth int) {
	if t.isEvalCall(node) {
		if err := t.makeSubtree(m, node, depth); err != nil {
			t.diagf(node, "unable to make subtree for polyglot call: %v", err)
		}
		return
	}
	if child := node.Child(0); child != nil {
		t.buildLinks(m, child, depth)
	}
	if sibling := node.NextSibling(); sibling != nil {
		t.buildLinks(m, sibling, depth)
	}
}

func (t *Tree) isEvalCall(node *sitter.Node) bool {
	callee := t.lang.callee(node)
	return callee != nil && t.lang.isEvalName(t.nodeText(callee))
}

func (t *Tree) isImportCall(node *sitter.Node) bool {
	callee := t.lang.callee(node)
	return callee != nil && t.lang.isImportName(t.nodeText(callee))
}

func (t *Tree) isExportCall(node *sitter.Node) bool {
	callee := t.lang.callee(node)
	return callee != nil && t.lang.isExportName(t.nodeText(callee))
}

// bindingName extracts the statically declared name of an import/export
// call. A call whose name argument is not a quoted literal has no static
// name and yields the empty string.
func (t *Tree) bindingName(node *sitter.Node) string {
	arg := t.lang.bindingArg(node)
	if arg == nil || !isStringLiteral(arg) {
		return ""
	}
	return StripQuotes(t.nodeText(arg))
}

// makeSubtree resolves one evaluate call site into a subtree and records it
// under the call node's key. Every failure is soft: the error becomes a
// diagnostic at the call site and the rest of the build continues.
func (t *Tree) makeSubtree(m map[nodeKey]*Tree, node *sitter.Node, depth int) error {
	if depth >= t.opts.maxDepth {
		return fmt.Errorf("polyglot nesting deeper than %d levels", t.opts.maxDepth)
	}

	arg1, arg2, form := t.lang.callArgs(node)
	if arg1 == nil || arg2 == nil {
		return errors.New("call arguments do not match the expected shape")
	}

	var (
		sub *Tree
		err error
	)
	if t.lang.positional() {
		sub, err = t.subtreeFromPositional(arg1, arg2, form, depth)
	} else {
		sub, err = t.subtreeFromKeywords(arg1, arg2, depth)
	}
	if err != nil {
		return err
	}

	m[keyOf(node)] = sub
	return nil
}

// subtreeFromPositional handles languages whose polyglot calls take
// (language, payload) positionally. When the language distinguishes inline
// evaluation from file evaluation by callee name, form carries that name.
func (t *Tree) subtreeFromPositional(arg1, arg2, form *sitter.Node, depth int) (*Tree, error) {
	fromFile := false
	if form != nil {
		switch name := t.nodeText(form); name {
		case t.lang.inlineCallName():
		case t.lang.fileCallName():
			fromFile = true
		default:
			return nil, fmt.Errorf("unrecognized call form %q", name)
		}
	}

	lang, err := LanguageFromName(StripQuotes(t.nodeText(arg1)))
	if err != nil {
		return nil, err
	}

	if fromFile {
		path := t.resolvePath(StripQuotes(t.nodeText(arg2)))
		return constructFile(path, lang, depth+1, t.opts)
	}
	code := StripQuotes(t.nodeText(arg2))
	return construct([]byte(code), lang, "", t.workingDir, depth+1, t.opts)
}

// keywordArgs accumulates the pieces of a name-tagged polyglot call. The
// role of each argument is only known after reading its name token, and both
// a language and one of code/path must be present.
type keywordArgs struct {
	lang, code, path          string
	hasLang, hasCode, hasPath bool
}

// subtreeFromKeywords handles languages whose polyglot calls use mandatory
// named arguments.
func (t *Tree) subtreeFromKeywords(arg1, arg2 *sitter.Node, depth int) (*Tree, error) {
	var kw keywordArgs
	if err := t.scanKeywordArg(arg1, &kw); err != nil {
		return nil, err
	}
	if err := t.scanKeywordArg(arg2, &kw); err != nil {
		return nil, err
	}

	if !kw.hasLang {
		return nil, errors.New("no language argument provided")
	}
	lang, err := LanguageFromName(kw.lang)
	if err != nil {
		return nil, err
	}

	switch {
	case kw.hasCode:
		return construct([]byte(kw.code), lang, "", t.workingDir, depth+1, t.opts)
	case kw.hasPath:
		return constructFile(t.resolvePath(kw.path), lang, depth+1, t.opts)
	}
	return nil, errors.New("no string or path argument provided")
}

// scanKeywordArg classifies one `name=value` argument. The value node sits
// two siblings after the name token, past the "=".
func (t *Tree) scanKeywordArg(arg *sitter.Node, kw *keywordArgs) error {
	value := arg.NextSibling()
	if value != nil {
		value = value.NextSibling()
	}
	if value == nil {
		return fmt.Errorf("argument %q has no value", t.nodeText(arg))
	}
	v := StripQuotes(t.nodeText(value))

	switch name := t.nodeText(arg); name {
	case t.lang.pathKeyword():
		kw.path, kw.hasPath = v, true
	case t.lang.langKeyword():
		kw.lang, kw.hasLang = v, true
	case t.lang.codeKeyword():
		kw.code, kw.hasCode = v, true
	default:
		return fmt.Errorf("unrecognized polyglot call argument %q", name)
	}
	return nil
}

// resolvePath resolves a file payload relative to the working directory of
// the tree containing the call.
func (t *Tree) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(t.workingDir, path)
}

func (t *Tree) diagf(node *sitter.Node, format string, args ...any) {
	p := node.StartPoint()
	t.diags = append(t.diags, Diagnostic{
		Path:    t.path,
		Pos:     Position{Row: p.Row, Column: p.Column},
		Message: fmt.Sprintf(format, args...),
	})
}
