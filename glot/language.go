package glot

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
)

// Language identifies one of the supported guest/host languages.
// The set is closed: every language the library claims to support has a
// grammar compiled into the binary.
type Language int

const (
	Python Language = iota
	JavaScript
	Java
	C
)

// String returns the canonical language name.
func (l Language) String() string {
	switch l {
	case Python:
		return "python"
	case JavaScript:
		return "javascript"
	case Java:
		return "java"
	case C:
		return "c"
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// LanguageFromName resolves a language name as it appears in polyglot call
// arguments (e.g. "js", "python") to a Language.
func LanguageFromName(name string) (Language, error) {
	switch name {
	case "python":
		return Python, nil
	case "js", "javascript":
		return JavaScript, nil
	case "java":
		return Java, nil
	case "c":
		return C, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// LanguageForFile guesses the language of a file from its extension.
func LanguageForFile(path string) (Language, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return Python, nil
	case ".js", ".mjs", ".cjs":
		return JavaScript, nil
	case ".java":
		return Java, nil
	case ".c", ".h":
		return C, nil
	}
	return 0, fmt.Errorf("%w: no language for file %q", ErrUnknownLanguage, path)
}

// extensions returns the file extensions scanned for this language.
func (l Language) extensions() []string {
	switch l {
	case Python:
		return []string{".py"}
	case JavaScript:
		return []string{".js", ".mjs", ".cjs"}
	case Java:
		return []string{".java"}
	case C:
		return []string{".c", ".h"}
	}
	return nil
}

// grammar returns the tree-sitter grammar for the language.
// A missing grammar means the binary itself is broken, so this panics
// rather than degrading.
func (l Language) grammar() *sitter.Language {
	switch l {
	case Python:
		return python.GetLanguage()
	case JavaScript:
		return javascript.GetLanguage()
	case Java:
		return java.GetLanguage()
	case C:
		return c.GetLanguage()
	}
	panic(fmt.Sprintf("glot: no grammar for %s", l))
}

// callShape describes how a call expression is laid out in a language's
// parse tree: the call node kind, and where the callee name sits inside it.
type callShape struct {
	callKind    string
	calleeIndex int
	calleeKind  string
}

func (l Language) shape() callShape {
	switch l {
	case Python:
		return callShape{callKind: "call", calleeIndex: 0, calleeKind: "attribute"}
	case JavaScript:
		return callShape{callKind: "call_expression", calleeIndex: 0, calleeKind: "member_expression"}
	case Java:
		return callShape{callKind: "method_invocation", calleeIndex: 2, calleeKind: "identifier"}
	case C:
		return callShape{callKind: "call_expression", calleeIndex: 0, calleeKind: "identifier"}
	}
	return callShape{}
}

// callee returns the callee-name node if the given node structurally matches
// this language's call shape, or nil otherwise.
func (l Language) callee(node *sitter.Node) *sitter.Node {
	s := l.shape()
	child := node.Child(s.calleeIndex)
	if child == nil {
		return nil
	}
	if node.Type() == s.callKind && child.Type() == s.calleeKind {
		return child
	}
	return nil
}

// isEvalName reports whether the callee spelling is this language's
// polyglot-evaluate call.
func (l Language) isEvalName(code string) bool {
	switch l {
	case Python:
		return code == "polyglot.eval"
	case JavaScript:
		return code == "Polyglot.eval" || code == "Polyglot.evalFile"
	case Java:
		return code == "eval"
	case C:
		return code == "polyglot_eval" || code == "polyglot_eval_file"
	}
	return false
}

// isImportName reports whether the callee spelling is this language's
// polyglot-import call.
func (l Language) isImportName(code string) bool {
	switch l {
	case Python:
		return code == "polyglot.import_value"
	case JavaScript:
		return code == "Polyglot.import"
	case Java:
		return code == "getMember"
	case C:
		return code == "polyglot_import"
	}
	return false
}

// isExportName reports whether the callee spelling is this language's
// polyglot-export call.
func (l Language) isExportName(code string) bool {
	switch l {
	case Python:
		return code == "polyglot.export_value"
	case JavaScript:
		return code == "Polyglot.export"
	case Java:
		return code == "putMember"
	case C:
		return code == "polyglot_export"
	}
	return false
}

// positional reports whether the language passes polyglot call arguments
// positionally. Python is the one keyword-argument language.
func (l Language) positional() bool {
	return l != Python
}

// Keyword-argument names for languages where positional() is false.
func (l Language) langKeyword() string {
	if l == Python {
		return "language"
	}
	return ""
}

func (l Language) codeKeyword() string {
	if l == Python {
		return "string"
	}
	return ""
}

func (l Language) pathKeyword() string {
	if l == Python {
		return "path"
	}
	return ""
}

// Callee spellings distinguishing the inline form from the file form, for
// languages that expose two distinct evaluate calls.
func (l Language) inlineCallName() string {
	switch l {
	case JavaScript:
		return "eval"
	case C:
		return "polyglot_eval"
	}
	return ""
}

func (l Language) fileCallName() string {
	switch l {
	case JavaScript:
		return "evalFile"
	case C:
		return "polyglot_eval_file"
	}
	return ""
}

// callArgs extracts the two argument nodes of a polyglot call, plus the
// call-form node for languages that distinguish inline from file evaluation.
// Any structural mismatch yields nils; callers treat that as "not a call of
// this kind".
func (l Language) callArgs(node *sitter.Node) (arg1, arg2, form *sitter.Node) {
	switch l {
	case Python:
		// polyglot.eval(language=..., string=...): the keyword-argument
		// name identifiers inside the argument list.
		args := node.Child(1)
		if args == nil {
			return nil, nil, nil
		}
		kw1, kw2 := args.Child(1), args.Child(3)
		if kw1 == nil || kw2 == nil {
			return nil, nil, nil
		}
		return kw1.Child(0), kw2.Child(0), nil
	case JavaScript:
		// Polyglot.eval(lang, code) / Polyglot.evalFile(lang, path): the
		// member-expression property distinguishes the two forms.
		callee := node.Child(0)
		args := node.Child(1)
		if callee == nil || args == nil {
			return nil, nil, nil
		}
		return args.Child(1), args.Child(3), callee.Child(2)
	case Java:
		// context.eval(lang, code): arguments live after the method name.
		args := node.Child(3)
		if args == nil {
			return nil, nil, nil
		}
		return args.Child(1), args.Child(3), nil
	case C:
		// polyglot_eval(lang, code) / polyglot_eval_file(lang, path): the
		// callee identifier itself carries the form.
		args := node.Child(1)
		if args == nil {
			return nil, nil, nil
		}
		return args.Child(1), args.Child(3), node.Child(0)
	}
	return nil, nil, nil
}

// bindingArg returns the argument node holding the externally visible name
// of an import/export call, or nil if the shape does not match.
func (l Language) bindingArg(node *sitter.Node) *sitter.Node {
	argIndex := 1
	if l == Java {
		// method_invocation: object, ".", name, argument_list
		argIndex = 3
	}
	args := node.Child(argIndex)
	if args == nil {
		return nil
	}
	return args.Child(1)
}
