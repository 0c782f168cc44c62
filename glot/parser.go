package glot

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// parser wraps a tree-sitter parser bound to one language grammar.
type parser struct {
	parser *sitter.Parser
	lang   Language
}

// newParser creates a parser for the given language.
func newParser(lang Language) *parser {
	p := sitter.NewParser()
	p.SetLanguage(lang.grammar())
	return &parser{
		parser: p,
		lang:   lang,
	}
}

// parse parses source code and returns the syntax tree.
func (p *parser) parse(source []byte) (*sitter.Tree, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.lang, err)
	}
	return tree, nil
}
