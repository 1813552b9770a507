package pyast

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// ErrSyntax reports that the source could not be parsed cleanly. Tree-sitter
// recovers from syntax errors by inserting ERROR nodes; a tree containing any
// is not trusted for rewriting.
var ErrSyntax = errors.New("python source contains syntax errors")

// Parser wraps a tree-sitter parser configured for Python. It is not safe
// for concurrent use; each goroutine needs its own Parser.
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
}

func NewParser() (*Parser, error) {
	lang := sitter.NewLanguage(tree_sitter_python.Language())
	parser := sitter.NewParser()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to set language for parser: %w", err)
	}
	return &Parser{
		parser:   parser,
		language: lang,
	}, nil
}

func (p *Parser) Language() *sitter.Language {
	return p.language
}

// Parse builds a syntax tree for src. The caller owns the returned tree and
// must Close it.
func (p *Parser) Parse(src []byte) (*sitter.Tree, error) {
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse Python source: tree-sitter returned nil")
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, ErrSyntax
	}
	return tree, nil
}
