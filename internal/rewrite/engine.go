// Package rewrite finds calls to the invenio_i18n translation functions that
// use new-style {name} placeholder formatting and rewrites them in place to
// the old %(name)s style, leaving every other byte of the file untouched.
package rewrite

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/Samk13/i18n-invenio-formatter/internal/pyast"
	"github.com/Samk13/i18n-invenio-formatter/internal/source"
)

// Result is the outcome of rewriting one file.
type Result struct {
	// Output is the rewritten text; equal to the input when nothing matched.
	Output []byte
	// Changed reports whether at least one edit was applied.
	Changed bool
	// Sites are the detected call sites, fixable or not.
	Sites []CallSite
	// Edits is the applied batch, addressed against the original text.
	Edits []Edit
	// Diagnostics describe the call sites that could not be rewritten.
	Diagnostics []Diagnostic
}

// Engine runs the per-file rewriting pipeline. It performs no I/O and keeps
// no state across files, but it owns a tree-sitter parser and therefore must
// not be shared between goroutines.
type Engine struct {
	parser      *pyast.Parser
	importQuery *sitter.Query
	callQuery   *sitter.Query
}

func NewEngine() (*Engine, error) {
	parser, err := pyast.NewParser()
	if err != nil {
		return nil, err
	}
	// NewQuery returns a concrete *QueryError; keep it out of the error
	// interface until it is known to be non-nil.
	importQuery, qerr := sitter.NewQuery(parser.Language(), importQueryText)
	if qerr != nil {
		return nil, fmt.Errorf("failed to compile import query: %w", qerr)
	}
	callQuery, qerr := sitter.NewQuery(parser.Language(), callQueryText)
	if qerr != nil {
		importQuery.Close()
		return nil, fmt.Errorf("failed to compile call query: %w", qerr)
	}
	return &Engine{
		parser:      parser,
		importQuery: importQuery,
		callQuery:   callQuery,
	}, nil
}

func (e *Engine) Close() {
	e.importQuery.Close()
	e.callQuery.Close()
}

// Rewrite runs parse, alias resolution, call-site matching, replacement
// synthesis and patch application over one file's text. A file that imports
// no recognized translation function comes back unchanged with no further
// work done.
func (e *Engine) Rewrite(src []byte) (Result, error) {
	tree, err := e.parser.Parse(src)
	if err != nil {
		return Result{}, err
	}
	defer tree.Close()

	root := tree.RootNode()
	aliases := collectAliases(e.importQuery, root, src)
	if len(aliases) == 0 {
		return Result{Output: src}, nil
	}

	buf := source.NewBuffer(src)
	sites := matchCallSites(e.callQuery, root, src, buf, aliases)
	edits, diags := buildEdits(buf, sites)

	out, err := ApplyEdits(src, edits)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Output:      out,
		Changed:     len(edits) > 0,
		Sites:       sites,
		Edits:       edits,
		Diagnostics: diags,
	}, nil
}
