package rewrite

import (
	"regexp"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/Samk13/i18n-invenio-formatter/internal/source"
)

const callQueryText = `(call) @call`

// placeholderPattern detects new-style {name} placeholders. The scan is
// lexical: doubled braces are not treated as escapes, so a literal {{name}}
// is picked up as a placeholder too. This matches the historical behavior
// of the tool and is kept intentionally.
var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// matchCallSites evaluates every call expression in the tree against the
// three match patterns and returns the detected sites in traversal order.
// The traversal is pure: it never edits anything itself.
func matchCallSites(q *sitter.Query, root *sitter.Node, src []byte, buf *source.Buffer, aliases map[string]bool) []CallSite {
	var sites []CallSite

	qc := sitter.NewQueryCursor()
	matches := qc.Matches(q, root, src)

	for {
		m := matches.Next()
		if m == nil {
			break
		}
		for _, c := range m.Captures {
			call := c.Node
			if site := classifyCall(&call, src, buf, aliases); site != nil {
				sites = append(sites, *site)
			}
		}
	}

	return dropNestedSites(sites)
}

// dropNestedSites enforces the outer-call-wins precedence for matches the
// tree walk could not pair up locally, such as a translation call nested in
// a .format keyword value. A site contained in another site's span is
// discarded: the outer rewrite copies the nested expression verbatim, and
// keeping both would produce overlapping edits.
func dropNestedSites(sites []CallSite) []CallSite {
	if len(sites) < 2 {
		return sites
	}
	kept := make([]CallSite, 0, len(sites))
	for i, s := range sites {
		contained := false
		for j, outer := range sites {
			if i == j {
				continue
			}
			if outer.Span.Start <= s.Span.Start && s.Span.End <= outer.Span.End &&
				outer.Span.End-outer.Span.Start > s.Span.End-s.Span.Start {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, s)
		}
	}
	return kept
}

func classifyCall(call *sitter.Node, src []byte, buf *source.Buffer, aliases map[string]bool) *CallSite {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return nil
	}

	switch fn.Kind() {
	case "attribute":
		return classifyFormatChain(call, fn, src, buf, aliases)
	case "identifier":
		alias := fn.Utf8Text(src)
		if !aliases[alias] {
			return nil
		}
		// A translation call that is the receiver of a .format chain is
		// subsumed by the outer match; the outer call wins.
		if isFormatReceiver(call, src) {
			return nil
		}
		return classifyLiteralCall(call, alias, buf)
	}
	return nil
}

// classifyFormatChain matches `alias(...).format(...)` chains.
func classifyFormatChain(call, fn *sitter.Node, src []byte, buf *source.Buffer, aliases map[string]bool) *CallSite {
	attr := fn.ChildByFieldName("attribute")
	obj := fn.ChildByFieldName("object")
	if attr == nil || obj == nil || attr.Utf8Text(src) != "format" || obj.Kind() != "call" {
		return nil
	}
	innerFn := obj.ChildByFieldName("function")
	if innerFn == nil || innerFn.Kind() != "identifier" {
		return nil
	}
	alias := innerFn.Utf8Text(src)
	if !aliases[alias] {
		return nil
	}

	line := int(call.StartPosition().Row) + 1
	lit := firstArgument(obj)
	if lit != nil && isStringLiteral(lit) && isComposedLiteral(lit) {
		return &CallSite{
			Kind:  PatternComposed,
			Span:  nodeSpan(buf, call),
			Line:  line,
			Alias: alias,
		}
	}

	site := &CallSite{
		Kind:  PatternFormatCall,
		Span:  nodeSpan(buf, call),
		Line:  line,
		Alias: alias,
		Inner: nodeSpan(buf, obj),
	}
	if lit != nil && isStringLiteral(lit) {
		site.Contents = placeholderContents(lit, buf)
	}

	args := call.ChildByFieldName("arguments")
	if args != nil {
		for i := uint(0); i < args.ChildCount(); i++ {
			child := args.Child(i)
			if child == nil || !child.IsNamed() {
				continue
			}
			switch child.Kind() {
			case "keyword_argument":
				nameNode := child.ChildByFieldName("name")
				valueNode := child.ChildByFieldName("value")
				if nameNode == nil || valueNode == nil {
					continue
				}
				site.Kwargs = append(site.Kwargs, KeywordArg{
					Name:  nameNode.Utf8Text(src),
					Value: valueNode.Utf8Text(src),
				})
			case "comment":
			default:
				// Positional or splat arguments cannot be mapped to the
				// percent placeholder style.
				site.Positional = true
			}
		}
	}
	return site
}

// classifyLiteralCall matches `alias("... {name} ...")` calls and f-string
// arguments to alias calls.
func classifyLiteralCall(call *sitter.Node, alias string, buf *source.Buffer) *CallSite {
	lit := firstArgument(call)
	if lit == nil || !isStringLiteral(lit) {
		return nil
	}

	line := int(call.StartPosition().Row) + 1
	if isComposedLiteral(lit) {
		return &CallSite{
			Kind:  PatternComposed,
			Span:  nodeSpan(buf, call),
			Line:  line,
			Alias: alias,
		}
	}

	contents := placeholderContents(lit, buf)
	if len(contents) == 0 {
		return nil
	}
	return &CallSite{
		Kind:     PatternLiteral,
		Span:     nodeSpan(buf, lit),
		Line:     line,
		Alias:    alias,
		Contents: contents,
	}
}

// firstArgument returns the first positional argument of a call, or nil.
func firstArgument(call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil || args.Kind() != "argument_list" {
		return nil
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		switch child.Kind() {
		case "comment", "keyword_argument":
			continue
		}
		return child
	}
	return nil
}

func isStringLiteral(n *sitter.Node) bool {
	kind := n.Kind()
	return kind == "string" || kind == "concatenated_string"
}

// isComposedLiteral reports whether the literal embeds interpolated
// sub-expressions (an f-string, or a concatenation containing one).
func isComposedLiteral(n *sitter.Node) bool {
	switch n.Kind() {
	case "string":
		for i := uint(0); i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child != nil && child.Kind() == "interpolation" {
				return true
			}
		}
	case "concatenated_string":
		for i := uint(0); i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child != nil && child.Kind() == "string" && isComposedLiteral(child) {
				return true
			}
		}
	}
	return false
}

// placeholderContents returns the content spans (the text between the quote
// characters) of every string piece that contains at least one placeholder.
func placeholderContents(lit *sitter.Node, buf *source.Buffer) []Span {
	var spans []Span
	switch lit.Kind() {
	case "string":
		if span, ok := contentSpan(lit, buf); ok {
			if placeholderPattern.MatchString(buf.Slice(span.Start, span.End)) {
				spans = append(spans, span)
			}
		}
	case "concatenated_string":
		for i := uint(0); i < lit.ChildCount(); i++ {
			child := lit.Child(i)
			if child != nil && child.Kind() == "string" {
				spans = append(spans, placeholderContents(child, buf)...)
			}
		}
	}
	return spans
}

// contentSpan locates the literal text between the opening quote (including
// any prefix characters) and the closing quote.
func contentSpan(str *sitter.Node, buf *source.Buffer) (Span, bool) {
	var start, end *sitter.Node
	for i := uint(0); i < str.ChildCount(); i++ {
		child := str.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "string_start":
			start = child
		case "string_end":
			end = child
		}
	}
	if start == nil || end == nil {
		return Span{}, false
	}
	return Span{
		Start: nodeSpan(buf, start).End,
		End:   nodeSpan(buf, end).Start,
	}, true
}

func isFormatReceiver(call *sitter.Node, src []byte) bool {
	parent := call.Parent()
	if parent == nil || parent.Kind() != "attribute" {
		return false
	}
	attr := parent.ChildByFieldName("attribute")
	if attr == nil || attr.Utf8Text(src) != "format" {
		return false
	}
	grand := parent.Parent()
	if grand == nil || grand.Kind() != "call" {
		return false
	}
	// The attribute must be the call's function, not just any child: an
	// uninvoked `alias(...).format` passed as an argument is no chain.
	fn := grand.ChildByFieldName("function")
	return fn != nil && fn.StartByte() == parent.StartByte() && fn.EndByte() == parent.EndByte()
}

// nodeSpan maps a node's (row, column) positions to absolute offsets in buf.
func nodeSpan(buf *source.Buffer, n *sitter.Node) Span {
	start := n.StartPosition()
	end := n.EndPosition()
	return Span{
		Start: buf.Offset(int(start.Row), int(start.Column)),
		End:   buf.Offset(int(end.Row), int(end.Column)),
	}
}
