package rewrite

import (
	"fmt"
	"strings"

	"github.com/Samk13/i18n-invenio-formatter/internal/source"
)

// buildEdits turns detected call sites into a batch of edits plus the
// diagnostics for the non-fixable ones. Edits never overlap: nested matches
// were already resolved during matching, with the outer call winning.
func buildEdits(buf *source.Buffer, sites []CallSite) ([]Edit, []Diagnostic) {
	var edits []Edit
	var diags []Diagnostic

	for _, site := range sites {
		switch site.Kind {
		case PatternComposed:
			diags = append(diags, Diagnostic{
				Line:    site.Line,
				Message: fmt.Sprintf("f-string found in %s() call", site.Alias),
			})
		case PatternFormatCall:
			if site.Positional {
				diags = append(diags, Diagnostic{
					Line:    site.Line,
					Message: fmt.Sprintf("positional argument in %s(...).format() call", site.Alias),
				})
				continue
			}
			edits = append(edits, Edit{
				Start: site.Span.Start,
				End:   site.Span.End,
				Text:  synthesizeFormatCall(buf, site),
			})
		case PatternLiteral:
			edits = append(edits, Edit{
				Start: site.Span.Start,
				End:   site.Span.End,
				Text:  substituteSpan(buf, site.Span, site.Contents),
			})
		}
	}

	return edits, diags
}

// synthesizeFormatCall produces the replacement for a whole .format chain:
// the inner translation call with its literal rewritten to percent style,
// followed by a dictionary literal built from the keyword arguments in
// declaration order. Value expressions are copied verbatim from the source.
func synthesizeFormatCall(buf *source.Buffer, site CallSite) string {
	inner := substituteSpan(buf, site.Inner, site.Contents)
	if len(site.Kwargs) == 0 {
		return inner
	}

	pairs := make([]string, 0, len(site.Kwargs))
	for _, kw := range site.Kwargs {
		pairs = append(pairs, fmt.Sprintf("%q: %s", kw.Name, kw.Value))
	}
	return inner + " % {" + strings.Join(pairs, ", ") + "}"
}

// substituteSpan returns the source text of span with every {name}
// placeholder inside the given content spans rewritten to %(name)s. The
// quote and prefix characters around each content span are left untouched.
func substituteSpan(buf *source.Buffer, span Span, contents []Span) string {
	text := buf.Slice(span.Start, span.End)
	// Splice in reverse so earlier spans keep their offsets.
	for i := len(contents) - 1; i >= 0; i-- {
		c := contents[i]
		rel := Span{Start: c.Start - span.Start, End: c.End - span.Start}
		if rel.Start < 0 || rel.End > len(text) || rel.Start > rel.End {
			continue
		}
		replaced := placeholderPattern.ReplaceAllString(text[rel.Start:rel.End], "%($1)s")
		text = text[:rel.Start] + replaced + text[rel.End:]
	}
	return text
}
