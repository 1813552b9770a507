package rewrite

// PatternKind tags a detected call site with the match pattern it satisfied.
type PatternKind int

const (
	// PatternLiteral is a translation call whose first argument is a plain
	// string literal containing {name} placeholders.
	PatternLiteral PatternKind = iota
	// PatternFormatCall is a .format(...) call chained onto a translation
	// call.
	PatternFormatCall
	// PatternComposed is a translation call whose first argument is an
	// f-string. It can never be rewritten safely.
	PatternComposed
)

func (k PatternKind) String() string {
	switch k {
	case PatternLiteral:
		return "literal"
	case PatternFormatCall:
		return "format-call"
	case PatternComposed:
		return "composed"
	default:
		return "unknown"
	}
}

// Span is a half-open [Start, End) byte range in the original buffer.
type Span struct {
	Start int
	End   int
}

// KeywordArg is one name=value argument to a .format call, with the value
// expression's source text copied verbatim.
type KeywordArg struct {
	Name  string
	Value string
}

// CallSite is one detected match. All offsets are absolute positions in the
// original buffer the site was matched against.
type CallSite struct {
	Kind  PatternKind
	Span  Span
	Line  int // 1-based, for diagnostics and logging
	Alias string

	// Contents lists the spans of literal text (between the quote
	// characters) that contain placeholders and need substitution.
	Contents []Span

	// Inner is the translation call underneath a .format chain; only set
	// for PatternFormatCall.
	Inner Span
	// Kwargs are the .format keyword arguments in declaration order; only
	// set for PatternFormatCall.
	Kwargs []KeywordArg
	// Positional marks a .format call carrying positional (or splat)
	// arguments, which makes the site non-fixable.
	Positional bool
}

// Edit is a planned replacement of [Start, End) with Text, addressed against
// the original buffer regardless of how many edits exist for the file.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Diagnostic is a non-fixable finding at a call site. The driver attaches
// the file path when rendering.
type Diagnostic struct {
	Line    int
	Message string
}
