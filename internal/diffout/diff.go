// Package diffout renders an edit batch as a unified diff for dry runs.
// Hunks are built directly from the edit spans, so no diff algorithm runs:
// the engine already knows exactly which bytes change.
package diffout

import (
	"bytes"
	"cmp"
	"slices"
	"sort"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/Samk13/i18n-invenio-formatter/internal/rewrite"
)

// Render produces a unified diff of applying edits to src. Returns nil when
// there is nothing to show.
func Render(path string, src []byte, edits []rewrite.Edit) ([]byte, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b rewrite.Edit) int {
		return cmp.Compare(a.Start, b.Start)
	})

	lines := lineIndex(src)
	groups := groupByLines(sorted, lines)

	fd := &diff.FileDiff{
		OrigName: "a/" + path,
		NewName:  "b/" + path,
	}

	delta := 0
	for _, g := range groups {
		segStart := lines.start(g.firstLine)
		segEnd := lines.end(g.lastLine, len(src))
		orig := src[segStart:segEnd]

		shifted := make([]rewrite.Edit, 0, len(g.edits))
		for _, e := range g.edits {
			shifted = append(shifted, rewrite.Edit{
				Start: e.Start - segStart,
				End:   e.End - segStart,
				Text:  e.Text,
			})
		}
		updated, err := rewrite.ApplyEdits(orig, shifted)
		if err != nil {
			return nil, err
		}

		origLines := splitLines(orig)
		newLines := splitLines(updated)

		var body bytes.Buffer
		for _, l := range origLines {
			body.WriteString("-" + l + "\n")
		}
		for _, l := range newLines {
			body.WriteString("+" + l + "\n")
		}

		fd.Hunks = append(fd.Hunks, &diff.Hunk{
			OrigStartLine: int32(g.firstLine + 1),
			OrigLines:     int32(len(origLines)),
			NewStartLine:  int32(g.firstLine + 1 + delta),
			NewLines:      int32(len(newLines)),
			Body:          body.Bytes(),
		})
		delta += len(newLines) - len(origLines)
	}

	return diff.PrintFileDiff(fd)
}

type editGroup struct {
	firstLine int // zero-based
	lastLine  int
	edits     []rewrite.Edit
}

// groupByLines expands each edit to whole-line boundaries and merges edits
// whose line ranges touch, so no two hunks overlap.
func groupByLines(edits []rewrite.Edit, lines lineStarts) []editGroup {
	var groups []editGroup
	for _, e := range edits {
		lo := lines.lineOf(e.Start)
		hiOff := e.End - 1
		if hiOff < e.Start {
			hiOff = e.Start
		}
		hi := lines.lineOf(hiOff)

		if n := len(groups); n > 0 && lo <= groups[n-1].lastLine {
			g := &groups[n-1]
			if hi > g.lastLine {
				g.lastLine = hi
			}
			g.edits = append(g.edits, e)
			continue
		}
		groups = append(groups, editGroup{firstLine: lo, lastLine: hi, edits: []rewrite.Edit{e}})
	}
	return groups
}

type lineStarts []int

func lineIndex(src []byte) lineStarts {
	starts := lineStarts{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (ls lineStarts) lineOf(off int) int {
	return sort.Search(len(ls), func(i int) bool { return ls[i] > off }) - 1
}

func (ls lineStarts) start(line int) int {
	return ls[line]
}

// end returns the offset one past line's terminator (or the buffer end).
func (ls lineStarts) end(line, size int) int {
	if line+1 < len(ls) {
		return ls[line+1]
	}
	return size
}

func splitLines(b []byte) []string {
	s := string(b)
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
