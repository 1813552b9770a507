package rewrite

import (
	"cmp"
	"fmt"
	"slices"
)

// ApplyEdits splices a batch of non-overlapping edits onto src and returns
// the new text. Edits are applied in descending start order so every
// not-yet-applied edit's offsets stay valid against the shrinking-or-growing
// buffer without recomputation. Overlapping edits are a contract violation
// and reported as an error instead of corrupting the output.
func ApplyEdits(src []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return src, nil
	}

	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b Edit) int {
		return cmp.Compare(b.Start, a.Start)
	})

	for i, e := range sorted {
		if e.Start < 0 || e.End > len(src) || e.Start > e.End {
			return nil, fmt.Errorf("edit span [%d, %d) out of range for %d bytes", e.Start, e.End, len(src))
		}
		if i > 0 && e.End > sorted[i-1].Start {
			return nil, fmt.Errorf("overlapping edits at offset %d", e.Start)
		}
	}

	out := src
	for _, e := range sorted {
		next := make([]byte, 0, len(out)-(e.End-e.Start)+len(e.Text))
		next = append(next, out[:e.Start]...)
		next = append(next, e.Text...)
		next = append(next, out[e.End:]...)
		out = next
	}
	return out, nil
}
