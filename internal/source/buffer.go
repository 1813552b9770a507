package source

// Buffer holds one file's text together with an index of line-start offsets,
// so tree node positions (row, column) can be mapped to absolute offsets
// against the original bytes. A Buffer is immutable once built.
type Buffer struct {
	src        []byte
	lineStarts []int
}

func NewBuffer(src []byte) *Buffer {
	lineStarts := []int{0}
	for i, b := range src {
		if b == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	return &Buffer{src: src, lineStarts: lineStarts}
}

func (b *Buffer) Bytes() []byte {
	return b.src
}

func (b *Buffer) Len() int {
	return len(b.src)
}

func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// Offset converts a zero-based (row, column) position into an absolute byte
// offset. Columns are byte counts within the line, matching tree-sitter's
// convention. Every offset used in one file's edit batch must come from the
// same Buffer.
func (b *Buffer) Offset(row, col int) int {
	if row < 0 {
		return 0
	}
	if row >= len(b.lineStarts) {
		return len(b.src)
	}
	off := b.lineStarts[row] + col
	if off > len(b.src) {
		off = len(b.src)
	}
	return off
}

// Slice returns the text of the half-open span [start, end).
func (b *Buffer) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(b.src) {
		end = len(b.src)
	}
	if start >= end {
		return ""
	}
	return string(b.src[start:end])
}
