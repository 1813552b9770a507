package source

import (
	"testing"
)

func TestBufferOffset(t *testing.T) {
	src := "first\nsecond line\n\nlast"
	buf := NewBuffer([]byte(src))

	tests := []struct {
		name     string
		row, col int
		expected int
	}{
		{"start of file", 0, 0, 0},
		{"within first line", 0, 3, 3},
		{"start of second line", 1, 0, 6},
		{"within second line", 1, 7, 13},
		{"empty line", 2, 0, 18},
		{"last line without terminator", 3, 4, 23},
		{"row past the end clamps", 99, 0, len(src)},
		{"column past the end clamps", 3, 99, len(src)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buf.Offset(tt.row, tt.col)
			if got != tt.expected {
				t.Errorf("Offset(%d, %d): expected %d, got %d", tt.row, tt.col, tt.expected, got)
			}
		})
	}
}

func TestBufferOffsetMatchesIndex(t *testing.T) {
	// Every (row, col) of a character must map back to its absolute index.
	src := "ab\ncd\nef"
	buf := NewBuffer([]byte(src))

	row, col := 0, 0
	for i, b := range []byte(src) {
		if got := buf.Offset(row, col); got != i {
			t.Fatalf("Offset(%d, %d): expected %d, got %d", row, col, i, got)
		}
		if b == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
}

func TestBufferSlice(t *testing.T) {
	buf := NewBuffer([]byte("hello world"))

	if got := buf.Slice(0, 5); got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
	if got := buf.Slice(6, 99); got != "world" {
		t.Errorf("expected %q, got %q", "world", got)
	}
	if got := buf.Slice(5, 5); got != "" {
		t.Errorf("expected empty slice, got %q", got)
	}
}

func TestBufferLineCount(t *testing.T) {
	tests := []struct {
		src      string
		expected int
	}{
		{"", 1},
		{"one line", 1},
		{"a\nb", 2},
		{"a\nb\n", 3},
	}

	for _, tt := range tests {
		buf := NewBuffer([]byte(tt.src))
		if got := buf.LineCount(); got != tt.expected {
			t.Errorf("LineCount(%q): expected %d, got %d", tt.src, tt.expected, got)
		}
	}
}
