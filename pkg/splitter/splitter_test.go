package splitter

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short", 100, 10)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Errorf("expected single chunk, got %v", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("a", 250)
	chunks := SplitText(text, 100, 20)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d exceeds size: %d", i, len(c))
		}
	}
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "three pages", text: "page one\fpage two\fpage three", want: 3},
		{name: "blank pages dropped", text: "page one\f  \f\fpage two", want: 2},
		{name: "no separator", text: "just one listing", want: 1},
		{name: "empty input", text: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitPages(tt.text)
			if len(got) != tt.want {
				t.Errorf("SplitPages() = %d pages, want %d", len(got), tt.want)
			}
		})
	}
}
