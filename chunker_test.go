package notekit

import (
	"strings"
	"testing"
)

func TestChunkSmallContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "whitespace only", content: "   \n\n  "},
		{name: "short text", content: "kubectl get pods"},
		{name: "exactly at limit", content: strings.Repeat("a", DefaultChunkSize)},
	}

	c := NewChunker(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Chunk(tt.content)
			if len(got) != 1 {
				t.Fatalf("Chunk() returned %d chunks, want 1", len(got))
			}
			if got[0] != tt.content {
				t.Errorf("Chunk() modified content at or under the limit")
			}
		})
	}
}

func TestChunkParagraphBoundaries(t *testing.T) {
	c := NewChunker(100)

	para := strings.Repeat("x", 60)
	content := para + "\n\n" + para + "\n\n" + para

	got := c.Chunk(content)
	if len(got) != 3 {
		t.Fatalf("Chunk() returned %d chunks, want 3", len(got))
	}
	for i, chunk := range got {
		if len(chunk) > 100 {
			t.Errorf("chunk %d is %d bytes, exceeds limit 100", i, len(chunk))
		}
		if chunk != para {
			t.Errorf("chunk %d content mangled", i)
		}
	}
}

func TestChunkGreedyAccumulation(t *testing.T) {
	c := NewChunker(100)

	// Two 40-byte paragraphs fit together (40+2+40 = 82), a third does not.
	para := strings.Repeat("y", 40)
	content := strings.Join([]string{para, para, para}, "\n\n")

	got := c.Chunk(content)
	if len(got) != 2 {
		t.Fatalf("Chunk() returned %d chunks, want 2", len(got))
	}
	if want := para + "\n\n" + para; got[0] != want {
		t.Errorf("first chunk = %d bytes, want two paragraphs joined (%d bytes)", len(got[0]), len(want))
	}
	if got[1] != para {
		t.Errorf("second chunk should hold the third paragraph alone")
	}
}

func TestChunkForceSplit(t *testing.T) {
	c := NewChunker(DefaultChunkSize)

	content := strings.Repeat("z", 20000)
	got := c.Chunk(content)

	wantSizes := []int{6000, 6000, 6000, 2000}
	if len(got) != len(wantSizes) {
		t.Fatalf("Chunk() returned %d chunks, want %d", len(got), len(wantSizes))
	}
	for i, want := range wantSizes {
		if len(got[i]) != want {
			t.Errorf("chunk %d is %d bytes, want %d", i, len(got[i]), want)
		}
	}
	if strings.Join(got, "") != content {
		t.Error("force-split chunks do not reassemble to the input")
	}
}

func TestChunkForceSplitRuneBoundaries(t *testing.T) {
	c := NewChunker(10)

	// Three-byte runes that do not divide 10 evenly force a boundary back-off.
	content := strings.Repeat("日", 20)
	got := c.Chunk(content)

	var joined strings.Builder
	for i, chunk := range got {
		if len(chunk) > 10 {
			t.Errorf("chunk %d is %d bytes, exceeds limit", i, len(chunk))
		}
		if !strings.HasPrefix(content[joined.Len():], chunk) {
			t.Fatalf("chunk %d broke a rune in half", i)
		}
		joined.WriteString(chunk)
	}
	if joined.String() != content {
		t.Error("chunks do not reassemble to the input")
	}
}

func TestChunkDeterministic(t *testing.T) {
	c := NewChunker(50)
	content := strings.Repeat("determinism matters\n\n", 30)

	first := c.Chunk(content)
	second := c.Chunk(content)
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestNewChunkerDefaults(t *testing.T) {
	tests := []struct {
		name    string
		maxSize int
		want    int
	}{
		{name: "zero uses default", maxSize: 0, want: DefaultChunkSize},
		{name: "negative uses default", maxSize: -5, want: DefaultChunkSize},
		{name: "positive kept", maxSize: 1234, want: 1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewChunker(tt.maxSize).MaxSize; got != tt.want {
				t.Errorf("NewChunker(%d).MaxSize = %d, want %d", tt.maxSize, got, tt.want)
			}
		})
	}
}
