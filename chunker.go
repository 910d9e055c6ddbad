package notekit

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the size limit handed to the summarizer per call.
const DefaultChunkSize = 6000

// paragraphBreak matches a blank-line run; two or more consecutive newlines
// collapse to a single split point.
var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// Chunker splits text into size-bounded chunks, preferring paragraph
// boundaries. The zero value is not useful; use NewChunker.
type Chunker struct {
	MaxSize int // chunk size limit in bytes
}

// NewChunker creates a Chunker with the given size limit.
// Defaults to DefaultChunkSize if maxSize <= 0.
func NewChunker(maxSize int) *Chunker {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}
	return &Chunker{MaxSize: maxSize}
}

// Chunk splits content into an ordered sequence of chunks of at most MaxSize
// bytes each. Content at or under the limit is returned as a single chunk,
// unmodified (this includes empty and whitespace-only input). Otherwise the
// content is split on blank-line paragraph boundaries and paragraphs are
// accumulated greedily; a single paragraph larger than the limit is
// force-split into fixed-size slices with no boundary preference.
//
// The function is pure: the same content and MaxSize always yield the same
// chunks, in input order.
func (c *Chunker) Chunk(content string) []string {
	if len(content) <= c.MaxSize {
		return []string{content}
	}

	paragraphs := paragraphBreak.Split(content, -1)

	var chunks []string
	var buf strings.Builder
	for _, para := range paragraphs {
		// Flush when appending this paragraph would exceed the limit.
		if buf.Len() > 0 && buf.Len()+len(paraSeparator)+len(para) > c.MaxSize {
			chunks = append(chunks, strings.TrimSpace(buf.String()))
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteString(paraSeparator)
		}
		buf.WriteString(para)
	}
	if buf.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(buf.String()))
	}

	// Oversized single paragraphs get force-split into MaxSize slices.
	var final []string
	for _, chunk := range chunks {
		if len(chunk) <= c.MaxSize {
			final = append(final, chunk)
			continue
		}
		final = append(final, forceSplit(chunk, c.MaxSize)...)
	}
	return final
}

// paraSeparator rejoins paragraphs accumulated into one chunk.
const paraSeparator = "\n\n"

// forceSplit cuts s into slices of at most size bytes, backing up to the
// nearest rune boundary so multi-byte sequences are never cut in half. For
// ASCII content every slice except the last is exactly size bytes.
func forceSplit(s string, size int) []string {
	var parts []string
	for len(s) > size {
		cut := size
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		if cut == 0 {
			cut = size // degenerate input, give up on boundary safety
		}
		parts = append(parts, s[:cut])
		s = s[cut:]
	}
	if len(s) > 0 {
		parts = append(parts, s)
	}
	return parts
}
