package notekit

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-notekit/internal/fileutil"
	"github.com/ledongthuc/pdf"
)

// Extractor turns a file on disk into plain text. The returned kind tells
// the caller how the content was obtained.
type Extractor interface {
	Extract(ctx context.Context, path string) (content string, kind SourceKind, err error)
}

// FileExtractor dispatches on file extension: PDFs go through the PDF text
// extractor, images through the vision describer, everything else is read
// as text.
type FileExtractor struct {
	Vision   VisionDescriber
	MaxPages int
	log      Logger
}

// NewFileExtractor creates an extractor. Vision may be nil, in which case
// image files are rejected. maxPages limits PDF extraction; 0 means all pages.
func NewFileExtractor(vision VisionDescriber, maxPages int, log Logger) *FileExtractor {
	if log == nil {
		log = nopLogger{}
	}
	return &FileExtractor{Vision: vision, MaxPages: maxPages, log: log}
}

func (e *FileExtractor) Extract(ctx context.Context, path string) (string, SourceKind, error) {
	if !fileutil.FileExists(path) {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		content, err := e.extractPDF(ctx, path)
		return content, SourceFile, err
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		content, err := e.extractImage(ctx, path)
		return content, SourceImage, err
	default:
		content, err := fileutil.ReadText(path)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		return content, SourceFile, nil
	}
}

func (e *FileExtractor) extractPDF(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrExtraction, path, err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if plain, err := r.GetPlainText(); err == nil {
		if _, err := buf.ReadFrom(plain); err == nil && len(strings.TrimSpace(buf.String())) >= 100 {
			return buf.String(), nil
		}
	}

	// Fall back to per-page row extraction, which copes better with
	// unusual layouts.
	e.log.Debug("plain text extraction thin, retrying per page", "path", path)
	buf.Reset()
	pages := r.NumPage()
	if e.MaxPages > 0 && pages > e.MaxPages {
		pages = e.MaxPages
	}
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			e.log.Warn("skipping unreadable page", "path", path, "page", i, "error", err)
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				buf.WriteString(word.S)
				buf.WriteByte(' ')
			}
			buf.WriteByte('\n')
		}
	}
	content := strings.TrimSpace(buf.String())
	if content == "" {
		return "", fmt.Errorf("%w: no extractable text in %s", ErrExtraction, path)
	}
	return content, nil
}

func (e *FileExtractor) extractImage(ctx context.Context, path string) (string, error) {
	if e.Vision == nil {
		return "", fmt.Errorf("%w: no vision model configured for %s", ErrUnsupportedFile, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrExtraction, path, err)
	}
	mime := fileutil.ImageMIME(path)
	if mime == "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	content, err := e.Vision.DescribeImage(ctx, data, mime)
	if err != nil {
		return "", err
	}
	return content, nil
}
