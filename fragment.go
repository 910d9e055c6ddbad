package notekit

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"strings"
	"time"

	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/alnah/go-notekit/internal/assets"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// FragmentRenderer turns structured notes into HTML fragments ready for
// splicing into a notes document or a topic page. Code examples are rendered
// through goldmark with inline syntax highlighting so the output pages stay
// self-contained.
type FragmentRenderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
	Now  func() time.Time
}

// NewFragmentRenderer creates a renderer backed by the embedded section
// template. It panics if the embedded template is missing or malformed,
// which indicates a broken build.
func NewFragmentRenderer() *FragmentRenderer {
	raw, err := assets.LoadTemplate(assets.TemplateSection)
	if err != nil {
		panic(fmt.Sprintf("notekit: embedded section template: %v", err))
	}
	tmpl, err := template.New(assets.TemplateSection).Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("notekit: parse section template: %v", err))
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"), // inline styles keep pages dependency-free
			),
		),
	)
	return &FragmentRenderer{tmpl: tmpl, md: md, Now: time.Now}
}

// FragmentID derives a short stable identifier from a title and timestamp.
// The same title added at the same minute yields the same ID.
func FragmentID(title string, t time.Time) string {
	sum := sha256.Sum256([]byte(title + t.Format(stampLayout)))
	return hex.EncodeToString(sum[:4])
}

// renderData is the section template's dot.
type renderData struct {
	Wrap          bool
	ID            string
	Title         string
	Stamp         string
	Summary       string
	KeyPoints     []string
	Code          []renderedCode
	Commands      []Command
	Tips          []string
	BestPractices []string
}

type renderedCode struct {
	Description string
	HTML        template.HTML
}

// Render produces an inner fragment (h3 heading, no section wrapper) for
// appending inside an existing topic section.
func (r *FragmentRenderer) Render(note *Note) (string, error) {
	return r.render(note, false)
}

// RenderSection produces a complete <section> block with its own anchor ID,
// suitable for CreateSection or InsertAtMarker.
func (r *FragmentRenderer) RenderSection(note *Note) (string, error) {
	return r.render(note, true)
}

func (r *FragmentRenderer) render(note *Note, wrap bool) (string, error) {
	if note == nil || note.Empty() {
		return "", fmt.Errorf("%w: empty note", ErrFragmentRender)
	}
	now := r.Now()
	data := renderData{
		Wrap:          wrap,
		ID:            FragmentID(note.Title, now),
		Title:         note.Title,
		Stamp:         now.Format(stampLayout),
		Summary:       note.Summary,
		KeyPoints:     note.KeyPoints,
		Commands:      note.Commands,
		Tips:          note.Tips,
		BestPractices: note.BestPractices,
	}
	for _, ex := range note.CodeExamples {
		if strings.TrimSpace(ex.Code) == "" {
			continue
		}
		highlighted, err := r.highlight(ex.Language, ex.Code)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrFragmentRender, err)
		}
		data.Code = append(data.Code, renderedCode{
			Description: ex.Description,
			HTML:        template.HTML(highlighted),
		})
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFragmentRender, err)
	}
	return buf.String(), nil
}

// highlight renders a single fenced code block through goldmark.
func (r *FragmentRenderer) highlight(lang, code string) (string, error) {
	fenced := "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```\n"
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(fenced), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
