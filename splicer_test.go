package notekit

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// testDoc is a minimal well-formed notes document with one existing section.
const testDoc = `<!DOCTYPE html>
<html>
<body>
    <nav class="toc">
        <h2>Contents</h2>
        <ul>
            <li><a href="#docker">Docker</a></li>
        </ul>
    </nav>
    <main id="content">
            <section id="docker" class="section">
                <h2>1. Docker</h2>
                <p>Existing content.</p>
            </section>
        </main>
</body>
</html>`

func fixedSplicer() *Splicer {
	return &Splicer{Now: func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)
	}}
}

func TestSectionExists(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		anchorID string
		want     bool
	}{
		{name: "existing section", doc: testDoc, anchorID: "docker", want: true},
		{name: "missing section", doc: testDoc, anchorID: "kubernetes", want: false},
		{name: "empty anchor", doc: testDoc, anchorID: "", want: false},
		{name: "empty document", doc: "", anchorID: "docker", want: false},
		{name: "id substring does not match", doc: testDoc, anchorID: "dock", want: false},
	}

	sp := NewSplicer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sp.SectionExists(tt.doc, tt.anchorID); got != tt.want {
				t.Errorf("SectionExists(%q) = %v, want %v", tt.anchorID, got, tt.want)
			}
		})
	}
}

func TestAppendToSection(t *testing.T) {
	sp := fixedSplicer()

	got, err := sp.AppendToSection(testDoc, "docker", "<p>New fragment.</p>")
	if err != nil {
		t.Fatalf("AppendToSection() error = %v", err)
	}
	if !strings.Contains(got, "<!-- Added on 2026-03-14 09:26 -->") {
		t.Error("missing timestamp comment")
	}
	if !strings.Contains(got, "<p>New fragment.</p>") {
		t.Error("missing inserted fragment")
	}
	// The fragment lands inside the section, before its closing marker.
	closeIdx := strings.Index(got, "</section>")
	fragIdx := strings.Index(got, "<p>New fragment.</p>")
	if fragIdx > closeIdx {
		t.Error("fragment inserted outside the section")
	}
	// Everything before the insertion point is untouched.
	if !strings.Contains(got, "<p>Existing content.</p>") {
		t.Error("existing content lost")
	}
}

func TestAppendToSectionErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		anchorID string
		wantErr  error
	}{
		{name: "section missing", doc: testDoc, anchorID: "kubernetes", wantErr: ErrSectionNotFound},
		{name: "empty anchor", doc: testDoc, anchorID: "", wantErr: ErrEmptyAnchor},
		{
			name:     "no closing marker",
			doc:      `<section id="docker" class="section"><p>truncated`,
			anchorID: "docker",
			wantErr:  ErrMalformedDocument,
		},
	}

	sp := fixedSplicer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sp.AppendToSection(tt.doc, tt.anchorID, "<p>x</p>")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AppendToSection() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.doc {
				t.Error("document modified on error")
			}
		})
	}
}

func TestCreateSection(t *testing.T) {
	sp := fixedSplicer()

	got, err := sp.CreateSection(testDoc, "linux", "Linux", "<p>First note.</p>")
	if err != nil {
		t.Fatalf("CreateSection() error = %v", err)
	}

	if !sp.SectionExists(got, "linux") {
		t.Error("new section not present after CreateSection")
	}
	if !strings.Contains(got, `<li><a href="#linux">Linux</a></li>`) {
		t.Error("table of contents entry missing")
	}
	if !strings.Contains(got, "<h2>2. Linux</h2>") {
		t.Error("section ordinal should be one past the existing count")
	}
	// New section sits before </main> and the ToC entry before </ul>.
	if strings.Index(got, `<section id="linux"`) > strings.Index(got, "</main>") {
		t.Error("section inserted after </main>")
	}
	if strings.Index(got, `href="#linux"`) > strings.Index(got, "</ul>") {
		t.Error("ToC entry inserted after </ul>")
	}
	// The existing section and its ToC entry survive.
	if !sp.SectionExists(got, "docker") || !strings.Contains(got, `href="#docker"`) {
		t.Error("existing section damaged")
	}
}

func TestCreateSectionOrdinals(t *testing.T) {
	sp := fixedSplicer()

	first, err := sp.CreateSection(testDoc, "linux", "Linux", "<p>a</p>")
	if err != nil {
		t.Fatalf("first CreateSection() error = %v", err)
	}
	second, err := sp.CreateSection(first, "terraform", "Terraform", "<p>b</p>")
	if err != nil {
		t.Fatalf("second CreateSection() error = %v", err)
	}
	if !strings.Contains(second, "<h2>2. Linux</h2>") {
		t.Error("first created section should be number 2")
	}
	if !strings.Contains(second, "<h2>3. Terraform</h2>") {
		t.Error("second created section should be number 3")
	}
}

func TestCreateSectionOnEmptyShell(t *testing.T) {
	// A freshly rendered notes document has no sections; the first one
	// created gets ordinal 1.
	shell, err := NewNotebook(t.TempDir()).EnsureNotesFile()
	if err != nil {
		t.Fatal(err)
	}

	sp := fixedSplicer()
	got, err := sp.CreateSection(shell, "docker", "Docker", "<p>First note.</p>")
	if err != nil {
		t.Fatalf("CreateSection() error = %v", err)
	}
	if !strings.Contains(got, "<h2>1. Docker</h2>") {
		t.Errorf("first section heading missing or misnumbered:\n%s", got)
	}
	if !strings.Contains(got, `<a href="#docker">Docker</a>`) {
		t.Error("table of contents entry missing")
	}
}

func TestCreateSectionErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{name: "no toc", doc: "<main id=\"content\"></main>", wantErr: ErrMalformedDocument},
		{name: "no main close", doc: "<nav><ul></ul>\n</nav>", wantErr: ErrMalformedDocument},
		{name: "empty document", doc: "", wantErr: ErrMalformedDocument},
	}

	sp := fixedSplicer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sp.CreateSection(tt.doc, "linux", "Linux", "<p>x</p>")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateSection() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.doc {
				t.Error("document modified on error")
			}
		})
	}

	t.Run("empty anchor", func(t *testing.T) {
		_, err := sp.CreateSection(testDoc, "", "Linux", "<p>x</p>")
		if !errors.Is(err, ErrEmptyAnchor) {
			t.Fatalf("CreateSection() error = %v, want %v", err, ErrEmptyAnchor)
		}
	})
}

func TestInsertAtMarker(t *testing.T) {
	doc := "<main id=\"content\">\n        <!-- notekit:content -->\n        </main>"

	sp := fixedSplicer()
	got, err := sp.InsertAtMarker(doc, "<section>one</section>")
	if err != nil {
		t.Fatalf("InsertAtMarker() error = %v", err)
	}
	if strings.Index(got, "<section>one</section>") > strings.Index(got, ContentMarker) {
		t.Error("fragment inserted after the marker")
	}

	// The marker survives, so a second insert lands after the first.
	got, err = sp.InsertAtMarker(got, "<section>two</section>")
	if err != nil {
		t.Fatalf("second InsertAtMarker() error = %v", err)
	}
	if strings.Index(got, "one") > strings.Index(got, "two") {
		t.Error("inserts are not append-ordered")
	}
	if strings.Count(got, ContentMarker) != 1 {
		t.Error("marker duplicated or lost")
	}
}

func TestInsertAtMarkerFallback(t *testing.T) {
	sp := fixedSplicer()

	got, err := sp.InsertAtMarker("<main></main>", "<p>x</p>")
	if err != nil {
		t.Fatalf("InsertAtMarker() fallback error = %v", err)
	}
	if strings.Index(got, "<p>x</p>") > strings.Index(got, "</main>") {
		t.Error("fragment inserted after </main>")
	}

	doc := "<div>no anchors here</div>"
	got, err = sp.InsertAtMarker(doc, "<p>x</p>")
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("InsertAtMarker() error = %v, want %v", err, ErrMalformedDocument)
	}
	if got != doc {
		t.Error("document modified on error")
	}
}

func TestNormalizeAnchor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already normalized", input: "docker", want: "docker"},
		{name: "spaces to hyphens", input: "GitHub Actions", want: "github-actions"},
		{name: "punctuation collapsed", input: "CI/CD!", want: "ci-cd"},
		{name: "accents transliterated", input: "Réseau", want: "reseau"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAnchor(tt.input); got != tt.want {
				t.Errorf("NormalizeAnchor(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
