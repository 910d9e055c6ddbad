package notekit

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Document markers the splicer depends on. These are conventions of the
// generated HTML, not a parsed structure: the splicer performs targeted
// string edits and leaves everything else byte-for-byte intact.
const (
	sectionClose  = "</section>"
	mainClose     = "</main>"
	ContentMarker = "<!-- notekit:content -->"
)

// stampLayout is the timestamp format used in splice comments and section
// metadata.
const stampLayout = "2006-01-02 15:04"

// sectionCounter matches the section blocks this package generates, used to
// compute the ordinal of a new section.
var sectionCounter = regexp.MustCompile(`<section id="[^"]*" class="section">`)

// tocClose matches the end of the table-of-contents listing; new entries are
// inserted directly before it.
var tocClose = regexp.MustCompile(`</ul>\s*</nav>`)

// NormalizeAnchor converts caller-supplied topic input into an opaque anchor
// token: lowercased, spaces and punctuation collapsed to single hyphens.
func NormalizeAnchor(s string) string {
	return slug.Make(s)
}

// Splicer inserts rendered fragments into an HTML document at stable anchor
// points.
//
// Precondition: section markup is non-nested and each opening tag sits on a
// single line. Behavior on nested or malformed markers is undefined; the
// splicer does not attempt to correct such documents.
type Splicer struct {
	// Now supplies timestamps for splice comments. Defaults to time.Now;
	// tests inject a fixed clock.
	Now func() time.Time
}

// NewSplicer creates a Splicer using the wall clock.
func NewSplicer() *Splicer {
	return &Splicer{Now: time.Now}
}

// sectionOpenPattern returns a pattern matching the opening tag carrying the
// given anchor id.
func sectionOpenPattern(anchorID string) *regexp.Regexp {
	return regexp.MustCompile(`<section\b[^>]*\bid="` + regexp.QuoteMeta(anchorID) + `"[^>]*>`)
}

// SectionExists reports whether a section-opening marker carrying anchorID is
// present in doc. The check is read-only and stable: unchanged text always
// yields the same answer.
func (sp *Splicer) SectionExists(doc, anchorID string) bool {
	if anchorID == "" {
		return false
	}
	return sectionOpenPattern(anchorID).MatchString(doc)
}

// AppendToSection inserts fragment, preceded by a timestamp comment,
// immediately before the closing marker of the section carrying anchorID.
// The closing marker is the nearest </section> after the opening tag;
// sections are assumed non-nested.
//
// Returns the document unchanged with ErrSectionNotFound when no section
// carries the anchor id. The returned text is all-or-nothing: it is either
// the fully edited document or the original.
func (sp *Splicer) AppendToSection(doc, anchorID, fragment string) (string, error) {
	if anchorID == "" {
		return doc, ErrEmptyAnchor
	}

	loc := sectionOpenPattern(anchorID).FindStringIndex(doc)
	if loc == nil {
		return doc, fmt.Errorf("%w: %q", ErrSectionNotFound, anchorID)
	}

	rel := strings.Index(doc[loc[1]:], sectionClose)
	if rel == -1 {
		return doc, fmt.Errorf("%w: section %q has no closing marker", ErrMalformedDocument, anchorID)
	}
	insertAt := loc[1] + rel

	addition := fmt.Sprintf("\n                <!-- Added on %s -->\n%s\n                ",
		sp.Now().Format(stampLayout), fragment)

	return doc[:insertAt] + addition + doc[insertAt:], nil
}

// CreateSection synthesizes a new section block carrying anchorID, numbers it
// one past the count of existing section markers, registers it in the table
// of contents, and inserts it before the document's closing </main>.
//
// The ToC entry and the section block are written in a single string
// operation, so the document never holds one without the other. When the
// document lacks a recognizable ToC closing pair or content-closing marker
// the operation fails with ErrMalformedDocument and the text is returned
// unchanged.
func (sp *Splicer) CreateSection(doc, anchorID, title, fragment string) (string, error) {
	if anchorID == "" {
		return doc, ErrEmptyAnchor
	}

	// Validate both insertion points before touching anything.
	tocLoc := tocClose.FindStringIndex(doc)
	if tocLoc == nil {
		return doc, fmt.Errorf("%w: no table-of-contents closing pair", ErrMalformedDocument)
	}
	mainIdx := strings.Index(doc, mainClose)
	if mainIdx == -1 {
		return doc, fmt.Errorf("%w: no closing %s", ErrMalformedDocument, mainClose)
	}

	ordinal := len(sectionCounter.FindAllStringIndex(doc, -1)) + 1

	section := fmt.Sprintf(`
            <!-- New Section Added on %s -->
            <section id="%s" class="section">
                <h2>%d. %s</h2>

%s
            </section>
`, sp.Now().Format(stampLayout), anchorID, ordinal, title, fragment)

	tocEntry := fmt.Sprintf("    <li><a href=\"#%s\">%s</a></li>\n            ", anchorID, title)

	// The ToC pair precedes </main> in a well-formed document, so splicing
	// the later offset first keeps the earlier one valid.
	if tocLoc[0] > mainIdx {
		return doc, fmt.Errorf("%w: table of contents after content close", ErrMalformedDocument)
	}
	out := doc[:mainIdx] + section + "        " + doc[mainIdx:]
	out = out[:tocLoc[0]] + tocEntry + out[tocLoc[0]:]
	return out, nil
}

// InsertAtMarker inserts fragment directly before the content marker,
// preserving the marker so the document grows append-only. Documents without
// the marker fall back to inserting before </main>; with neither present the
// operation fails and the text is returned unchanged.
func (sp *Splicer) InsertAtMarker(doc, fragment string) (string, error) {
	if idx := strings.Index(doc, ContentMarker); idx != -1 {
		return doc[:idx] + fragment + "\n        " + doc[idx:], nil
	}
	if idx := strings.Index(doc, mainClose); idx != -1 {
		return doc[:idx] + fragment + "\n        " + doc[idx:], nil
	}
	return doc, fmt.Errorf("%w: no content marker or closing %s", ErrMalformedDocument, mainClose)
}
