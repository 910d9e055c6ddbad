package notekit

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// A Match is a case-insensitive hit inside a notebook page.
type Match struct {
	Path    string
	Context string
}

// Search limits to keep output readable on broad queries.
const (
	maxMatchesPerFile = 10
	contextBefore     = 50
	contextAfter      = 100
)

// Search scans every HTML page under dir for query, matching against the
// rendered text rather than markup. Matches carry a short context window
// around the hit.
func Search(dir, query string) ([]Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrEmptyContent)
	}
	needle := strings.ToLower(query)

	var matches []Match
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		found, err := searchFile(path, needle)
		if err != nil {
			return err
		}
		matches = append(matches, found...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", dir, err)
	}
	return matches, nil
}

func searchFile(path, needle string) ([]Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	doc.Find("style,script").Remove()
	text := strings.Join(strings.Fields(doc.Text()), " ")

	var matches []Match
	offset := 0
	for len(matches) < maxMatchesPerFile {
		at, n := foldIndex(text[offset:], needle)
		if at < 0 {
			break
		}
		at += offset
		start := max(at-contextBefore, 0)
		end := min(at+n+contextAfter, len(text))
		matches = append(matches, Match{Path: path, Context: text[start:end]})
		offset = at + n
	}
	return matches, nil
}

// foldIndex returns the byte offset in s of the first case-insensitive
// occurrence of needle and the matched length in s's bytes, or (-1, 0).
// Offsets come from s itself; lowercasing a copy would not work because
// ToLower can change a rune's encoded length and shift every later offset.
func foldIndex(s, needle string) (at, n int) {
	for i := range s {
		if m := foldPrefixLen(s[i:], needle); m >= 0 {
			return i, m
		}
	}
	return -1, 0
}

// foldPrefixLen returns how many leading bytes of s case-fold to needle,
// or -1 when s does not start with needle.
func foldPrefixLen(s, needle string) int {
	j := 0
	for _, want := range needle {
		r, size := utf8.DecodeRuneInString(s[j:])
		if size == 0 || unicode.ToLower(r) != unicode.ToLower(want) {
			return -1
		}
		j += size
	}
	return j
}
