package notekit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/alnah/go-notekit/internal/assets"
	"github.com/alnah/go-notekit/internal/fileutil"
)

// Default file layout inside the notebook directory.
const (
	NotesFileName = "notes.html"
	TopicsDirName = "topics"
	IndexFileName = "index.html"
)

// Notebook manages the HTML files of a notes repository: the single notes
// document, per-topic pages, and the index linking them together.
type Notebook struct {
	Dir      string
	Title    string
	Subtitle string
	Now      func() time.Time
}

// NewNotebook creates a Notebook rooted at dir.
func NewNotebook(dir string) *Notebook {
	return &Notebook{
		Dir:      dir,
		Title:    "Learning Notes",
		Subtitle: "Personal knowledge base",
		Now:      time.Now,
	}
}

// NotesPath returns the path of the single notes document.
func (n *Notebook) NotesPath() string {
	return filepath.Join(n.Dir, NotesFileName)
}

// TopicPath returns the path of the page for a topic key.
func (n *Notebook) TopicPath(key string) string {
	return filepath.Join(n.Dir, TopicsDirName, key+".html")
}

// IndexPath returns the path of the index page.
func (n *Notebook) IndexPath() string {
	return filepath.Join(n.Dir, IndexFileName)
}

// Load reads an HTML document from the notebook.
func (n *Notebook) Load(path string) (string, error) {
	doc, err := fileutil.ReadText(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotebookDir, err)
	}
	return doc, nil
}

// Save writes an HTML document back, creating parent directories as needed.
func (n *Notebook) Save(path, doc string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrNotebookDir, err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrNotebookDir, err)
	}
	return nil
}

// EnsureNotesFile creates the notes document from the embedded shell
// template if it does not exist yet, then returns its content.
func (n *Notebook) EnsureNotesFile() (string, error) {
	path := n.NotesPath()
	if fileutil.FileExists(path) {
		return n.Load(path)
	}
	doc, err := n.renderShell(assets.TemplateNotes, map[string]any{
		"Title":    n.Title,
		"Subtitle": n.Subtitle,
	})
	if err != nil {
		return "", err
	}
	if err := n.Save(path, doc); err != nil {
		return "", err
	}
	return doc, nil
}

// EnsureTopicFile creates the page for a topic from the embedded topic
// template if it does not exist yet, then returns its content.
func (n *Notebook) EnsureTopicFile(topic Topic) (string, error) {
	path := n.TopicPath(topic.Key)
	if fileutil.FileExists(path) {
		return n.Load(path)
	}
	doc, err := n.renderShell(assets.TemplateTopic, map[string]any{
		"Icon":  topic.Icon,
		"Name":  topic.Name,
		"Color": topic.Color,
	})
	if err != nil {
		return "", err
	}
	if err := n.Save(path, doc); err != nil {
		return "", err
	}
	return doc, nil
}

// RebuildIndex regenerates the index page from the topic pages currently
// on disk. Topics are looked up in the registry for their display name,
// icon, and color; pages without a registry entry get a fallback.
func (n *Notebook) RebuildIndex(registry TopicRegistry) error {
	entries, err := os.ReadDir(filepath.Join(n.Dir, TopicsDirName))
	if err != nil {
		if os.IsNotExist(err) {
			entries = nil
		} else {
			return fmt.Errorf("%w: %v", ErrNotebookDir, err)
		}
	}
	var topics []Topic
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".html") {
			continue
		}
		key := strings.TrimSuffix(name, ".html")
		topics = append(topics, registry.Get(key))
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })

	doc, err := n.renderShell(assets.TemplateIndex, map[string]any{
		"Topics":  topics,
		"Updated": n.Now().Format("2006-01-02"),
	})
	if err != nil {
		return err
	}
	return n.Save(n.IndexPath(), doc)
}

func (n *Notebook) renderShell(name string, data map[string]any) (string, error) {
	raw, err := assets.LoadTemplate(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotebookDir, err)
	}
	tmpl, err := template.New(name).Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotebookDir, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotebookDir, err)
	}
	return buf.String(), nil
}
