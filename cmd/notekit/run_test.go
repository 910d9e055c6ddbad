package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunList(t *testing.T) {
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	if err := run([]string{"notekit", "--list"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run(--list) error = %v", err)
	}
	for _, want := range []string{"docker", "kubernetes", "misc", "Known topics"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list output missing %q", want)
		}
	}
}

func TestRunListIncludesConfigTopics(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg := `
topics:
  - key: service-mesh
    name: Service Mesh
    icon: "🕸️"
    color: "#aa00ff"
`
	if err := os.WriteFile(filepath.Join(dir, "notekit.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run([]string{"notekit", "--list"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run(--list) error = %v", err)
	}
	if !strings.Contains(out.String(), "service-mesh") {
		t.Error("config-defined topic missing from list")
	}
}

func TestRunSearch(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	page := `<html><body><p>Rolling updates avoid downtime.</p></body></html>`
	if err := os.WriteFile(filepath.Join(dir, "notes.html"), []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run([]string{"notekit", "--search", "rolling"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run(--search) error = %v", err)
	}
	if !strings.Contains(out.String(), "1 match(es)") {
		t.Errorf("search output = %q", out.String())
	}
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"notekit", "--help"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run(--help) error = %v", err)
	}
	if !strings.Contains(out.String(), "Usage: notekit") {
		t.Error("help output missing usage line")
	}
}

func TestRunNoContent(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test")

	var out bytes.Buffer
	err := run([]string{"notekit"}, strings.NewReader(""), &out)
	if !errors.Is(err, errNoContent) {
		t.Errorf("run() error = %v, want %v", err, errNoContent)
	}
}

func TestRunMissingAPIKey(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	var out bytes.Buffer
	err := run([]string{"notekit", "some", "content", "to", "learn"}, strings.NewReader(""), &out)
	if exitCodeFor(err) != ExitAPI {
		t.Errorf("run() without key error = %v, want API exit code", err)
	}
}

func TestGatherContent(t *testing.T) {
	t.Run("positional args joined", func(t *testing.T) {
		flags := &cliFlags{}
		content, source, err := gatherContent(flags, []string{"two", "words"}, strings.NewReader(""))
		if err != nil {
			t.Fatalf("gatherContent() error = %v", err)
		}
		if content != "two words" || source != "direct input" {
			t.Errorf("gatherContent() = (%q, %q)", content, source)
		}
	})

	t.Run("interactive reads stdin", func(t *testing.T) {
		flags := &cliFlags{}
		flags.input.interactive = true
		content, source, err := gatherContent(flags, nil, strings.NewReader("pasted notes"))
		if err != nil {
			t.Fatalf("gatherContent() error = %v", err)
		}
		if content != "pasted notes" || source != "interactive input" {
			t.Errorf("gatherContent() = (%q, %q)", content, source)
		}
	})

	t.Run("no source", func(t *testing.T) {
		flags := &cliFlags{}
		_, _, err := gatherContent(flags, nil, strings.NewReader(""))
		if !errors.Is(err, errNoContent) {
			t.Errorf("gatherContent() error = %v, want %v", err, errNoContent)
		}
	})
}
