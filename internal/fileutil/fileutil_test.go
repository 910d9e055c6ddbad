package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "regular file", path: path, want: true},
		{name: "missing file", path: filepath.Join(dir, "absent.txt"), want: false},
		{name: "directory", path: dir, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "existing file", input: path, want: true},
		{name: "nonexistent path", input: filepath.Join(dir, "ghost.pdf"), want: false},
		{name: "multiline content", input: "line one\nline two", want: false},
		{name: "very long content", input: strings.Repeat("a", 5000), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()

	t.Run("utf8 passthrough", func(t *testing.T) {
		path := filepath.Join(dir, "utf8.txt")
		if err := os.WriteFile(path, []byte("héllo 世界"), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := ReadText(path)
		if err != nil {
			t.Fatalf("ReadText() error = %v", err)
		}
		if got != "héllo 世界" {
			t.Errorf("ReadText() = %q", got)
		}
	})

	t.Run("latin1 fallback", func(t *testing.T) {
		path := filepath.Join(dir, "latin1.txt")
		if err := os.WriteFile(path, []byte{'n', 'a', 0xEF, 'v', 'e'}, 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := ReadText(path)
		if err != nil {
			t.Fatalf("ReadText() error = %v", err)
		}
		if got != "naïve" {
			t.Errorf("ReadText() = %q, want naïve", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadText(filepath.Join(dir, "absent.txt")); err == nil {
			t.Error("ReadText() on missing file should fail")
		}
	})
}

func TestImageMIME(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "png", path: "shot.png", want: "image/png"},
		{name: "jpg", path: "photo.jpg", want: "image/jpeg"},
		{name: "jpeg uppercase", path: "PHOTO.JPEG", want: "image/jpeg"},
		{name: "gif", path: "anim.gif", want: "image/gif"},
		{name: "webp", path: "modern.webp", want: "image/webp"},
		{name: "unknown", path: "doc.pdf", want: ""},
		{name: "no extension", path: "Makefile", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImageMIME(tt.path); got != tt.want {
				t.Errorf("ImageMIME(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
