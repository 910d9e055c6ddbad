// Package assets provides the embedded HTML templates notekit generates
// documents from. Templates are compiled into the binary; name lookup is
// validated to keep lookups inside the embedded tree.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed templates/*
var templates embed.FS

// Sentinel errors for asset loading.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// Template names shipped with the package.
const (
	TemplateNotes   = "notes"   // single notes document shell (ToC + main)
	TemplateTopic   = "topic"   // per-topic page shell (content marker)
	TemplateIndex   = "index"   // topic index page
	TemplateSection = "section" // rendered note fragment
)

// LoadTemplate loads an HTML template by name (without the .html.tmpl
// extension). Returns ErrTemplateNotFound when the name does not exist and
// ErrInvalidAssetName when the name could escape the embedded tree.
func LoadTemplate(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	content, err := templates.ReadFile("templates/" + name + ".html.tmpl")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(content), nil
}

// validateName rejects empty names and names containing path separators or
// traversal sequences.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
