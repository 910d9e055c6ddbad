package main

import (
	"errors"
	"os"

	notekit "github.com/alnah/go-notekit"
	"github.com/alnah/go-notekit/internal/config"
)

// Exit codes for the notekit CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Content processed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input validation
	ExitIO      = 3 // File not found, permission denied, notebook write failure
	ExitAPI     = 4 // Language-model/API errors
)

// CLI-level sentinel errors.
var (
	errUsage         = errors.New("invalid usage")
	errHelpRequested = errors.New("help requested")
	errNoContent     = errors.New("no content provided")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// API errors (exit 4)
	if errors.Is(err, notekit.ErrSummarize) ||
		errors.Is(err, notekit.ErrBadModelOutput) ||
		errors.Is(err, notekit.ErrNoAPIKey) {
		return ExitAPI
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, notekit.ErrExtraction) ||
		errors.Is(err, notekit.ErrNotebookDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, errUsage) ||
		errors.Is(err, errNoContent) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, notekit.ErrEmptyContent) ||
		errors.Is(err, notekit.ErrContentTooShort) ||
		errors.Is(err, notekit.ErrEmptyAnchor) ||
		errors.Is(err, notekit.ErrUnsupportedFile) {
		return ExitUsage
	}

	return ExitGeneral
}
