package notekit

import "errors"

// Sentinel errors for library operations.
var (
	// Input errors.
	ErrEmptyContent    = errors.New("content cannot be empty")
	ErrContentTooShort = errors.New("content too short")
	ErrEmptyAnchor     = errors.New("anchor id cannot be empty")

	// Extraction errors.
	ErrExtraction      = errors.New("content extraction failed")
	ErrUnsupportedFile = errors.New("unsupported file type")

	// Summarizer errors.
	ErrSummarize      = errors.New("summarization failed")
	ErrBadModelOutput = errors.New("model returned unparseable output")
	ErrNoAPIKey       = errors.New("API key not configured")

	// Splice errors.
	ErrSectionNotFound   = errors.New("section not found")
	ErrMalformedDocument = errors.New("document missing insertion markers")

	// Fragment rendering errors.
	ErrFragmentRender = errors.New("fragment rendering failed")

	// Notebook errors.
	ErrNotebookDir = errors.New("notebook directory not usable")

	// Sync errors.
	ErrSyncFailed = errors.New("repository sync failed")
)
