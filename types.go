package notekit

import "time"

// SourceKind tags where a content blob came from.
type SourceKind string

// Source kind constants.
const (
	SourceText  SourceKind = "text"
	SourceFile  SourceKind = "file"
	SourceImage SourceKind = "image"
)

// MinContentLength is the minimum trimmed content length accepted for
// processing. Shorter input is an input error, fatal to the invocation.
const MinContentLength = 10

// Note is the structured result extracted from one chunk of content.
// All fields come from the summarizer collaborator; empty slices mean the
// chunk contained nothing of that kind.
type Note struct {
	Title         string        `json:"title"`
	Summary       string        `json:"summary"`
	KeyPoints     []string      `json:"key_points"`
	CodeExamples  []CodeExample `json:"code_examples"`
	Commands      []Command     `json:"commands"`
	Tips          []string      `json:"tips"`
	BestPractices []string      `json:"best_practices"`
}

// Empty reports whether the note carries no usable content.
func (n *Note) Empty() bool {
	return n == nil || (n.Title == "" && n.Summary == "" && len(n.KeyPoints) == 0)
}

// CodeExample is a fenced code sample with context.
type CodeExample struct {
	Description string `json:"description"`
	Language    string `json:"language"`
	Code        string `json:"code"`
}

// Command is a shell command with a one-line description.
type Command struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// Topic describes one category in the knowledge base.
type Topic struct {
	Key   string `yaml:"key"`   // anchor id, normalized
	Name  string `yaml:"name"`  // display name
	Icon  string `yaml:"icon"`  // emoji shown on cards and headers
	Color string `yaml:"color"` // accent color, hex
}

// Input contains processing parameters for one invocation.
type Input struct {
	Content string     // raw content (required)
	Source  string     // origin label for commit messages ("direct input", file name)
	Kind    SourceKind // origin tag
	Topic   string     // target topic; empty = auto-detect
	DryRun  bool       // analyze only, do not persist
	Pages   bool       // write per-topic pages instead of the single notes document
}

// Report summarizes what one invocation did.
type Report struct {
	Topic      string   // resolved topic key
	Created    bool     // a new section or topic file was created
	Chunks     int      // chunks produced by the chunker
	Notes      int      // chunks that yielded a note
	Failed     int      // chunks dropped due to collaborator errors
	Paths      []string // files written
	SyncWarned bool     // sync ran and failed (local state is still durable)
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	chunkSize int
	timeout   time.Duration
}

// defaultTimeout bounds one full Process invocation.
const defaultTimeout = 5 * time.Minute

// WithTimeout sets the processing timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("notekit: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithChunkSize sets the chunker size limit in bytes.
// Values <= 0 keep the default.
func WithChunkSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cfg.chunkSize = n
		}
	}
}

// WithLogger sets the logger used for progress and warnings.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSummarizer sets the language-model collaborator.
func WithSummarizer(sum Summarizer) Option {
	return func(s *Service) {
		s.summarizer = sum
	}
}

// WithDetector sets the topic-detection collaborator.
func WithDetector(d TopicDetector) Option {
	return func(s *Service) {
		s.detector = d
	}
}

// WithExtractor sets the file-content extractor.
func WithExtractor(e Extractor) Option {
	return func(s *Service) {
		s.extractor = e
	}
}

// WithNotebook sets the target notebook.
func WithNotebook(nb *Notebook) Option {
	return func(s *Service) {
		s.notebook = nb
	}
}

// WithSyncer sets the post-persistence sync step.
func WithSyncer(sy Syncer) Option {
	return func(s *Service) {
		s.syncer = sy
	}
}

// WithRegistry sets the initial topic registry.
func WithRegistry(r TopicRegistry) Option {
	return func(s *Service) {
		s.registry = r
	}
}
