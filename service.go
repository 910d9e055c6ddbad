package notekit

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-notekit/internal/fileutil"
)

// Service orchestrates the full pipeline: extract, chunk, summarize,
// render, splice, persist, sync. Collaborators are injected through
// options; missing optional collaborators disable their stage.
type Service struct {
	cfg        serviceConfig
	log        Logger
	chunker    *Chunker
	splicer    *Splicer
	renderer   *FragmentRenderer
	summarizer Summarizer
	detector   TopicDetector
	extractor  Extractor
	notebook   *Notebook
	syncer     Syncer
	registry   TopicRegistry
}

// NewService creates a Service with the given options. A summarizer and a
// notebook are required for Process; everything else has a default.
func NewService(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			chunkSize: DefaultChunkSize,
			timeout:   defaultTimeout,
		},
		log:      nopLogger{},
		splicer:  NewSplicer(),
		renderer: NewFragmentRenderer(),
		registry: DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.chunker = NewChunker(s.cfg.chunkSize)
	return s
}

// Registry returns the current topic registry.
func (s *Service) Registry() TopicRegistry {
	return s.registry
}

// ProcessFile extracts text from a file and runs Process on it. The input's
// Content, Source, and Kind fields are filled in from the extraction.
func (s *Service) ProcessFile(ctx context.Context, path string, input Input) (*Report, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("%w: no extractor configured", ErrUnsupportedFile)
	}
	content, kind, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	input.Content = content
	input.Source = path
	input.Kind = kind
	return s.Process(ctx, input)
}

// Process runs the pipeline for one piece of content. Individual chunk
// failures are logged and counted, not fatal; sync failures are downgraded
// to a warning because the local notebook state is already durable.
func (s *Service) Process(ctx context.Context, input Input) (*Report, error) {
	if s.summarizer == nil {
		return nil, fmt.Errorf("%w: no summarizer configured", ErrSummarize)
	}
	if s.notebook == nil {
		return nil, fmt.Errorf("%w: no notebook configured", ErrNotebookDir)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) < MinContentLength {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrContentTooShort, len(content), MinContentLength)
	}

	topics, strict, err := s.resolveTopics(ctx, content, input.Topic, input.Pages)
	if err != nil {
		return nil, err
	}

	chunks := s.chunker.Chunk(content)
	s.log.Info("content chunked", "chunks", len(chunks), "topics", topicKeys(topics))

	report := &Report{
		Topic:  strings.Join(topicKeys(topics), ","),
		Chunks: len(chunks),
	}

	notesByTopic := make(map[string][]*Note)
	for _, topic := range topics {
		for i, chunk := range chunks {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			note, err := s.summarizer.Summarize(ctx, chunk, topic, strict)
			if err != nil {
				s.log.Warn("chunk analysis failed", "topic", topic.Key, "chunk", i+1, "error", err)
				report.Failed++
				continue
			}
			if note == nil {
				s.log.Debug("chunk not relevant", "topic", topic.Key, "chunk", i+1)
				continue
			}
			notesByTopic[topic.Key] = append(notesByTopic[topic.Key], note)
			report.Notes++
		}
	}

	if report.Notes == 0 {
		s.log.Warn("no usable content extracted", "chunks", len(chunks))
		return report, nil
	}

	if input.DryRun {
		s.log.Info("dry run, skipping persistence",
			"notes", report.Notes, "topics", topicKeys(topics))
		return report, nil
	}

	if input.Pages {
		err = s.persistPages(topics, notesByTopic, report)
	} else {
		err = s.persistNotesDoc(topics, notesByTopic, report)
	}
	if err != nil {
		return report, err
	}

	if s.syncer != nil {
		msg := fmt.Sprintf("📚 Add %s notes from %s", report.Topic, sourceLabel(input))
		if err := s.syncer.Sync(ctx, msg); err != nil {
			s.log.Warn("sync failed, local changes are saved", "error", err)
			report.SyncWarned = true
		}
	}
	return report, nil
}

// resolveTopics maps an explicit topic through the registry or, absent one,
// asks the detector. Pages mode classifies against the full topic set and
// gates each chunk on relevance; notes mode picks the single best section
// and treats every chunk as relevant, as does an explicit topic.
func (s *Service) resolveTopics(ctx context.Context, content, explicit string, pages bool) ([]Topic, bool, error) {
	if explicit != "" {
		return []Topic{s.registerTopic(explicit)}, true, nil
	}
	if s.detector == nil {
		return []Topic{s.registry.Get("misc")}, true, nil
	}
	if pages {
		keys, err := s.detector.DetectTopics(ctx, content, s.registry.Keys())
		if err != nil {
			return nil, false, err
		}
		topics := make([]Topic, 0, len(keys))
		seen := make(map[string]bool, len(keys))
		for _, key := range keys {
			if seen[key] { // models occasionally repeat a key
				continue
			}
			seen[key] = true
			topics = append(topics, s.registry.Get(key))
		}
		return topics, false, nil
	}
	sections := make(map[string]string, len(s.registry))
	for key, topic := range s.registry {
		sections[key] = topic.Name
	}
	id, err := s.detector.DetectSection(ctx, content, sections)
	if err != nil {
		return nil, false, err
	}
	return []Topic{s.registerTopic(id)}, true, nil
}

// registerTopic resolves input against the registry, keeping any newly
// created topic for the rest of the invocation.
func (s *Service) registerTopic(input string) Topic {
	key, updated, created := s.registry.Resolve(input)
	s.registry = updated
	if created {
		s.log.Info("created new topic", "key", key)
	}
	return s.registry.Get(key)
}

// persistNotesDoc splices all notes into the single notes document,
// appending to existing sections and creating missing ones.
func (s *Service) persistNotesDoc(topics []Topic, notes map[string][]*Note, report *Report) error {
	doc, err := s.notebook.EnsureNotesFile()
	if err != nil {
		return err
	}
	for _, topic := range topics {
		for _, note := range notes[topic.Key] {
			fragment, err := s.renderer.Render(note)
			if err != nil {
				s.log.Warn("fragment render failed", "topic", topic.Key, "error", err)
				report.Failed++
				continue
			}
			if s.splicer.SectionExists(doc, topic.Key) {
				doc, err = s.splicer.AppendToSection(doc, topic.Key, fragment)
			} else {
				doc, err = s.splicer.CreateSection(doc, topic.Key, topic.Name, fragment)
				if err == nil {
					report.Created = true
				}
			}
			if err != nil {
				return err
			}
		}
	}
	path := s.notebook.NotesPath()
	if err := s.notebook.Save(path, doc); err != nil {
		return err
	}
	report.Paths = append(report.Paths, path)
	return nil
}

// persistPages writes notes to per-topic pages and rebuilds the index.
func (s *Service) persistPages(topics []Topic, notes map[string][]*Note, report *Report) error {
	for _, topic := range topics {
		if len(notes[topic.Key]) == 0 {
			continue
		}
		existed := fileutil.FileExists(s.notebook.TopicPath(topic.Key))
		doc, err := s.notebook.EnsureTopicFile(topic)
		if err != nil {
			return err
		}
		if !existed {
			report.Created = true
		}
		for _, note := range notes[topic.Key] {
			fragment, err := s.renderer.RenderSection(note)
			if err != nil {
				s.log.Warn("fragment render failed", "topic", topic.Key, "error", err)
				report.Failed++
				continue
			}
			doc, err = s.splicer.InsertAtMarker(doc, fragment)
			if err != nil {
				return err
			}
		}
		path := s.notebook.TopicPath(topic.Key)
		if err := s.notebook.Save(path, doc); err != nil {
			return err
		}
		report.Paths = append(report.Paths, path)
	}
	if err := s.notebook.RebuildIndex(s.registry); err != nil {
		return err
	}
	report.Paths = append(report.Paths, s.notebook.IndexPath())
	return nil
}

func topicKeys(topics []Topic) []string {
	keys := make([]string, len(topics))
	for i, t := range topics {
		keys[i] = t.Key
	}
	return keys
}

func sourceLabel(input Input) string {
	if input.Source != "" {
		return input.Source
	}
	return "direct input"
}
