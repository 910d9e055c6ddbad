package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	notekit "github.com/alnah/go-notekit"
	"github.com/alnah/go-notekit/internal/config"
)

// run executes the CLI. stdin feeds interactive mode; stdout receives
// user-facing output. Logs go to stderr through the library logger.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, errHelpRequested) {
			printUsage(stdout)
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags.common.config)
	if err != nil {
		return err
	}

	registry := buildRegistry(cfg)

	// Modes that need no language model.
	if flags.mode.list {
		listTopics(stdout, registry)
		return nil
	}
	if flags.mode.search != "" {
		return searchNotes(stdout, notebookDir(cfg), flags.mode.search)
	}

	content, source, err := gatherContent(flags, positional, stdin)
	if err != nil {
		return err
	}

	svc, err := buildService(cfg, flags, registry)
	if err != nil {
		return err
	}

	input := notekit.Input{
		Topic:  flags.input.topic,
		DryRun: flags.process.dryRun,
		Pages:  flags.process.pages,
	}

	var report *notekit.Report
	if flags.input.file != "" {
		report, err = svc.ProcessFile(context.Background(), flags.input.file, input)
	} else {
		input.Content = content
		input.Source = source
		input.Kind = notekit.SourceText
		report, err = svc.Process(context.Background(), input)
	}
	if err != nil {
		return err
	}

	printReport(stdout, report, flags.process.dryRun)
	return nil
}

// gatherContent resolves the content source. File mode is handled by the
// service itself; this only validates that exactly one source was given.
func gatherContent(flags *cliFlags, positional []string, stdin io.Reader) (content, source string, err error) {
	if flags.input.file != "" {
		return "", flags.input.file, nil
	}
	if flags.input.interactive {
		fmt.Fprintln(os.Stderr, "Paste content, then press Ctrl+D:")
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "interactive input", nil
	}
	if len(positional) > 0 {
		return strings.Join(positional, " "), "direct input", nil
	}
	return "", "", fmt.Errorf("%w: pass text, use -f <file>, or -i for stdin", errNoContent)
}

// buildService assembles the processing pipeline from config and flags.
func buildService(cfg *config.Config, flags *cliFlags, registry notekit.TopicRegistry) (*notekit.Service, error) {
	logger := notekit.NewLogger(logLevel(flags), flags.common.logJSON)

	client, err := notekit.NewLLMClient(cfg.APIKey(), cfg.API.Model, cfg.API.VisionModel)
	if err != nil {
		return nil, err
	}

	dir := notebookDir(cfg)
	notebook := notekit.NewNotebook(dir)
	if cfg.Notebook.Title != "" {
		notebook.Title = cfg.Notebook.Title
	}
	if cfg.Notebook.Subtitle != "" {
		notebook.Subtitle = cfg.Notebook.Subtitle
	}

	opts := []notekit.Option{
		notekit.WithLogger(logger),
		notekit.WithSummarizer(client),
		notekit.WithDetector(client),
		notekit.WithExtractor(notekit.NewFileExtractor(client, 0, logger)),
		notekit.WithNotebook(notebook),
		notekit.WithRegistry(registry),
	}
	if chunkSize := flags.process.chunkSize; chunkSize > 0 {
		opts = append(opts, notekit.WithChunkSize(chunkSize))
	} else if cfg.Chunking.MaxSize > 0 {
		opts = append(opts, notekit.WithChunkSize(cfg.Chunking.MaxSize))
	}
	if flags.process.timeout > 0 {
		opts = append(opts, notekit.WithTimeout(flags.process.timeout))
	}
	if cfg.Sync.Enabled && !flags.process.dryRun {
		push := cfg.Sync.Push && !flags.process.noPush
		opts = append(opts, notekit.WithSyncer(notekit.NewGitSyncer(dir, push)))
	}
	return notekit.NewService(opts...), nil
}

// buildRegistry layers config-defined topics over the built-in set.
func buildRegistry(cfg *config.Config) notekit.TopicRegistry {
	registry := notekit.DefaultRegistry()
	for _, t := range cfg.Topics {
		registry[t.Key] = notekit.Topic{
			Key:   t.Key,
			Name:  t.Name,
			Icon:  t.Icon,
			Color: t.Color,
		}
	}
	return registry
}

func notebookDir(cfg *config.Config) string {
	if cfg.Notebook.Dir != "" {
		return cfg.Notebook.Dir
	}
	return "."
}

func logLevel(flags *cliFlags) string {
	switch {
	case flags.common.verbose:
		return "debug"
	case flags.common.quiet:
		return "error"
	default:
		return "info"
	}
}

func listTopics(w io.Writer, registry notekit.TopicRegistry) {
	fmt.Fprintln(w, "Known topics:")
	fmt.Fprintln(w)
	for _, key := range registry.Keys() {
		topic := registry.Get(key)
		fmt.Fprintf(w, "  %s %-18s %s\n", topic.Icon, key, topic.Name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use -t <key> to add content to a specific topic.")
}

func searchNotes(w io.Writer, dir, query string) error {
	matches, err := notekit.Search(dir, query)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintf(w, "No matches for %q\n", query)
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(w, "%s\n  ...%s...\n\n", m.Path, m.Context)
	}
	fmt.Fprintf(w, "%d match(es)\n", len(matches))
	return nil
}

func printReport(w io.Writer, r *notekit.Report, dryRun bool) {
	if dryRun {
		fmt.Fprintf(w, "Dry run: %d chunk(s), %d note(s) for %s (nothing written)\n",
			r.Chunks, r.Notes, r.Topic)
		return
	}
	if r.Notes == 0 {
		fmt.Fprintln(w, "No usable content extracted.")
		return
	}
	fmt.Fprintf(w, "Added %d note(s) to %s", r.Notes, r.Topic)
	if r.Created {
		fmt.Fprint(w, " (new section)")
	}
	fmt.Fprintln(w)
	for _, p := range r.Paths {
		fmt.Fprintf(w, "  wrote %s\n", p)
	}
	if r.Failed > 0 {
		fmt.Fprintf(w, "  %d chunk(s) failed and were skipped\n", r.Failed)
	}
	if r.SyncWarned {
		fmt.Fprintln(w, "  sync failed; changes are saved locally")
	}
}
