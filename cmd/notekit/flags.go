package main

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across modes.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	logJSON bool
}

// inputFlags holds content source flags.
type inputFlags struct {
	file        string
	topic       string
	interactive bool
}

// modeFlags holds alternate command modes.
type modeFlags struct {
	list   bool
	search string
}

// processFlags holds processing behavior flags.
type processFlags struct {
	dryRun    bool
	noPush    bool
	pages     bool
	chunkSize int
	timeout   time.Duration
}

// cliFlags holds all flags for the notekit CLI.
type cliFlags struct {
	common  commonFlags
	input   inputFlags
	mode    modeFlags
	process processFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
	fs.BoolVar(&f.logJSON, "log-json", false, "emit logs as JSON lines")
}

// addInputFlags adds content source flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.file, "file", "f", "", "learn from a file (pdf, image, or text)")
	fs.StringVarP(&f.topic, "topic", "t", "", "target topic key (empty = auto-detect)")
	fs.BoolVarP(&f.interactive, "interactive", "i", false, "read content from stdin")
}

// addModeFlags adds alternate mode flags to a FlagSet.
func addModeFlags(fs *flag.FlagSet, f *modeFlags) {
	fs.BoolVar(&f.list, "list", false, "list known topics and exit")
	fs.StringVar(&f.search, "search", "", "search notes for a phrase and exit")
}

// addProcessFlags adds processing behavior flags to a FlagSet.
func addProcessFlags(fs *flag.FlagSet, f *processFlags) {
	fs.BoolVar(&f.dryRun, "dry-run", false, "analyze only, do not write or sync")
	fs.BoolVar(&f.noPush, "no-push", false, "commit locally but skip git push")
	fs.BoolVar(&f.pages, "pages", false, "write per-topic pages instead of the notes document")
	fs.IntVar(&f.chunkSize, "chunk-size", 0, "max chunk size in bytes (0 = default)")
	fs.DurationVar(&f.timeout, "timeout", 0, "processing timeout (0 = default)")
}

// parseFlags parses all CLI flags from args. Returns the parsed flags and
// remaining positional arguments (treated as inline content).
func parseFlags(args []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}
	fs := flag.NewFlagSet("notekit", flag.ContinueOnError)
	fs.Usage = func() {} // usage is printed by the caller

	addCommonFlags(fs, &flags.common)
	addInputFlags(fs, &flags.input)
	addModeFlags(fs, &flags.mode)
	addProcessFlags(fs, &flags.process)

	help := fs.BoolP("help", "h", false, "show help")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if *help {
		return nil, nil, errHelpRequested
	}
	return flags, fs.Args(), nil
}
