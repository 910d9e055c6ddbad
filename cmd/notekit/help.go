package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: notekit [flags] [content...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Turn raw content into organized HTML learning notes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content sources (pick one):")
	fmt.Fprintln(w, "  <content...>              Inline text passed as arguments")
	fmt.Fprintln(w, "  -f, --file <path>         Learn from a file (pdf, image, or text)")
	fmt.Fprintln(w, "  -i, --interactive         Read content from stdin until EOF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Modes:")
	fmt.Fprintln(w, "      --list                List known topics and exit")
	fmt.Fprintln(w, "      --search <phrase>     Search notes for a phrase and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Processing:")
	fmt.Fprintln(w, "  -t, --topic <key>         Target topic key (empty = auto-detect)")
	fmt.Fprintln(w, "      --pages               Write per-topic pages instead of notes.html")
	fmt.Fprintln(w, "      --dry-run             Analyze only, do not write or sync")
	fmt.Fprintln(w, "      --no-push             Commit locally but skip git push")
	fmt.Fprintln(w, "      --chunk-size <n>      Max chunk size in bytes (0 = default)")
	fmt.Fprintln(w, "      --timeout <d>         Processing timeout, e.g. 2m (0 = default)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <path>       Config file path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w, "      --log-json            Emit logs as JSON lines")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  notekit \"kubectl get pods lists pods in the current namespace\"")
	fmt.Fprintln(w, "  notekit -f chapter3.pdf -t kubernetes")
	fmt.Fprintln(w, "  notekit --search \"rolling update\"")
}
