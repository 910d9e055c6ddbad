// Package notekit turns raw learning material into a maintained HTML knowledge
// base. It ingests text, PDF, or image content, asks a language-model
// collaborator to summarize each chunk into a structured note, renders the
// notes as HTML fragments, and splices them into a static-site document.
//
// # Quick Start
//
// Create a service with a summarizer, then process content:
//
//	svc := notekit.NewService(
//	    notekit.WithSummarizer(client),
//	    notekit.WithNotebook(notekit.NewNotebook("/home/me/notes-site")),
//	)
//
//	report, err := svc.Process(ctx, notekit.Input{
//	    Content: "Docker images are layered...",
//	    Topic:   "docker",
//	})
//
// # Pipeline
//
// Processing follows these stages:
//
//  1. Extraction (plain text, PDF text, or image description via vision)
//  2. Chunking (paragraph-bounded, size-limited slices)
//  3. Per-chunk summarization into structured notes (external collaborator)
//  4. Fragment rendering (HTML with syntax-highlighted code examples)
//  5. Document splicing (append into an existing section or create a new one)
//  6. Persistence and optional git sync
//
// A chunk whose summarization fails contributes nothing and is reported as a
// warning; the remaining chunks still land in the document. Splice operations
// are all-or-nothing: on any error the document text is returned unchanged and
// nothing is persisted. A sync failure after persistence is downgraded to a
// warning since the local write is already durable.
//
// # Document format
//
// The target document is plain HTML with two load-bearing conventions: section
// blocks carrying unique id attributes, and a table-of-contents list closed by
// a </ul></nav> pair used as an insertion point. The splicer performs targeted
// string edits only and leaves everything outside the edited region
// byte-for-byte intact. Nested <section> markup is not supported; behavior on
// nested or malformed markers is undefined.
//
// # Concurrency
//
// The core is single-threaded and synchronous. The document file is a shared
// mutable resource with no locking: exactly one invocation must mutate a given
// document at a time, serialized externally by the caller.
package notekit
