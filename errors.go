package index

import "errors"

// Sentinel errors for the core's small error taxonomy (spec §7). Callers
// compare against these with errors.Is; call sites wrap them with
// fmt.Errorf("...: %w", ...) to attach context.
var (
	// ErrDuplicateDocID is returned by the Builder when the input stream
	// presents the same doc_id twice.
	ErrDuplicateDocID = errors.New("duplicate doc_id in input stream")

	// ErrMalformedInput is returned when a record is missing a required
	// field or carries a non-string doc_id.
	ErrMalformedInput = errors.New("malformed input record")

	// ErrCorruptIndex is returned at load time when artifact sizes or
	// counts are mutually inconsistent.
	ErrCorruptIndex = errors.New("corrupt index")

	// ErrIOError marks an underlying I/O failure as belonging to the
	// core's error taxonomy (spec §7) rather than an opaque stdlib error.
	ErrIOError = errors.New("i/o error")

	// ErrNoPostingList names the condition of a term having no postings
	// list. No function in this package returns it: Query skips such a
	// term, so it contributes no matches.
	ErrNoPostingList = errors.New("no posting list for term")
)
