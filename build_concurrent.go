// ═══════════════════════════════════════════════════════════════════════════════
// SHARDED INGESTION (spec §5 extension)
// ═══════════════════════════════════════════════════════════════════════════════
// BuildSharded parallelizes the expensive part of ingestion — normalizing
// document bodies and counting term frequency — across a worker pool, while
// keeping the two steps the spec requires to stay serial:
//
//   - doc_index assignment: each document's position in the input slice IS
//     its doc_index, fixed before any worker runs, so ingestion order and
//     concurrency never interact.
//   - shard merge: once every worker has produced its per-document term
//     counts, they are folded into one postings map on the calling
//     goroutine in a fixed order (ascending doc_index), so the resulting
//     InvertedIndex is byte-for-byte identical to what the sequential
//     Builder would have produced from the same input.
//
// This mirrors spec §5's permitted concurrency model: parallel
// normalize-and-accumulate, single serial merge point.
// ═══════════════════════════════════════════════════════════════════════════════

package index

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Document is one (doc_id, body) pair to ingest, used by BuildSharded where
// the whole input is known up front (unlike the streaming Builder.Add API).
type Document struct {
	DocID string
	Body  string
}

// BuildSharded ingests docs using up to workers goroutines to normalize and
// count term frequencies, then merges the results deterministically into a
// single InvertedIndex. workers <= 0 is treated as 1.
//
// Returns ErrMalformedInput for any empty doc_id and ErrDuplicateDocID for
// any doc_id repeated within docs, exactly as the sequential Builder would.
func BuildSharded(docs []Document, workers int) (*InvertedIndex, error) {
	if workers <= 0 {
		workers = 1
	}

	seen := make(map[string]int, len(docs))
	for i, d := range docs {
		if d.DocID == "" {
			return nil, fmt.Errorf("index: %w: empty doc_id at position %d", ErrMalformedInput, i)
		}
		if prior, dup := seen[d.DocID]; dup {
			return nil, fmt.Errorf("index: %w: %q (positions %d and %d)", ErrDuplicateDocID, d.DocID, prior, i)
		}
		seen[d.DocID] = i
	}

	// perDoc[i] holds document i's term-frequency map, computed
	// independently of every other document.
	perDoc := make([]map[string]int, len(docs))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := range docs {
		i := i
		g.Go(func() error {
			perDoc[i] = termFrequencies(docs[i].Body)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("index: sharded ingestion: %w", err)
	}

	postings := make(map[string][]posting)
	numPostings := 0
	docIDs := make([]string, len(docs))
	for i, d := range docs {
		docIDs[i] = d.DocID
		for term, count := range perDoc[i] {
			postings[term] = append(postings[term], posting{
				docIndex: uint64(i),
				tf:       uint64(count),
			})
			numPostings++
		}
	}

	return &InvertedIndex{
		postings:    postings,
		docIDs:      docIDs,
		numPostings: numPostings,
	}, nil
}
