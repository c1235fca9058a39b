// ═══════════════════════════════════════════════════════════════════════════════
// INVERTED INDEX BUILDER
// ═══════════════════════════════════════════════════════════════════════════════
// Builder performs the spec's single-pass index construction (§4.3):
//
//  1. For each incoming document, assign it the next doc_index (0, 1, 2, ...)
//     in strict ingestion order, and record its doc_id at that position.
//  2. Normalize the document body into terms and count term frequency
//     within the document.
//  3. For each distinct term in the document, append one posting
//     (doc_index, tf) to that term's in-memory postings list.
//
// Because doc_index is assigned serially and every posting for a document
// is appended in the same step, a term's postings list is already sorted
// in ascending doc_index order the moment ingestion finishes — no sort
// step, no tower-structured skip list, just append-only slices.
// ═══════════════════════════════════════════════════════════════════════════════

package index

import (
	"fmt"
	"sort"
)

// InvertedIndex is the in-memory result of a build: a term dictionary
// (postings keyed by term) plus the positional doc_index -> doc_id table.
// It is produced by Builder and consumed by Save/Load (store.go) and the
// Query Processor.
type InvertedIndex struct {
	postings map[string][]posting
	docIDs   []string // doc_index -> doc_id, positional

	numPostings int // total (term, doc) pairs, for stats.json
}

// N is the number of documents in the index (spec §4.4's N).
func (idx *InvertedIndex) N() int { return len(idx.docIDs) }

// NumTerms is the number of distinct terms in the dictionary.
func (idx *InvertedIndex) NumTerms() int { return len(idx.postings) }

// NumPostings is the total number of (term, doc) postings across all terms.
func (idx *InvertedIndex) NumPostings() int { return idx.numPostings }

// DocID returns the doc_id assigned to the given doc_index.
func (idx *InvertedIndex) DocID(docIndex int) (string, bool) {
	if docIndex < 0 || docIndex >= len(idx.docIDs) {
		return "", false
	}
	return idx.docIDs[docIndex], true
}

// DocumentFrequency returns df for a term: the number of documents whose
// body contains it at least once. Returns 0, false for an unknown term —
// per spec §7 this is not an error, it is "the term does not occur".
func (idx *InvertedIndex) DocumentFrequency(term string) (int, bool) {
	list, ok := idx.postings[term]
	if !ok {
		return 0, false
	}
	return len(list), true
}

// Terms returns the dictionary's terms in ascending byte order, the order
// spec §4.5 requires for the on-disk dictionary.
func (idx *InvertedIndex) Terms() []string {
	terms := make([]string, 0, len(idx.postings))
	for t := range idx.postings {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// Builder accumulates documents into an InvertedIndex via sequential calls
// to Add. It is not safe for concurrent use by multiple goroutines — use
// BuildSharded (build_concurrent.go) for a parallel ingestion path that
// still serializes doc_index assignment.
type Builder struct {
	postings map[string][]posting
	docIDs   []string
	seen     map[string]int // doc_id -> doc_index, for duplicate detection
}

// NewBuilder returns an empty Builder ready to accept documents.
func NewBuilder() *Builder {
	return &Builder{
		postings: make(map[string][]posting),
		docIDs:   nil,
		seen:     make(map[string]int),
	}
}

// Add ingests one document: docID is its external identifier, body is its
// raw text. Returns ErrDuplicateDocID (wrapped with the offending doc_id)
// if docID has already been added, and ErrMalformedInput if docID is empty.
//
// An empty or all-stripped body is not an error: the document receives a
// doc_index and a doc_ids.bin entry but contributes no postings (spec §4.3
// boundary behavior, §8 "empty document").
func (b *Builder) Add(docID string, body string) error {
	if docID == "" {
		return fmt.Errorf("index: %w: empty doc_id", ErrMalformedInput)
	}
	if _, dup := b.seen[docID]; dup {
		return fmt.Errorf("index: %w: %q", ErrDuplicateDocID, docID)
	}

	docIndex := len(b.docIDs)
	b.docIDs = append(b.docIDs, docID)
	b.seen[docID] = docIndex

	tf := termFrequencies(body)
	for term, count := range tf {
		b.postings[term] = append(b.postings[term], posting{
			docIndex: uint64(docIndex),
			tf:       uint64(count),
		})
	}
	return nil
}

// Build finalizes ingestion and returns the completed InvertedIndex. The
// Builder must not be reused afterward.
func (b *Builder) Build() *InvertedIndex {
	numPostings := 0
	for _, list := range b.postings {
		numPostings += len(list)
	}
	return &InvertedIndex{
		postings:    b.postings,
		docIDs:      b.docIDs,
		numPostings: numPostings,
	}
}

// termFrequencies normalizes body and counts occurrences of each resulting
// term, per spec §4.3 step 2.
func termFrequencies(body string) map[string]int {
	terms := Normalize(body)
	tf := make(map[string]int, len(terms))
	for _, term := range terms {
		tf[term]++
	}
	return tf
}
