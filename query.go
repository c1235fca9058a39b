// ═══════════════════════════════════════════════════════════════════════════════
// QUERY PROCESSOR (spec §4.4)
// ═══════════════════════════════════════════════════════════════════════════════
// A query is a bag of terms with OR semantics: a document matches if it
// contains at least one query term, and its score is the sum of that
// term's TF-IDF contribution over every query term it contains (query-term
// multiplicity does not re-weight the sum — a repeated query term is
// deduplicated before scoring).
//
//	score(d, q) = sum over distinct t in normalize(q) appearing in d of
//	              (1 + log10(tf(t, d))) * log10(N / df(t))
//
// IDF is floored at 0 whenever df(t) >= N (spec §4.4 edge case: a term
// that occurs in every document contributes nothing to the ranking).
//
// Results are sorted by descending score, ties broken by ascending doc_id
// (spec §4.4 tie-break rule) — never by insertion or doc_index order.
// ═══════════════════════════════════════════════════════════════════════════════

package index

import (
	"math"
	"sort"
)

// Match is one scored result: a document and its accumulated TF-IDF score.
type Match struct {
	DocID string
	Score float64
}

// Query runs a bag-of-terms OR query against idx and returns matches sorted
// by (descending score, ascending doc_id), limited to at most limit
// results. limit <= 0 means unlimited.
//
// An empty normalized query (raw reduces to zero terms, or every term is
// unknown to the dictionary) yields a non-error, zero-length result —
// spec §7 classifies both as query-time "not errors".
func Query(idx *InvertedIndex, raw string, limit int) []Match {
	terms := dedupe(Normalize(raw))
	if len(terms) == 0 {
		return nil
	}

	n := idx.N()
	scores := make(map[int]float64)
	for _, term := range terms {
		list, ok := idx.postings[term]
		if !ok || len(list) == 0 {
			continue
		}
		idf := inverseDocumentFrequency(n, len(list))
		if idf == 0 {
			continue
		}
		for _, p := range list {
			tf := 1 + math.Log10(float64(p.tf))
			scores[int(p.docIndex)] += tf * idf
		}
	}
	if len(scores) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(scores))
	for docIndex, score := range scores {
		docID, ok := idx.DocID(docIndex)
		if !ok {
			continue
		}
		matches = append(matches, Match{DocID: docID, Score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].DocID < matches[j].DocID
	})

	return limitResults(matches, limit)
}

// inverseDocumentFrequency computes log10(N/df), floored at 0 for terms
// that occur in every document (df >= N) per spec §4.4.
func inverseDocumentFrequency(n, df int) float64 {
	if df <= 0 || df >= n {
		return 0
	}
	return math.Log10(float64(n) / float64(df))
}

// limitResults truncates matches to at most limit entries. limit <= 0
// means unlimited.
func limitResults(matches []Match, limit int) []Match {
	if limit <= 0 || limit >= len(matches) {
		return matches
	}
	return matches[:limit]
}

// dedupe returns terms with duplicates removed, preserving first-seen
// order (order doesn't affect scoring, but keeps output deterministic for
// callers that log the normalized query).
func dedupe(terms []string) []string {
	if len(terms) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
