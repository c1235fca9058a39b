// ═══════════════════════════════════════════════════════════════════════════════
// ON-DISK ARTIFACT STORE (spec §6)
// ═══════════════════════════════════════════════════════════════════════════════
// An index lives on disk as four files in one directory:
//
//	postings.bin    concatenated encodePostings() byte ranges
//	dictionary.bin  encodeDictionary() — term -> (offset, length, df)
//	doc_ids.bin     length-prefixed doc_id strings, in doc_index order
//	stats.json      {N, num_terms, num_postings, build_ms}
//
// Save writes all four; Load reads and cross-validates them, returning
// ErrCorruptIndex (never a panic) if any file's declared sizes or counts
// don't agree with another's.
// ═══════════════════════════════════════════════════════════════════════════════

package index

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	postingsFileName   = "postings.bin"
	dictionaryFileName = "dictionary.bin"
	docIDsFileName     = "doc_ids.bin"
	statsFileName      = "stats.json"
)

// Stats mirrors stats.json exactly (spec §6).
type Stats struct {
	N           int   `json:"N"`
	NumTerms    int   `json:"num_terms"`
	NumPostings int   `json:"num_postings"`
	BuildMs     int64 `json:"build_ms"`
}

// Save writes idx's four artifacts into dir, creating it if necessary.
// buildMs is the caller-measured wall-clock build duration for stats.json.
func Save(dir string, idx *InvertedIndex, buildMs int64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("index: save: %w", err)
	}

	postingsBlob, entries := buildDictionaryAndPostings(idx)
	if err := os.WriteFile(filepath.Join(dir, postingsFileName), postingsBlob, 0o644); err != nil {
		return fmt.Errorf("index: save %s: %w", postingsFileName, err)
	}

	dictBlob := encodeDictionary(entries)
	if err := os.WriteFile(filepath.Join(dir, dictionaryFileName), dictBlob, 0o644); err != nil {
		return fmt.Errorf("index: save %s: %w", dictionaryFileName, err)
	}

	docIDsBlob := encodeDocIDs(idx.docIDs)
	if err := os.WriteFile(filepath.Join(dir, docIDsFileName), docIDsBlob, 0o644); err != nil {
		return fmt.Errorf("index: save %s: %w", docIDsFileName, err)
	}

	stats := Stats{
		N:           idx.N(),
		NumTerms:    idx.NumTerms(),
		NumPostings: idx.NumPostings(),
		BuildMs:     buildMs,
	}
	statsBlob, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("index: save %s: %w", statsFileName, err)
	}
	if err := os.WriteFile(filepath.Join(dir, statsFileName), statsBlob, 0o644); err != nil {
		return fmt.Errorf("index: save %s: %w", statsFileName, err)
	}
	return nil
}

// Load reads an index directory written by Save and reconstructs an
// InvertedIndex, cross-validating the four files against each other.
// Any inconsistency — a dictionary offset that runs past postings.bin, a
// doc_ids.bin count that disagrees with stats.json's N, and so on —
// surfaces as ErrCorruptIndex rather than a panic or a silently wrong index.
func Load(dir string) (*InvertedIndex, *Stats, error) {
	statsBlob, err := os.ReadFile(filepath.Join(dir, statsFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("index: load %s: %w", statsFileName, err)
	}
	var stats Stats
	if err := json.Unmarshal(statsBlob, &stats); err != nil {
		return nil, nil, fmt.Errorf("index: load %s: %w: %v", statsFileName, ErrCorruptIndex, err)
	}

	docIDsBlob, err := os.ReadFile(filepath.Join(dir, docIDsFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("index: load %s: %w", docIDsFileName, err)
	}
	docIDs, err := decodeDocIDs(docIDsBlob)
	if err != nil {
		return nil, nil, fmt.Errorf("index: load %s: %w", docIDsFileName, err)
	}
	if len(docIDs) != stats.N {
		return nil, nil, fmt.Errorf("index: load: %w: doc_ids.bin has %d entries, stats.json says N=%d",
			ErrCorruptIndex, len(docIDs), stats.N)
	}

	dictBlob, err := os.ReadFile(filepath.Join(dir, dictionaryFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("index: load %s: %w", dictionaryFileName, err)
	}
	entries, err := decodeDictionary(dictBlob)
	if err != nil {
		return nil, nil, err
	}
	if len(entries) != stats.NumTerms {
		return nil, nil, fmt.Errorf("index: load: %w: dictionary.bin has %d entries, stats.json says num_terms=%d",
			ErrCorruptIndex, len(entries), stats.NumTerms)
	}

	postingsBlob, err := os.ReadFile(filepath.Join(dir, postingsFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("index: load %s: %w", postingsFileName, err)
	}

	postings := make(map[string][]posting, len(entries))
	numPostings := 0
	for _, e := range entries {
		if e.offset > uint64(len(postingsBlob)) || e.length > uint64(len(postingsBlob))-e.offset {
			return nil, nil, fmt.Errorf("index: load: %w: term %q range [%d,%d) exceeds postings.bin length %d",
				ErrCorruptIndex, e.term, e.offset, e.offset+e.length, len(postingsBlob))
		}
		end := e.offset + e.length
		// Every posting takes at least two bytes, so df can never exceed length.
		if e.df > e.length {
			return nil, nil, fmt.Errorf("index: load: %w: term %q df %d exceeds its %d-byte range",
				ErrCorruptIndex, e.term, e.df, e.length)
		}
		list, err := decodePostings(postingsBlob[e.offset:end], int(e.df))
		if err != nil {
			return nil, nil, fmt.Errorf("index: load: %w: term %q: %v", ErrCorruptIndex, e.term, err)
		}
		for _, p := range list {
			if p.docIndex >= uint64(len(docIDs)) {
				return nil, nil, fmt.Errorf("index: load: %w: term %q references doc_index %d >= N=%d",
					ErrCorruptIndex, e.term, p.docIndex, len(docIDs))
			}
		}
		postings[e.term] = list
		numPostings += len(list)
	}
	if numPostings != stats.NumPostings {
		return nil, nil, fmt.Errorf("index: load: %w: postings.bin decodes to %d postings, stats.json says num_postings=%d",
			ErrCorruptIndex, numPostings, stats.NumPostings)
	}

	idx := &InvertedIndex{
		postings:    postings,
		docIDs:      docIDs,
		numPostings: numPostings,
	}
	return idx, &stats, nil
}

// encodeDocIDs writes doc_ids.bin: for each doc_index in order, a
// little-endian uint32 byte length followed by the doc_id's raw bytes.
func encodeDocIDs(docIDs []string) []byte {
	var buf []byte
	var lenBytes [4]byte
	for _, id := range docIDs {
		binary.LittleEndian.PutUint32(lenBytes[:], uint32(len(id)))
		buf = append(buf, lenBytes[:]...)
		buf = append(buf, id...)
	}
	return buf
}

// decodeDocIDs reverses encodeDocIDs.
func decodeDocIDs(data []byte) ([]string, error) {
	var docIDs []string
	offset := 0
	for offset < len(data) {
		if offset+4 > len(data) {
			return nil, fmt.Errorf("%w: doc_ids.bin: truncated length prefix at offset %d", ErrCorruptIndex, offset)
		}
		n := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
		offset += 4
		if offset+n > len(data) {
			return nil, fmt.Errorf("%w: doc_ids.bin: truncated doc_id at offset %d (need %d bytes)", ErrCorruptIndex, offset, n)
		}
		docIDs = append(docIDs, string(data[offset:offset+n]))
		offset += n
	}
	return docIDs, nil
}
