// ═══════════════════════════════════════════════════════════════════════════════
// DICTIONARY PERSISTENCE (spec §4.5)
// ═══════════════════════════════════════════════════════════════════════════════
// The dictionary maps each term to the byte range of its postings list
// inside postings.bin, plus its document frequency. On disk it is a flat,
// sorted sequence of records — no ISAM, no B-tree, just ascending byte
// order so a reader can binary-search or stream-merge it directly:
//
//	[vbyte(entry_count)]
//	entry:
//	  vbyte(term_len) term_bytes
//	  vbyte(offset) vbyte(length) vbyte(df)
//
// entries appear in ascending term byte order (spec §4.5 step 2), matching
// the order InvertedIndex.Terms() already returns.
// ═══════════════════════════════════════════════════════════════════════════════

package index

import "fmt"

// dictEntry is one dictionary record: where a term's postings live inside
// postings.bin and how many documents it occurs in.
type dictEntry struct {
	term   string
	offset uint64
	length uint64
	df     uint64
}

// buildDictionaryAndPostings walks idx's terms in ascending byte order,
// encodes each term's postings list, and returns the concatenated postings
// blob alongside the matching dictionary entries. This is the bridge
// between the in-memory InvertedIndex and the two on-disk files it maps to
// (postings.bin, dictionary.bin).
func buildDictionaryAndPostings(idx *InvertedIndex) ([]byte, []dictEntry) {
	terms := idx.Terms()
	var postingsBlob []byte
	entries := make([]dictEntry, 0, len(terms))

	for _, term := range terms {
		list := idx.postings[term]
		encoded := encodePostings(list)
		entries = append(entries, dictEntry{
			term:   term,
			offset: uint64(len(postingsBlob)),
			length: uint64(len(encoded)),
			df:     uint64(len(list)),
		})
		postingsBlob = append(postingsBlob, encoded...)
	}
	return postingsBlob, entries
}

// encodeDictionary serializes entries (already in ascending term order)
// into dictionary.bin's wire format.
func encodeDictionary(entries []dictEntry) []byte {
	buf := vbyteAppend(nil, uint64(len(entries)))
	for _, e := range entries {
		buf = vbyteAppend(buf, uint64(len(e.term)))
		buf = append(buf, e.term...)
		buf = vbyteAppend(buf, e.offset)
		buf = vbyteAppend(buf, e.length)
		buf = vbyteAppend(buf, e.df)
	}
	return buf
}

// decodeDictionary reverses encodeDictionary. It does not validate offsets
// against a postings blob; that cross-check is Load's job (store.go),
// since it alone has both files in hand.
func decodeDictionary(data []byte) ([]dictEntry, error) {
	count, offset, err := vbyteRead(data, 0)
	if err != nil {
		return nil, fmt.Errorf("dictionary: %w: entry count: %v", ErrCorruptIndex, err)
	}
	// Every entry takes at least four bytes, so a larger count is corrupt.
	if count > uint64(len(data)) {
		return nil, fmt.Errorf("dictionary: %w: entry count %d exceeds %d bytes of data", ErrCorruptIndex, count, len(data))
	}

	entries := make([]dictEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		termLen, next, err := vbyteRead(data, offset)
		if err != nil {
			return nil, fmt.Errorf("dictionary: %w: entry %d term length: %v", ErrCorruptIndex, i, err)
		}
		offset = next

		if termLen > uint64(len(data)-offset) {
			return nil, fmt.Errorf("dictionary: %w: entry %d term bytes truncated", ErrCorruptIndex, i)
		}
		term := string(data[offset : offset+int(termLen)])
		offset += int(termLen)

		var e dictEntry
		e.term = term
		if e.offset, offset, err = vbyteRead(data, offset); err != nil {
			return nil, fmt.Errorf("dictionary: %w: entry %d offset: %v", ErrCorruptIndex, i, err)
		}
		if e.length, offset, err = vbyteRead(data, offset); err != nil {
			return nil, fmt.Errorf("dictionary: %w: entry %d length: %v", ErrCorruptIndex, i, err)
		}
		if e.df, offset, err = vbyteRead(data, offset); err != nil {
			return nil, fmt.Errorf("dictionary: %w: entry %d df: %v", ErrCorruptIndex, i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
