package index

import "testing"

func buildTestIndex(t *testing.T) *InvertedIndex {
	t.Helper()
	b := NewBuilder()
	docs := map[string]string{
		"WSJ001": "zebra apple apple",
		"WSJ002": "apple mango",
		"WSJ003": "zebra zebra mango",
	}
	for _, id := range []string{"WSJ001", "WSJ002", "WSJ003"} {
		if err := b.Add(id, docs[id]); err != nil {
			t.Fatalf("Add(%s): unexpected error: %v", id, err)
		}
	}
	return b.Build()
}

func TestBuildDictionaryAndPostings_AscendingOrder(t *testing.T) {
	idx := buildTestIndex(t)
	blob, entries := buildDictionaryAndPostings(idx)

	want := []string{"apple", "mango", "zebra"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %v, want %d entries", entries, len(want))
	}
	for i, term := range want {
		if entries[i].term != term {
			t.Fatalf("entries[%d].term = %q, want %q", i, entries[i].term, term)
		}
	}

	// Each entry's byte range must decode back to its term's postings.
	for _, e := range entries {
		df, _ := idx.DocumentFrequency(e.term)
		if int(e.df) != df {
			t.Errorf("entry %q df = %d, want %d", e.term, e.df, df)
		}
		region := blob[e.offset : e.offset+e.length]
		decoded, err := decodePostings(region, int(e.df))
		if err != nil {
			t.Fatalf("decodePostings(%q): unexpected error: %v", e.term, err)
		}
		if len(decoded) != len(idx.postings[e.term]) {
			t.Errorf("decoded postings for %q: got %d, want %d", e.term, len(decoded), len(idx.postings[e.term]))
		}
	}
}

func TestEncodeDecodeDictionary_RoundTrip(t *testing.T) {
	idx := buildTestIndex(t)
	_, entries := buildDictionaryAndPostings(idx)

	encoded := encodeDictionary(entries)
	decoded, err := decodeDictionary(encoded)
	if err != nil {
		t.Fatalf("decodeDictionary: unexpected error: %v", err)
	}
	if len(decoded) != len(entries) {
		t.Fatalf("decodeDictionary: got %d entries, want %d", len(decoded), len(entries))
	}
	for i, want := range entries {
		got := decoded[i]
		if got != want {
			t.Errorf("entry %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestDecodeDictionary_EmptyEntries(t *testing.T) {
	encoded := encodeDictionary(nil)
	decoded, err := decodeDictionary(encoded)
	if err != nil {
		t.Fatalf("decodeDictionary: unexpected error: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("decodeDictionary(empty): got %d entries, want 0", len(decoded))
	}
}

func TestDecodeDictionary_TruncatedTermBytes(t *testing.T) {
	// entry_count=1, term_len=10, but no term bytes follow.
	buf := vbyteAppend(nil, 1)
	buf = vbyteAppend(buf, 10)
	if _, err := decodeDictionary(buf); err == nil {
		t.Fatal("decodeDictionary: expected error on truncated term bytes, got nil")
	}
}
