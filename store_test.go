package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	idx := buildTestIndex(t)
	dir := t.TempDir()

	if err := Save(dir, idx, 42); err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}

	loaded, stats, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	if stats.N != idx.N() || stats.NumTerms != idx.NumTerms() || stats.NumPostings != idx.NumPostings() {
		t.Fatalf("stats = %+v, want N=%d num_terms=%d num_postings=%d", stats, idx.N(), idx.NumTerms(), idx.NumPostings())
	}
	if stats.BuildMs != 42 {
		t.Fatalf("stats.BuildMs = %d, want 42", stats.BuildMs)
	}

	for i := 0; i < idx.N(); i++ {
		want, _ := idx.DocID(i)
		got, ok := loaded.DocID(i)
		if !ok || got != want {
			t.Errorf("DocID(%d) = %q, %v, want %q, true", i, got, ok, want)
		}
	}
	for _, term := range idx.Terms() {
		wantDF, _ := idx.DocumentFrequency(term)
		gotDF, ok := loaded.DocumentFrequency(term)
		if !ok || gotDF != wantDF {
			t.Errorf("DocumentFrequency(%q) = %d, %v, want %d, true", term, gotDF, ok, wantDF)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, _, err := Load(dir)
	if err == nil {
		t.Fatal("Load: expected error for missing artifact directory contents, got nil")
	}
}

func TestLoad_CorruptStatsN(t *testing.T) {
	idx := buildTestIndex(t)
	dir := t.TempDir()
	if err := Save(dir, idx, 0); err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}

	// Cut doc_ids.bin in half (15 of its 30 bytes), which leaves the second
	// doc_id record truncated, so doc_ids.bin no longer matches stats.json's N.
	path := filepath.Join(dir, docIDsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: unexpected error: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)/2], 0o644); err != nil {
		t.Fatalf("WriteFile: unexpected error: %v", err)
	}

	_, _, err = Load(dir)
	if !errors.Is(err, ErrCorruptIndex) {
		t.Fatalf("Load: got %v, want ErrCorruptIndex", err)
	}
}

func TestLoad_CorruptPostingsRange(t *testing.T) {
	idx := buildTestIndex(t)
	dir := t.TempDir()
	if err := Save(dir, idx, 0); err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}

	// Truncate postings.bin so a dictionary entry's byte range overruns it.
	path := filepath.Join(dir, postingsFileName)
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("WriteFile: unexpected error: %v", err)
	}

	_, _, err := Load(dir)
	if !errors.Is(err, ErrCorruptIndex) {
		t.Fatalf("Load: got %v, want ErrCorruptIndex", err)
	}
}

func TestEncodeDecodeDocIDs_RoundTrip(t *testing.T) {
	ids := []string{"WSJ001", "WSJ002", "", "WSJ1234567890"}
	encoded := encodeDocIDs(ids)
	decoded, err := decodeDocIDs(encoded)
	if err != nil {
		t.Fatalf("decodeDocIDs: unexpected error: %v", err)
	}
	if len(decoded) != len(ids) {
		t.Fatalf("decodeDocIDs: got %d ids, want %d", len(decoded), len(ids))
	}
	for i, want := range ids {
		if decoded[i] != want {
			t.Errorf("decodeDocIDs[%d] = %q, want %q", i, decoded[i], want)
		}
	}
}
