package index

import (
	"math"
	"testing"
)

// buildWSJIndex constructs a small four-document corpus (WSJ001-WSJ004)
// whose terms occur in different numbers of documents.
func buildWSJIndex(t *testing.T) *InvertedIndex {
	t.Helper()
	b := NewBuilder()
	docs := []struct{ id, body string }{
		{"WSJ001", "daminozide growth regulator apple"},
		{"WSJ002", "apple harvest daminozide residue"},
		{"WSJ003", "orange harvest season"},
		{"WSJ004", "daminozide apple orange growth"},
	}
	for _, d := range docs {
		if err := b.Add(d.id, d.body); err != nil {
			t.Fatalf("Add(%s): unexpected error: %v", d.id, err)
		}
	}
	return b.Build()
}

func TestQuery_BasicRanking(t *testing.T) {
	idx := buildWSJIndex(t)
	matches := Query(idx, "daminozide", 0)
	if len(matches) != 3 {
		t.Fatalf("Query(daminozide): got %d matches, want 3", len(matches))
	}
	for _, m := range matches {
		if m.DocID != "WSJ001" && m.DocID != "WSJ002" && m.DocID != "WSJ004" {
			t.Errorf("unexpected match %+v", m)
		}
	}
}

func TestQuery_UnknownTerm(t *testing.T) {
	idx := buildWSJIndex(t)
	matches := Query(idx, "zyzzyva", 0)
	if matches != nil {
		t.Fatalf("Query(unknown term): got %v, want nil", matches)
	}
}

func TestQuery_EmptyNormalizedQuery(t *testing.T) {
	idx := buildWSJIndex(t)
	matches := Query(idx, "!!! --- ...", 0)
	if matches != nil {
		t.Fatalf("Query(all-stripped): got %v, want nil", matches)
	}
}

func TestQuery_TieBreakByAscendingDocID(t *testing.T) {
	b := NewBuilder()
	// Two documents with identical single-term bodies score identically.
	// A third document without "apple" keeps its df below N, so its IDF
	// (and both scores) stay above zero.
	if err := b.Add("WSJ002", "apple"); err != nil {
		t.Fatalf("Add: unexpected error: %v", err)
	}
	if err := b.Add("WSJ001", "apple"); err != nil {
		t.Fatalf("Add: unexpected error: %v", err)
	}
	if err := b.Add("WSJ003", "banana"); err != nil {
		t.Fatalf("Add: unexpected error: %v", err)
	}
	idx := b.Build()

	matches := Query(idx, "apple", 0)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].DocID != "WSJ001" || matches[1].DocID != "WSJ002" {
		t.Fatalf("tie-break order = [%s, %s], want [WSJ001, WSJ002]", matches[0].DocID, matches[1].DocID)
	}
}

func TestQuery_DuplicateQueryTermsNotReweighted(t *testing.T) {
	idx := buildWSJIndex(t)
	once := Query(idx, "daminozide", 0)
	repeated := Query(idx, "daminozide daminozide daminozide", 0)
	if len(once) != len(repeated) {
		t.Fatalf("len(once)=%d, len(repeated)=%d, want equal", len(once), len(repeated))
	}
	scoreOf := func(matches []Match, docID string) float64 {
		for _, m := range matches {
			if m.DocID == docID {
				return m.Score
			}
		}
		t.Fatalf("no match for %s", docID)
		return 0
	}
	for _, m := range once {
		if math.Abs(scoreOf(once, m.DocID)-scoreOf(repeated, m.DocID)) > 1e-9 {
			t.Errorf("score for %s differs between single and repeated query term", m.DocID)
		}
	}
}

func TestQuery_TermInEveryDocumentContributesZero(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("WSJ001", "common unique1"); err != nil {
		t.Fatalf("Add: unexpected error: %v", err)
	}
	if err := b.Add("WSJ002", "common unique2"); err != nil {
		t.Fatalf("Add: unexpected error: %v", err)
	}
	idx := b.Build()

	matches := Query(idx, "common", 0)
	if matches != nil {
		t.Fatalf("Query(term present in every doc): got %v, want nil (IDF floored to 0)", matches)
	}
}

func TestQuery_LimitResults(t *testing.T) {
	idx := buildWSJIndex(t)
	matches := Query(idx, "daminozide", 2)
	if len(matches) != 2 {
		t.Fatalf("Query with limit=2: got %d matches, want 2", len(matches))
	}
}

func TestInverseDocumentFrequency(t *testing.T) {
	cases := []struct {
		n, df int
		want  float64
	}{
		{4, 4, 0},
		{4, 5, 0}, // df > n shouldn't happen but must not go negative/NaN
		{10, 1, 1},
		{4, 0, 0},
	}
	for _, c := range cases {
		got := inverseDocumentFrequency(c.n, c.df)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("inverseDocumentFrequency(%d, %d) = %f, want %f", c.n, c.df, got, c.want)
		}
	}
}

func TestDedupe_PreservesFirstSeenOrder(t *testing.T) {
	got := dedupe([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("dedupe = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dedupe = %v, want %v", got, want)
		}
	}
}
