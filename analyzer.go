// ═══════════════════════════════════════════════════════════════════════════════
// TEXT ANALYSIS OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Normalization maps a raw document body, or a query string, to an ordered
// sequence of terms over the term alphabet (lowercase ASCII letters, digits,
// and hyphen-joined fragments). The same function runs at index time and at
// query time, which is what guarantees a term typed in a query matches the
// same term produced when the document was indexed.
//
// PIPELINE:
// ---------
//  1. Expand named character references (&amp; &lt; &gt; &quot; &apos;)
//  2. Fold ASCII letters to lowercase
//  3. Drop every byte that isn't an ASCII letter, digit, whitespace, or hyphen
//  4. Remove hyphens (joining the fragments they separated)
//  5. Split on whitespace, dropping empty fragments
//
// EXAMPLE:
// --------
// "Daminozide &amp; state-of-the-art growth-regulators."
//   -> "Daminozide & state-of-the-art growth-regulators."   (step 1)
//   -> "daminozide & state-of-the-art growth-regulators."   (step 2)
//   -> "daminozide  state-of-the-art growth-regulators"     (step 3 drops '&' and '.')
//   -> "daminozide  stateoftheart growthregulators"          (step 4 removes hyphens)
//   -> ["daminozide", "stateoftheart", "growthregulators"]   (step 5)
//
// There is no stopword list and no stemming: spec Non-goals exclude both, so
// "the" is as real a term as "daminozide".
// ═══════════════════════════════════════════════════════════════════════════════

package index

import "strings"

// namedEntityReplacer expands the named character references Normalize handles.
// Unknown references (anything else starting with '&') are left intact.
var namedEntityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// Normalize is the core's single canonical text-to-terms function. It is a
// pure function: same input always yields the same output, with no package
// state involved.
func Normalize(raw string) []string {
	text := namedEntityReplacer.Replace(raw)
	text = lowercaseASCII(text)
	text = stripToAlphabet(text)
	text = removeHyphens(text)
	return splitOnWhitespace(text)
}

// lowercaseASCII folds ASCII letters only; non-ASCII letters are left as-is
// per spec §4.1 step 2 ("non-ASCII letters are not case-folded").
func lowercaseASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// stripToAlphabet removes every rune that is not a lowercase ASCII letter,
// digit, whitespace, or hyphen; Normalize calls it after lowercaseASCII, so
// no uppercase ASCII letter is left to drop. Runs rune-wise so multi-byte UTF-8 sequences that
// aren't in the kept set (accented letters, punctuation, emoji) are dropped
// cleanly rather than mangled byte-by-byte.
func stripToAlphabet(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-':
			b.WriteRune(r)
		case isASCIIWhitespace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// removeHyphens drops hyphens without inserting a separator, joining the
// fragments they used to split: "state-of-the-art" -> "stateoftheart".
func removeHyphens(s string) string {
	if !strings.ContainsRune(s, '-') {
		return s
	}
	return strings.ReplaceAll(s, "-", "")
}

// splitOnWhitespace splits on runs of ASCII whitespace and drops empty
// fragments, preserving input order.
func splitOnWhitespace(s string) []string {
	return strings.FieldsFunc(s, isASCIIWhitespace)
}
