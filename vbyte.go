// ═══════════════════════════════════════════════════════════════════════════════
// CODEC: Variable-Byte Integers with Delta-Coded Document Indices
// ═══════════════════════════════════════════════════════════════════════════════
// A postings list is a sorted sequence of (doc_index, tf) pairs. Two
// observations make it compressible:
//
//  1. doc_index values are strictly increasing, so storing the GAP between
//     consecutive values (the delta) is almost always smaller than storing
//     the value itself, and the first delta is the value unchanged.
//  2. Most deltas and term frequencies are small integers, so a variable-
//     length byte encoding beats a fixed 4- or 8-byte integer.
//
// VBYTE ENCODING:
// ---------------
// Each integer is split into 7-bit groups, least-significant group first.
// Every byte but the last has its high bit set (meaning "more bytes
// follow"); the last byte has its high bit clear. Decoding reads bytes
// until it sees one with the high bit clear.
//
//	300 (0b1_0010_1100) -> groups (LSB first): 0101100, 0000010
//	                    -> bytes: 0xAC (1010_1100), 0x02 (0000_0010)
//
// POSTINGS LAYOUT:
// ----------------
//
//	[vbyte(delta_1), vbyte(tf_1), vbyte(delta_2), vbyte(tf_2), ...]
//
// where delta_1 = doc_index_1 and delta_i = doc_index_i - doc_index_(i-1)
// for i > 1. Decoding walks the bytes pairwise and accumulates deltas back
// into doc_index values.
// ═══════════════════════════════════════════════════════════════════════════════

package index

import "fmt"

// posting is one (doc_index, tf) entry of an in-memory postings list,
// before encoding. doc_index is resolved to a doc_id string externally via
// the ordered doc_ids table (spec §4.2).
type posting struct {
	docIndex uint64
	tf       uint64
}

// vbyteAppend appends the VByte encoding of v to dst and returns the
// extended slice.
func vbyteAppend(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// vbyteRead decodes one VByte integer starting at data[offset] and returns
// the value and the offset of the byte immediately following it.
func vbyteRead(data []byte, offset int) (uint64, int, error) {
	var v uint64
	var shift uint
	for {
		if offset >= len(data) {
			return 0, 0, fmt.Errorf("vbyte: truncated integer at offset %d", offset)
		}
		b := data[offset]
		offset++
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, offset, nil
		}
		shift += 7
		if shift > 63 {
			return 0, 0, fmt.Errorf("vbyte: integer too large (shift=%d)", shift)
		}
	}
}

// encodePostings serializes a postings list (already sorted in ascending
// doc_index order, as guaranteed by serial doc_index assignment during
// ingestion) into the delta+VByte wire format of spec §4.2.
func encodePostings(postings []posting) []byte {
	buf := make([]byte, 0, len(postings)*2)
	var prev uint64
	for i, p := range postings {
		var delta uint64
		if i == 0 {
			delta = p.docIndex
		} else {
			delta = p.docIndex - prev
		}
		prev = p.docIndex
		buf = vbyteAppend(buf, delta)
		buf = vbyteAppend(buf, p.tf)
	}
	return buf
}

// decodePostings reverses encodePostings, reconstructing df postings from
// the byte range data[:]. df is taken from the dictionary entry so the
// decoder knows exactly how many pairs to read without scanning past the
// end of its declared byte range.
func decodePostings(data []byte, df int) ([]posting, error) {
	out := make([]posting, 0, df)
	var docIndex uint64
	offset := 0
	for i := 0; i < df; i++ {
		delta, next, err := vbyteRead(data, offset)
		if err != nil {
			return nil, fmt.Errorf("decode posting %d/%d: %w", i, df, err)
		}
		offset = next

		tf, next2, err := vbyteRead(data, offset)
		if err != nil {
			return nil, fmt.Errorf("decode posting %d/%d: %w", i, df, err)
		}
		offset = next2

		docIndex += delta
		out = append(out, posting{docIndex: docIndex, tf: tf})
	}
	return out, nil
}
