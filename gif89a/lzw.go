// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package gif89a

// maxDictSize is the largest a GIF LZW dictionary may grow to: 4096 entries
// addressed by 12-bit codes (spec.md §5).
const maxDictSize = 1 << maxLzwCodeWidth

// lzwEntry is one dictionary slot stored as a trie node: a reference to its
// prefix entry plus the single trailing index byte. Reconstructing the full
// index sequence for a code walks prefix links and reverses, giving O(1)
// insertion instead of the naive "clone the whole sequence" approach spec.md
// §9 calls out as quadratic in the worst case.
type lzwEntry struct {
	prefix int16 // code of the prefix entry, or -1 for a root (single-byte) entry
	suffix byte
}

type lzwDict struct {
	entries  []lzwEntry
	clearCode int
	eoiCode   int
	baseSize  int // 2^m
}

func newLzwDict(m int) *lzwDict {
	d := &lzwDict{
		clearCode: 1 << m,
		eoiCode:   1<<m + 1,
		baseSize:  1 << m,
	}
	d.reset()
	return d
}

// reset reinitializes the dictionary to its post-clear-code state: one
// root entry per palette index in [0, 2^m), sized by 2^m per spec.md's
// "palette-vs-m" clarification, plus reserved clear/EOI placeholders.
func (d *lzwDict) reset() {
	d.entries = make([]lzwEntry, d.baseSize, maxDictSize)
	for i := 0; i < d.baseSize; i++ {
		d.entries[i] = lzwEntry{prefix: -1, suffix: byte(i)}
	}
	// Reserved clear/EOI placeholder slots; content is never emitted.
	d.entries = append(d.entries, lzwEntry{prefix: -1, suffix: 0}, lzwEntry{prefix: -1, suffix: 0})
}

func (d *lzwDict) size() int {
	return len(d.entries)
}

// sequence reconstructs the palette-index sequence for code by walking
// prefix links to the root and reversing.
func (d *lzwDict) sequence(code int) []byte {
	var rev []byte
	for code != -1 {
		e := d.entries[code]
		rev = append(rev, e.suffix)
		code = int(e.prefix)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

func (d *lzwDict) firstByte(code int) byte {
	for {
		e := d.entries[code]
		if e.prefix == -1 {
			return e.suffix
		}
		code = int(e.prefix)
	}
}

// add appends a new entry of the prefix sequence's entry plus suffix byte;
// the new entry's code is the previous size(). Capped at maxDictSize entries (spec.md §5); a
// full dictionary stops accepting new entries until the next clear code,
// matching the "current_width == 12, no further growth" behavior.
func (d *lzwDict) add(prefixCode int, suffix byte) {
	if d.size() >= maxDictSize {
		return
	}
	d.entries = append(d.entries, lzwEntry{prefix: int16(prefixCode), suffix: suffix})
}

// decodeLZW runs the variable-width LZW decompression described in
// spec.md §4.5 over the concatenated data sub-block payload of one image,
// returning the flat color-index stream.
func decodeLZW(payload []byte, minCodeSize int) ([]byte, error) {
	if minCodeSize < 2 || minCodeSize > 8 {
		return nil, newErr(ErrInvalidLzwCode, 0, "lzw minimum code size %d out of range", minCodeSize)
	}

	br := newBitReader(payload)
	dict := newLzwDict(minCodeSize)
	width := minCodeSize + 1

	var out []byte
	prevCode := -1

	for {
		if br.eof(width) {
			// Lenient: missing EOI at bitstream end is tolerated (spec.md §7).
			return out, nil
		}
		code := int(br.read(width))

		switch {
		case code == dict.clearCode:
			dict.reset()
			width = minCodeSize + 1
			prevCode = -1
			continue
		case code == dict.eoiCode:
			return out, nil
		case prevCode == -1:
			// First real code after a (re)clear must already be in the table.
			if code >= dict.size() {
				return nil, newErr(ErrInvalidLzwCode, 0, "code %d before any entries (dict size %d)", code, dict.size())
			}
			out = append(out, dict.sequence(code)...)
			prevCode = code
		case code < dict.size():
			out = append(out, dict.sequence(code)...)
			dict.add(prevCode, dict.firstByte(code))
			prevCode = code
		case code == dict.size():
			// KwKwK case: the code names the entry about to be created.
			seq := dict.sequence(prevCode)
			seq = append(seq, seq[0])
			out = append(out, seq...)
			dict.add(prevCode, seq[0])
			prevCode = code
		default:
			return nil, newErr(ErrInvalidLzwCode, 0, "code %d exceeds dictionary size %d", code, dict.size())
		}

		if dict.size() == 1<<uint(width) && width < maxLzwCodeWidth {
			width++
		}
	}
}
