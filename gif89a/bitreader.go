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

// maxLzwCodeWidth is GIF's hard ceiling on LZW code width.
const maxLzwCodeWidth = 12

// bitReader extracts fixed-width codes, least-significant-bit first, from
// the concatenation of an image's data sub-blocks. Sub-block length prefixes
// are not part of this bitstream; the parser strips them before the payload
// reaches the reader.
type bitReader struct {
	data   []byte
	bitPos int // absolute bit offset, LSB-first within each byte
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

// eof reports whether fewer than width bits remain.
func (r *bitReader) eof(width int) bool {
	return r.bitPos+width > len(r.data)*8
}

// read extracts width bits (1..12), right-aligned, with no sign extension.
// Callers must check eof(width) first; read does not itself report EOF.
func (r *bitReader) read(width int) uint16 {
	if width > maxLzwCodeWidth {
		width = maxLzwCodeWidth
	}

	var code uint16
	for i := 0; i < width; i++ {
		bitIdx := r.bitPos + i
		byteIdx := bitIdx / 8
		if byteIdx >= len(r.data) {
			break
		}
		bit := (r.data[byteIdx] >> uint(bitIdx%8)) & 1
		code |= uint16(bit) << uint(i)
	}
	r.bitPos += width
	return code
}
