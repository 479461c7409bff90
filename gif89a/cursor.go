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

import "encoding/binary"

// Cursor is a monotonic byte-position reader over a complete in-memory GIF
// stream. Every read either advances the cursor and succeeds, or fails and
// leaves the cursor untouched.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps data for sequential reads. data is not copied.
func NewCursor(data []byte) *Cursor {
	return &Cursor{buf: data}
}

// Position returns the current byte offset.
func (c *Cursor) Position() int {
	return c.pos
}

// Len returns the number of unread bytes remaining.
func (c *Cursor) Len() int {
	return len(c.buf) - c.pos
}

// AtEnd reports whether the cursor has reached the GIF trailer byte (0x3B)
// as its final unread byte, or has run past the end of the buffer.
func (c *Cursor) AtEnd() bool {
	if c.pos >= len(c.buf) {
		return true
	}
	return c.pos == len(c.buf)-1 && c.buf[c.pos] == trailerTag
}

// NextU8 reads one byte.
func (c *Cursor) NextU8() (byte, error) {
	if c.pos+1 > len(c.buf) {
		return 0, &DecodeError{Kind: ErrUnexpectedEof, Offset: c.pos, Msg: "reading u8"}
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// NextU16LE reads a little-endian uint16.
func (c *Cursor) NextU16LE() (uint16, error) {
	if c.pos+2 > len(c.buf) {
		return 0, &DecodeError{Kind: ErrUnexpectedEof, Offset: c.pos, Msg: "reading u16"}
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

// Take returns the next n bytes without copying and advances the cursor.
func (c *Cursor) Take(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, &DecodeError{Kind: ErrUnexpectedEof, Offset: c.pos, Msg: "reading slice"}
	}
	s := c.buf[c.pos : c.pos+n]
	c.pos += n
	return s, nil
}

// ExpectLiteral consumes len(want) bytes and fails unless they match want
// exactly.
func (c *Cursor) ExpectLiteral(want []byte) error {
	if c.pos+len(want) > len(c.buf) {
		return &DecodeError{Kind: ErrUnexpectedEof, Offset: c.pos, Msg: "reading literal"}
	}
	got := c.buf[c.pos : c.pos+len(want)]
	for i := range want {
		if got[i] != want[i] {
			return &DecodeError{
				Kind:     ErrUnexpectedLiteral,
				Offset:   c.pos,
				Msg:      "literal mismatch",
				Expected: append([]byte(nil), want...),
				Found:    append([]byte(nil), got...),
			}
		}
	}
	c.pos += len(want)
	return nil
}
