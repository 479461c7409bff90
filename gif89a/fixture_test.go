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

import (
	"bytes"
	"compress/lzw"
	"encoding/binary"
)

// This package has no encoder (spec.md's Non-goals exclude encoding), so
// tests that need valid LZW-compressed pixel data lean on the standard
// library's compress/lzw, which implements the same GIF-flavored variable
// width code stream this package decodes.

// gifBuilder assembles a minimal, syntactically valid GIF87a/89a byte
// stream for exercising Parse, decodeLZW and composite end to end.
type gifBuilder struct {
	buf bytes.Buffer
}

func newGIFBuilder(version string, width, height uint16, globalPalette []byte, bgIndex byte) *gifBuilder {
	b := &gifBuilder{}
	b.buf.WriteString("GIF")
	b.buf.WriteString(version)

	var packed byte
	if globalPalette != nil {
		packed |= fieldGlobalColorTable
		packed |= colorTableSizeField(len(globalPalette) / 3)
	}

	writeU16(&b.buf, width)
	writeU16(&b.buf, height)
	b.buf.WriteByte(packed)
	b.buf.WriteByte(bgIndex)
	b.buf.WriteByte(0) // pixel aspect ratio

	if globalPalette != nil {
		b.buf.Write(globalPalette)
	}
	return b
}

// colorTableSizeField packs an RGB-triple count into the 3-bit
// "size of color table" field: field value s means 2^(s+1) entries.
func colorTableSizeField(numColors int) byte {
	size := byte(0)
	for (1 << (size + 1)) < numColors {
		size++
	}
	return size
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}

func (b *gifBuilder) graphicControl(disposal Disposal, delayCs uint16, transparentIdx byte, hasTransparent bool) *gifBuilder {
	b.buf.WriteByte(extensionTag)
	b.buf.WriteByte(labelGraphicControl)
	b.buf.WriteByte(4)
	packed := byte(disposal) << 2
	if hasTransparent {
		packed |= 0x01
	}
	b.buf.WriteByte(packed)
	writeU16(&b.buf, delayCs)
	b.buf.WriteByte(transparentIdx)
	b.buf.WriteByte(0)
	return b
}

func (b *gifBuilder) netscapeLoop(loopCount uint16) *gifBuilder {
	b.buf.WriteByte(extensionTag)
	b.buf.WriteByte(labelApplication)
	b.buf.WriteByte(11)
	b.buf.WriteString("NETSCAPE2.0")
	b.buf.WriteByte(3)
	b.buf.WriteByte(1)
	writeU16(&b.buf, loopCount)
	b.buf.WriteByte(0)
	return b
}

func (b *gifBuilder) comment(text string) *gifBuilder {
	b.buf.WriteByte(extensionTag)
	b.buf.WriteByte(labelComment)
	b.writeSubBlocks([]byte(text))
	return b
}

// image writes an Image Descriptor, optional local palette, and
// LZW-compresses indices (row-major, width*height entries) into data
// sub-blocks. minCodeSize must be >= 2.
func (b *gifBuilder) image(left, top, width, height uint16, localPalette []byte, interlace bool, minCodeSize byte, indices []byte) *gifBuilder {
	b.buf.WriteByte(imageDescriptorTag)
	writeU16(&b.buf, left)
	writeU16(&b.buf, top)
	writeU16(&b.buf, width)
	writeU16(&b.buf, height)

	var packed byte
	if localPalette != nil {
		packed |= fieldLocalColorTable
		packed |= colorTableSizeField(len(localPalette) / 3)
	}
	if interlace {
		packed |= fieldInterlace
	}
	b.buf.WriteByte(packed)

	if localPalette != nil {
		b.buf.Write(localPalette)
	}

	b.buf.WriteByte(minCodeSize)

	var payload bytes.Buffer
	w := lzw.NewWriter(&payload, lzw.LSB, int(minCodeSize))
	if _, err := w.Write(indices); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}

	b.writeSubBlocks(payload.Bytes())
	return b
}

func (b *gifBuilder) writeSubBlocks(data []byte) {
	for len(data) > 0 {
		n := len(data)
		if n > 255 {
			n = 255
		}
		b.buf.WriteByte(byte(n))
		b.buf.Write(data[:n])
		data = data[n:]
	}
	b.buf.WriteByte(0)
}

func (b *gifBuilder) trailer() []byte {
	b.buf.WriteByte(trailerTag)
	return b.buf.Bytes()
}

func solidPalette(colors ...[3]byte) []byte {
	out := make([]byte, 0, len(colors)*3)
	for _, c := range colors {
		out = append(out, c[0], c[1], c[2])
	}
	return out
}
