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

import "bytes"

var (
	magicGIF      = []byte("GIF")
	netscapeIdent = []byte("NETSCAPE2.0")
)

// Parse walks the GIF89a/GIF87a block grammar over a complete in-memory
// stream and returns the parsed, immutable representation (spec.md §4.4).
// Parse does not decompress pixel data or composite frames; see Decode.
func Parse(data []byte) (*Stream, error) {
	c := NewCursor(data)

	if err := c.ExpectLiteral(magicGIF); err != nil {
		return nil, err
	}
	versionBytes, err := c.Take(3)
	if err != nil {
		return nil, err
	}

	screen, err := readLogicalScreen(c)
	if err != nil {
		return nil, err
	}

	s := &Stream{
		Version:   string(versionBytes),
		Screen:    screen,
		LoopCount: -1,
	}

	if screen.HasGlobalColorTable() {
		pal, err := c.Take(screen.GlobalColorTableSize())
		if err != nil {
			return nil, err
		}
		s.GlobalPalette = append([]byte(nil), pal...)
	}

	for !c.AtEnd() {
		tag, err := c.NextU8()
		if err != nil {
			return nil, err
		}

		switch tag {
		case trailerTag:
			return s, nil
		case extensionTag:
			block, loopCount, err := readExtension(c)
			if err != nil {
				return nil, err
			}
			if loopCount >= 0 {
				s.LoopCount = loopCount
			}
			s.Blocks = append(s.Blocks, block)
		case imageDescriptorTag:
			img, err := readTableBasedImage(c)
			if err != nil {
				return nil, err
			}
			s.Blocks = append(s.Blocks, Block{TableBasedImage: img})
		default:
			return nil, newErr(ErrUnknownBlockTag, c.Position()-1, "tag 0x%02X", tag)
		}
	}
	return s, nil
}

func readLogicalScreen(c *Cursor) (LogicalScreen, error) {
	var s LogicalScreen

	w, err := c.NextU16LE()
	if err != nil {
		return s, err
	}
	h, err := c.NextU16LE()
	if err != nil {
		return s, err
	}
	packed, err := c.NextU8()
	if err != nil {
		return s, err
	}
	bgi, err := c.NextU8()
	if err != nil {
		return s, err
	}
	par, err := c.NextU8()
	if err != nil {
		return s, err
	}

	s.Width, s.Height, s.Packed, s.BackgroundIndex, s.PixelAspectRatio = w, h, packed, bgi, par
	return s, nil
}

// readExtension dispatches on the extension label per spec.md §4.4. It
// returns the loop count parsed from a NETSCAPE2.0 application extension,
// or -1 if this extension did not carry one (SPEC_FULL.md §1.1).
func readExtension(c *Cursor) (Block, int, error) {
	labelOffset := c.Position()
	label, err := c.NextU8()
	if err != nil {
		return Block{}, -1, err
	}

	switch label {
	case labelApplication:
		return readApplicationExtension(c)
	case labelComment:
		data, err := readSubBlocksConcat(c)
		if err != nil {
			return Block{}, -1, err
		}
		return Block{CommentExtension: &CommentExtension{Data: data}}, -1, nil
	case labelGraphicControl:
		gc, err := readGraphicControl(c)
		if err != nil {
			return Block{}, -1, err
		}
		return Block{GraphicControl: gc}, -1, nil
	case labelPlainText:
		pt, err := readPlainText(c)
		if err != nil {
			return Block{}, -1, err
		}
		return Block{PlainTextExtension: pt}, -1, nil
	default:
		return Block{}, -1, newErr(ErrUnknownExtensionLabel, labelOffset, "label 0x%02X", label)
	}
}

func readGraphicControl(c *Cursor) (*GraphicControl, error) {
	sz, err := c.NextU8()
	if err != nil {
		return nil, err
	}
	if sz != 4 {
		return nil, newErr(ErrUnexpectedLiteral, c.Position()-1, "graphic control block size %d, want 4", sz)
	}
	packed, err := c.NextU8()
	if err != nil {
		return nil, err
	}
	delay, err := c.NextU16LE()
	if err != nil {
		return nil, err
	}
	tidx, err := c.NextU8()
	if err != nil {
		return nil, err
	}
	if err := consumeTerminator(c); err != nil {
		return nil, err
	}
	return &GraphicControl{Packed: packed, DelayTimeCs: delay, TransparentIndex: tidx}, nil
}

// readApplicationExtension reads exactly one application data sub-block per
// spec.md §4.4, then tolerates any further sub-blocks (Netscape-style
// multi-block payloads) until the terminator. Only the first sub-block is
// kept as Data. If the identifier+auth spell "NETSCAPE2.0", every sub-block
// of the form 0x01 <u16-LE> is decoded as the loop count; the last one wins.
func readApplicationExtension(c *Cursor) (Block, int, error) {
	sz, err := c.NextU8()
	if err != nil {
		return Block{}, -1, err
	}
	if sz != 11 {
		return Block{}, -1, newErr(ErrUnexpectedLiteral, c.Position()-1, "application block size %d, want 11", sz)
	}
	idBytes, err := c.Take(8)
	if err != nil {
		return Block{}, -1, err
	}
	authBytes, err := c.Take(3)
	if err != nil {
		return Block{}, -1, err
	}

	ext := &ApplicationExtension{}
	copy(ext.Identifier[:], idBytes)
	copy(ext.Auth[:], authBytes)

	isNetscape := bytes.Equal(append(append([]byte{}, idBytes...), authBytes...), netscapeIdent)

	loopCount := -1
	first := true
	for {
		n, err := c.NextU8()
		if err != nil {
			return Block{}, -1, err
		}
		if n == 0 {
			break
		}
		sub, err := c.Take(int(n))
		if err != nil {
			return Block{}, -1, err
		}
		if first {
			ext.Data = append([]byte(nil), sub...)
			first = false
		}
		if isNetscape && len(sub) == 3 && sub[0] == 1 {
			loopCount = int(sub[1]) | int(sub[2])<<8
		}
	}
	return Block{ApplicationExtension: ext}, loopCount, nil
}

func readPlainText(c *Cursor) (*PlainTextExtension, error) {
	sz, err := c.NextU8()
	if err != nil {
		return nil, err
	}
	if sz != 12 {
		return nil, newErr(ErrUnexpectedLiteral, c.Position()-1, "plain text block size %d, want 12", sz)
	}
	header, err := c.Take(12)
	if err != nil {
		return nil, err
	}
	text, err := readSubBlocksConcat(c)
	if err != nil {
		return nil, err
	}

	pt := &PlainTextExtension{
		GridLeft:         u16le(header, 0),
		GridTop:          u16le(header, 2),
		GridWidth:        u16le(header, 4),
		GridHeight:       u16le(header, 6),
		CellWidth:        header[8],
		CellHeight:       header[9],
		TextFgColorIndex: header[10],
		TextBgColorIndex: header[11],
		Text:             text,
	}
	return pt, nil
}

func u16le(b []byte, off int) uint16 {
	return uint16(b[off]) | uint16(b[off+1])<<8
}

func readTableBasedImage(c *Cursor) (*TableBasedImage, error) {
	left, err := c.NextU16LE()
	if err != nil {
		return nil, err
	}
	top, err := c.NextU16LE()
	if err != nil {
		return nil, err
	}
	width, err := c.NextU16LE()
	if err != nil {
		return nil, err
	}
	height, err := c.NextU16LE()
	if err != nil {
		return nil, err
	}
	packed, err := c.NextU8()
	if err != nil {
		return nil, err
	}

	desc := ImageDescriptor{Left: left, Top: top, Width: width, Height: height, Packed: packed}

	img := &TableBasedImage{Descriptor: desc}

	if desc.HasLocalColorTable() {
		pal, err := c.Take(desc.LocalColorTableSize())
		if err != nil {
			return nil, err
		}
		img.LocalPalette = append([]byte(nil), pal...)
	}

	minCodeSize, err := c.NextU8()
	if err != nil {
		return nil, err
	}
	img.LzwMinCodeSize = minCodeSize

	for {
		n, err := c.NextU8()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		sub, err := c.Take(int(n))
		if err != nil {
			return nil, err
		}
		img.DataBlocks = append(img.DataBlocks, append([]byte(nil), sub...))
	}
	return img, nil
}

// readSubBlocksConcat reads data sub-blocks until a zero-length terminator
// and concatenates their payloads.
func readSubBlocksConcat(c *Cursor) ([]byte, error) {
	var out []byte
	for {
		n, err := c.NextU8()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return out, nil
		}
		sub, err := c.Take(int(n))
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
}

func consumeTerminator(c *Cursor) error {
	b, err := c.NextU8()
	if err != nil {
		return err
	}
	if b != 0 {
		return newErr(ErrUnexpectedLiteral, c.Position()-1, "expected block terminator, found 0x%02X", b)
	}
	return nil
}
