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

// Package gif89a decodes a complete in-memory GIF87a/GIF89a byte stream into
// a sequence of fully composited animation frames. File I/O, display, and
// playback timing are the caller's responsibility; this package only turns
// bytes into pixels.
package gif89a

// Section indicators.
const (
	extensionTag       = 0x21
	imageDescriptorTag = 0x2C
	trailerTag         = 0x3B
)

// Extension labels.
const (
	labelPlainText      = 0x01
	labelGraphicControl = 0xF9
	labelComment        = 0xFE
	labelApplication    = 0xFF
)

// Packed-field masks of LogicalScreen; colorTableSizeMask also applies to
// ImageDescriptor.
const (
	fieldGlobalColorTable = 1 << 7
	fieldSortFlag         = 1 << 3
	colorTableSizeMask    = 0x07
)

const (
	fieldLocalColorTable = 1 << 7
	fieldInterlace       = 1 << 6
	fieldLocalSortFlag   = 1 << 5
)

// Stream is the immutable result of parsing a GIF data stream (spec.md §3,
// "Parsed stream").
type Stream struct {
	Version       string
	Screen        LogicalScreen
	GlobalPalette []byte // 3*N bytes, N RGB triples, nil if absent
	Blocks        []Block

	// LoopCount is -1 if no NETSCAPE2.0 application extension was present,
	// 0 if it requested infinite looping, or the requested iteration count
	// otherwise. See SPEC_FULL.md §1.1.
	LoopCount int
}

// LogicalScreen is the 7-byte Logical Screen Descriptor (spec.md §3).
type LogicalScreen struct {
	Width            uint16
	Height           uint16
	Packed           byte
	BackgroundIndex  byte
	PixelAspectRatio byte
}

// HasGlobalColorTable reports the packed field's bit 7.
func (s LogicalScreen) HasGlobalColorTable() bool {
	return s.Packed&fieldGlobalColorTable != 0
}

// ColorResolution returns the packed field's bits 6..4, plus one.
func (s LogicalScreen) ColorResolution() int {
	return int((s.Packed>>4)&0x07) + 1
}

// SortFlag reports the packed field's bit 3.
func (s LogicalScreen) SortFlag() bool {
	return s.Packed&fieldSortFlag != 0
}

// GlobalColorTableSize returns the byte length of the global color table
// implied by the packed field's bits 2..0: 3 * 2^(s+1).
func (s LogicalScreen) GlobalColorTableSize() int {
	return colorTableByteSize(s.Packed)
}

func colorTableByteSize(packed byte) int {
	n := packed & colorTableSizeMask
	return 3 * (1 << (uint(n) + 1))
}

// ImageDescriptor is the 9-byte Image Descriptor (spec.md §3).
type ImageDescriptor struct {
	Left   uint16
	Top    uint16
	Width  uint16
	Height uint16
	Packed byte
}

// HasLocalColorTable reports the packed field's bit 7.
func (d ImageDescriptor) HasLocalColorTable() bool {
	return d.Packed&fieldLocalColorTable != 0
}

// Interlace reports the packed field's bit 6.
func (d ImageDescriptor) Interlace() bool {
	return d.Packed&fieldInterlace != 0
}

// SortFlag reports the packed field's bit 5.
func (d ImageDescriptor) SortFlag() bool {
	return d.Packed&fieldLocalSortFlag != 0
}

// LocalColorTableSize returns the byte length of the local color table
// implied by the packed field's bits 2..0.
func (d ImageDescriptor) LocalColorTableSize() int {
	return colorTableByteSize(d.Packed)
}

// Disposal is the GraphicControl disposal method (spec.md §3).
type Disposal int

const (
	DisposalNotRequired Disposal = iota
	DisposalDoNotDispose
	DisposalRestoreToBackground
	DisposalRestoreToPrevious
	DisposalToBeDefined4
	DisposalToBeDefined5
	DisposalToBeDefined6
	DisposalToBeDefined7
)

// GraphicControl is the Graphic Control Extension block (spec.md §3).
type GraphicControl struct {
	Packed           byte
	DelayTimeCs      uint16
	TransparentIndex byte
}

// DisposalMethod returns the packed field's bits 4..2.
func (g GraphicControl) DisposalMethod() Disposal {
	return Disposal((g.Packed >> 2) & 0x07)
}

// UserInputFlag reports the packed field's bit 1.
func (g GraphicControl) UserInputFlag() bool {
	return g.Packed&0x02 != 0
}

// TransparentColorFlag reports the packed field's bit 0.
func (g GraphicControl) TransparentColorFlag() bool {
	return g.Packed&0x01 != 0
}

// TableBasedImage is one image block: descriptor, optional local palette,
// and LZW-compressed pixel data split into data sub-blocks (spec.md §3).
type TableBasedImage struct {
	Descriptor     ImageDescriptor
	LocalPalette   []byte
	LzwMinCodeSize byte
	DataBlocks     [][]byte
}

// PlainTextExtension is parsed but, per spec.md's Non-goals, never
// rasterized. SPEC_FULL.md §1.3 keeps the decoded fields so a caller can
// render it independently.
type PlainTextExtension struct {
	GridLeft, GridTop     uint16
	GridWidth, GridHeight uint16
	CellWidth, CellHeight byte
	TextFgColorIndex      byte
	TextBgColorIndex      byte
	Text                  []byte
}

// ApplicationExtension passes through unmodified; it never consumes a
// pending GraphicControl (spec.md §3).
type ApplicationExtension struct {
	Identifier [8]byte
	Auth       [3]byte
	Data       []byte
}

// CommentExtension passes through unmodified.
type CommentExtension struct {
	Data []byte
}

// Block is the closed, tagged union of GIF block kinds. Exactly one of the
// typed fields is non-nil. There is no open extension point, matching
// spec.md §9 ("Polymorphic blocks... a closed tagged variant").
type Block struct {
	GraphicControl       *GraphicControl
	TableBasedImage      *TableBasedImage
	PlainTextExtension   *PlainTextExtension
	ApplicationExtension *ApplicationExtension
	CommentExtension     *CommentExtension
}
