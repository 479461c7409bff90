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

// Frame is one fully composited, independent snapshot of the canvas
// (spec.md §3, "Frame"). Pixels is row-major, top-to-bottom,
// canvas_width*canvas_height ARGB values with the alpha byte always zero.
type Frame struct {
	DelayCs *uint16
	Pixels  []uint32
	Width   int
	Height  int
}

// Result is the output of Decode: the composited animation plus the
// NETSCAPE2.0 loop count (SPEC_FULL.md §1.1), -1 if absent.
type Result struct {
	Frames    []Frame
	LoopCount int
}

// interlacePasses implements GIF89a Appendix E: starting row, row step, for
// each of the four interlace passes (SPEC_FULL.md §1.2).
var interlacePasses = [4]struct{ start, step int }{
	{0, 8},
	{4, 8},
	{2, 4},
	{1, 2},
}

type compositor struct {
	opts          decodeOptions
	canvas        []uint32
	width         int
	height        int
	bgColor       uint32
	globalPalette []byte
}

func newCompositor(screen LogicalScreen, globalPalette []byte, opts decodeOptions) (*compositor, error) {
	w, h := int(screen.Width), int(screen.Height)
	if w <= 0 || h <= 0 {
		return nil, newErr(ErrOversizedCanvas, 0, "canvas dimensions must be positive, got %dx%d", w, h)
	}
	if w > opts.maxCanvasWidth || h > opts.maxCanvasHeight {
		return nil, newErr(ErrOversizedCanvas, 0, "canvas %dx%d exceeds configured maximum %dx%d", w, h, opts.maxCanvasWidth, opts.maxCanvasHeight)
	}

	var bg uint32
	if screen.HasGlobalColorTable() {
		idx := int(screen.BackgroundIndex)
		if idx < len(globalPalette)/3 {
			bg = paletteColor(globalPalette, idx)
		}
	}

	canvas := make([]uint32, w*h)
	for i := range canvas {
		canvas[i] = bg
	}

	return &compositor{opts: opts, canvas: canvas, width: w, height: h, bgColor: bg, globalPalette: globalPalette}, nil
}

func paletteColor(palette []byte, index int) uint32 {
	off := index * 3
	r, g, b := palette[off], palette[off+1], palette[off+2]
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// snapshot returns an owned copy of the current canvas.
func (cm *compositor) snapshot() []uint32 {
	out := make([]uint32, len(cm.canvas))
	copy(out, cm.canvas)
	return out
}

// composite runs the compositor over every block of a parsed stream
// (spec.md §4.6), returning whatever frames were successfully produced. In
// non-strict mode a per-image failure stops compositing and returns the
// frames composited so far alongside the error; in strict mode the error is
// returned with no frames.
func composite(s *Stream, opts decodeOptions) (*Result, error) {
	cm, err := newCompositor(s.Screen, s.GlobalPalette, opts)
	if err != nil {
		return nil, err
	}

	var frames []Frame
	var pending *GraphicControl

	for _, block := range s.Blocks {
		switch {
		case block.ApplicationExtension != nil, block.CommentExtension != nil:
			continue

		case block.GraphicControl != nil:
			pending = block.GraphicControl

		case block.PlainTextExtension != nil:
			// Not rasterized (spec.md Non-goals); discard any bound control.
			pending = nil

		case block.TableBasedImage != nil:
			img := block.TableBasedImage
			frame, err := cm.renderImage(img, pending)
			if err != nil {
				if opts.strict {
					return nil, err
				}
				return &Result{Frames: frames, LoopCount: s.LoopCount}, err
			}
			frames = append(frames, frame)
			pending = nil
		}
	}

	return &Result{Frames: frames, LoopCount: s.LoopCount}, nil
}

// renderImage performs one image's decode-and-composite step (spec.md
// §4.6 steps 1-8). It returns the emitted frame; the disposal method is
// applied to the canvas before it returns.
func (cm *compositor) renderImage(img *TableBasedImage, control *GraphicControl) (Frame, error) {
	desc := img.Descriptor

	palette := img.LocalPalette
	if palette == nil {
		palette = cm.globalPalette
	}
	if palette == nil {
		return Frame{}, newErr(ErrInvalidPalette, 0, "no palette in scope for image")
	}
	if len(palette)%3 != 0 {
		return Frame{}, newErr(ErrInvalidPalette, 0, "palette length %d not a multiple of 3", len(palette))
	}

	var payload []byte
	for _, db := range img.DataBlocks {
		payload = append(payload, db...)
	}

	indices, err := decodeLZW(payload, int(img.LzwMinCodeSize))
	if err != nil {
		return Frame{}, err
	}

	w, h := int(desc.Width), int(desc.Height)
	need := w * h
	if len(indices) < need {
		return Frame{}, newErr(ErrTruncatedImage, 0, "image needs %d indices, decoded %d", need, len(indices))
	}

	var transparent uint32
	hasTransparent := false
	if control != nil && control.TransparentColorFlag() {
		tidx := int(control.TransparentIndex)
		if tidx < len(palette)/3 {
			transparent = paletteColor(palette, tidx)
			hasTransparent = true
		}
	}

	disposal := DisposalNotRequired
	if control != nil {
		disposal = control.DisposalMethod()
	}
	var preRender []uint32
	if disposal == DisposalRestoreToPrevious {
		preRender = cm.snapshot()
	}

	rowOrder := renderRowOrder(h, desc.Interlace())

	for srcRow, dstRow := range rowOrder {
		for col := 0; col < w; col++ {
			idx := int(indices[srcRow*w+col])
			if idx >= len(palette)/3 {
				continue
			}
			px := paletteColor(palette, idx)
			if hasTransparent && px == transparent {
				continue
			}

			canvasRow := int(desc.Top) + dstRow
			canvasCol := int(desc.Left) + col
			if canvasRow < 0 || canvasRow >= cm.height || canvasCol < 0 || canvasCol >= cm.width {
				continue // clip: sub-image partly outside the canvas
			}
			cm.canvas[canvasRow*cm.width+canvasCol] = px
		}
	}

	frame := Frame{Pixels: cm.snapshot(), Width: cm.width, Height: cm.height}
	if control != nil {
		delay := control.DelayTimeCs
		frame.DelayCs = &delay
	}

	switch disposal {
	case DisposalRestoreToBackground:
		cm.fillRect(int(desc.Left), int(desc.Top), w, h, cm.bgColor)
	case DisposalRestoreToPrevious:
		cm.canvas = preRender
	}

	return frame, nil
}

func (cm *compositor) fillRect(left, top, w, h int, color uint32) {
	for row := top; row < top+h; row++ {
		if row < 0 || row >= cm.height {
			continue
		}
		for col := left; col < left+w; col++ {
			if col < 0 || col >= cm.width {
				continue
			}
			cm.canvas[row*cm.width+col] = color
		}
	}
}

// renderRowOrder returns, for each source row index i in [0, h), the
// destination row within the sub-image it is written to. Non-interlaced
// images are the identity mapping; interlaced images deinterleave through
// the four Appendix E passes (SPEC_FULL.md §1.2).
func renderRowOrder(h int, interlaced bool) []int {
	order := make([]int, h)
	if !interlaced {
		for i := range order {
			order[i] = i
		}
		return order
	}

	dst := 0
	for _, pass := range interlacePasses {
		for row := pass.start; row < h; row += pass.step {
			order[dst] = row
			dst++
		}
	}
	// order[pos] is the destination row for the pos-th row as it appears in
	// the decompressed index stream, which already walks the four passes in
	// sequence — exactly the mapping renderImage needs.
	return order
}
