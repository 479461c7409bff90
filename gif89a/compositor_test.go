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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComposite_SingleFrame(t *testing.T) {
	palette := solidPalette([3]byte{255, 0, 0}, [3]byte{0, 255, 0})
	data := newGIFBuilder("89a", 2, 1, palette, 0).
		image(0, 0, 2, 1, nil, false, 2, []byte{0, 1}).
		trailer()

	result, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, result.Frames, 1)

	frame := result.Frames[0]
	require.Equal(t, 2, frame.Width)
	require.Equal(t, 1, frame.Height)
	require.Equal(t, uint32(0xFF0000), frame.Pixels[0])
	require.Equal(t, uint32(0x00FF00), frame.Pixels[1])
}

func TestComposite_TransparencySkipsPixel(t *testing.T) {
	palette := solidPalette([3]byte{255, 0, 0}, [3]byte{0, 255, 0})
	data := newGIFBuilder("89a", 2, 1, palette, 0).
		graphicControl(DisposalNotRequired, 0, 1, true). // index 1 is transparent
		image(0, 0, 2, 1, nil, false, 2, []byte{0, 1}).
		trailer()

	result, err := Decode(data)
	require.NoError(t, err)

	frame := result.Frames[0]
	require.Equal(t, uint32(0xFF0000), frame.Pixels[0])
	require.Equal(t, uint32(0xFF0000), frame.Pixels[1], "transparent index leaves the background canvas color")
}

func TestComposite_RestoreToBackgroundClearsSubImage(t *testing.T) {
	palette := solidPalette([3]byte{0, 0, 0}, [3]byte{255, 255, 255})
	data := newGIFBuilder("89a", 2, 1, palette, 0).
		graphicControl(DisposalRestoreToBackground, 0, 0, false).
		image(0, 0, 2, 1, nil, false, 2, []byte{1, 1}).
		graphicControl(DisposalNotRequired, 0, 0, false).
		image(0, 0, 1, 1, nil, false, 2, []byte{1}).
		trailer()

	result, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, result.Frames, 2)

	// First frame paints both pixels white.
	require.Equal(t, uint32(0xFFFFFF), result.Frames[0].Pixels[0])
	require.Equal(t, uint32(0xFFFFFF), result.Frames[0].Pixels[1])

	// RestoreToBackground after frame 1 clears the sub-image to the
	// background color before frame 2 paints pixel 0 again.
	require.Equal(t, uint32(0xFFFFFF), result.Frames[1].Pixels[0])
	require.Equal(t, uint32(0), result.Frames[1].Pixels[1])
}

func TestComposite_RestoreToPreviousUndoesFrame(t *testing.T) {
	palette := solidPalette([3]byte{0, 0, 0}, [3]byte{255, 255, 255})
	data := newGIFBuilder("89a", 1, 1, palette, 0).
		image(0, 0, 1, 1, nil, false, 2, []byte{0}). // base frame: black
		graphicControl(DisposalRestoreToPrevious, 0, 0, false).
		image(0, 0, 1, 1, nil, false, 2, []byte{1}). // overlay: white, then undone
		image(0, 0, 1, 1, nil, false, 2, []byte{0}). // third frame sees restored canvas
		trailer()

	result, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, result.Frames, 3)

	require.Equal(t, uint32(0), result.Frames[0].Pixels[0])
	require.Equal(t, uint32(0xFFFFFF), result.Frames[1].Pixels[0])
	require.Equal(t, uint32(0), result.Frames[2].Pixels[0])
}

func TestComposite_Interlaced4x4RowOrder(t *testing.T) {
	// A 4x4 image with distinct row values lets deinterleaving be checked
	// by reading back rows 0..3 of the composited canvas in natural order.
	rows := [][]byte{
		{0, 0, 0, 0}, // row 0 (pass 1)
		{1, 1, 1, 1}, // row 1 (pass 4)
		{2, 2, 2, 2}, // row 2 (pass 3)
		{3, 3, 3, 3}, // row 3 (pass 4)
	}
	// Interlaced encoding order for h=4 is passes: start 0 step 8 -> row 0;
	// start 4 step 8 -> none; start 2 step 4 -> row 2; start 1 step 2 -> rows 1, 3.
	var indices []byte
	indices = append(indices, rows[0]...)
	indices = append(indices, rows[2]...)
	indices = append(indices, rows[1]...)
	indices = append(indices, rows[3]...)

	palette := solidPalette([3]byte{0, 0, 0}, [3]byte{64, 64, 64}, [3]byte{128, 128, 128}, [3]byte{192, 192, 192})
	data := newGIFBuilder("89a", 4, 4, palette, 0).
		image(0, 0, 4, 4, nil, true, 3, indices).
		trailer()

	result, err := Decode(data)
	require.NoError(t, err)

	frame := result.Frames[0]
	for row := 0; row < 4; row++ {
		want := paletteColor(palette, row)
		for col := 0; col < 4; col++ {
			require.Equal(t, want, frame.Pixels[row*4+col], "row %d col %d", row, col)
		}
	}
}

func TestComposite_SubImageClippedToCanvas(t *testing.T) {
	palette := solidPalette([3]byte{0, 0, 0}, [3]byte{255, 255, 255})
	data := newGIFBuilder("89a", 2, 2, palette, 0).
		image(1, 1, 2, 2, nil, false, 2, []byte{1, 1, 1, 1}).
		trailer()

	result, err := Decode(data)
	require.NoError(t, err)

	frame := result.Frames[0]
	require.Equal(t, uint32(0xFFFFFF), frame.Pixels[1*2+1], "only the in-bounds corner is painted")
	require.Equal(t, uint32(0), frame.Pixels[0])
}

func TestComposite_OversizedCanvasRejected(t *testing.T) {
	palette := solidPalette([3]byte{0, 0, 0}, [3]byte{255, 255, 255})
	data := newGIFBuilder("89a", 100, 100, palette, 0).
		image(0, 0, 100, 100, nil, false, 2, make([]byte, 100*100)).
		trailer()

	_, err := Decode(data, WithMaxCanvas(50, 50))
	require.Error(t, err)

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, ErrOversizedCanvas, decErr.Kind)
}

func TestComposite_LenientModeKeepsPriorFrames(t *testing.T) {
	palette := solidPalette([3]byte{0, 0, 0}, [3]byte{255, 255, 255})
	b := newGIFBuilder("89a", 1, 1, palette, 0).
		image(0, 0, 1, 1, nil, false, 2, []byte{0})
	// Hand-craft a malformed second image: claims 2x2 but no pixel data at all.
	b.buf.WriteByte(imageDescriptorTag)
	writeU16(&b.buf, 0)
	writeU16(&b.buf, 0)
	writeU16(&b.buf, 2)
	writeU16(&b.buf, 2)
	b.buf.WriteByte(0)
	b.buf.WriteByte(2) // min code size
	b.buf.WriteByte(0) // zero-length sub-block: empty payload
	data := append(b.buf.Bytes(), trailerTag)

	result, err := Decode(data)
	require.Error(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Frames, 1, "the first, well-formed frame is still returned")
}

func TestComposite_StrictModeFailsWholeDecode(t *testing.T) {
	palette := solidPalette([3]byte{0, 0, 0}, [3]byte{255, 255, 255})
	b := newGIFBuilder("89a", 1, 1, palette, 0).
		image(0, 0, 1, 1, nil, false, 2, []byte{0})
	b.buf.WriteByte(imageDescriptorTag)
	writeU16(&b.buf, 0)
	writeU16(&b.buf, 0)
	writeU16(&b.buf, 2)
	writeU16(&b.buf, 2)
	b.buf.WriteByte(0)
	b.buf.WriteByte(2)
	b.buf.WriteByte(0)
	data := append(b.buf.Bytes(), trailerTag)

	result, err := Decode(data, WithStrict(true))
	require.Error(t, err)
	require.Nil(t, result)
}
