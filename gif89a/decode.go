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

// defaultMaxCanvasDim bounds canvas width and height absent an explicit
// WithMaxCanvas option, guarding against a crafted header claiming an
// absurd logical screen size (spec.md §5, "OversizedCanvas").
const defaultMaxCanvasDim = 16384

type decodeOptions struct {
	maxCanvasWidth  int
	maxCanvasHeight int
	strict          bool
}

func defaultOptions() decodeOptions {
	return decodeOptions{
		maxCanvasWidth:  defaultMaxCanvasDim,
		maxCanvasHeight: defaultMaxCanvasDim,
		strict:          false,
	}
}

// Option configures Decode.
type Option func(*decodeOptions)

// WithMaxCanvas overrides the default 16384x16384 ceiling on logical screen
// dimensions. A zero or negative value on either axis is ignored.
func WithMaxCanvas(width, height int) Option {
	return func(o *decodeOptions) {
		if width > 0 {
			o.maxCanvasWidth = width
		}
		if height > 0 {
			o.maxCanvasHeight = height
		}
	}
}

// WithStrict makes Decode fail the whole stream on the first per-image
// compositing error instead of returning the frames composited so far
// (spec.md §7). Parse-level errors always fail the whole stream regardless
// of this option.
func WithStrict(strict bool) Option {
	return func(o *decodeOptions) {
		o.strict = strict
	}
}

// Decode parses and fully composites a complete in-memory GIF87a/GIF89a
// byte stream, returning every animation frame as a flat ARGB buffer.
//
// A malformed header, logical screen descriptor, or block grammar fails the
// whole decode. A malformed individual image (bad LZW code, truncated pixel
// data) is, by default, tolerated: Decode returns every frame successfully
// composited before the failure alongside the error. Pass WithStrict(true)
// to fail the whole decode on the first such error instead.
func Decode(data []byte, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	stream, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return composite(stream, o)
}
