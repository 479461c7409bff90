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

func TestCursor_NextU8(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02})

	b, err := c.NextU8()
	require.NoError(t, err)
	require.Equal(t, byte(0x01), b)
	require.Equal(t, 1, c.Position())

	b, err = c.NextU8()
	require.NoError(t, err)
	require.Equal(t, byte(0x02), b)

	_, err = c.NextU8()
	require.Error(t, err)

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, ErrUnexpectedEof, decErr.Kind)
}

func TestCursor_NextU16LE(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x00})

	v, err := c.NextU16LE()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0201), v)

	_, err = c.NextU16LE()
	require.Error(t, err)
}

func TestCursor_Take(t *testing.T) {
	c := NewCursor([]byte("GIF89a"))

	b, err := c.Take(3)
	require.NoError(t, err)
	require.Equal(t, []byte("GIF"), b)

	_, err = c.Take(10)
	require.Error(t, err)
	require.Equal(t, 3, c.Position(), "a failed Take must not advance the cursor")
}

func TestCursor_ExpectLiteral(t *testing.T) {
	c := NewCursor([]byte("GIF89a"))
	require.NoError(t, c.ExpectLiteral([]byte("GIF")))

	c2 := NewCursor([]byte("XYZ"))
	err := c2.ExpectLiteral([]byte("GIF"))
	require.Error(t, err)

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	require.Equal(t, ErrUnexpectedLiteral, decErr.Kind)
	require.Equal(t, []byte("GIF"), decErr.Expected)
	require.Equal(t, []byte("XYZ"), decErr.Found)
}

func TestCursor_AtEnd(t *testing.T) {
	c := NewCursor([]byte{trailerTag})
	require.True(t, c.AtEnd())

	c2 := NewCursor([]byte{})
	require.True(t, c2.AtEnd())

	c3 := NewCursor([]byte{0x01, trailerTag})
	require.False(t, c3.AtEnd())
}
