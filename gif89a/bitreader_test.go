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

func TestBitReader_LSBFirst(t *testing.T) {
	// byte 0b10110100 read 4 bits at a time, LSB-first, yields 0b0100 then 0b1011.
	r := newBitReader([]byte{0b10110100})

	require.False(t, r.eof(4))
	require.Equal(t, uint16(0b0100), r.read(4))

	require.False(t, r.eof(4))
	require.Equal(t, uint16(0b1011), r.read(4))

	require.True(t, r.eof(1))
}

func TestBitReader_CrossesByteBoundary(t *testing.T) {
	// Two bytes, read as two 6-bit codes and one 4-bit code packed LSB-first
	// across the boundary.
	r := newBitReader([]byte{0b11000001, 0b00001101})

	c1 := r.read(6) // low 6 bits of byte 0
	c2 := r.read(6) // top 2 bits of byte 0, low 4 of byte 1
	c3 := r.read(4) // top 4 bits of byte 1

	require.Equal(t, uint16(0b000001), c1)
	require.Equal(t, uint16(0b110111), c2)
	require.Equal(t, uint16(0b0000), c3)
}

func TestBitReader_EofExact(t *testing.T) {
	r := newBitReader([]byte{0xFF})
	require.False(t, r.eof(8))
	r.read(8)
	require.True(t, r.eof(1))
}
