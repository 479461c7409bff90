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

import "fmt"

// ErrorKind tags a DecodeError with the taxonomy entry it belongs to.
type ErrorKind int

const (
	ErrUnexpectedEof ErrorKind = iota
	ErrUnexpectedLiteral
	ErrUnknownBlockTag
	ErrUnknownExtensionLabel
	ErrInvalidPalette
	ErrInvalidLzwCode
	ErrTruncatedImage
	ErrOversizedCanvas
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedEof:
		return "UnexpectedEof"
	case ErrUnexpectedLiteral:
		return "UnexpectedLiteral"
	case ErrUnknownBlockTag:
		return "UnknownBlockTag"
	case ErrUnknownExtensionLabel:
		return "UnknownExtensionLabel"
	case ErrInvalidPalette:
		return "InvalidPalette"
	case ErrInvalidLzwCode:
		return "InvalidLzwCode"
	case ErrTruncatedImage:
		return "TruncatedImage"
	case ErrOversizedCanvas:
		return "OversizedCanvas"
	default:
		return "Unknown"
	}
}

// DecodeError is the single error type surfaced by this package, per
// spec.md §7. Kind discriminates the taxonomy entry; callers that need to
// branch on a specific failure should use errors.As and inspect Kind.
type DecodeError struct {
	Kind   ErrorKind
	Offset int
	Msg    string

	// Expected/Found are only set for UnexpectedLiteral.
	Expected []byte
	Found    []byte
}

func (e *DecodeError) Error() string {
	if e.Kind == ErrUnexpectedLiteral {
		return fmt.Sprintf("gif: %s at offset %d: expected %q, found %q", e.Kind, e.Offset, e.Expected, e.Found)
	}
	return fmt.Sprintf("gif: %s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

func newErr(kind ErrorKind, offset int, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
