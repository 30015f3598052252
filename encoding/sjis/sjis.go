/*
 *  MIT License
 *
 *  Copyright (c) 2025 Unpakku Contributors
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

// Package sjis transcodes shift-JIS member names stored in game archives
// to UTF-8 before they reach the naming resolver.
package sjis

import (
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Decode converts shift-JIS bytes to a UTF-8 string. Plain ASCII passes
// through unchanged. Invalid shift-JIS sequences decode to U+FFFD, so a
// broken stored name never aborts an unpack; the raw bytes are returned
// as a string only if the transform itself reports an error.
func Decode(b []byte) string {
	if len(b) < 1 {
		return ""
	}

	if isASCII(b) {
		return string(b)
	}

	if d, _, e := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b); e != nil {
		return string(b)
	} else {
		return string(d)
	}
}

func isASCII(b []byte) bool {
	for i := range b {
		if b[i] >= 0x80 {
			return false
		}
	}
	return true
}
