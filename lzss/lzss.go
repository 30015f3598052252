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

// Package lzss implements the byte wise LZSS variant used by the KCAP
// archive family: a 4 KiB ring dictionary starting at position 0xFEE,
// LSB-first control bits selecting literal bytes or (offset, length)
// dictionary copies of 3 to 18 bytes.
package lzss

import (
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

const pkgName = "unpakku/lzss"

const (
	ErrorParamEmpty liberr.CodeError = iota + liberr.MinAvailable + 80
	ErrorTruncated
)

func init() {
	if liberr.ExistInMapMessage(ErrorParamEmpty) {
		panic(fmt.Errorf("error code collision %s", pkgName))
	}
	liberr.RegisterIdFctMessage(ErrorParamEmpty, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case liberr.UnknownError:
		return liberr.NullMessage
	case ErrorParamEmpty:
		return "given parameters is empty"
	case ErrorTruncated:
		return "compressed stream ends inside a token"
	}

	return liberr.NullMessage
}

const (
	dictSize = 0x1000
	dictFill = 0x00
	dictInit = 0xFEE

	minMatch = 3
)

// Decompress expands a byte wise LZSS stream to exactly sizeOrig bytes.
// Trailing compressed input beyond the requested output size is ignored;
// a stream ending inside a copy token fails with ErrorTruncated.
func Decompress(src []byte, sizeOrig int) ([]byte, liberr.Error) {
	if sizeOrig < 0 {
		return nil, ErrorParamEmpty.Error(nil)
	}

	var (
		dst = make([]byte, 0, sizeOrig)
		win [dictSize]byte
		pos = dictInit
		i   int
	)

	for j := range win {
		win[j] = dictFill
	}

	put := func(b byte) {
		dst = append(dst, b)
		win[pos] = b
		pos = (pos + 1) % dictSize
	}

	for len(dst) < sizeOrig {
		if i >= len(src) {
			return nil, ErrorTruncated.Error(nil)
		}

		ctl := src[i]
		i++

		for bit := 0; bit < 8 && len(dst) < sizeOrig; bit++ {
			if ctl&(1<<bit) != 0 {
				if i >= len(src) {
					return nil, ErrorTruncated.Error(nil)
				}
				put(src[i])
				i++
				continue
			}

			if i+1 >= len(src) {
				return nil, ErrorTruncated.Error(nil)
			}

			off := int(src[i]) | int(src[i+1]&0xF0)<<4
			cnt := int(src[i+1]&0x0F) + minMatch
			i += 2

			for k := 0; k < cnt && len(dst) < sizeOrig; k++ {
				put(win[(off+k)%dictSize])
			}
		}
	}

	return dst, nil
}
