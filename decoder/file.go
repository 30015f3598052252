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

package decoder

import (
	"strings"

	"github.com/unpakku/unpakku/stream"
)

// File is the value passed between unpack stages: a logical relative path
// paired with a seekable byte stream. Consumers may reseek the stream but
// must not mutate the bytes.
type File struct {
	Path string
	Data *stream.Stream
}

func NewFile(p string, d []byte) *File {
	return &File{
		Path: p,
		Data: stream.New(d),
	}
}

// WithExt returns the file path with the extension of its last element
// substituted. The replacement extension must include the leading dot.
func (f *File) WithExt(ext string) string {
	p := f.Path

	if i := strings.LastIndex(p, "/"); i >= 0 {
		if j := strings.LastIndex(p[i+1:], "."); j > 0 {
			return p[:i+1+j] + ext
		}
		return p + ext
	}

	if j := strings.LastIndex(p, "."); j > 0 {
		return p[:j] + ext
	}

	return p + ext
}

// HasExt reports whether the file path ends with the given extension,
// compared case insensitively.
func (f *File) HasExt(ext string) bool {
	return strings.HasSuffix(strings.ToLower(f.Path), strings.ToLower(ext))
}
