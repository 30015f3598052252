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

package stream

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	liberr "github.com/nabbar/golib/errors"
)

// Stream is a random-access view over an in-memory blob with endian-aware
// primitive reads. All reads advance the current position; reads past the
// end of the blob fail with ErrorEndOfStream and do not move the position.
type Stream struct {
	d []byte
	p int64
}

func New(d []byte) *Stream {
	return &Stream{
		d: d,
		p: 0,
	}
}

// NewFromReader drains the given reader fully into memory.
// Archive decoders assume O(1) seek, so a random access backing is required.
func NewFromReader(r io.Reader) (*Stream, liberr.Error) {
	if r == nil {
		return nil, ErrorParamEmpty.Error(nil)
	}

	if b, e := io.ReadAll(r); e != nil {
		return nil, ErrorEndOfStream.Error(e)
	} else {
		return New(b), nil
	}
}

func NewFromFile(p string) (*Stream, liberr.Error) {
	if len(p) < 1 {
		return nil, ErrorParamEmpty.Error(nil)
	}

	// #nosec
	if b, e := os.ReadFile(p); e != nil {
		return nil, ErrorEndOfStream.Error(e)
	} else {
		return New(b), nil
	}
}

func (o *Stream) Size() int64 {
	return int64(len(o.d))
}

func (o *Stream) Tell() int64 {
	return o.p
}

func (o *Stream) EOF() bool {
	return o.p >= int64(len(o.d))
}

func (o *Stream) Remaining() int64 {
	return int64(len(o.d)) - o.p
}

// Bytes returns the whole underlying blob independently of the current
// position. Callers must not mutate the returned slice.
func (o *Stream) Bytes() []byte {
	return o.d
}

func (o *Stream) Seek(off int64) liberr.Error {
	if off < 0 || off > int64(len(o.d)) {
		return ErrorInvalidSeek.Error(nil)
	}

	o.p = off
	return nil
}

func (o *Stream) Skip(n int64) liberr.Error {
	return o.Seek(o.p + n)
}

func (o *Stream) Read(n int64) ([]byte, liberr.Error) {
	if n < 0 {
		return nil, ErrorInvalidSeek.Error(nil)
	} else if o.p+n > int64(len(o.d)) {
		return nil, ErrorEndOfStream.Error(nil)
	}

	b := o.d[o.p : o.p+n]
	o.p += n

	return b, nil
}

// ReadToZero reads up to the next zero byte, consuming but not returning
// the terminator. With max > 0 the scan is bounded: if no terminator is
// found within max bytes, the full span is returned and the position is
// left at the bound.
func (o *Stream) ReadToZero(max int64) ([]byte, liberr.Error) {
	if o.p > int64(len(o.d)) {
		return nil, ErrorEndOfStream.Error(nil)
	}

	lim := int64(len(o.d)) - o.p
	if max > 0 && max < lim {
		lim = max
	}

	s := o.d[o.p : o.p+lim]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		o.p += int64(i) + 1
		return s[:i], nil
	}

	o.p += lim
	return s, nil
}

func (o *Stream) ReadToEOF() []byte {
	b := o.d[o.p:]
	o.p = int64(len(o.d))
	return b
}

func (o *Stream) ReadU8() (uint8, liberr.Error) {
	if b, e := o.Read(1); e != nil {
		return 0, e
	} else {
		return b[0], nil
	}
}

func (o *Stream) ReadU16LE() (uint16, liberr.Error) {
	if b, e := o.Read(2); e != nil {
		return 0, e
	} else {
		return binary.LittleEndian.Uint16(b), nil
	}
}

func (o *Stream) ReadU16BE() (uint16, liberr.Error) {
	if b, e := o.Read(2); e != nil {
		return 0, e
	} else {
		return binary.BigEndian.Uint16(b), nil
	}
}

func (o *Stream) ReadU32LE() (uint32, liberr.Error) {
	if b, e := o.Read(4); e != nil {
		return 0, e
	} else {
		return binary.LittleEndian.Uint32(b), nil
	}
}

func (o *Stream) ReadU32BE() (uint32, liberr.Error) {
	if b, e := o.Read(4); e != nil {
		return 0, e
	} else {
		return binary.BigEndian.Uint32(b), nil
	}
}

func (o *Stream) ReadU64LE() (uint64, liberr.Error) {
	if b, e := o.Read(8); e != nil {
		return 0, e
	} else {
		return binary.LittleEndian.Uint64(b), nil
	}
}

// Peek runs fn with the position moved to off and guarantees the previous
// position is restored on all exit paths, including panic and error return.
func (o *Stream) Peek(off int64, fn func() liberr.Error) liberr.Error {
	if fn == nil {
		return ErrorParamEmpty.Error(nil)
	}

	cur := o.p

	if e := o.Seek(off); e != nil {
		return e
	}

	defer func() {
		o.p = cur
	}()

	return fn()
}
