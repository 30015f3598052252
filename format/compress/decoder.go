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

package compress

import (
	"bytes"
	"io"
	"strings"

	liberr "github.com/nabbar/golib/errors"

	"github.com/unpakku/unpakku/decoder"
)

const sniffLen = 6

// ID returns the registry id of the algorithm's decoder.
func (a Algorithm) ID() decoder.ID {
	return decoder.ID("compress/" + a.String())
}

// Decoder wraps one algorithm as a file decoder: the inflated payload
// replaces the input file and re-enters recognition, so compressed
// containers unpack transparently.
type Decoder struct {
	alg Algorithm
}

func NewDecoder(a Algorithm) *Decoder {
	return &Decoder{
		alg: a,
	}
}

func (o *Decoder) Recognize(f *decoder.File) bool {
	var hit bool

	_ = f.Data.Peek(0, func() liberr.Error {
		b, e := f.Data.Read(sniffLen)
		if e != nil {
			return nil
		}
		hit = o.alg.DetectHeader(b)
		return nil
	})

	return hit
}

func (o *Decoder) LinkedFormats() []decoder.ID {
	return nil
}

func (o *Decoder) Decode(f *decoder.File) (*decoder.File, liberr.Error) {
	if e := f.Data.Seek(0); e != nil {
		return nil, ErrorStreamOpen.Error(e)
	}

	r, err := o.alg.Reader(bytes.NewReader(f.Data.Bytes()))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = r.Close()
	}()

	out, e := io.ReadAll(r)
	if e != nil {
		return nil, ErrorStreamRead.Error(e)
	}

	return decoder.NewFile(o.innerPath(f.Path), out), nil
}

// innerPath strips the algorithm's extension when the input carries it;
// any other name is kept, the sink resolves the collision.
func (o *Decoder) innerPath(p string) string {
	ext := o.alg.Extension()

	if len(ext) > 0 && strings.HasSuffix(strings.ToLower(p), ext) {
		return p[:len(p)-len(ext)]
	}

	return p
}
