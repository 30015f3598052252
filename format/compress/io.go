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
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	liberr "github.com/nabbar/golib/errors"
)

// Reader returns the decompression reader of the algorithm over the given
// input.
func (a Algorithm) Reader(r io.Reader) (io.ReadCloser, liberr.Error) {
	switch a {
	case Gzip:
		if z, e := gzip.NewReader(r); e != nil {
			return nil, ErrorStreamOpen.Error(e)
		} else {
			return z, nil
		}

	case Bzip2:
		if z, e := bzip2.NewReader(r, nil); e != nil {
			return nil, ErrorStreamOpen.Error(e)
		} else {
			return z, nil
		}

	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil

	case XZ:
		if z, e := xz.NewReader(r); e != nil {
			return nil, ErrorStreamOpen.Error(e)
		} else {
			return io.NopCloser(z), nil
		}

	case Zlib:
		if z, e := zlib.NewReader(r); e != nil {
			return nil, ErrorStreamOpen.Error(e)
		} else {
			return z, nil
		}

	case Zstd:
		if z, e := zstd.NewReader(r); e != nil {
			return nil, ErrorStreamOpen.Error(e)
		} else {
			return z.IOReadCloser(), nil
		}

	default:
		return nil, ErrorInvalidAlgorithm.Error(nil)
	}
}
