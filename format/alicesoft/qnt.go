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

// Package alicesoft decodes the QNT raster format of the AliceSoft engine:
// zlib packed BGR planes with even padded dimensions and an average
// predictor filter, plus an optional alpha plane.
package alicesoft

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	liberr "github.com/nabbar/golib/errors"

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/raster"
)

// IDQnt is the registry id of the QNT image decoder.
const IDQnt decoder.ID = "alicesoft/qnt"

var qntMagic = []byte{'Q', 'N', 'T', 0x00}

type qntHeader struct {
	version   uint32
	hdrSize   uint32
	width     uint32
	height    uint32
	bpp       uint32
	pixelSize uint32
	alphaSize uint32
}

type Qnt struct{}

func NewQnt() *Qnt {
	return &Qnt{}
}

func (o *Qnt) Recognize(f *decoder.File) bool {
	var hit bool

	_ = f.Data.Peek(0, func() liberr.Error {
		b, e := f.Data.Read(int64(len(qntMagic)))
		if e != nil {
			return nil
		}
		hit = bytes.Equal(b, qntMagic)
		return nil
	})

	return hit
}

func (o *Qnt) LinkedFormats() []decoder.ID {
	return nil
}

func (o *Qnt) readHeader(f *decoder.File) (*qntHeader, liberr.Error) {
	var (
		h qntHeader
		e liberr.Error
	)

	if e = f.Data.Seek(int64(len(qntMagic))); e != nil {
		return nil, ErrorQntHeader.Error(e)
	}

	if h.version, e = f.Data.ReadU32LE(); e != nil {
		return nil, ErrorQntHeader.Error(e)
	}

	if h.version != 1 && h.version != 2 {
		return nil, ErrorQntVersion.Error(nil)
	}

	if h.hdrSize, e = f.Data.ReadU32LE(); e != nil {
		return nil, ErrorQntHeader.Error(e)
	}

	if e = f.Data.Skip(8); e != nil { // display offsets
		return nil, ErrorQntHeader.Error(e)
	}

	if h.width, e = f.Data.ReadU32LE(); e != nil {
		return nil, ErrorQntHeader.Error(e)
	}

	if h.height, e = f.Data.ReadU32LE(); e != nil {
		return nil, ErrorQntHeader.Error(e)
	}

	if h.bpp, e = f.Data.ReadU32LE(); e != nil {
		return nil, ErrorQntHeader.Error(e)
	}

	if e = f.Data.Skip(4); e != nil { // reserved
		return nil, ErrorQntHeader.Error(e)
	}

	if h.pixelSize, e = f.Data.ReadU32LE(); e != nil {
		return nil, ErrorQntHeader.Error(e)
	}

	if h.alphaSize, e = f.Data.ReadU32LE(); e != nil {
		return nil, ErrorQntHeader.Error(e)
	}

	if h.bpp != 24 || h.width < 1 || h.height < 1 {
		return nil, ErrorQntVersion.Error(nil)
	}

	return &h, nil
}

func (o *Qnt) Decode(f *decoder.File) (*decoder.File, liberr.Error) {
	h, err := o.readHeader(f)
	if err != nil {
		return nil, err
	}

	if e := f.Data.Seek(int64(h.hdrSize)); e != nil {
		return nil, ErrorQntHeader.Error(e)
	}

	pixRaw, e := f.Data.Read(int64(h.pixelSize))
	if e != nil {
		return nil, ErrorQntPixels.Error(e)
	}

	var (
		w  = int(h.width)
		ht = int(h.height)
		wp = w + (w & 1)
		hp = ht + (ht & 1)
	)

	planes, err := inflate(pixRaw, 3*wp*hp)
	if err != nil {
		return nil, err
	}

	var alpha []byte

	if h.alphaSize > 0 {
		alphaRaw, e := f.Data.Read(int64(h.alphaSize))
		if e != nil {
			return nil, ErrorQntPixels.Error(e)
		}

		if alpha, err = inflate(alphaRaw, wp*hp); err != nil {
			return nil, err
		}
	}

	img, e := raster.New(w, ht)
	if e != nil {
		return nil, e
	}

	for c := 0; c < 3; c++ {
		unfilter(planes[c*wp*hp:(c+1)*wp*hp], wp, hp)
	}

	if alpha != nil {
		unfilter(alpha, wp, hp)
	}

	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			var (
				b = planes[0*wp*hp+y*wp+x]
				g = planes[1*wp*hp+y*wp+x]
				r = planes[2*wp*hp+y*wp+x]
				a = byte(0xFF)
			)

			if alpha != nil {
				a = alpha[y*wp+x]
			}

			img.SetRGBA(x, y, r, g, b, a)
		}
	}

	blob, e := img.EncodePNG()
	if e != nil {
		return nil, e
	}

	return decoder.NewFile(f.WithExt(raster.Ext), blob), nil
}

// unfilter reverses the average predictor in place: the first sample is
// raw, the first row and column predict from their single neighbor, and
// every other sample predicts from the mean of its left and upper
// neighbors.
func unfilter(p []byte, w, h int) {
	for x := 1; x < w; x++ {
		p[x] = p[x-1] - p[x]
	}

	for y := 1; y < h; y++ {
		p[y*w] = p[(y-1)*w] - p[y*w]

		for x := 1; x < w; x++ {
			avg := (int(p[y*w+x-1]) + int(p[(y-1)*w+x])) / 2
			p[y*w+x] = byte(avg - int(p[y*w+x]))
		}
	}
}

func inflate(src []byte, want int) ([]byte, liberr.Error) {
	r, e := zlib.NewReader(bytes.NewReader(src))
	if e != nil {
		return nil, ErrorQntPixels.Error(e)
	}

	defer func() {
		_ = r.Close()
	}()

	out, e := io.ReadAll(io.LimitReader(r, int64(want)+1))
	if e != nil {
		return nil, ErrorQntPixels.Error(e)
	}

	if len(out) < want {
		return nil, ErrorQntPixels.Error(nil)
	}

	return out[:want], nil
}
