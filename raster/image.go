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

// Package raster holds the decoded image model shared by all image
// decoders and its serialization to the lossless interchange format.
package raster

import (
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

const pkgName = "unpakku/raster"

const (
	ErrorParamEmpty liberr.CodeError = iota + liberr.MinAvailable + 100
	ErrorBounds
	ErrorShortData
	ErrorEncode
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
	case ErrorBounds:
		return "image dimensions out of bounds"
	case ErrorShortData:
		return "pixel data shorter than the image dimensions"
	case ErrorEncode:
		return "cannot serialize image"
	}

	return liberr.NullMessage
}

// maxDim bounds decoded dimensions so a corrupt header cannot trigger a
// multi-gigabyte allocation.
const maxDim = 0x8000

// Image is a decoded raster: 8-bit RGBA, row major, top down.
type Image struct {
	W   int
	H   int
	Pix []byte
}

func New(w, h int) (*Image, liberr.Error) {
	if w < 1 || h < 1 || w > maxDim || h > maxDim {
		return nil, ErrorBounds.Error(nil)
	}

	return &Image{
		W:   w,
		H:   h,
		Pix: make([]byte, w*h*4),
	}, nil
}

func (o *Image) SetRGBA(x, y int, r, g, b, a byte) {
	i := (y*o.W + x) * 4
	o.Pix[i+0] = r
	o.Pix[i+1] = g
	o.Pix[i+2] = b
	o.Pix[i+3] = a
}

func (o *Image) At(x, y int) (r, g, b, a byte) {
	i := (y*o.W + x) * 4
	return o.Pix[i+0], o.Pix[i+1], o.Pix[i+2], o.Pix[i+3]
}

// FlipV mirrors the image vertically in place. Several game formats store
// scanlines bottom up.
func (o *Image) FlipV() {
	row := o.W * 4
	tmp := make([]byte, row)

	for y := 0; y < o.H/2; y++ {
		a := o.Pix[y*row : (y+1)*row]
		b := o.Pix[(o.H-1-y)*row : (o.H-y)*row]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// FromBGR builds an opaque image from packed 3-byte BGR pixels.
func FromBGR(w, h int, data []byte) (*Image, liberr.Error) {
	img, err := New(w, h)
	if err != nil {
		return nil, err
	} else if len(data) < w*h*3 {
		return nil, ErrorShortData.Error(nil)
	}

	for p := 0; p < w*h; p++ {
		img.Pix[p*4+0] = data[p*3+2]
		img.Pix[p*4+1] = data[p*3+1]
		img.Pix[p*4+2] = data[p*3+0]
		img.Pix[p*4+3] = 0xFF
	}

	return img, nil
}

// FromBGRA builds an image from packed 4-byte BGRA pixels.
func FromBGRA(w, h int, data []byte) (*Image, liberr.Error) {
	img, err := New(w, h)
	if err != nil {
		return nil, err
	} else if len(data) < w*h*4 {
		return nil, ErrorShortData.Error(nil)
	}

	for p := 0; p < w*h; p++ {
		img.Pix[p*4+0] = data[p*4+2]
		img.Pix[p*4+1] = data[p*4+1]
		img.Pix[p*4+2] = data[p*4+0]
		img.Pix[p*4+3] = data[p*4+3]
	}

	return img, nil
}

// FromGray builds an opaque image from 1-byte luminance pixels.
func FromGray(w, h int, data []byte) (*Image, liberr.Error) {
	img, err := New(w, h)
	if err != nil {
		return nil, err
	} else if len(data) < w*h {
		return nil, ErrorShortData.Error(nil)
	}

	for p := 0; p < w*h; p++ {
		img.Pix[p*4+0] = data[p]
		img.Pix[p*4+1] = data[p]
		img.Pix[p*4+2] = data[p]
		img.Pix[p*4+3] = 0xFF
	}

	return img, nil
}

// FromPaletted builds an image from 1-byte indices into a 256 color
// palette.
func FromPaletted(w, h int, data []byte, pal Palette) (*Image, liberr.Error) {
	img, err := New(w, h)
	if err != nil {
		return nil, err
	} else if len(data) < w*h {
		return nil, ErrorShortData.Error(nil)
	}

	for p := 0; p < w*h; p++ {
		c := pal[data[p]]
		img.Pix[p*4+0] = c[0]
		img.Pix[p*4+1] = c[1]
		img.Pix[p*4+2] = c[2]
		img.Pix[p*4+3] = c[3]
	}

	return img, nil
}
