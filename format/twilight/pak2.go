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

// Package twilight decodes the CV2 rasters of the Twilight Frontier PAK2
// resource set. Indexed images take their colors from palettes injected by
// the caller; an instance holding injected palettes is mutable and must
// not be shared across driver workers.
package twilight

import (
	liberr "github.com/nabbar/golib/errors"

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/raster"
)

// IDPak2 is the registry id of the PAK2 image decoder.
const IDPak2 decoder.ID = "twilight/pak2"

type Pak2 struct {
	pal  map[string]raster.Palette
	last string
}

func NewPak2() *Pak2 {
	return &Pak2{
		pal: make(map[string]raster.Palette),
	}
}

// AddPalette registers a named BGRA palette blob for indexed images. The
// most recently added palette is preferred.
func (o *Pak2) AddPalette(name string, data []byte) {
	o.pal[name] = raster.PaletteFromBGRA(data)
	o.last = name
}

// ClearPalettes drops every injected palette.
func (o *Pak2) ClearPalettes() {
	o.pal = make(map[string]raster.Palette)
	o.last = ""
}

func (o *Pak2) palette() raster.Palette {
	if p, k := o.pal[o.last]; k {
		return p
	}

	return raster.GrayPalette()
}

func (o *Pak2) Recognize(f *decoder.File) bool {
	if !f.HasExt(".cv2") {
		return false
	}

	var ok bool

	_ = f.Data.Peek(0, func() liberr.Error {
		h, e := o.readHeader(f)
		if e != nil {
			return nil
		}
		ok = h.valid()
		return nil
	})

	return ok
}

func (o *Pak2) LinkedFormats() []decoder.ID {
	return nil
}

type cv2Header struct {
	depth  uint8
	width  uint32
	height uint32
	canvas uint32
}

func (h *cv2Header) valid() bool {
	switch h.depth {
	case 8, 24, 32:
	default:
		return false
	}

	return h.width > 0 && h.height > 0 && h.canvas >= h.width
}

func (o *Pak2) readHeader(f *decoder.File) (*cv2Header, liberr.Error) {
	var (
		h cv2Header
		e liberr.Error
	)

	if h.depth, e = f.Data.ReadU8(); e != nil {
		return nil, ErrorCv2Header.Error(e)
	}
	if h.width, e = f.Data.ReadU32LE(); e != nil {
		return nil, ErrorCv2Header.Error(e)
	}
	if h.height, e = f.Data.ReadU32LE(); e != nil {
		return nil, ErrorCv2Header.Error(e)
	}
	if h.canvas, e = f.Data.ReadU32LE(); e != nil {
		return nil, ErrorCv2Header.Error(e)
	}

	return &h, nil
}

func (o *Pak2) Decode(f *decoder.File) (*decoder.File, liberr.Error) {
	if e := f.Data.Seek(0); e != nil {
		return nil, ErrorCv2Header.Error(e)
	}

	h, err := o.readHeader(f)
	if err != nil {
		return nil, err
	}

	if !h.valid() {
		return nil, ErrorCv2Depth.Error(nil)
	}

	var (
		bpp = int(h.depth) / 8
		w   = int(h.width)
		ht  = int(h.height)
		cw  = int(h.canvas)
	)

	rows, e := f.Data.Read(int64(cw * ht * bpp))
	if e != nil {
		return nil, ErrorCv2Pixels.Error(e)
	}

	// crop the canvas stride down to the visible width
	pix := make([]byte, 0, w*ht*bpp)
	for y := 0; y < ht; y++ {
		pix = append(pix, rows[y*cw*bpp:(y*cw+w)*bpp]...)
	}

	var img *raster.Image

	switch bpp {
	case 1:
		img, e = raster.FromPaletted(w, ht, pix, o.palette())
	case 3:
		img, e = raster.FromBGR(w, ht, pix)
	case 4:
		img, e = raster.FromBGRA(w, ht, pix)
	}

	if e != nil {
		return nil, e
	}

	blob, e := img.EncodePNG()
	if e != nil {
		return nil, e
	}

	return decoder.NewFile(f.WithExt(raster.Ext), blob), nil
}
