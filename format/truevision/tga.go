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

// Package truevision decodes Truevision TGA rasters, the interchange
// format many doujin engines store textures in.
package truevision

import (
	liberr "github.com/nabbar/golib/errors"

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/raster"
)

// IDTga is the registry id of the TGA image decoder.
const IDTga decoder.ID = "truevision/tga"

const (
	tgaTypeTrueColor    = 2
	tgaTypeGray         = 3
	tgaTypeTrueColorRLE = 10
	tgaTypeGrayRLE      = 11

	tgaOriginTopBit = 0x20
)

type tgaHeader struct {
	idLen    uint8
	mapType  uint8
	imgType  uint8
	mapLen   uint16
	mapDepth uint8
	width    uint16
	height   uint16
	depth    uint8
	desc     uint8
}

// Tga transcodes TGA images to the interchange raster format. TGA carries
// no magic, so recognition matches the extension plus header sanity.
type Tga struct{}

func NewTga() *Tga {
	return &Tga{}
}

func (o *Tga) Recognize(f *decoder.File) bool {
	if !f.HasExt(".tga") {
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

func (o *Tga) LinkedFormats() []decoder.ID {
	return nil
}

func (h *tgaHeader) valid() bool {
	switch h.imgType {
	case tgaTypeTrueColor, tgaTypeTrueColorRLE:
		if h.depth != 24 && h.depth != 32 {
			return false
		}
	case tgaTypeGray, tgaTypeGrayRLE:
		if h.depth != 8 {
			return false
		}
	default:
		return false
	}

	return h.width > 0 && h.height > 0
}

func (h *tgaHeader) rle() bool {
	return h.imgType == tgaTypeTrueColorRLE || h.imgType == tgaTypeGrayRLE
}

func (o *Tga) readHeader(f *decoder.File) (*tgaHeader, liberr.Error) {
	var (
		h tgaHeader
		e liberr.Error
	)

	if h.idLen, e = f.Data.ReadU8(); e != nil {
		return nil, ErrorTgaHeader.Error(e)
	}
	if h.mapType, e = f.Data.ReadU8(); e != nil {
		return nil, ErrorTgaHeader.Error(e)
	}
	if h.imgType, e = f.Data.ReadU8(); e != nil {
		return nil, ErrorTgaHeader.Error(e)
	}
	if e = f.Data.Skip(2); e != nil { // first color map entry
		return nil, ErrorTgaHeader.Error(e)
	}
	if h.mapLen, e = f.Data.ReadU16LE(); e != nil {
		return nil, ErrorTgaHeader.Error(e)
	}
	if h.mapDepth, e = f.Data.ReadU8(); e != nil {
		return nil, ErrorTgaHeader.Error(e)
	}
	if e = f.Data.Skip(4); e != nil { // origin coordinates
		return nil, ErrorTgaHeader.Error(e)
	}
	if h.width, e = f.Data.ReadU16LE(); e != nil {
		return nil, ErrorTgaHeader.Error(e)
	}
	if h.height, e = f.Data.ReadU16LE(); e != nil {
		return nil, ErrorTgaHeader.Error(e)
	}
	if h.depth, e = f.Data.ReadU8(); e != nil {
		return nil, ErrorTgaHeader.Error(e)
	}
	if h.desc, e = f.Data.ReadU8(); e != nil {
		return nil, ErrorTgaHeader.Error(e)
	}

	return &h, nil
}

func (o *Tga) Decode(f *decoder.File) (*decoder.File, liberr.Error) {
	if e := f.Data.Seek(0); e != nil {
		return nil, ErrorTgaHeader.Error(e)
	}

	h, err := o.readHeader(f)
	if err != nil {
		return nil, err
	}

	if !h.valid() {
		return nil, ErrorTgaDepth.Error(nil)
	}

	if e := f.Data.Skip(int64(h.idLen)); e != nil {
		return nil, ErrorTgaHeader.Error(e)
	}

	if h.mapType != 0 {
		if e := f.Data.Skip(int64(h.mapLen) * int64(h.mapDepth) / 8); e != nil {
			return nil, ErrorTgaHeader.Error(e)
		}
	}

	var (
		bpp = int(h.depth) / 8
		cnt = int(h.width) * int(h.height)
		pix []byte
	)

	if h.rle() {
		if b, e := o.readRLE(f, cnt, bpp); e != nil {
			return nil, e
		} else {
			pix = b
		}
	} else {
		if b, e := f.Data.Read(int64(cnt * bpp)); e != nil {
			return nil, ErrorTgaPixels.Error(e)
		} else {
			pix = b
		}
	}

	var (
		img *raster.Image
		e   liberr.Error
	)

	switch bpp {
	case 1:
		img, e = raster.FromGray(int(h.width), int(h.height), pix)
	case 3:
		img, e = raster.FromBGR(int(h.width), int(h.height), pix)
	case 4:
		img, e = raster.FromBGRA(int(h.width), int(h.height), pix)
	}

	if e != nil {
		return nil, e
	}

	if h.desc&tgaOriginTopBit == 0 {
		img.FlipV()
	}

	blob, e := img.EncodePNG()
	if e != nil {
		return nil, e
	}

	return decoder.NewFile(f.WithExt(raster.Ext), blob), nil
}

func (o *Tga) readRLE(f *decoder.File, cnt, bpp int) ([]byte, liberr.Error) {
	out := make([]byte, 0, cnt*bpp)

	for len(out) < cnt*bpp {
		ctl, e := f.Data.ReadU8()
		if e != nil {
			return nil, ErrorTgaPixels.Error(e)
		}

		n := int(ctl&0x7F) + 1

		if ctl&0x80 != 0 {
			px, e := f.Data.Read(int64(bpp))
			if e != nil {
				return nil, ErrorTgaPixels.Error(e)
			}
			for i := 0; i < n; i++ {
				out = append(out, px...)
			}
		} else {
			px, e := f.Data.Read(int64(n * bpp))
			if e != nil {
				return nil, ErrorTgaPixels.Error(e)
			}
			out = append(out, px...)
		}
	}

	return out, nil
}
