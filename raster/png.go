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

package raster

import (
	"bytes"
	"image"
	"image/png"

	liberr "github.com/nabbar/golib/errors"
)

// Ext is the lowercase extension of the serialized interchange format.
const Ext = ".png"

// EncodePNG serializes the image losslessly.
func (o *Image) EncodePNG() ([]byte, liberr.Error) {
	if o == nil || len(o.Pix) < 1 {
		return nil, ErrorParamEmpty.Error(nil)
	}

	img := &image.NRGBA{
		Pix:    o.Pix,
		Stride: o.W * 4,
		Rect:   image.Rect(0, 0, o.W, o.H),
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(o.Pix)/2))
	if e := png.Encode(buf, img); e != nil {
		return nil, ErrorEncode.Error(e)
	}

	return buf.Bytes(), nil
}
