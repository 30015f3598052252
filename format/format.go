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

// Package format performs the explicit registration of every concrete
// decoder. Registration order is part of the routing contract: specific
// magic based sniffers come first, extension based image formats next,
// and the generic compressed stream decoders last, with the weak two
// byte zlib signature at the very end.
package format

import (
	"sync"

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/format/alicesoft"
	"github.com/unpakku/unpakku/format/compress"
	"github.com/unpakku/unpakku/format/leaf"
	"github.com/unpakku/unpakku/format/renpy"
	"github.com/unpakku/unpakku/format/truevision"
	"github.com/unpakku/unpakku/format/twilight"
)

var regOnce sync.Once

// RegisterAll populates the decoder registry. It must run once before any
// driver starts; calling it again is a no-op.
func RegisterAll() {
	regOnce.Do(func() {
		decoder.Register(leaf.IDKcap, func() decoder.Decoder {
			return leaf.NewKcap()
		})
		decoder.Register(renpy.IDRpa, func() decoder.Decoder {
			return renpy.NewRpa()
		})
		decoder.Register(alicesoft.IDQnt, func() decoder.Decoder {
			return alicesoft.NewQnt()
		})
		decoder.Register(truevision.IDTga, func() decoder.Decoder {
			return truevision.NewTga()
		})
		decoder.Register(twilight.IDPak2, func() decoder.Decoder {
			return twilight.NewPak2()
		})

		for _, alg := range []compress.Algorithm{
			compress.Bzip2,
			compress.Gzip,
			compress.LZ4,
			compress.XZ,
			compress.Zstd,
			compress.Zlib,
		} {
			a := alg
			decoder.Register(a.ID(), func() decoder.Decoder {
				return compress.NewDecoder(a)
			})
		}
	})
}
