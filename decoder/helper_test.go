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

package decoder_test

import (
	"bytes"
	"sync"

	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/decoder/naming"
)

type magicFileDecoder struct {
	magic  []byte
	linked []decoder.ID
}

func (o *magicFileDecoder) Recognize(f *decoder.File) bool {
	var hit bool

	_ = f.Data.Peek(0, func() liberr.Error {
		b, e := f.Data.Read(int64(len(o.magic)))
		if e != nil {
			return nil
		}
		hit = bytes.Equal(b, o.magic)
		return nil
	})

	return hit
}

func (o *magicFileDecoder) LinkedFormats() []decoder.ID {
	return o.linked
}

func (o *magicFileDecoder) Decode(f *decoder.File) (*decoder.File, liberr.Error) {
	return decoder.NewFile(f.WithExt(".out"), f.Data.Bytes()), nil
}

type magicArchiveDecoder struct {
	magic []byte
}

func (o *magicArchiveDecoder) Recognize(f *decoder.File) bool {
	var hit bool

	_ = f.Data.Peek(0, func() liberr.Error {
		b, e := f.Data.Read(int64(len(o.magic)))
		if e != nil {
			return nil
		}
		hit = bytes.Equal(b, o.magic)
		return nil
	})

	return hit
}

func (o *magicArchiveDecoder) LinkedFormats() []decoder.ID {
	return nil
}

func (o *magicArchiveDecoder) NamingStrategy() naming.Strategy {
	return naming.Default()
}

func (o *magicArchiveDecoder) ReadMeta(f *decoder.File) (*decoder.Meta, liberr.Error) {
	return decoder.NewMeta(), nil
}

func (o *magicArchiveDecoder) ReadFile(f *decoder.File, m *decoder.Meta, e *decoder.Entry) (*decoder.File, liberr.Error) {
	return decoder.NewFile(e.Path, nil), nil
}

// logAwareDecoder records whether the router handed it a logger on
// instantiation.
type logAwareDecoder struct {
	magicFileDecoder
	gotLog bool
}

func (o *logAwareDecoder) SetLogger(l liblog.FuncLog) {
	o.gotLog = l != nil
}

var regOnce sync.Once

// registerTestDecoders populates the global registry once for the whole
// suite; registration order is part of the tested behavior.
func registerTestDecoders() {
	regOnce.Do(func() {
		decoder.Register("test/alpha", func() decoder.Decoder {
			return &magicFileDecoder{magic: []byte("ALPH"), linked: []decoder.ID{"test/beta"}}
		})
		decoder.Register("test/beta", func() decoder.Decoder {
			return &magicFileDecoder{magic: []byte("BETA")}
		})
		decoder.Register("test/arc", func() decoder.Decoder {
			return &magicArchiveDecoder{magic: []byte("ARC0")}
		})
		decoder.Register("test/any", func() decoder.Decoder {
			return &magicFileDecoder{magic: []byte{}}
		})
		decoder.Register("test/logged", func() decoder.Decoder {
			return &logAwareDecoder{magicFileDecoder: magicFileDecoder{magic: []byte("LOGD")}}
		})
	})
}
