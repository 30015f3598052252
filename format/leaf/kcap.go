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

// Package leaf decodes the archive containers of the Leaf game engine.
package leaf

import (
	"bytes"

	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"
	loglvl "github.com/nabbar/golib/logger/level"

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/decoder/naming"
	"github.com/unpakku/unpakku/encoding/sjis"
	"github.com/unpakku/unpakku/lzss"
)

// IDKcap is the registry id of the KCAP archive decoder.
const IDKcap decoder.ID = "leaf/kcap"

var kcapMagic = []byte("KCAP")

const (
	kcapNameLen = 24

	kcapTypeRaw        = 0x00000000
	kcapTypeCompressed = 0x00000001
)

type kcapEntry struct {
	offset     uint32
	size       uint32
	compressed bool
}

// Kcap unpacks KCAP containers. Two on-disk versions share the same magic:
// v1 carries 32 byte entry records with every member compressed, v2 adds a
// leading type word per record. The version is probed from the last record:
// a table whose last member ends exactly at the file size matches; when
// both probes match, the second answer wins.
type Kcap struct {
	log liblog.FuncLog
}

func NewKcap() *Kcap {
	return &Kcap{}
}

// SetLogger installs the logger receiving skipped entry warnings.
func (o *Kcap) SetLogger(l liblog.FuncLog) {
	o.log = l
}

func (o *Kcap) Recognize(f *decoder.File) bool {
	var hit bool

	_ = f.Data.Peek(0, func() liberr.Error {
		b, e := f.Data.Read(int64(len(kcapMagic)))
		if e != nil {
			return nil
		}
		hit = bytes.Equal(b, kcapMagic)
		return nil
	})

	return hit
}

func (o *Kcap) LinkedFormats() []decoder.ID {
	return []decoder.ID{"truevision/tga"}
}

func (o *Kcap) NamingStrategy() naming.Strategy {
	return naming.Default()
}

func (o *Kcap) ReadMeta(f *decoder.File) (*decoder.Meta, liberr.Error) {
	if e := f.Data.Seek(int64(len(kcapMagic))); e != nil {
		return nil, ErrorKcapEntry.Error(e)
	}

	count, e := f.Data.ReadU32LE()
	if e != nil {
		return nil, ErrorKcapEntry.Error(e)
	}

	switch o.detectVersion(f, int64(count)) {
	case 1:
		return o.readMetaV1(f, count)
	case 2:
		return o.readMetaV2(f, count)
	default:
		return nil, ErrorKcapVersion.Error(nil)
	}
}

// detectVersion probes both table layouts and keeps the last one whose
// final record ends exactly at the file size. A file matching both is
// logged at debug level.
func (o *Kcap) detectVersion(f *decoder.File, count int64) int {
	version := 0

	_ = f.Data.Peek(f.Data.Tell(), func() liberr.Error {
		if e := f.Data.Skip((count-1)*(kcapNameLen+8) + kcapNameLen); e != nil {
			return nil
		}

		off, e := f.Data.ReadU32LE()
		if e != nil {
			return nil
		}

		siz, e := f.Data.ReadU32LE()
		if e != nil {
			return nil
		}

		if int64(off)+int64(siz) == f.Data.Size() {
			version = 1
		}

		return nil
	})

	v1 := version == 1

	_ = f.Data.Peek(f.Data.Tell(), func() liberr.Error {
		if e := f.Data.Skip((count-1)*(4+kcapNameLen+8) + 4 + kcapNameLen); e != nil {
			return nil
		}

		off, e := f.Data.ReadU32LE()
		if e != nil {
			return nil
		}

		siz, e := f.Data.ReadU32LE()
		if e != nil {
			return nil
		}

		if int64(off)+int64(siz) == f.Data.Size() {
			version = 2
		}

		return nil
	})

	if v1 && version == 2 && o.log != nil {
		if l := o.log(); l != nil {
			ent := l.Entry(loglvl.DebugLevel, "both kcap table layouts match, using version 2")
			ent.FieldAdd("path", f.Path)
			ent.Log()
		}
	}

	return version
}

func (o *Kcap) readMetaV1(f *decoder.File, count uint32) (*decoder.Meta, liberr.Error) {
	m := decoder.NewMeta()

	for i := uint32(0); i < count; i++ {
		name, e := o.readName(f)
		if e != nil {
			return nil, e
		}

		off, e := f.Data.ReadU32LE()
		if e != nil {
			return nil, ErrorKcapEntry.Error(e)
		}

		siz, e := f.Data.ReadU32LE()
		if e != nil {
			return nil, ErrorKcapEntry.Error(e)
		}

		m.Add(decoder.NewEntry(name).SetPrivate(&kcapEntry{
			offset:     off,
			size:       siz,
			compressed: true,
		}))
	}

	return m, nil
}

func (o *Kcap) readMetaV2(f *decoder.File, count uint32) (*decoder.Meta, liberr.Error) {
	m := decoder.NewMeta()

	for i := uint32(0); i < count; i++ {
		typ, e := f.Data.ReadU32LE()
		if e != nil {
			return nil, ErrorKcapEntry.Error(e)
		}

		name, e := o.readName(f)
		if e != nil {
			return nil, e
		}

		off, e := f.Data.ReadU32LE()
		if e != nil {
			return nil, ErrorKcapEntry.Error(e)
		}

		siz, e := f.Data.ReadU32LE()
		if e != nil {
			return nil, ErrorKcapEntry.Error(e)
		}

		ent := &kcapEntry{
			offset: off,
			size:   siz,
		}

		switch typ {
		case kcapTypeRaw:
			ent.compressed = false
		case kcapTypeCompressed:
			ent.compressed = true
		default:
			if siz == 0 {
				continue
			}
			o.warnType(f.Path, typ)
			continue
		}

		m.Add(decoder.NewEntry(name).SetPrivate(ent))
	}

	return m, nil
}

func (o *Kcap) readName(f *decoder.File) (string, liberr.Error) {
	b, e := f.Data.Read(kcapNameLen)
	if e != nil {
		return "", ErrorKcapEntry.Error(e)
	}

	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	return sjis.Decode(b), nil
}

func (o *Kcap) ReadFile(f *decoder.File, m *decoder.Meta, e *decoder.Entry) (*decoder.File, liberr.Error) {
	p, k := decoder.EntryPrivate[*kcapEntry](e)
	if !k {
		return nil, ErrorParamEmpty.Error(nil)
	}

	if err := f.Data.Seek(int64(p.offset)); err != nil {
		return nil, ErrorKcapEntry.Error(err)
	}

	if !p.compressed {
		b, err := f.Data.Read(int64(p.size))
		if err != nil {
			return nil, ErrorKcapEntry.Error(err)
		}
		return decoder.NewFile(e.Path, b), nil
	}

	sizeComp, err := f.Data.ReadU32LE()
	if err != nil {
		return nil, ErrorKcapCompressed.Error(err)
	}

	sizeOrig, err := f.Data.ReadU32LE()
	if err != nil {
		return nil, ErrorKcapCompressed.Error(err)
	}

	if sizeComp < 8 {
		return nil, ErrorKcapCompressed.Error(nil)
	}

	b, err := f.Data.Read(int64(sizeComp) - 8)
	if err != nil {
		return nil, ErrorKcapCompressed.Error(err)
	}

	d, err := lzss.Decompress(b, int(sizeOrig))
	if err != nil {
		return nil, ErrorKcapCompressed.Error(err)
	}

	return decoder.NewFile(e.Path, d), nil
}

func (o *Kcap) warnType(path string, typ uint32) {
	if o.log == nil {
		return
	}

	l := o.log()
	if l == nil {
		return
	}

	ent := l.Entry(loglvl.WarnLevel, "unknown entry type, skipped")
	ent.FieldAdd("path", path)
	ent.FieldAdd("type", typ)
	ent.Log()
}
