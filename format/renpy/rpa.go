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

// Package renpy decodes Ren'Py RPA containers, versions 2.0 and 3.0.
//
// The index is a zlib packed Python pickle mapping file names to
// (offset, length) tuples; version 3 obfuscates both values with a key
// carried in the header line. The pickle is not evaluated: a scanner
// extracts string and integer opcodes, which covers every index emitted
// by the Ren'Py packer.
package renpy

import (
	"bytes"
	"encoding/binary"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"

	liberr "github.com/nabbar/golib/errors"

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/decoder/naming"
)

// IDRpa is the registry id of the RPA archive decoder.
const IDRpa decoder.ID = "renpy/rpa"

const (
	rpaMagicV2 = "RPA-2.0 "
	rpaMagicV3 = "RPA-3.0 "

	// rpaMaxIndex bounds the decompressed index so a corrupt header
	// cannot exhaust memory.
	rpaMaxIndex = 50 * 1024 * 1024
)

type rpaEntry struct {
	offset int64
	length int64
}

type rpaHeader struct {
	version int
	offset  int64
	key     uint64
}

type Rpa struct{}

func NewRpa() *Rpa {
	return &Rpa{}
}

func (o *Rpa) Recognize(f *decoder.File) bool {
	var hit bool

	_ = f.Data.Peek(0, func() liberr.Error {
		b, e := f.Data.Read(int64(len(rpaMagicV3)))
		if e != nil {
			return nil
		}
		hit = bytes.Equal(b, []byte(rpaMagicV3)) || bytes.Equal(b, []byte(rpaMagicV2))
		return nil
	})

	return hit
}

func (o *Rpa) LinkedFormats() []decoder.ID {
	return nil
}

func (o *Rpa) NamingStrategy() naming.Strategy {
	return naming.Default()
}

func (o *Rpa) readHeader(f *decoder.File) (*rpaHeader, liberr.Error) {
	if e := f.Data.Seek(0); e != nil {
		return nil, ErrorRpaHeader.Error(e)
	}

	lim := f.Data.Size()
	if lim > 64 {
		lim = 64
	}

	b, e := f.Data.Read(lim)
	if e != nil {
		return nil, ErrorRpaHeader.Error(e)
	}

	nl := bytes.IndexByte(b, '\n')
	if nl < 0 {
		return nil, ErrorRpaHeader.Error(nil)
	}

	var (
		line  = strings.TrimSpace(string(b[:nl]))
		parts = strings.Split(line, " ")
		h     rpaHeader
	)

	switch {
	case strings.HasPrefix(line, "RPA-3.0") && len(parts) >= 3:
		h.version = 3

		if v, err := strconv.ParseInt(parts[1], 16, 64); err != nil {
			return nil, ErrorRpaHeader.Error(err)
		} else {
			h.offset = v
		}

		if v, err := strconv.ParseUint(parts[2], 16, 64); err != nil {
			return nil, ErrorRpaHeader.Error(err)
		} else {
			h.key = v
		}

	case strings.HasPrefix(line, "RPA-2.0") && len(parts) >= 2:
		h.version = 2

		if v, err := strconv.ParseInt(parts[1], 16, 64); err != nil {
			return nil, ErrorRpaHeader.Error(err)
		} else {
			h.offset = v
		}

	default:
		return nil, ErrorRpaHeader.Error(nil)
	}

	if h.offset < 0 || h.offset >= f.Data.Size() {
		return nil, ErrorRpaHeader.Error(nil)
	}

	return &h, nil
}

func (o *Rpa) ReadMeta(f *decoder.File) (*decoder.Meta, liberr.Error) {
	h, err := o.readHeader(f)
	if err != nil {
		return nil, err
	}

	if e := f.Data.Seek(h.offset); e != nil {
		return nil, ErrorRpaIndex.Error(e)
	}

	r, e := zlib.NewReader(bytes.NewReader(f.Data.ReadToEOF()))
	if e != nil {
		return nil, ErrorRpaIndex.Error(e)
	}

	defer func() {
		_ = r.Close()
	}()

	idx, e := io.ReadAll(io.LimitReader(r, rpaMaxIndex))
	if e != nil {
		return nil, ErrorRpaIndex.Error(e)
	}

	m := decoder.NewMeta()

	for _, rec := range scanIndex(idx) {
		ent := &rpaEntry{
			offset: rec.offset,
			length: rec.length,
		}

		if h.version == 3 {
			ent.offset = int64(uint32(ent.offset) ^ uint32(h.key))
			ent.length = int64(uint32(ent.length) ^ uint32(h.key))
		}

		m.Add(decoder.NewEntry(rec.name).SetPrivate(ent))
	}

	if m.Len() < 1 {
		return nil, ErrorRpaIndex.Error(nil)
	}

	return m, nil
}

func (o *Rpa) ReadFile(f *decoder.File, m *decoder.Meta, e *decoder.Entry) (*decoder.File, liberr.Error) {
	p, k := decoder.EntryPrivate[*rpaEntry](e)
	if !k {
		return nil, ErrorParamEmpty.Error(nil)
	}

	if err := f.Data.Seek(p.offset); err != nil {
		return nil, ErrorRpaMember.Error(err)
	}

	b, err := f.Data.Read(p.length)
	if err != nil {
		return nil, ErrorRpaMember.Error(err)
	}

	return decoder.NewFile(e.Path, b), nil
}

type rpaRecord struct {
	name   string
	offset int64
	length int64
}

// scanIndex walks pickle opcodes, pairing each string opcode with the two
// integers following it. Keys are stored in insertion order by the Python
// packer, so archive order is preserved.
func scanIndex(b []byte) []rpaRecord {
	var (
		res  []rpaRecord
		name string
		have bool
		ints []int64
	)

	flush := func() {
		if have && len(ints) >= 2 {
			res = append(res, rpaRecord{name: name, offset: ints[0], length: ints[1]})
		}
		have = false
		ints = nil
	}

	for i := 0; i < len(b); {
		switch b[i] {
		case 'U': // SHORT_BINSTRING
			if i+1 >= len(b) {
				i = len(b)
				break
			}
			n := int(b[i+1])
			if i+2+n > len(b) {
				i = len(b)
				break
			}
			flush()
			name = string(b[i+2 : i+2+n])
			have = true
			i += 2 + n

		case 'X': // BINUNICODE
			if i+5 > len(b) {
				i = len(b)
				break
			}
			n := int(binary.LittleEndian.Uint32(b[i+1:]))
			if n < 0 || i+5+n > len(b) {
				i = len(b)
				break
			}
			flush()
			name = string(b[i+5 : i+5+n])
			have = true
			i += 5 + n

		case 'K': // BININT1
			if i+2 > len(b) {
				i = len(b)
				break
			}
			ints = append(ints, int64(b[i+1]))
			i += 2

		case 'M': // BININT2
			if i+3 > len(b) {
				i = len(b)
				break
			}
			ints = append(ints, int64(binary.LittleEndian.Uint16(b[i+1:])))
			i += 3

		case 'J': // BININT
			if i+5 > len(b) {
				i = len(b)
				break
			}
			ints = append(ints, int64(int32(binary.LittleEndian.Uint32(b[i+1:]))))
			i += 5

		case 0x8A: // LONG1
			if i+2 > len(b) {
				i = len(b)
				break
			}
			n := int(b[i+1])
			if i+2+n > len(b) {
				i = len(b)
				break
			}
			var v int64
			for j := n - 1; j >= 0; j-- {
				v = v<<8 | int64(b[i+2+j])
			}
			ints = append(ints, v)
			i += 2 + n

		default:
			i++
		}
	}

	flush()

	return res
}
