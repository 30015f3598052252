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

package decoder

// Entry is the metadata an archive decoder records about one container
// member: the path as stored (possibly empty) plus a decoder private
// payload holding offsets, sizes, compression flags and the like. The
// producing decoder is the exclusive owner of the payload.
type Entry struct {
	Path string

	priv any
}

func NewEntry(p string) *Entry {
	return &Entry{
		Path: p,
	}
}

func (e *Entry) SetPrivate(v any) *Entry {
	e.priv = v
	return e
}

func (e *Entry) Private() any {
	return e.priv
}

// EntryPrivate returns the decoder private payload of an entry as the
// decoder's own concrete type, avoiding scattered type assertions in
// decoder code.
func EntryPrivate[T any](e *Entry) (T, bool) {
	var z T

	if e == nil {
		return z, false
	} else if v, k := e.priv.(T); k {
		return v, true
	}

	return z, false
}

// Meta is the ordered sequence of entries of one container plus optional
// decoder private header state (shared palette, decryption seed, ...).
// Order is significant: the unpack driver yields members in meta order and
// numbers fallback names in that order.
type Meta struct {
	Entries []*Entry

	priv any
}

func NewMeta() *Meta {
	return &Meta{
		Entries: make([]*Entry, 0),
	}
}

func (m *Meta) Add(e *Entry) *Meta {
	m.Entries = append(m.Entries, e)
	return m
}

func (m *Meta) Len() int {
	return len(m.Entries)
}

func (m *Meta) SetPrivate(v any) *Meta {
	m.priv = v
	return m
}

func (m *Meta) Private() any {
	return m.priv
}

// MetaPrivate returns the decoder private header state of a meta as the
// decoder's own concrete type.
func MetaPrivate[T any](m *Meta) (T, bool) {
	var z T

	if m == nil {
		return z, false
	} else if v, k := m.priv.(T); k {
		return v, true
	}

	return z, false
}
