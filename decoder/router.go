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

import (
	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"
)

// Router selects decoders for input files by content sniffing. It keeps one
// instance per decoder id, so a driver owning a router owns its decoder
// instances exclusively: decoders with mutable configuration are never
// shared across driver workers.
type Router struct {
	log  liblog.FuncLog
	inst map[ID]Decoder
}

func NewRouter(log liblog.FuncLog) *Router {
	return &Router{
		log:  log,
		inst: make(map[ID]Decoder),
	}
}

// Get returns the router's instance of the given decoder id, creating it
// from the registry on first use. Decoders implementing LogAware receive
// the router's logger on creation.
func (o *Router) Get(id ID) (Decoder, liberr.Error) {
	if d, k := o.inst[id]; k {
		return d, nil
	}

	if d, e := Lookup(id); e != nil {
		return nil, e
	} else {
		if la, k := d.(LogAware); k {
			la.SetLogger(o.log)
		}
		o.inst[id] = d
		return d, nil
	}
}

// Route returns the first registered decoder recognizing the given file,
// trying hints in order first, then the full registry in registration
// order. Hints bias recognition but never exclude: if every hint rejects
// the file, routing falls back to the remaining decoders. The input stream
// is rewound before each recognition attempt; a nil decoder result means no
// registered decoder matched.
func (o *Router) Route(f *File, hints []ID) (ID, Decoder) {
	if f == nil || f.Data == nil {
		return "", nil
	}

	tried := make(map[ID]bool, len(hints))

	for _, id := range hints {
		tried[id] = true
		if d := o.tryOne(id, f); d != nil {
			return id, d
		}
	}

	for _, id := range AllIDs() {
		if tried[id] {
			continue
		}
		if d := o.tryOne(id, f); d != nil {
			return id, d
		}
	}

	return "", nil
}

func (o *Router) tryOne(id ID, f *File) Decoder {
	d, e := o.Get(id)
	if e != nil {
		// unknown hint ids are skipped
		return nil
	}

	if e = f.Data.Seek(0); e != nil {
		return nil
	}

	if d.Recognize(f) {
		return d
	}

	return nil
}
