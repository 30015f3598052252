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

	"github.com/unpakku/unpakku/decoder/naming"
)

// Decoder is the capability set common to both decoder variants.
//
// Recognize must sniff only through the stream's Peek facility so the input
// position is left untouched, must return false (never fail) on a format
// mismatch, and must be cheap: the router calls it for every registered
// decoder until one matches.
type Decoder interface {
	// Recognize reports whether the decoder handles the given file.
	Recognize(f *File) bool

	// LinkedFormats returns an ordered list of decoder ids the decoder
	// expects its outputs to match. The unpack driver passes it as the
	// routing hint for the next recursion level.
	LinkedFormats() []ID
}

// LogAware is implemented by decoders that report non fatal conditions
// (skipped entries, ambiguous probes) through a logger. The router wires
// the owning driver's logger into such decoders when it instantiates them.
type LogAware interface {
	SetLogger(l liblog.FuncLog)
}

// FileDecoder transcodes one input file into one output file.
type FileDecoder interface {
	Decoder

	// Decode produces the output file. The output path defaults to the
	// input path with the decoder's canonical extension substituted.
	Decode(f *File) (*File, liberr.Error)
}

// ArchiveDecoder exposes a container as an ordered sequence of members.
//
// ReadMeta followed by ReadFile for each entry must be idempotent when
// given the same input bytes, and ReadFile must tolerate being called in
// any order across entries.
type ArchiveDecoder interface {
	Decoder

	// ReadMeta parses the container's metadata table.
	ReadMeta(f *File) (*Meta, liberr.Error)

	// ReadFile extracts the member described by the given entry.
	ReadFile(f *File, m *Meta, e *Entry) (*File, liberr.Error)

	// NamingStrategy returns the policy used to place member outputs.
	NamingStrategy() naming.Strategy
}
