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

package unpack

import (
	"fmt"
	"strconv"
	"strings"

	liberr "github.com/nabbar/golib/errors"

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/decoder/naming"
)

// namer assigns fallback names to the nameless entries of one archive and
// numbers them in meta order, zero padded to the decimal width of the
// nameless entry count.
type namer struct {
	base   string
	width  int
	single bool
	next   int
}

func newNamer(s naming.Strategy, parentPath string, meta *decoder.Meta) (*namer, liberr.Error) {
	base, err := naming.FallbackBase(s, parentPath)
	if err != nil {
		return nil, err
	}

	nameless := 0
	for _, e := range meta.Entries {
		if len(e.Path) < 1 {
			nameless++
		}
	}

	return &namer{
		base:   base,
		width:  len(strconv.Itoa(nameless)),
		single: meta.Len() == 1,
	}, nil
}

// Next returns the fallback name of the next nameless entry.
func (o *namer) Next() string {
	if o.single {
		return o.base + naming.FallbackExt
	}

	n := fmt.Sprintf("%s_%0*d%s", o.base, o.width, o.next, naming.FallbackExt)
	o.next++

	return n
}

// pathSet tracks claimed output paths and resolves collisions by suffixing
// the stem with the smallest unused non negative integer.
type pathSet struct {
	used map[string]bool
}

func newPathSet() *pathSet {
	return &pathSet{
		used: make(map[string]bool),
	}
}

func (o *pathSet) Claim(p string) string {
	if !o.used[p] {
		o.used[p] = true
		return p
	}

	stem, ext := splitExt(p)

	for n := 0; ; n++ {
		c := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if !o.used[c] {
			o.used[c] = true
			return c
		}
	}
}

func splitExt(p string) (string, string) {
	b := p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		b = p[i+1:]
	}

	if j := strings.LastIndex(b, "."); j > 0 {
		return p[:len(p)-(len(b)-j)], b[j:]
	}

	return p, ""
}
