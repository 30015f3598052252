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
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

// Factory builds a fresh decoder instance. Most decoders are stateless and
// the factory returns an empty struct; decoders with mutable configuration
// (e.g. palette injection) rely on the factory to hand each driver worker
// its own instance.
type Factory func() Decoder

var (
	regIds []ID
	regFct = make(map[ID]Factory)
)

// Register adds a decoder factory under the given id. It is expected to be
// called once per decoder before any driver runs, typically from an explicit
// RegisterAll. The iteration order of the registry is registration order, so
// generic or fragile sniffers must register after specific ones.
//
// Registering an invalid id, a nil factory, or the same id twice is a
// programmer error and panics.
func Register(id ID, fct Factory) {
	if !id.Valid() {
		panic(fmt.Errorf("%s: %v: %s", pkgName, ErrorInvalidID.Error(nil), id))
	} else if fct == nil {
		panic(fmt.Errorf("%s: %v: %s", pkgName, ErrorParamEmpty.Error(nil), id))
	} else if _, k := regFct[id]; k {
		panic(fmt.Errorf("%s: %v: %s", pkgName, ErrorDuplicateID.Error(nil), id))
	}

	regIds = append(regIds, id)
	regFct[id] = fct
}

// Lookup returns a fresh decoder instance for the given id.
func Lookup(id ID) (Decoder, liberr.Error) {
	if f, k := regFct[id]; k {
		return f(), nil
	}

	return nil, ErrorUnknownID.Error(nil)
}

// AllIDs returns the registered ids in registration order.
func AllIDs() []ID {
	res := make([]ID, len(regIds))
	copy(res, regIds)
	return res
}

// AllDecoders returns a fresh instance of every registered decoder in
// registration order.
func AllDecoders() []Decoder {
	res := make([]Decoder, 0, len(regIds))
	for _, id := range regIds {
		res = append(res, regFct[id]())
	}
	return res
}
