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

package naming

import (
	"strings"

	liberr "github.com/nabbar/golib/errors"
)

const (
	sepCommon  = "/"
	sepWindows = "\\"
	sepFlat    = "_"

	// FallbackBaseChild is the literal base used for nameless entries of
	// archives unpacked with the Child strategy.
	FallbackBaseChild = "unk"

	// FallbackExt is the extension given to nameless entries.
	FallbackExt = ".dat"
)

// Resolve returns the output path of a child produced under the given parent
// path. Redundant separators are collapsed; parent references (..) are kept
// as stored.
//
// Rules per strategy:
//   - Root: the child name is taken as is, independent of the parent.
//   - Child: the parent path is treated as a directory holding the child.
//   - Sibling: the child is placed next to the parent.
//   - FlatSibling: as Sibling, with interior separators of the child name
//     collapsed to underscores.
func Resolve(s Strategy, parent, child string) (string, liberr.Error) {
	switch s {
	case Root:
		return joinPath("", child), nil

	case Child, Sibling:
		if len(parent) < 1 {
			return joinPath("", child), nil
		}

		base := parent
		if s == Sibling {
			base = dirOf(parent)
		}

		return joinPath(base, child), nil

	case FlatSibling:
		return Resolve(Sibling, parent, Flatten(child))

	default:
		return "", ErrorInvalidStrategy.Error(nil)
	}
}

// Flatten collapses any interior separator of a child name to underscores.
func Flatten(child string) string {
	child = strings.ReplaceAll(child, sepCommon, sepFlat)
	return strings.ReplaceAll(child, sepWindows, sepFlat)
}

// FallbackBase returns the base used to build fallback names for nameless
// entries of an archive located at the given parent path.
func FallbackBase(s Strategy, parent string) (string, liberr.Error) {
	switch s {
	case Child:
		return FallbackBaseChild, nil

	case Root:
		return stripExt(parent), nil

	case Sibling, FlatSibling:
		return stripExt(baseOf(parent)), nil

	default:
		return "", ErrorInvalidStrategy.Error(nil)
	}
}

// joinPath joins base and child with forward slashes, collapsing redundant
// separators. Unlike path.Join, dot and parent segments are left untouched.
func joinPath(base, child string) string {
	var seg []string

	for _, p := range [2]string{base, child} {
		for _, s := range strings.Split(p, sepCommon) {
			if len(s) > 0 {
				seg = append(seg, s)
			}
		}
	}

	return strings.Join(seg, sepCommon)
}

func dirOf(p string) string {
	if i := strings.LastIndex(p, sepCommon); i >= 0 {
		return p[:i]
	}
	return ""
}

func baseOf(p string) string {
	if i := strings.LastIndex(p, sepCommon); i >= 0 {
		return p[i+1:]
	}
	return p
}

func stripExt(p string) string {
	b := baseOf(p)
	if i := strings.LastIndex(b, "."); i > 0 {
		return p[:len(p)-(len(b)-i)]
	}
	return p
}
