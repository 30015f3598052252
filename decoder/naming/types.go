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

// Strategy is the policy by which a child file's output path is constructed
// from its parent archive's path.
type Strategy uint8

const (
	None Strategy = iota
	Root
	Child
	Sibling
	FlatSibling
)

func List() []Strategy {
	return []Strategy{
		None,
		Root,
		Child,
		Sibling,
		FlatSibling,
	}
}

func ListString() []string {
	var (
		lst = List()
		res = make([]string, 0, len(lst))
	)
	for i := range lst {
		if lst[i] == None {
			continue
		}
		res = append(res, lst[i].String())
	}
	return res
}

// Default is the strategy applied by archive decoders that do not override it.
func Default() Strategy {
	return Child
}

func (s Strategy) IsNone() bool {
	return s == None
}

func (s Strategy) String() string {
	switch s {
	case Root:
		return "root"
	case Child:
		return "child"
	case Sibling:
		return "sibling"
	case FlatSibling:
		return "flat-sibling"
	default:
		return "none"
	}
}
