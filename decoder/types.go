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

import "strings"

// ID is the stable human readable identifier of a decoder, of the form
// namespace/name (e.g. leaf/kcap, truevision/tga). It is unique across
// the registry.
type ID string

func (i ID) String() string {
	return string(i)
}

func (i ID) Namespace() string {
	if n := strings.Index(string(i), "/"); n > 0 {
		return string(i)[:n]
	}
	return ""
}

func (i ID) Name() string {
	if n := strings.Index(string(i), "/"); n > 0 {
		return string(i)[n+1:]
	}
	return ""
}

func (i ID) Valid() bool {
	return len(i.Namespace()) > 0 && len(i.Name()) > 0 && strings.Count(string(i), "/") == 1
}
