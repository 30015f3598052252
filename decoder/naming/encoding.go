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
	"bytes"
	"encoding/json"
	"strings"
)

// Parse is a convenience function to parse a string and return the
// corresponding Strategy.
func Parse(s string) Strategy {
	var str = None
	if e := str.UnmarshalText([]byte(s)); e != nil {
		return None
	} else {
		return str
	}
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	*s = None

	v := strings.Trim(string(b), "\"")
	v = strings.Trim(v, "'")
	v = strings.TrimSpace(v)

	switch {
	case strings.EqualFold(v, Root.String()):
		*s = Root
	case strings.EqualFold(v, Child.String()):
		*s = Child
	case strings.EqualFold(v, Sibling.String()):
		*s = Sibling
	case strings.EqualFold(v, FlatSibling.String()):
		*s = FlatSibling
	default:
		*s = None
	}

	return nil
}

func (s Strategy) MarshalJSON() ([]byte, error) {
	if s.IsNone() {
		return []byte("null"), nil
	}
	return append(append([]byte{'"'}, []byte(s.String())...), '"'), nil
}

func (s *Strategy) UnmarshalJSON(b []byte) error {
	var v string

	if n := []byte("null"); bytes.Equal(b, n) {
		*s = None
		return nil
	} else if err := json.Unmarshal(b, &v); err != nil {
		return err
	} else {
		return s.UnmarshalText([]byte(v))
	}
}
