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
	"os"
	"path/filepath"
	"strings"
	"sync"

	liberr "github.com/nabbar/golib/errors"
)

// Sink receives final (path, bytes) pairs from the driver. It is append
// only: a path colliding with an already saved one is suffixed, never
// overwritten. Save returns the path actually used.
type Sink interface {
	Save(p string, data []byte) (string, liberr.Error)
}

// Saved is one collected output of a memory sink.
type Saved struct {
	Path string
	Data []byte
}

// NewMemorySink collects outputs in order, for tests and dry runs.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		seen: newPathSet(),
	}
}

type MemorySink struct {
	seen  *pathSet
	files []Saved
}

func (o *MemorySink) Save(p string, data []byte) (string, liberr.Error) {
	if len(p) < 1 {
		return "", ErrorParamEmpty.Error(nil)
	}

	p = o.seen.Claim(cleanPath(p))
	o.files = append(o.files, Saved{Path: p, Data: data})

	return p, nil
}

func (o *MemorySink) Files() []Saved {
	return o.files
}

// NewDirSink writes outputs under the given destination directory,
// creating missing intermediate directories.
func NewDirSink(dst string) (*DirSink, liberr.Error) {
	if len(dst) < 1 {
		return nil, ErrorParamEmpty.Error(nil)
	}

	if i, e := os.Stat(dst); e != nil && os.IsNotExist(e) {
		//nolint #nosec
		/* #nosec */
		if e = os.MkdirAll(dst, 0755); e != nil {
			return nil, ErrorDirCreate.Error(e)
		}
	} else if e != nil {
		return nil, ErrorDirStat.Error(e)
	} else if !i.IsDir() {
		return nil, ErrorDirNotDir.Error(nil)
	}

	return &DirSink{
		dst:  dst,
		seen: newPathSet(),
	}, nil
}

type DirSink struct {
	dst  string
	seen *pathSet
}

func (o *DirSink) Save(p string, data []byte) (string, liberr.Error) {
	if len(p) < 1 {
		return "", ErrorParamEmpty.Error(nil)
	}

	p = o.seen.Claim(cleanPath(p))
	out := filepath.Join(o.dst, filepath.FromSlash(p))

	//nolint #nosec
	/* #nosec */
	if e := os.MkdirAll(filepath.Dir(out), 0755); e != nil {
		return p, ErrorDirCreate.Error(e)
	}

	//nolint #nosec
	/* #nosec */
	if e := os.WriteFile(out, data, 0644); e != nil {
		return p, ErrorFileWrite.Error(e)
	}

	return p, nil
}

// NewLockedSink serializes a sink shared by several drivers running in
// parallel over disjoint roots.
func NewLockedSink(s Sink) Sink {
	return &lockedSink{
		s: s,
	}
}

type lockedSink struct {
	m sync.Mutex
	s Sink
}

func (o *lockedSink) Save(p string, data []byte) (string, liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	return o.s.Save(p, data)
}

// cleanPath strips leading separators and parent references so a stored
// member name can never escape the destination tree.
func cleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")

	for {
		switch {
		case strings.HasPrefix(p, "/"):
			p = strings.TrimPrefix(p, "/")
		case strings.HasPrefix(p, "../"):
			p = strings.TrimPrefix(p, "../")
		case strings.Contains(p, "/../"):
			p = strings.Replace(p, "/../", "/", 1)
		default:
			return p
		}
	}
}
