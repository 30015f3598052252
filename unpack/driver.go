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
	"context"

	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"
	loglvl "github.com/nabbar/golib/logger/level"

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/decoder/naming"
)

type driver struct {
	cfg Config
	log liblog.FuncLog
	rtr *decoder.Router
	cnt Counts
}

func (o *driver) Unpack(ctx context.Context, f *decoder.File, snk Sink) liberr.Error {
	if f == nil || f.Data == nil || snk == nil {
		return ErrorParamEmpty.Error(nil)
	}

	if len(o.cfg.Format) > 0 {
		if _, e := decoder.Lookup(o.cfg.Format); e != nil {
			return ErrorUnknownFormat.Error(e)
		}
	}

	return o.walk(ctx, snk, f, "", nil, 0)
}

func (o *driver) Counts() Counts {
	return o.cnt
}

func (o *driver) ExitCode() int {
	if o.cnt.Corrupt > 0 {
		return 2
	}

	return 0
}

// walk is the recursive unpack loop. parent is the output tree location
// the children of f resolve against: empty for the root lineage, the
// member's resolved path below.
func (o *driver) walk(ctx context.Context, snk Sink, f *decoder.File, parent string, hints []decoder.ID, depth int) liberr.Error {
	if e := ctx.Err(); e != nil {
		return ErrorCancelled.Error(e)
	}

	if depth > o.cfg.MaxDepth {
		o.logMsg(loglvl.WarnLevel, "recursion depth exceeded, emitting verbatim", f.Path, "", nil)
		return o.emit(snk, f)
	}

	id, dec := o.route(f, hints, depth)
	if dec == nil {
		if depth == 0 {
			o.cnt.Unrecognized++
		}
		return o.emit(snk, f)
	}

	switch d := dec.(type) {
	case decoder.FileDecoder:
		return o.walkFile(ctx, snk, f, parent, id, d, depth)

	case decoder.ArchiveDecoder:
		return o.walkArchive(ctx, snk, f, parent, id, d, depth)

	default:
		// a decoder implementing neither capability set is unusable
		o.logMsg(loglvl.ErrorLevel, "decoder implements no capability set", f.Path, id, nil)
		return o.emit(snk, f)
	}
}

func (o *driver) walkFile(ctx context.Context, snk Sink, f *decoder.File, parent string, id decoder.ID, d decoder.FileDecoder, depth int) liberr.Error {
	out, err := d.Decode(f)

	if err != nil || out == nil {
		o.cnt.Corrupt++
		o.logMsg(loglvl.WarnLevel, "decode failed, emitting verbatim", f.Path, id, err)
		return o.emit(snk, f)
	}

	if len(out.Path) < 1 {
		out.Path = f.Path
	}

	return o.walk(ctx, snk, out, parent, d.LinkedFormats(), depth+1)
}

func (o *driver) walkArchive(ctx context.Context, snk Sink, f *decoder.File, parent string, id decoder.ID, d decoder.ArchiveDecoder, depth int) liberr.Error {
	meta, err := d.ReadMeta(f)

	if err != nil || meta == nil {
		o.cnt.Corrupt++
		o.logMsg(loglvl.WarnLevel, "archive metadata unreadable, emitting verbatim", f.Path, id, err)
		return o.emit(snk, f)
	}

	str := o.cfg.Naming
	if str.IsNone() {
		str = d.NamingStrategy()
	}
	if str.IsNone() {
		str = naming.Default()
	}

	fbk, err := newNamer(str, f.Path, meta)
	if err != nil {
		return err
	}

	var (
		seen  = newPathSet()
		links = d.LinkedFormats()
	)

	for _, ent := range meta.Entries {
		if e := ctx.Err(); e != nil {
			return ErrorCancelled.Error(e)
		}

		member, err := d.ReadFile(f, meta, ent)
		if err != nil || member == nil {
			o.cnt.Corrupt++
			o.logMsg(loglvl.WarnLevel, "member unreadable, skipped", f.Path, id, err)
			continue
		}

		name := member.Path
		if len(name) < 1 {
			name = fbk.Next()
		}

		resolved, err := naming.Resolve(str, parent, name)
		if err != nil {
			return err
		}

		member.Path = seen.Claim(resolved)

		if e := o.walk(ctx, snk, member, member.Path, links, depth+1); e != nil {
			return e
		}
	}

	return nil
}

func (o *driver) route(f *decoder.File, hints []decoder.ID, depth int) (decoder.ID, decoder.Decoder) {
	if depth == 0 && len(o.cfg.Format) > 0 {
		if d, e := o.rtr.Get(o.cfg.Format); e == nil {
			return o.cfg.Format, d
		}
		return "", nil
	}

	return o.rtr.Route(f, hints)
}

func (o *driver) emit(snk Sink, f *decoder.File) liberr.Error {
	p := f.Path
	if len(p) < 1 {
		p = naming.FallbackBaseChild + naming.FallbackExt
	}

	if _, e := snk.Save(p, f.Data.Bytes()); e != nil {
		return e
	}

	o.cnt.Saved++
	return nil
}

func (o *driver) logMsg(lvl loglvl.Level, msg string, path string, id decoder.ID, err error) {
	if o.log == nil {
		return
	}

	l := o.log()
	if l == nil {
		return
	}

	ent := l.Entry(lvl, msg)
	ent.FieldAdd("path", path)

	if len(id) > 0 {
		ent.FieldAdd("decoder", id.String())
	}

	if err != nil {
		ent.ErrorAdd(true, err)
	}

	ent.Log()
}
