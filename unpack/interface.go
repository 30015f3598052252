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

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/decoder/naming"
)

// DefaultMaxDepth is the recursion guard applied when the config leaves
// MaxDepth unset. Exceeding it demotes a file to verbatim emission.
const DefaultMaxDepth = 32

// Config tunes one driver instance.
type Config struct {
	// MaxDepth bounds recursion per input root; 0 means DefaultMaxDepth.
	MaxDepth int

	// Naming overrides the naming strategy of every archive decoder when
	// not None.
	Naming naming.Strategy

	// Format bypasses recognition for the root file when set.
	Format decoder.ID
}

// Counts summarizes what one driver observed across its runs.
type Counts struct {
	// Saved is the number of files handed to the sink.
	Saved int

	// Unrecognized is the number of input roots emitted verbatim because
	// no decoder matched; nested members that match no decoder are not
	// counted.
	Unrecognized int

	// Corrupt is the number of recognized files or members that failed
	// to decode and were emitted verbatim or skipped.
	Corrupt int
}

// Driver runs the recursive unpack loop over one input root at a time.
// A driver is single threaded: a batch caller runs one driver per worker,
// giving each worker exclusive decoder instances.
type Driver interface {
	// Unpack routes the given root file, recursively unpacks it and
	// writes every produced file to the sink. Non fatal decode failures
	// are logged and counted; the returned error reports a nil argument,
	// an unregistered forced format, a naming failure, cancellation or a
	// sink failure.
	Unpack(ctx context.Context, f *decoder.File, snk Sink) liberr.Error

	// Counts returns the accumulated counters of this driver.
	Counts() Counts

	// ExitCode maps the worst category observed to the process exit
	// code contract: 0 success, 2 decode error.
	ExitCode() int
}

func New(cfg Config, log liblog.FuncLog) Driver {
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	return &driver{
		cfg: cfg,
		log: log,
		rtr: decoder.NewRouter(log),
	}
}
