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

package main

import (
	"context"
	"path/filepath"
	"sync/atomic"

	liblog "github.com/nabbar/golib/logger"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/sync/errgroup"

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/decoder/naming"
	"github.com/unpakku/unpakku/stream"
	"github.com/unpakku/unpakku/unpack"
)

func unpackCmd() *cobra.Command {
	var (
		flagFormat   string
		flagNaming   string
		flagMaxDepth int
		flagJobs     int
	)

	cmd := &cobra.Command{
		Use:   "unpack <in>... <out>",
		Short: "unpack input files into an output directory tree",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				roots = args[:len(args)-1]
				dst   = args[len(args)-1]
				str   = naming.Parse(flagNaming)
			)

			if len(flagNaming) > 0 && str.IsNone() {
				return &exitError{code: exitInput, msg: "unknown naming strategy: " + flagNaming}
			}

			fid := decoder.ID(flagFormat)
			if len(flagFormat) > 0 && !fid.Valid() {
				return &exitError{code: exitInput, msg: "invalid format id: " + flagFormat}
			}

			snk, err := unpack.NewDirSink(dst)
			if err != nil {
				return &exitError{code: exitInput, msg: err.Error()}
			}

			return runUnpack(cmd.Context(), roots, snk, unpack.Config{
				MaxDepth: flagMaxDepth,
				Naming:   str,
				Format:   fid,
			}, flagJobs)
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "", "bypass recognition with the given decoder id")
	cmd.Flags().StringVar(&flagNaming, "naming", "", "override naming strategy: root|child|sibling|flat-sibling")
	cmd.Flags().IntVar(&flagMaxDepth, "max-depth", unpack.DefaultMaxDepth, "recursion guard per input root")
	cmd.Flags().IntVar(&flagJobs, "jobs", 1, "number of roots unpacked in parallel")

	return cmd
}

// runUnpack fans the input roots over jobs workers. Each worker owns one
// driver and therefore its own decoder instances; the sink is shared and
// serialized by an unpack.NewLockedSink wrapper.
func runUnpack(ctx context.Context, roots []string, snk unpack.Sink, cfg unpack.Config, jobs int) error {
	if jobs < 1 {
		jobs = 1
	}

	var (
		log      = newLogger()
		fct      = func() liblog.Logger { return log }
		pgr      = mpb.New(mpb.WithWidth(48))
		shared   = unpack.NewLockedSink(snk)
		worst    atomic.Int32
		inputErr atomic.Bool
	)

	defer func() {
		_ = log.Close()
	}()

	bar := pgr.AddBar(int64(len(roots)),
		mpb.PrependDecorators(
			decor.Name("unpack"),
			decor.CountersNoUnit(" %d / %d"),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
		),
	)

	grp, gtx := errgroup.WithContext(ctx)
	grp.SetLimit(jobs)

	for _, root := range roots {
		root := root

		grp.Go(func() error {
			defer bar.Increment()

			s, err := stream.NewFromFile(root)
			if err != nil {
				inputErr.Store(true)
				return err
			}

			drv := unpack.New(cfg, fct)

			f := &decoder.File{
				Path: filepath.ToSlash(filepath.Base(root)),
				Data: s,
			}

			if err = drv.Unpack(gtx, f, shared); err != nil {
				return err
			}

			if c := int32(drv.ExitCode()); c > worst.Load() {
				worst.Store(c)
			}

			return nil
		})
	}

	err := grp.Wait()
	pgr.Wait()

	switch {
	case err != nil && inputErr.Load():
		return &exitError{code: exitInput, msg: err.Error()}
	case err != nil:
		return &exitError{code: exitInternal, msg: err.Error()}
	case worst.Load() > 0:
		return &exitError{code: int(worst.Load()), msg: "some inputs failed to decode"}
	default:
		return nil
	}
}
