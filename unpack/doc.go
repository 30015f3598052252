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

// Package unpack drives the recursive extraction loop over one input root:
// route the file through the decoder registry, decode or enumerate it,
// recurse on everything produced, and hand final files to a sink.
//
// # Traversal
//
// The walk is depth first and deterministic. Archive members are visited
// in metadata order; a file decoder's output replaces its input in the
// traversal. Recognition failures are not errors: the file is emitted
// verbatim, which is also the fallback when a recognized file fails to
// decode. A per file depth counter demotes pathological decode cycles to
// verbatim emission.
//
// # Naming
//
// Members keep their stored names. Nameless entries receive fallback names
// derived from the archive's naming strategy, numbered in meta order and
// zero padded to the width of the nameless count. Collisions inside one
// archive and inside one sink are suffixed with the smallest unused
// integer before the extension.
//
// # Concurrency
//
// One driver is strictly single threaded and owns its decoder instances.
// Batch callers wanting parallelism run one driver per root; drivers share
// nothing but the read only registry and, when the caller passes one, a
// sink wrapped by NewLockedSink.
package unpack
