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

// Package decoder defines the abstract decoder model of the extraction
// engine: the File value passed between stages, the two decoder variants,
// the archive metadata/entry model, the process wide decoder registry and
// the recognition router.
//
// # Overview
//
// A decoder is a plug-in registered under a stable namespace/name id. It
// implements exactly one of two capability sets:
//
//   - FileDecoder: recognize + decode one input file into one output file
//     (image and compressed stream transcoders)
//   - ArchiveDecoder: recognize + enumerate + read members of a container
//
// Both capabilities embed the common Decoder interface (Recognize and
// LinkedFormats); consumers distinguish the variants with a type switch,
// avoiding any deep virtual hierarchy.
//
// # Registry and routing
//
// The registry maps ids to factories and preserves registration order.
// Registration is explicit: the format package's RegisterAll performs all
// registrations once before the driver starts, keeping the lifecycle
// auditable. The router picks the first registered decoder whose Recognize
// accepts the input, after rewinding the stream; hint ids provided by a
// producing decoder (linked formats) are tried first but never exclude the
// rest of the registry.
//
// # Entry payloads
//
// ArchiveEntry values carry a decoder opaque payload so a decoder can stash
// offsets, sizes, keys or palette references between the metadata phase and
// the member read phase. The generic EntryPrivate and MetaPrivate helpers
// hand the payload back as the decoder's own concrete type.
package decoder
