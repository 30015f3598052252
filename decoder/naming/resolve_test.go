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

package naming_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unpakku/unpakku/decoder/naming"
)

var _ = Describe("TC-NM-001: Naming Strategy Resolution", func() {
	Describe("TC-NM-002: Root strategy", func() {
		It("TC-NM-003: should keep the child name regardless of the parent", func() {
			p, err := naming.Resolve(naming.Root, "path/test.archive", "out.dat")
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal("out.dat"))

			p, err = naming.Resolve(naming.Root, "", "a/b.dat")
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal("a/b.dat"))
		})
	})

	Describe("TC-NM-010: Child strategy", func() {
		It("TC-NM-011: should nest the child under the parent path", func() {
			p, err := naming.Resolve(naming.Child, "path/test.archive", "a.dat")
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal("path/test.archive/a.dat"))
		})

		It("TC-NM-012: should return the child alone when the parent is empty", func() {
			p, err := naming.Resolve(naming.Child, "", "a.dat")
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal("a.dat"))
		})

		It("TC-NM-013: should collapse redundant separators without touching dot-dot", func() {
			p, err := naming.Resolve(naming.Child, "dir//sub/", "..//a.dat")
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal("dir/sub/../a.dat"))
		})
	})

	Describe("TC-NM-020: Sibling strategy", func() {
		It("TC-NM-021: should place the child next to the parent", func() {
			p, err := naming.Resolve(naming.Sibling, "path/test.archive", "a.dat")
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal("path/a.dat"))
		})

		It("TC-NM-022: should handle a parent without directory", func() {
			p, err := naming.Resolve(naming.Sibling, "test.archive", "a.dat")
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal("a.dat"))
		})
	})

	Describe("TC-NM-030: Flat sibling strategy", func() {
		It("TC-NM-031: should flatten interior separators of the child name", func() {
			p, err := naming.Resolve(naming.FlatSibling, "path/test.archive", "sub/dir/a.dat")
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal("path/sub_dir_a.dat"))
		})

		It("TC-NM-032: should flatten backslashes too", func() {
			Expect(naming.Flatten(`sub\a.dat`)).To(Equal("sub_a.dat"))
		})

		It("TC-NM-033: should match Sibling when the child has no separator", func() {
			fs, err := naming.Resolve(naming.FlatSibling, "path/test.archive", "a.dat")
			Expect(err).ToNot(HaveOccurred())

			sb, err := naming.Resolve(naming.Sibling, "path/test.archive", "a.dat")
			Expect(err).ToNot(HaveOccurred())

			Expect(fs).To(Equal(sb))
		})
	})

	Describe("TC-NM-040: Invalid strategy", func() {
		It("TC-NM-041: should fail resolution with a dedicated error code", func() {
			_, err := naming.Resolve(naming.None, "p", "c")
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(naming.ErrorInvalidStrategy)).To(BeTrue())
		})
	})

	Describe("TC-NM-050: Fallback base", func() {
		It("TC-NM-051: should be the literal unk for Child", func() {
			b, err := naming.FallbackBase(naming.Child, "path/test.archive")
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal("unk"))
		})

		It("TC-NM-052: should keep directories for Root", func() {
			b, err := naming.FallbackBase(naming.Root, "path/test.archive")
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal("path/test"))
		})

		It("TC-NM-053: should strip directories for Sibling family", func() {
			b, err := naming.FallbackBase(naming.Sibling, "path/test.archive")
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal("test"))

			b, err = naming.FallbackBase(naming.FlatSibling, "path/test.archive")
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal("test"))
		})
	})

	Describe("TC-NM-060: Parsing and encoding", func() {
		It("TC-NM-061: should parse known strategy names", func() {
			Expect(naming.Parse("root")).To(Equal(naming.Root))
			Expect(naming.Parse("Child")).To(Equal(naming.Child))
			Expect(naming.Parse("sibling")).To(Equal(naming.Sibling))
			Expect(naming.Parse("flat-sibling")).To(Equal(naming.FlatSibling))
			Expect(naming.Parse("bogus")).To(Equal(naming.None))
		})

		It("TC-NM-062: should round trip through text marshaling", func() {
			for _, s := range naming.List() {
				b, err := s.MarshalText()
				Expect(err).ToNot(HaveOccurred())

				var g naming.Strategy
				Expect(g.UnmarshalText(b)).ToNot(HaveOccurred())
				Expect(g).To(Equal(s))
			}
		})

		It("TC-NM-063: should marshal None as JSON null", func() {
			b, err := naming.None.MarshalJSON()
			Expect(err).ToNot(HaveOccurred())
			Expect(string(b)).To(Equal("null"))

			var g naming.Strategy
			Expect(g.UnmarshalJSON([]byte(`"sibling"`))).ToNot(HaveOccurred())
			Expect(g).To(Equal(naming.Sibling))
		})

		It("TC-NM-064: should default to Child", func() {
			Expect(naming.Default()).To(Equal(naming.Child))
		})
	})
})
