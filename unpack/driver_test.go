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

package unpack_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unpakku/unpakku/decoder"
	"github.com/unpakku/unpakku/decoder/naming"
	"github.com/unpakku/unpakku/unpack"
)

var _ = Describe("TC-DR-001: Unpack Driver", func() {
	Describe("TC-DR-002: Simple archives", func() {
		It("TC-DR-003: should preserve nested member paths and payloads", func() {
			arc := makeArchive("test.archive", []tfile{
				{path: "deeply/nested/file.txt", data: []byte("abc")},
			})

			files, _, err := unpackAll(unpack.Config{}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(HaveLen(1))
			Expect(files[0].Path).To(Equal("deeply/nested/file.txt"))
			Expect(files[0].Data).To(Equal([]byte("abc")))
		})

		It("TC-DR-004: should yield no output for an empty archive", func() {
			arc := makeArchive("path/test.archive", nil)

			files, _, err := unpackAll(unpack.Config{}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(BeEmpty())
		})

		It("TC-DR-005: should emit members in meta order", func() {
			arc := makeArchive("test.archive", []tfile{
				{path: "b.txt", data: []byte("2")},
				{path: "a.txt", data: []byte("1")},
				{path: "c.txt", data: []byte("3")},
			})

			files, _, err := unpackAll(unpack.Config{}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(savedPaths(files)).To(Equal([]string{"b.txt", "a.txt", "c.txt"}))
		})

		It("TC-DR-006: should suffix colliding member names", func() {
			arc := makeArchive("test.archive", []tfile{
				{path: "a.dat", data: []byte("first")},
				{path: "a.dat", data: []byte("second")},
			})

			files, _, err := unpackAll(unpack.Config{}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(savedPaths(files)).To(Equal([]string{"a.dat", "a_0.dat"}))
			Expect(files[1].Data).To(Equal([]byte("second")))
		})

		It("TC-DR-007: should unpack nested archives under the member path", func() {
			inner := makeArchive("inner.archive", []tfile{
				{path: "x.txt", data: []byte("deep")},
			})

			outer := makeArchive("outer.archive", []tfile{
				{path: "inner.archive", data: inner.Data.Bytes()},
			})

			files, _, err := unpackAll(unpack.Config{}, outer)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(HaveLen(1))
			Expect(files[0].Path).To(Equal("inner.archive/x.txt"))
			Expect(files[0].Data).To(Equal([]byte("deep")))
		})
	})

	Describe("TC-DR-010: Fallback naming", func() {
		nameless := func(n int) []tfile {
			res := make([]tfile, n)
			return res
		}

		It("TC-DR-011: should name a single nameless entry base dot dat", func() {
			arc := makeArchive("path/test.archive", nameless(1))

			files, _, err := unpackAll(unpack.Config{}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(savedPaths(files)).To(Equal([]string{"unk.dat"}))
		})

		It("TC-DR-012: should number two nameless entries", func() {
			arc := makeArchive("path/test.archive", nameless(2))

			files, _, err := unpackAll(unpack.Config{}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(savedPaths(files)).To(Equal([]string{"unk_0.dat", "unk_1.dat"}))
		})

		It("TC-DR-013: should number nameless entries only, keeping named ones", func() {
			arc := makeArchive("path/test.archive", []tfile{
				{},
				{path: "named"},
				{},
			})

			files, _, err := unpackAll(unpack.Config{}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(savedPaths(files)).To(Equal([]string{"unk_0.dat", "named", "unk_1.dat"}))
		})

		DescribeTable("TC-DR-014: zero padding follows the nameless count width",
			func(count, width int) {
				arc := makeArchive("path/test.archive", nameless(count))

				files, _, err := unpackAll(unpack.Config{}, arc)
				Expect(err).ToNot(HaveOccurred())
				Expect(files).To(HaveLen(count))

				for i := 0; i < count; i++ {
					Expect(files[i].Path).To(Equal(fmt.Sprintf("unk_%0*d.dat", width, i)))
				}
			},
			Entry("nine entries, one digit", 9, 1),
			Entry("ten entries, two digits", 10, 2),
			Entry("eleven entries, two digits", 11, 2),
			Entry("ninety nine entries, two digits", 99, 2),
			Entry("one hundred entries, three digits", 100, 3),
		)

		It("TC-DR-015: should use the full archive stem for the Root strategy", func() {
			arc := makeArchive("path/test.archive", nameless(2))

			files, _, err := unpackAll(unpack.Config{Naming: naming.Root}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(savedPaths(files)).To(Equal([]string{"path/test_0.dat", "path/test_1.dat"}))
		})

		It("TC-DR-016: should use the bare stem for the Sibling strategy", func() {
			arc := makeArchive("path/test.archive", nameless(2))

			files, _, err := unpackAll(unpack.Config{Naming: naming.Sibling}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(savedPaths(files)).To(Equal([]string{"test_0.dat", "test_1.dat"}))
		})

		It("TC-DR-017: should match Sibling for the FlatSibling strategy on nameless entries", func() {
			arc := makeArchive("path/test.archive", nameless(2))

			files, _, err := unpackAll(unpack.Config{Naming: naming.FlatSibling}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(savedPaths(files)).To(Equal([]string{"test_0.dat", "test_1.dat"}))
		})
	})

	Describe("TC-DR-020: Passthrough and failures", func() {
		It("TC-DR-021: should emit an unrecognized root verbatim", func() {
			f := decoder.NewFile("plain.bin", []byte("no decoder matches this"))

			files, drv, err := unpackAll(unpack.Config{}, f)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(HaveLen(1))
			Expect(files[0].Path).To(Equal("plain.bin"))
			Expect(files[0].Data).To(Equal([]byte("no decoder matches this")))
			Expect(drv.Counts().Unrecognized).To(Equal(1))
			Expect(drv.ExitCode()).To(Equal(0))
		})

		It("TC-DR-022: should skip unreadable members and keep their siblings", func() {
			arc := makeArchive("test.archive", []tfile{
				{path: "ok1.txt", data: []byte("one")},
				{path: "broken.txt", data: []byte("FAIL")},
				{path: "ok2.txt", data: []byte("two")},
			})

			files, drv, err := unpackAll(unpack.Config{}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(savedPaths(files)).To(Equal([]string{"ok1.txt", "ok2.txt"}))
			Expect(drv.Counts().Corrupt).To(Equal(1))
			Expect(drv.ExitCode()).To(Equal(2))
		})

		It("TC-DR-023: should emit an archive with unreadable metadata verbatim", func() {
			f := decoder.NewFile("data.badarchive", []byte("whatever"))

			files, drv, err := unpackAll(unpack.Config{}, f)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(HaveLen(1))
			Expect(files[0].Path).To(Equal("data.badarchive"))
			Expect(drv.Counts().Corrupt).To(Equal(1))
		})

		It("TC-DR-024: should demote looping decode chains at the depth guard", func() {
			f := decoder.NewFile("a.loop", []byte("LOOP forever"))

			files, _, err := unpackAll(unpack.Config{MaxDepth: 4}, f)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(HaveLen(1))
			Expect(files[0].Data).To(Equal([]byte("LOOP forever")))
		})

		It("TC-DR-025: should stop at a cancelled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			arc := makeArchive("test.archive", []tfile{
				{path: "a.txt", data: []byte("1")},
			})

			drv := unpack.New(unpack.Config{}, nil)
			snk := unpack.NewMemorySink()

			err := drv.Unpack(ctx, arc, snk)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(unpack.ErrorCancelled)).To(BeTrue())
		})
	})

	Describe("TC-DR-030: Routing control", func() {
		It("TC-DR-031: should bias member recognition toward linked formats", func() {
			arc := makeArchive("test.archive", []tfile{
				{path: "pic.img", data: []byte("IMG0pixels")},
			})

			files, _, err := unpackAll(unpack.Config{}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(HaveLen(1))
			// the archive's linked format wins over registration order
			Expect(files[0].Path).To(Equal("pic.lnk"))
			Expect(files[0].Data).To(Equal([]byte("pixels")))
		})

		It("TC-DR-032: should use registration order without hints", func() {
			f := decoder.NewFile("pic.img", []byte("IMG0pixels"))

			files, _, err := unpackAll(unpack.Config{}, f)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(HaveLen(1))
			Expect(files[0].Path).To(Equal("pic.gen"))
		})

		It("TC-DR-033: should bypass recognition when a format is forced", func() {
			arc := makeArchive("data.blob", []tfile{
				{path: "a.txt", data: []byte("forced")},
			})

			files, _, err := unpackAll(unpack.Config{Format: "test/archive"}, arc)
			Expect(err).ToNot(HaveOccurred())
			Expect(savedPaths(files)).To(Equal([]string{"a.txt"}))
		})

		It("TC-DR-034: should fail fast on an unknown forced format", func() {
			f := decoder.NewFile("data.blob", []byte("x"))

			_, _, err := unpackAll(unpack.Config{Format: "test/ghost"}, f)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(unpack.ErrorUnknownFormat)).To(BeTrue())
		})
	})

	Describe("TC-DR-040: Sink behavior", func() {
		It("TC-DR-041: should deduplicate paths across sibling archives", func() {
			drv := unpack.New(unpack.Config{}, nil)
			snk := unpack.NewMemorySink()

			one := makeArchive("one.archive", []tfile{{path: "same.dat", data: []byte("1")}})
			two := makeArchive("two.archive", []tfile{{path: "same.dat", data: []byte("2")}})

			Expect(drv.Unpack(context.Background(), one, snk)).ToNot(HaveOccurred())
			Expect(drv.Unpack(context.Background(), two, snk)).ToNot(HaveOccurred())

			Expect(savedPaths(snk.Files())).To(Equal([]string{"same.dat", "same_0.dat"}))
		})

		It("TC-DR-042: should strip leading separators and parent references", func() {
			snk := unpack.NewMemorySink()

			p, err := snk.Save("/abs/../x.dat", []byte("x"))
			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal("abs/x.dat"))
		})

		It("TC-DR-043: should never emit an empty path", func() {
			f := decoder.NewFile("", []byte("anonymous"))

			files, _, err := unpackAll(unpack.Config{}, f)
			Expect(err).ToNot(HaveOccurred())
			Expect(files).To(HaveLen(1))
			Expect(files[0].Path).ToNot(BeEmpty())
		})
	})
})
