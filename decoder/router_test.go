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

package decoder_test

import (
	liblog "github.com/nabbar/golib/logger"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unpakku/unpakku/decoder"
)

var _ = Describe("TC-RT-001: Recognition Router", func() {
	BeforeEach(func() {
		registerTestDecoders()
	})

	Describe("TC-RT-002: Registry order routing", func() {
		It("TC-RT-003: should pick the first decoder recognizing the input", func() {
			r := decoder.NewRouter(nil)
			f := decoder.NewFile("a.bin", []byte("BETA data"))

			id, d := r.Route(f, nil)
			Expect(id).To(Equal(decoder.ID("test/beta")))
			Expect(d).ToNot(BeNil())
		})

		It("TC-RT-004: should fall through to the catch-all sniffer when no magic matches", func() {
			r := decoder.NewRouter(nil)
			f := decoder.NewFile("a.bin", []byte("plain"))

			id, _ := r.Route(f, nil)
			Expect(id).To(Equal(decoder.ID("test/any")))
		})

		It("TC-RT-005: should leave the stream at position zero after routing", func() {
			r := decoder.NewRouter(nil)
			f := decoder.NewFile("a.bin", []byte("ALPH data"))
			Expect(f.Data.Seek(3)).ToNot(HaveOccurred())

			id, _ := r.Route(f, nil)
			Expect(id).To(Equal(decoder.ID("test/alpha")))
			Expect(f.Data.Tell()).To(BeEquivalentTo(0))
		})

		It("TC-RT-006: should recognize the same input twice", func() {
			r := decoder.NewRouter(nil)
			f := decoder.NewFile("a.bin", []byte("ARC0 data"))

			id, d := r.Route(f, nil)
			Expect(id).To(Equal(decoder.ID("test/arc")))

			Expect(f.Data.Seek(0)).ToNot(HaveOccurred())
			Expect(d.Recognize(f)).To(BeTrue())
		})
	})

	Describe("TC-RT-010: Hinted routing", func() {
		It("TC-RT-011: should try hints before the registry order", func() {
			r := decoder.NewRouter(nil)
			// both test/alpha and test/any match; the hint flips the winner
			f := decoder.NewFile("a.bin", []byte("ALPH data"))

			id, _ := r.Route(f, []decoder.ID{"test/any"})
			Expect(id).To(Equal(decoder.ID("test/any")))
		})

		It("TC-RT-012: should fall back to the registry when every hint rejects", func() {
			r := decoder.NewRouter(nil)
			f := decoder.NewFile("a.bin", []byte("BETA data"))

			id, _ := r.Route(f, []decoder.ID{"test/arc"})
			Expect(id).To(Equal(decoder.ID("test/beta")))
		})

		It("TC-RT-013: should skip unknown hint ids", func() {
			r := decoder.NewRouter(nil)
			f := decoder.NewFile("a.bin", []byte("BETA data"))

			id, _ := r.Route(f, []decoder.ID{"test/ghost", "test/beta"})
			Expect(id).To(Equal(decoder.ID("test/beta")))
		})
	})

	Describe("TC-RT-020: Instance ownership", func() {
		It("TC-RT-021: should reuse one instance per id within a router", func() {
			r := decoder.NewRouter(nil)

			a, err := r.Get("test/alpha")
			Expect(err).ToNot(HaveOccurred())

			b, err := r.Get("test/alpha")
			Expect(err).ToNot(HaveOccurred())

			Expect(a).To(BeIdenticalTo(b))
		})

		It("TC-RT-022: should give distinct routers distinct instances", func() {
			r1 := decoder.NewRouter(nil)
			r2 := decoder.NewRouter(nil)

			a, err := r1.Get("test/alpha")
			Expect(err).ToNot(HaveOccurred())

			b, err := r2.Get("test/alpha")
			Expect(err).ToNot(HaveOccurred())

			Expect(a).ToNot(BeIdenticalTo(b))
		})

		It("TC-RT-023: should hand its logger to log aware decoders", func() {
			r := decoder.NewRouter(func() liblog.Logger { return nil })

			d, err := r.Get("test/logged")
			Expect(err).ToNot(HaveOccurred())
			Expect(d.(*logAwareDecoder).gotLog).To(BeTrue())
		})

		It("TC-RT-024: should leave log aware decoders silent without a logger", func() {
			r := decoder.NewRouter(nil)

			d, err := r.Get("test/logged")
			Expect(err).ToNot(HaveOccurred())
			Expect(d.(*logAwareDecoder).gotLog).To(BeFalse())
		})
	})

	Describe("TC-RT-030: Entry payloads", func() {
		It("TC-RT-031: should hand back the decoder private payload typed", func() {
			type kcapEntry struct {
				offset uint32
				size   uint32
			}

			e := decoder.NewEntry("a.dat").SetPrivate(&kcapEntry{offset: 8, size: 16})

			p, k := decoder.EntryPrivate[*kcapEntry](e)
			Expect(k).To(BeTrue())
			Expect(p.offset).To(BeEquivalentTo(8))
			Expect(p.size).To(BeEquivalentTo(16))

			_, k = decoder.EntryPrivate[string](e)
			Expect(k).To(BeFalse())
		})

		It("TC-RT-032: should keep meta order and private state", func() {
			m := decoder.NewMeta().
				Add(decoder.NewEntry("one")).
				Add(decoder.NewEntry("two")).
				SetPrivate([]byte{0xAA})

			Expect(m.Len()).To(Equal(2))
			Expect(m.Entries[0].Path).To(Equal("one"))
			Expect(m.Entries[1].Path).To(Equal("two"))

			p, k := decoder.MetaPrivate[[]byte](m)
			Expect(k).To(BeTrue())
			Expect(p).To(Equal([]byte{0xAA}))
		})
	})

	Describe("TC-RT-040: File values", func() {
		It("TC-RT-041: should substitute extensions on the last element only", func() {
			f := decoder.NewFile("dir.v1/name.tga", nil)
			Expect(f.WithExt(".png")).To(Equal("dir.v1/name.png"))

			f = decoder.NewFile("noext", nil)
			Expect(f.WithExt(".png")).To(Equal("noext.png"))

			f = decoder.NewFile("dir/noext", nil)
			Expect(f.WithExt(".png")).To(Equal("dir/noext.png"))
		})

		It("TC-RT-042: should match extensions case insensitively", func() {
			f := decoder.NewFile("IMAGE.TGA", nil)
			Expect(f.HasExt(".tga")).To(BeTrue())
			Expect(f.HasExt(".png")).To(BeFalse())
		})
	})
})
