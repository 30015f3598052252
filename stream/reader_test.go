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

package stream_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github.com/nabbar/golib/errors"

	"github.com/unpakku/unpakku/stream"
)

var _ = Describe("TC-SR-001: Stream Reader Operations", func() {
	Describe("TC-SR-002: Sequential reads", func() {
		It("TC-SR-003: should read primitives with correct endianness", func() {
			s := stream.New([]byte{
				0x01,
				0x02, 0x03,
				0x04, 0x05,
				0x06, 0x07, 0x08, 0x09,
				0x0A, 0x0B, 0x0C, 0x0D,
			})

			u8, err := s.ReadU8()
			Expect(err).ToNot(HaveOccurred())
			Expect(u8).To(BeEquivalentTo(0x01))

			u16le, err := s.ReadU16LE()
			Expect(err).ToNot(HaveOccurred())
			Expect(u16le).To(BeEquivalentTo(0x0302))

			u16be, err := s.ReadU16BE()
			Expect(err).ToNot(HaveOccurred())
			Expect(u16be).To(BeEquivalentTo(0x0405))

			u32le, err := s.ReadU32LE()
			Expect(err).ToNot(HaveOccurred())
			Expect(u32le).To(BeEquivalentTo(0x09080706))

			u32be, err := s.ReadU32BE()
			Expect(err).ToNot(HaveOccurred())
			Expect(u32be).To(BeEquivalentTo(0x0A0B0C0D))

			Expect(s.EOF()).To(BeTrue())
		})

		It("TC-SR-004: should fail reads past EOF without moving position", func() {
			s := stream.New([]byte{0x01, 0x02})

			_, err := s.ReadU32LE()
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(stream.ErrorEndOfStream)).To(BeTrue())
			Expect(s.Tell()).To(BeEquivalentTo(0))
		})

		It("TC-SR-005: should drain the remainder with ReadToEOF", func() {
			s := stream.New([]byte("abcdef"))
			Expect(s.Skip(2)).ToNot(HaveOccurred())
			Expect(s.ReadToEOF()).To(Equal([]byte("cdef")))
			Expect(s.EOF()).To(BeTrue())
		})
	})

	Describe("TC-SR-010: Seek and skip", func() {
		It("TC-SR-011: should seek absolutely and report position", func() {
			s := stream.New([]byte("abcdef"))
			Expect(s.Seek(4)).ToNot(HaveOccurred())
			Expect(s.Tell()).To(BeEquivalentTo(4))

			b, err := s.Read(2)
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal([]byte("ef")))
		})

		It("TC-SR-012: should reject negative and overflowing seeks", func() {
			s := stream.New([]byte("abc"))

			err := s.Seek(-1)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(stream.ErrorInvalidSeek)).To(BeTrue())

			err = s.Seek(4)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(stream.ErrorInvalidSeek)).To(BeTrue())

			err = s.Skip(-1)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("TC-SR-020: Zero terminated reads", func() {
		It("TC-SR-021: should consume but not return the terminator", func() {
			s := stream.New([]byte("name\x00rest"))

			b, err := s.ReadToZero(0)
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal([]byte("name")))
			Expect(s.Tell()).To(BeEquivalentTo(5))
		})

		It("TC-SR-022: should treat the bound as terminator when no zero found", func() {
			s := stream.New([]byte("abcdefgh"))

			b, err := s.ReadToZero(4)
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal([]byte("abcd")))
			Expect(s.Tell()).To(BeEquivalentTo(4))
		})

		It("TC-SR-023: should stop at EOF when unbounded and no zero found", func() {
			s := stream.New([]byte("abc"))

			b, err := s.ReadToZero(0)
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal([]byte("abc")))
			Expect(s.EOF()).To(BeTrue())
		})
	})

	Describe("TC-SR-030: Scoped peek", func() {
		It("TC-SR-031: should restore position after a normal return", func() {
			s := stream.New([]byte("abcdef"))
			Expect(s.Seek(1)).ToNot(HaveOccurred())

			var got []byte
			err := s.Peek(3, func() liberr.Error {
				b, e := s.Read(2)
				got = b
				return e
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(Equal([]byte("de")))
			Expect(s.Tell()).To(BeEquivalentTo(1))
		})

		It("TC-SR-032: should restore position after an error return", func() {
			s := stream.New([]byte("abcdef"))
			Expect(s.Seek(2)).ToNot(HaveOccurred())

			err := s.Peek(0, func() liberr.Error {
				_, e := s.Read(100)
				return e
			})

			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(stream.ErrorEndOfStream)).To(BeTrue())
			Expect(s.Tell()).To(BeEquivalentTo(2))
		})

		It("TC-SR-033: should fail when the peek offset is out of bounds", func() {
			s := stream.New([]byte("ab"))

			err := s.Peek(10, func() liberr.Error { return nil })
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(stream.ErrorInvalidSeek)).To(BeTrue())
			Expect(s.Tell()).To(BeEquivalentTo(0))
		})
	})

	Describe("TC-SR-040: Constructors", func() {
		It("TC-SR-041: should build a stream from any reader", func() {
			s, err := stream.NewFromReader(bytes.NewReader([]byte("payload")))
			Expect(err).ToNot(HaveOccurred())
			Expect(s.Size()).To(BeEquivalentTo(7))
			Expect(s.Bytes()).To(Equal([]byte("payload")))
		})

		It("TC-SR-042: should reject a nil reader", func() {
			_, err := stream.NewFromReader(nil)
			Expect(err).To(HaveOccurred())
			Expect(err.IsCode(stream.ErrorParamEmpty)).To(BeTrue())
		})
	})
})
