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

package raster

// Palette is a 256 entry RGBA color table.
type Palette [256][4]byte

// GrayPalette returns the identity luminance palette used when an indexed
// image carries no palette of its own.
func GrayPalette() Palette {
	var p Palette
	for i := 0; i < 256; i++ {
		p[i] = [4]byte{byte(i), byte(i), byte(i), 0xFF}
	}
	return p
}

// PaletteFromBGRA parses a packed 256 * 4 byte BGRA color table, padding
// missing entries with opaque black.
func PaletteFromBGRA(data []byte) Palette {
	var p Palette

	for i := 0; i < 256; i++ {
		if i*4+3 < len(data) {
			p[i] = [4]byte{data[i*4+2], data[i*4+1], data[i*4+0], 0xFF}
		} else {
			p[i] = [4]byte{0, 0, 0, 0xFF}
		}
	}

	return p
}
