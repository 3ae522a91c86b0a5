/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * PWG Raster stream format
 */

/*
Package pwg generates and parses PWG Raster streams, the page
payload format of driverless printing (PWG 5102.4).

A stream is the 4-byte synchronization word, then for every page a
fixed 1796-byte header followed by exactly Height scanlines of
BytesPerLine octets each. All integer fields are big-endian; rows
whose pixel data does not fill the last byte are padded with zero
bits.

Writer produces such a stream page by page; Reader walks one. Both
move raw scanlines and do no color conversion: the three pixel
formats this package accepts (sRGB 8-bit, sGray 8-bit, black
1-bit MSB-first) must be prepared by the caller.
*/
package pwg

import (
	"errors"
	"fmt"
)

// SyncWord opens every stream: it identifies the format and the
// big-endian byte order. Written once per document, never repeated
// between pages.
const SyncWord = "RaS2"

// Raster generation and parsing errors
var (
	ErrUnsupportedColorSpace = errors.New("unsupported color space")
	ErrUnsupportedBitDepth   = errors.New("unsupported bit depth")
	ErrDimensionMismatch     = errors.New("pixel buffer does not match page dimensions")
	ErrBadSync               = errors.New("bad synchronization word")
	ErrShortLine             = errors.New("buffer does not match bytes-per-line")
)

// ColorSpace identifies the pixel encoding of a page, with the
// numeric values the page header uses on the wire
type ColorSpace uint32

// Color spaces, as defined by PWG 5102.4
const (
	ColorSpaceRGB      ColorSpace = 1  // Device RGB
	ColorSpaceBlack    ColorSpace = 3  // Bi-level black, 1 = black
	ColorSpaceCMYK     ColorSpace = 6  // Device CMYK
	ColorSpaceSGray    ColorSpace = 18 // Grayscale, sRGB gamma
	ColorSpaceSRGB     ColorSpace = 19 // sRGB
	ColorSpaceAdobeRGB ColorSpace = 20 // Adobe RGB
)

// Components returns the number of color components per pixel,
// 0 for color spaces this package knows nothing about
func (cs ColorSpace) Components() int {
	switch cs {
	case ColorSpaceBlack, ColorSpaceSGray:
		return 1
	case ColorSpaceRGB, ColorSpaceSRGB, ColorSpaceAdobeRGB:
		return 3
	case ColorSpaceCMYK:
		return 4
	}

	return 0
}

// String returns the color space name
func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceRGB:
		return "rgb"
	case ColorSpaceBlack:
		return "black"
	case ColorSpaceCMYK:
		return "cmyk"
	case ColorSpaceSGray:
		return "sgray"
	case ColorSpaceSRGB:
		return "srgb"
	case ColorSpaceAdobeRGB:
		return "adobergb"
	}

	return fmt.Sprintf("colorspace(%d)", uint32(cs))
}
