/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Raster stream writer
 */

package pwg

import (
	"fmt"
	"io"
)

// Writer generates a raster stream page by page. The synchronization
// word goes out just before the first page; pages after that follow
// back to back.
type Writer struct {
	out    io.Writer
	synced bool
}

// NewWriter creates a Writer on top of the output stream
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// WritePage writes one page: the header, then Height scanlines taken
// from pixels, which must hold exactly Height rows of BytesPerLine
// octets. Rows narrower than a whole byte count (1-bit pages whose
// width is not a multiple of 8) must come in already padded with
// zero bits.
//
// BytesPerLine is derived from the width and bit depth; a non-zero
// value in hdr is checked against the derived one and rejected with
// ErrDimensionMismatch when they disagree. NumColors, when zero, is
// filled from the color space. hdr itself is not modified.
func (w *Writer) WritePage(hdr *PageHeader, pixels []byte) error {
	if err := checkFormat(hdr); err != nil {
		return err
	}

	bpl := (int(hdr.Width)*int(hdr.BitsPerPixel) + 7) / 8
	if hdr.BytesPerLine != 0 && int(hdr.BytesPerLine) != bpl {
		return fmt.Errorf("%w: bytes-per-line %d, %d computed from width %d at %d bpp",
			ErrDimensionMismatch, hdr.BytesPerLine, bpl,
			hdr.Width, hdr.BitsPerPixel)
	}

	if len(pixels) != int(hdr.Height)*bpl {
		return fmt.Errorf("%w: %d pixel bytes, %dx%d page wants %d",
			ErrDimensionMismatch, len(pixels), hdr.Width, hdr.Height,
			int(hdr.Height)*bpl)
	}

	filled := *hdr
	filled.BytesPerLine = uint32(bpl)
	if filled.NumColors == 0 {
		filled.NumColors = uint32(hdr.ColorSpace.Components())
	}

	encoded, err := filled.encode()
	if err != nil {
		return err
	}

	if !w.synced {
		if _, err = io.WriteString(w.out, SyncWord); err != nil {
			return err
		}
		w.synced = true
	}

	if _, err = w.out.Write(encoded); err != nil {
		return err
	}

	// Rows are already at BytesPerLine stride, so the whole page
	// goes out in one write.
	_, err = w.out.Write(pixels)

	return err
}

// checkFormat verifies the color space and bit depth are a
// combination this package generates
func checkFormat(hdr *PageHeader) error {
	var ok bool

	switch hdr.ColorSpace {
	case ColorSpaceSRGB:
		ok = hdr.BitsPerColor == 8 && hdr.BitsPerPixel == 24
	case ColorSpaceSGray:
		ok = hdr.BitsPerColor == 8 && hdr.BitsPerPixel == 8
	case ColorSpaceBlack:
		ok = hdr.BitsPerColor == 1 && hdr.BitsPerPixel == 1
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedColorSpace, hdr.ColorSpace)
	}

	if !ok {
		return fmt.Errorf("%w: %d bits per color, %d per pixel for %s",
			ErrUnsupportedBitDepth, hdr.BitsPerColor, hdr.BitsPerPixel,
			hdr.ColorSpace)
	}

	return nil
}
