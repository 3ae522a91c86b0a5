/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Page header codec
 */

package pwg

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// HeaderSize is the encoded size of a page header
const HeaderSize = 1796

// VendorDataMax is the capacity of the vendor data field
const VendorDataMax = 1088

// PageHeader describes a single page of a raster stream. The zero
// value encodes cleanly; fields left zero stay zero on the wire,
// except BytesPerLine and NumColors, which the Writer derives from
// the dimensions and color space when unset.
//
// Bi-level (CutMedia aside) settings are booleans here and 32-bit
// 0/1 words on the wire. String fields occupy 64 bytes on the wire,
// NUL-padded, so their length is limited to 63.
type PageHeader struct {
	MediaColor           string     // Blank, white, ...
	MediaType            string     // Stationery, envelope, ...
	PrintContentOptimize string     // Graphic, photo, text, ...
	CutMedia             uint32     // When to cut media, 0 = never
	Duplex               bool       // Two-sided printing
	HWResolution         [2]uint32  // Cross-feed, feed dpi
	InsertSheet          bool       // Insert separator sheets
	Jog                  uint32     // When to shift media, 0 = never
	LeadingEdge          uint32     // 0 = top edge first
	MediaPosition        uint32     // Input slot, 0 = auto
	MediaWeightMetric    uint32     // Media weight in g/m2, 0 = default
	NumCopies            uint32     // Copies, 0 = printer default
	Orientation          uint32     // 0 = portrait
	PageSize             [2]uint32  // Width, length in points
	Tumble               bool       // Flip the back side
	Width                uint32     // Page width in pixels
	Height               uint32     // Page height in pixels
	BitsPerColor         uint32     // Bits per color component
	BitsPerPixel         uint32     // Bits per pixel
	BytesPerLine         uint32     // Octets per scanline
	ColorOrder           uint32     // 0 = chunky (interleaved)
	ColorSpace           ColorSpace // Pixel encoding
	NumColors            uint32     // Color components per pixel
	TotalPageCount       uint32     // Pages in the document, 0 = unknown
	CrossFeedTransform   int32      // 1, or -1 when mirrored
	FeedTransform        int32      // 1, or -1 when mirrored
	ImageBox             [4]uint32  // Print area: left, top, right, bottom px
	AlternatePrimary     uint32     // Highlight color as 00rrggbb
	PrintQuality         uint32     // 0 = default, 3 draft .. 5 high
	VendorIdentifier     uint32     // USB vendor ID of the extension owner
	VendorData           []byte     // Up to VendorDataMax octets
	RenderingIntent      string     // Blank = printer default
	PageSizeName         string     // Self-describing media name
}

// DefaultPageHeader returns a header for an A4 sRGB page at 300 dpi
func DefaultPageHeader() *PageHeader {
	return &PageHeader{
		HWResolution:       [2]uint32{300, 300},
		PageSize:           [2]uint32{595, 841},
		Width:              2480,
		Height:             3507,
		BitsPerColor:       8,
		BitsPerPixel:       24,
		BytesPerLine:       7440,
		ColorSpace:         ColorSpaceSRGB,
		NumColors:          3,
		TotalPageCount:     1,
		CrossFeedTransform: 1,
		FeedTransform:      1,
		AlternatePrimary:   0xffffff,
		PageSizeName:       "iso_a4_210x297mm",
	}
}

// encode returns the wire form of the header
func (hdr *PageHeader) encode() ([]byte, error) {
	buf := make([]byte, HeaderSize)

	err := putCString(buf[0:64], "PwgRaster")
	if err == nil {
		err = putCString(buf[64:128], hdr.MediaColor)
	}
	if err == nil {
		err = putCString(buf[128:192], hdr.MediaType)
	}
	if err == nil {
		err = putCString(buf[192:256], hdr.PrintContentOptimize)
	}
	if err != nil {
		return nil, err
	}

	binary.BigEndian.PutUint32(buf[268:], hdr.CutMedia)
	putBool(buf[272:], hdr.Duplex)
	binary.BigEndian.PutUint32(buf[276:], hdr.HWResolution[0])
	binary.BigEndian.PutUint32(buf[280:], hdr.HWResolution[1])
	putBool(buf[300:], hdr.InsertSheet)
	binary.BigEndian.PutUint32(buf[304:], hdr.Jog)
	binary.BigEndian.PutUint32(buf[308:], hdr.LeadingEdge)
	binary.BigEndian.PutUint32(buf[324:], hdr.MediaPosition)
	binary.BigEndian.PutUint32(buf[328:], hdr.MediaWeightMetric)
	binary.BigEndian.PutUint32(buf[340:], hdr.NumCopies)
	binary.BigEndian.PutUint32(buf[344:], hdr.Orientation)
	binary.BigEndian.PutUint32(buf[352:], hdr.PageSize[0])
	binary.BigEndian.PutUint32(buf[356:], hdr.PageSize[1])
	putBool(buf[368:], hdr.Tumble)
	binary.BigEndian.PutUint32(buf[372:], hdr.Width)
	binary.BigEndian.PutUint32(buf[376:], hdr.Height)
	binary.BigEndian.PutUint32(buf[384:], hdr.BitsPerColor)
	binary.BigEndian.PutUint32(buf[388:], hdr.BitsPerPixel)
	binary.BigEndian.PutUint32(buf[392:], hdr.BytesPerLine)
	binary.BigEndian.PutUint32(buf[396:], hdr.ColorOrder)
	binary.BigEndian.PutUint32(buf[400:], uint32(hdr.ColorSpace))
	binary.BigEndian.PutUint32(buf[420:], hdr.NumColors)
	binary.BigEndian.PutUint32(buf[452:], hdr.TotalPageCount)
	binary.BigEndian.PutUint32(buf[456:], uint32(hdr.CrossFeedTransform))
	binary.BigEndian.PutUint32(buf[460:], uint32(hdr.FeedTransform))
	binary.BigEndian.PutUint32(buf[464:], hdr.ImageBox[0])
	binary.BigEndian.PutUint32(buf[468:], hdr.ImageBox[1])
	binary.BigEndian.PutUint32(buf[472:], hdr.ImageBox[2])
	binary.BigEndian.PutUint32(buf[476:], hdr.ImageBox[3])
	binary.BigEndian.PutUint32(buf[480:], hdr.AlternatePrimary)
	binary.BigEndian.PutUint32(buf[484:], hdr.PrintQuality)
	binary.BigEndian.PutUint32(buf[508:], hdr.VendorIdentifier)

	if len(hdr.VendorData) > VendorDataMax {
		return nil, fmt.Errorf("vendor data is %d bytes, at most %d fit",
			len(hdr.VendorData), VendorDataMax)
	}
	binary.BigEndian.PutUint32(buf[512:], uint32(len(hdr.VendorData)))
	copy(buf[516:516+VendorDataMax], hdr.VendorData)

	err = putCString(buf[1668:1732], hdr.RenderingIntent)
	if err == nil {
		err = putCString(buf[1732:1796], hdr.PageSizeName)
	}
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// decodeHeader parses the wire form of a header. buf must be
// HeaderSize bytes.
func decodeHeader(buf []byte) (*PageHeader, error) {
	hdr := &PageHeader{
		MediaColor:           getCString(buf[64:128]),
		MediaType:            getCString(buf[128:192]),
		PrintContentOptimize: getCString(buf[192:256]),
		CutMedia:             binary.BigEndian.Uint32(buf[268:]),
		Duplex:               getBool(buf[272:]),
		InsertSheet:          getBool(buf[300:]),
		Jog:                  binary.BigEndian.Uint32(buf[304:]),
		LeadingEdge:          binary.BigEndian.Uint32(buf[308:]),
		MediaPosition:        binary.BigEndian.Uint32(buf[324:]),
		MediaWeightMetric:    binary.BigEndian.Uint32(buf[328:]),
		NumCopies:            binary.BigEndian.Uint32(buf[340:]),
		Orientation:          binary.BigEndian.Uint32(buf[344:]),
		Tumble:               getBool(buf[368:]),
		Width:                binary.BigEndian.Uint32(buf[372:]),
		Height:               binary.BigEndian.Uint32(buf[376:]),
		BitsPerColor:         binary.BigEndian.Uint32(buf[384:]),
		BitsPerPixel:         binary.BigEndian.Uint32(buf[388:]),
		BytesPerLine:         binary.BigEndian.Uint32(buf[392:]),
		ColorOrder:           binary.BigEndian.Uint32(buf[396:]),
		ColorSpace:           ColorSpace(binary.BigEndian.Uint32(buf[400:])),
		NumColors:            binary.BigEndian.Uint32(buf[420:]),
		TotalPageCount:       binary.BigEndian.Uint32(buf[452:]),
		CrossFeedTransform:   int32(binary.BigEndian.Uint32(buf[456:])),
		FeedTransform:        int32(binary.BigEndian.Uint32(buf[460:])),
		AlternatePrimary:     binary.BigEndian.Uint32(buf[480:]),
		PrintQuality:         binary.BigEndian.Uint32(buf[484:]),
		VendorIdentifier:     binary.BigEndian.Uint32(buf[508:]),
		RenderingIntent:      getCString(buf[1668:1732]),
		PageSizeName:         getCString(buf[1732:1796]),
	}

	hdr.HWResolution[0] = binary.BigEndian.Uint32(buf[276:])
	hdr.HWResolution[1] = binary.BigEndian.Uint32(buf[280:])
	hdr.PageSize[0] = binary.BigEndian.Uint32(buf[352:])
	hdr.PageSize[1] = binary.BigEndian.Uint32(buf[356:])
	hdr.ImageBox[0] = binary.BigEndian.Uint32(buf[464:])
	hdr.ImageBox[1] = binary.BigEndian.Uint32(buf[468:])
	hdr.ImageBox[2] = binary.BigEndian.Uint32(buf[472:])
	hdr.ImageBox[3] = binary.BigEndian.Uint32(buf[476:])

	vendorLen := binary.BigEndian.Uint32(buf[512:])
	if vendorLen > VendorDataMax {
		return nil, fmt.Errorf("vendor data length %d exceeds %d",
			vendorLen, VendorDataMax)
	}
	if vendorLen > 0 {
		hdr.VendorData = make([]byte, vendorLen)
		copy(hdr.VendorData, buf[516:516+vendorLen])
	}

	return hdr, nil
}

// putCString stores a string into a fixed NUL-padded field
func putCString(field []byte, s string) error {
	if len(s) >= len(field) {
		return fmt.Errorf("string %q too long for a %d-byte field",
			s, len(field))
	}

	copy(field, s)

	return nil
}

// getCString extracts a string from a fixed NUL-padded field
func getCString(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}

	return string(field)
}

// putBool stores a boolean as a 32-bit 0/1 word
func putBool(field []byte, v bool) {
	if v {
		binary.BigEndian.PutUint32(field, 1)
	}
}

// getBool reads a 32-bit boolean word
func getBool(field []byte) bool {
	return binary.BigEndian.Uint32(field) != 0
}
