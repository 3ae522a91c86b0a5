/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Decode mode: PWG Raster to netpbm
 */

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kofuk/ipp-print/pwg"
)

// cmdDecode unpacks a raster stream into netpbm images, one file
// per page. The first page gets the given output name, further
// pages get a -N suffix before the extension
func cmdDecode(opts *options) error {
	in, err := os.Open(opts.file)
	if err != nil {
		return err
	}

	defer in.Close()

	r := pwg.NewReader(in)

	for page := 1; ; page++ {
		hdr, err := r.NextPage()
		if err == io.EOF {
			if page == 1 {
				return fmt.Errorf("%s: no pages", opts.file)
			}
			return nil
		}
		if err != nil {
			return err
		}

		path := pageFileName(opts.out, page)

		err = decodePage(r, hdr, path)
		if err != nil {
			return err
		}

		Log.Info("page %d: %dx%d %s, %s",
			page, hdr.Width, hdr.Height, hdr.ColorSpace, path)
	}
}

// decodePage writes a single page as PPM, PGM or PBM, whichever
// matches the page color space
func decodePage(r *pwg.Reader, hdr *pwg.PageHeader, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)

	switch hdr.ColorSpace {
	case pwg.ColorSpaceSRGB, pwg.ColorSpaceRGB:
		if hdr.BitsPerColor != 8 {
			err = fmt.Errorf("%d-bit %s: cannot convert to netpbm",
				hdr.BitsPerColor, hdr.ColorSpace)
			break
		}
		fmt.Fprintf(w, "P6\n%d %d\n255\n", hdr.Width, hdr.Height)

	case pwg.ColorSpaceSGray:
		if hdr.BitsPerColor != 8 {
			err = fmt.Errorf("%d-bit %s: cannot convert to netpbm",
				hdr.BitsPerColor, hdr.ColorSpace)
			break
		}
		fmt.Fprintf(w, "P5\n%d %d\n255\n", hdr.Width, hdr.Height)

	case pwg.ColorSpaceBlack:
		// PBM shares the raster layout: most significant bit
		// first, set bits are black, rows padded to the octet
		fmt.Fprintf(w, "P4\n%d %d\n", hdr.Width, hdr.Height)

	default:
		err = fmt.Errorf("%s: cannot convert to netpbm", hdr.ColorSpace)
	}

	if err != nil {
		out.Close()
		return err
	}

	line := make([]byte, hdr.BytesPerLine)
	for {
		err = r.ReadLine(line)
		if err == io.EOF {
			break
		}
		if err == nil {
			_, err = w.Write(line)
		}
		if err != nil {
			out.Close()
			return err
		}
	}

	err = w.Flush()
	if err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// pageFileName inserts the page number into the output name,
// "scan.ppm" becomes "scan-2.ppm" for the second page
func pageFileName(path string, page int) string {
	if page == 1 {
		return path
	}

	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), page, ext)
}
