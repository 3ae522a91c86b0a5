/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Image loading and page rendering
 */

package main

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/kofuk/ipp-print/pwg"
	"github.com/nfnt/resize"
)

// Bitmap represents a page-sized pixel buffer, ready to be wrapped
// into a raster stream
type Bitmap struct {
	Width, Height int            // Page dimensions, pixels
	ColorSpace    pwg.ColorSpace // Pixel interpretation
	BitsPerColor  int            // Bits per color component
	BitsPerPixel  int            // Bits per whole pixel
	Stride        int            // Octets per scanline
	Pix           []byte         // Packed scanlines, top to bottom
}

// rasterModes maps a color-mode keyword to raster parameters
var rasterModes = map[string]struct {
	cs       pwg.ColorSpace
	bpc, bpp int
}{
	"srgb": {pwg.ColorSpaceSRGB, 8, 24},
	"gray": {pwg.ColorSpaceSGray, 8, 8},
	"bw":   {pwg.ColorSpaceBlack, 1, 1},
}

// LoadImage reads and decodes an image file. PNG, JPEG and GIF
// formats are recognized by content
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", path, err)
	}

	Log.Debug(' ', "%s: %s image, %dx%d", path, format,
		img.Bounds().Dx(), img.Bounds().Dy())

	return img, nil
}

// RenderPage renders the image onto a page of the given size.
//
// The image is rotated a quarter turn when its orientation doesn't
// match the page, scaled to fit while preserving the aspect ratio,
// centered on a white background and converted into the pixel
// format the color mode asks for
func RenderPage(img image.Image, pageW, pageH int, mode string) (*Bitmap, error) {
	params, ok := rasterModes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown color mode %q", mode)
	}

	b := img.Bounds()
	if (b.Dx() > b.Dy()) != (pageW > pageH) {
		img = rotate90(img)
		b = img.Bounds()
	}

	scaledW, scaledH := fitRect(b.Dx(), b.Dy(), pageW, pageH)
	scaled := resize.Resize(uint(scaledW), uint(scaledH), img, resize.Lanczos3)

	canvas := image.NewRGBA(image.Rect(0, 0, pageW, pageH))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	off := image.Pt((pageW-scaledW)/2, (pageH-scaledH)/2)
	draw.Draw(canvas, image.Rectangle{off, off.Add(image.Pt(scaledW, scaledH))},
		scaled, scaled.Bounds().Min, draw.Over)

	bm := &Bitmap{
		Width:        pageW,
		Height:       pageH,
		ColorSpace:   params.cs,
		BitsPerColor: params.bpc,
		BitsPerPixel: params.bpp,
	}

	switch mode {
	case "srgb":
		bm.Stride = pageW * 3
		bm.Pix = make([]byte, pageH*bm.Stride)

		for y := 0; y < pageH; y++ {
			src := canvas.Pix[y*canvas.Stride:]
			dst := bm.Pix[y*bm.Stride:]

			for x := 0; x < pageW; x++ {
				dst[x*3+0] = src[x*4+0]
				dst[x*3+1] = src[x*4+1]
				dst[x*3+2] = src[x*4+2]
			}
		}

	case "gray":
		bm.Stride = pageW
		bm.Pix = make([]byte, pageH*bm.Stride)

		for y := 0; y < pageH; y++ {
			src := canvas.Pix[y*canvas.Stride:]
			dst := bm.Pix[y*bm.Stride:]

			for x := 0; x < pageW; x++ {
				dst[x] = grayPixel(src[x*4:])
			}
		}

	case "bw":
		bm.Stride = (pageW + 7) / 8
		bm.Pix = make([]byte, pageH*bm.Stride)

		for y := 0; y < pageH; y++ {
			src := canvas.Pix[y*canvas.Stride:]
			dst := bm.Pix[y*bm.Stride:]

			for x := 0; x < pageW; x++ {
				if grayPixel(src[x*4:]) < 128 {
					dst[x/8] |= 0x80 >> (x % 8)
				}
			}
		}
	}

	return bm, nil
}

// grayPixel converts an RGBA pixel into its gray level, using the
// usual ITU-R 601 luminance weights
func grayPixel(rgba []byte) byte {
	r := int(rgba[0])
	g := int(rgba[1])
	b := int(rgba[2])

	return byte((299*r + 587*g + 114*b + 500) / 1000)
}

// fitRect scales (w, h) to fit into (boxW, boxH), preserving the
// aspect ratio. One dimension always becomes the box dimension,
// the other is rounded to the nearest pixel and never exceeds
// its bound
func fitRect(w, h, boxW, boxH int) (int, int) {
	if w*boxH >= h*boxW {
		h = (h*boxW + w/2) / w
		w = boxW
	} else {
		w = (w*boxH + h/2) / h
		h = boxH
	}

	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	return w, h
}

// rotate90 returns the image rotated a quarter turn clockwise
func rotate90(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(b.Max.Y-1-y, x-b.Min.X, src.At(x, y))
		}
	}

	return dst
}
