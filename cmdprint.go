/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Print mode
 */

package main

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/kofuk/ipp-print/ipp"
	"github.com/kofuk/ipp-print/pwg"
)

// cmdPrint renders an image file into PWG Raster and submits it
// as a Print-Job request
func cmdPrint(opts *options) error {
	media, ok := MediaByName(Conf.Media)
	if !ok {
		return fmt.Errorf("unknown media size %q", Conf.Media)
	}

	img, err := LoadImage(opts.file)
	if err != nil {
		return err
	}

	pageW, pageH := media.Pixels(Conf.Resolution)
	bm, err := RenderPage(img, pageW, pageH, Conf.ColorMode)
	if err != nil {
		return err
	}

	Log.Debug(' ', "rendered %dx%d px, %s, %d bytes",
		bm.Width, bm.Height, bm.ColorSpace, len(bm.Pix))

	body, err := rasterStream(media, bm)
	if err != nil {
		return err
	}

	client, err := NewClient(Conf.PrinterURI)
	if err != nil {
		return err
	}

	defer client.Close()

	jobName := opts.title
	if jobName == "" {
		jobName = filepath.Base(opts.file)
	}

	m := client.NewRequest(ipp.OpPrintJob)

	if Conf.UserName != "" {
		m.AddOperation(ipp.MakeAttribute("requesting-user-name",
			ipp.TagName, ipp.String(Conf.UserName)))
	}

	m.AddOperation(ipp.MakeAttribute("job-name",
		ipp.TagName, ipp.String(jobName)))
	m.AddOperation(ipp.MakeAttribute("document-format",
		ipp.TagMimeType, ipp.String("image/pwg-raster")))

	if Conf.Copies > 1 {
		m.AddJob(ipp.MakeAttribute("copies",
			ipp.TagInteger, ipp.Integer(Conf.Copies)))
	}

	sides := "one-sided"
	if Conf.Duplex {
		sides = "two-sided-long-edge"
	}

	m.AddJob(ipp.MakeAttribute("sides",
		ipp.TagKeyword, ipp.String(sides)))
	m.AddJob(ipp.MakeAttribute("media",
		ipp.TagKeyword, ipp.String(Conf.Media)))
	m.AddJob(ipp.MakeAttribute("printer-resolution",
		ipp.TagResolution, ipp.Resolution{
			Xres:  Conf.Resolution,
			Yres:  Conf.Resolution,
			Units: ipp.UnitsDpi,
		}))

	m.Body = body

	rsp, err := client.Do(m)
	if err != nil {
		return err
	}

	err = CheckStatus(rsp)
	if err != nil {
		return err
	}

	attrs := newIppAttrs(rsp, ipp.TagJobGroup)
	jobID := attrs.intSingle("job-id")
	state := attrs.intSingle("job-state")

	Log.Info("job %d submitted, state %s", jobID, jobStateName(state))
	return nil
}

// rasterStream wraps the rendered page into a PWG Raster document
func rasterStream(media MediaSize, bm *Bitmap) ([]byte, error) {
	ptW, ptH := media.Points()

	hdr := &pwg.PageHeader{
		Duplex:             Conf.Duplex,
		HWResolution:       [2]uint32{uint32(Conf.Resolution), uint32(Conf.Resolution)},
		PageSize:           [2]uint32{uint32(ptW), uint32(ptH)},
		Width:              uint32(bm.Width),
		Height:             uint32(bm.Height),
		BitsPerColor:       uint32(bm.BitsPerColor),
		BitsPerPixel:       uint32(bm.BitsPerPixel),
		ColorSpace:         bm.ColorSpace,
		TotalPageCount:     1,
		CrossFeedTransform: 1,
		FeedTransform:      1,
		AlternatePrimary:   0xffffff,
		PageSizeName:       media.Name,
	}

	var buf bytes.Buffer

	err := pwg.NewWriter(&buf).WritePage(hdr, bm.Pix)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
