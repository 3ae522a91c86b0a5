/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Cross-checks against the OpenPrinting goipp codec
 */

package ipp

import (
	"bytes"
	"testing"

	"github.com/OpenPrinting/goipp"
)

// Test that an equivalently built request encodes to the same bytes
// both here and in goipp
func TestInteropEncode(t *testing.T) {
	ours := NewRequest(Version11, OpGetPrinterAttributes, 1)
	ours.AddOperation(
		MakeAttribute("attributes-charset", TagCharset, String("utf-8")),
		MakeAttribute("attributes-natural-language", TagLanguage, String("en")),
		MakeAttribute("printer-uri", TagURI,
			String("ipp://printer.local/ipp/print")),
		MakeAttribute("requested-attributes", TagKeyword,
			String("printer-name"), String("printer-state")),
	)

	theirs := goipp.NewRequest(goipp.MakeVersion(1, 1),
		goipp.OpGetPrinterAttributes, 1)
	theirs.Operation.Add(goipp.MakeAttribute("attributes-charset",
		goipp.TagCharset, goipp.String("utf-8")))
	theirs.Operation.Add(goipp.MakeAttribute("attributes-natural-language",
		goipp.TagLanguage, goipp.String("en")))
	theirs.Operation.Add(goipp.MakeAttribute("printer-uri",
		goipp.TagURI, goipp.String("ipp://printer.local/ipp/print")))

	requested := goipp.MakeAttribute("requested-attributes",
		goipp.TagKeyword, goipp.String("printer-name"))
	requested.Values.Add(goipp.TagKeyword, goipp.String("printer-state"))
	theirs.Operation.Add(requested)

	ourBytes, err := ours.EncodeBytes()
	if err != nil {
		t.Fatalf("encode: %s", err)
	}

	theirBytes, err := theirs.EncodeBytes()
	if err != nil {
		t.Fatalf("goipp encode: %s", err)
	}

	if !bytes.Equal(ourBytes, theirBytes) {
		t.Errorf("encodings differ:\nours:  %x\ngoipp: %x", ourBytes, theirBytes)
	}
}

// Test that collections encode to the same bytes both here and
// in goipp
func TestInteropCollection(t *testing.T) {
	size := Collection{}
	size.Add(MakeAttribute("x-dimension", TagInteger, Integer(21000)))
	size.Add(MakeAttribute("y-dimension", TagInteger, Integer(29700)))

	mediaCol := Collection{}
	mediaCol.Add(MakeAttribute("media-size", TagBeginCollection, size))

	ours := NewRequest(Version11, OpPrintJob, 5)
	ours.AddJob(MakeAttribute("media-col", TagBeginCollection, mediaCol))

	theirSize := goipp.Collection{}
	theirSize.Add(goipp.MakeAttribute("x-dimension",
		goipp.TagInteger, goipp.Integer(21000)))
	theirSize.Add(goipp.MakeAttribute("y-dimension",
		goipp.TagInteger, goipp.Integer(29700)))

	theirCol := goipp.Collection{}
	theirCol.Add(goipp.MakeAttribute("media-size",
		goipp.TagBeginCollection, theirSize))

	theirs := goipp.NewRequest(goipp.MakeVersion(1, 1), goipp.OpPrintJob, 5)
	theirs.Job.Add(goipp.MakeAttribute("media-col",
		goipp.TagBeginCollection, theirCol))

	ourBytes, err := ours.EncodeBytes()
	if err != nil {
		t.Fatalf("encode: %s", err)
	}

	theirBytes, err := theirs.EncodeBytes()
	if err != nil {
		t.Fatalf("goipp encode: %s", err)
	}

	if !bytes.Equal(ourBytes, theirBytes) {
		t.Errorf("encodings differ:\nours:  %x\ngoipp: %x", ourBytes, theirBytes)
	}

	// And goipp must be able to read what we wrote
	var decoded goipp.Message
	if err = decoded.DecodeBytes(ourBytes); err != nil {
		t.Fatalf("goipp decode: %s", err)
	}

	found := false
	for _, attr := range decoded.Job {
		if attr.Name == "media-col" {
			found = true
		}
	}

	if !found {
		t.Error("goipp did not see media-col")
	}
}

// Test that a goipp-built response decodes here and re-encodes to
// the same bytes
func TestInteropDecode(t *testing.T) {
	theirs := goipp.NewResponse(goipp.MakeVersion(1, 1), goipp.StatusOk, 8)
	theirs.Operation.Add(goipp.MakeAttribute("attributes-charset",
		goipp.TagCharset, goipp.String("utf-8")))
	theirs.Printer.Add(goipp.MakeAttribute("printer-state",
		goipp.TagEnum, goipp.Integer(3)))
	theirs.Printer.Add(goipp.MakeAttribute("printer-is-accepting-jobs",
		goipp.TagBoolean, goipp.Boolean(true)))
	theirs.Printer.Add(goipp.MakeAttribute("printer-resolution-default",
		goipp.TagResolution, goipp.Resolution{
			Xres: 600, Yres: 600, Units: goipp.UnitsDpi,
		}))

	theirBytes, err := theirs.EncodeBytes()
	if err != nil {
		t.Fatalf("goipp encode: %s", err)
	}

	var m Message
	if err = m.DecodeBytes(theirBytes); err != nil {
		t.Fatalf("decode: %s", err)
	}

	attr, ok := m.Get(TagPrinterGroup, "printer-state")
	if !ok || attr.Values.String() != "3" {
		t.Errorf("printer-state %s, expected 3", attr.Values)
	}

	ourBytes, err := m.EncodeBytes()
	if err != nil {
		t.Fatalf("re-encode: %s", err)
	}

	if !bytes.Equal(ourBytes, theirBytes) {
		t.Errorf("re-encoding differs:\nours:  %x\ngoipp: %x", ourBytes, theirBytes)
	}
}
