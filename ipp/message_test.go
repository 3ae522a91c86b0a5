/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Tests for the message codec
 */

package ipp

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
	"time"
)

// Build the wire form of a single tag/name/value triple
func wireAttr(tag Tag, name string, value []byte) []byte {
	data := []byte{byte(tag), byte(len(name) >> 8), byte(len(name))}
	data = append(data, name...)
	data = append(data, byte(len(value)>>8), byte(len(value)))
	data = append(data, value...)

	return data
}

// Build the wire form of the reference Get-Printer-Attributes
// request: version 1.1, request-id 1, three operation attributes
func wireGetPrinterAttributes() []byte {
	data := []byte{0x01, 0x01, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x01}
	data = append(data, byte(TagOperationGroup))
	data = append(data, wireAttr(TagCharset,
		"attributes-charset", []byte("utf-8"))...)
	data = append(data, wireAttr(TagLanguage,
		"attributes-natural-language", []byte("en"))...)
	data = append(data, wireAttr(TagURI,
		"printer-uri", []byte("ipp://printer.local/ipp/print"))...)
	data = append(data, byte(TagEnd))

	return data
}

// Build the message the reference wire form corresponds to
func makeGetPrinterAttributes() *Message {
	m := NewRequest(Version11, OpGetPrinterAttributes, 1)
	m.AddOperation(
		MakeAttribute("attributes-charset", TagCharset, String("utf-8")),
		MakeAttribute("attributes-natural-language", TagLanguage, String("en")),
		MakeAttribute("printer-uri", TagURI,
			String("ipp://printer.local/ipp/print")),
	)

	return m
}

// Test message encoding against the reference wire form
func TestMessageEncode(t *testing.T) {
	expected := wireGetPrinterAttributes()
	if len(expected) != 117 {
		t.Fatalf("reference vector is %d bytes, expected 117", len(expected))
	}

	data, err := makeGetPrinterAttributes().EncodeBytes()
	if err != nil {
		t.Fatalf("encode: %s", err)
	}

	if !bytes.Equal(data, expected) {
		t.Errorf("encoded as:\n%x\nexpected:\n%x", data, expected)
	}
}

// Test message decoding against the reference wire form
func TestMessageDecode(t *testing.T) {
	var m Message
	if err := m.DecodeBytes(wireGetPrinterAttributes()); err != nil {
		t.Fatalf("decode: %s", err)
	}

	if m.Version != Version11 {
		t.Errorf("version %s, expected 1.1", m.Version)
	}

	if m.Code.Op() != OpGetPrinterAttributes {
		t.Errorf("operation %s, expected Get-Printer-Attributes", m.Code.Op())
	}

	if m.RequestID != 1 {
		t.Errorf("request-id %d, expected 1", m.RequestID)
	}

	if !reflect.DeepEqual(&m, makeGetPrinterAttributes()) {
		t.Errorf("decoded message differs:\n%#v", m)
	}
}

// Test that every truncation of a valid message is rejected
func TestMessageTruncated(t *testing.T) {
	wire := wireGetPrinterAttributes()

	for n := 0; n < len(wire); n++ {
		var m Message
		err := m.DecodeBytes(wire[:n])
		if err == nil {
			t.Errorf("prefix of %d bytes decoded, expected error", n)
			continue
		}

		expected := ErrTruncated
		if n < 8 {
			expected = ErrMalformedHeader
		}

		if !errors.Is(err, expected) {
			t.Errorf("prefix of %d bytes: error %q is not %q", n, err, expected)
		}
	}
}

// Test the 1setOf convention: one name on the wire, additional
// values with zero-length names
func TestMessageMultiValue(t *testing.T) {
	m := NewRequest(Version11, OpGetPrinterAttributes, 2)
	m.AddOperation(MakeAttribute("requested-attributes", TagKeyword,
		String("printer-name"),
		String("printer-state"),
		String("document-format-supported")))

	expected := []byte{0x01, 0x01, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x02}
	expected = append(expected, byte(TagOperationGroup))
	expected = append(expected, wireAttr(TagKeyword,
		"requested-attributes", []byte("printer-name"))...)
	expected = append(expected, wireAttr(TagKeyword,
		"", []byte("printer-state"))...)
	expected = append(expected, wireAttr(TagKeyword,
		"", []byte("document-format-supported"))...)
	expected = append(expected, byte(TagEnd))

	data, err := m.EncodeBytes()
	if err != nil {
		t.Fatalf("encode: %s", err)
	}

	if !bytes.Equal(data, expected) {
		t.Fatalf("encoded as:\n%x\nexpected:\n%x", data, expected)
	}

	var decoded Message
	if err = decoded.DecodeBytes(data); err != nil {
		t.Fatalf("decode: %s", err)
	}

	if !reflect.DeepEqual(&decoded, m) {
		t.Errorf("decoded message differs:\n%#v", decoded)
	}
}

// Test that a repeated attribute name continues the first
// occurrence instead of replacing it or duplicating it
func TestMessageRepeatedName(t *testing.T) {
	var g Group
	g.Tag = TagOperationGroup
	g.Add(MakeAttribute("requested-attributes", TagKeyword, String("printer-name")))
	g.Add(MakeAttribute("document-format", TagMimeType, String("image/pwg-raster")))
	g.Add(MakeAttribute("requested-attributes", TagKeyword, String("printer-state")))

	if len(g.Attrs) != 2 {
		t.Fatalf("%d attributes, expected 2", len(g.Attrs))
	}

	if g.Attrs[0].Name != "requested-attributes" {
		t.Errorf("attribute 0 is %q, first occurrence must keep its position",
			g.Attrs[0].Name)
	}

	if len(g.Attrs[0].Values) != 2 {
		t.Errorf("%d values, expected 2", len(g.Attrs[0].Values))
	}

	attr, ok := g.Get("requested-attributes")
	if !ok || attr.Values.String() != "[printer-name,printer-state]" {
		t.Errorf("values %s, expected [printer-name,printer-state]", attr.Values)
	}
}

// Test that operation attributes are encoded first regardless of
// the order groups were added in
func TestMessageGroupOrder(t *testing.T) {
	m := NewResponse(Version11, StatusOk, 3)
	m.AddPrinter(MakeAttribute("printer-state", TagEnum, Integer(3)))
	m.AddOperation(MakeAttribute("attributes-charset", TagCharset, String("utf-8")))

	data, err := m.EncodeBytes()
	if err != nil {
		t.Fatalf("encode: %s", err)
	}

	if data[8] != byte(TagOperationGroup) {
		t.Fatalf("first group tag 0x%2.2x, expected operation-attributes", data[8])
	}

	var decoded Message
	if err = decoded.DecodeBytes(data); err != nil {
		t.Fatalf("decode: %s", err)
	}

	if len(decoded.Groups) != 2 ||
		decoded.Groups[0].Tag != TagOperationGroup ||
		decoded.Groups[1].Tag != TagPrinterGroup {
		t.Errorf("groups decoded out of order: %#v", decoded.Groups)
	}
}

// Test that a delimiter outside the known group tags is rejected,
// on both the decoding and the encoding path
func TestMessageUnknownGroupTag(t *testing.T) {
	wire := []byte{0x01, 0x01, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x01}
	wire = append(wire, 0x06)
	wire = append(wire, byte(TagEnd))

	var m Message
	err := m.DecodeBytes(wire)
	if !errors.Is(err, ErrUnknownGroupTag) {
		t.Errorf("decode error %q is not ErrUnknownGroupTag", err)
	}

	bad := NewRequest(Version11, OpPrintJob, 1)
	bad.Groups.Add(Group{Tag: Tag(0x06)})

	_, err = bad.EncodeBytes()
	if !errors.Is(err, ErrUnknownGroupTag) {
		t.Errorf("encode error %q is not ErrUnknownGroupTag", err)
	}
}

// Test that a value with an unrecognized tag survives a decode and
// re-encode byte for byte
func TestMessageUnknownValueTag(t *testing.T) {
	wire := []byte{0x01, 0x01, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x01}
	wire = append(wire, byte(TagOperationGroup))
	wire = append(wire, wireAttr(Tag(0x78),
		"vendor-attribute", []byte{0xde, 0xad, 0xbe, 0xef})...)
	wire = append(wire, byte(TagEnd))

	var m Message
	if err := m.DecodeBytes(wire); err != nil {
		t.Fatalf("decode: %s", err)
	}

	attr, ok := m.Get(TagOperationGroup, "vendor-attribute")
	if !ok {
		t.Fatal("vendor-attribute not decoded")
	}

	if attr.Values[0].T != Tag(0x78) {
		t.Errorf("tag 0x%2.2x, expected 0x78", int(attr.Values[0].T))
	}

	if v, ok := attr.Values[0].V.(Binary); !ok || !bytes.Equal(v, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("value %#v, expected Binary deadbeef", attr.Values[0].V)
	}

	data, err := m.EncodeBytes()
	if err != nil {
		t.Fatalf("encode: %s", err)
	}

	if !bytes.Equal(data, wire) {
		t.Errorf("re-encoded as:\n%x\nexpected:\n%x", data, wire)
	}
}

// Test that octets following end-of-attributes become the message
// body and are reproduced on encoding
func TestMessageBody(t *testing.T) {
	m := NewRequest(Version11, OpPrintJob, 42)
	m.AddOperation(
		MakeAttribute("attributes-charset", TagCharset, String("utf-8")),
		MakeAttribute("document-format", TagMimeType, String("image/pwg-raster")),
	)
	m.Body = []byte("RaS2 raster payload")

	data, err := m.EncodeBytes()
	if err != nil {
		t.Fatalf("encode: %s", err)
	}

	if !bytes.HasSuffix(data, m.Body) {
		t.Fatal("body does not follow end-of-attributes")
	}

	var decoded Message
	if err = decoded.DecodeBytes(data); err != nil {
		t.Fatalf("decode: %s", err)
	}

	if !bytes.Equal(decoded.Body, m.Body) {
		t.Errorf("body %q, expected %q", decoded.Body, m.Body)
	}
}

// Test collection encoding against the exact wire form, with a
// collection nested inside another, then decode it back
func TestMessageCollection(t *testing.T) {
	size := Collection{}
	size.Add(MakeAttribute("x-dimension", TagInteger, Integer(21000)))
	size.Add(MakeAttribute("y-dimension", TagInteger, Integer(29700)))

	mediaCol := Collection{}
	mediaCol.Add(MakeAttribute("media-size", TagBeginCollection, size))
	mediaCol.Add(MakeAttribute("media-type", TagKeyword, String("stationery")))

	m := NewRequest(Version11, OpPrintJob, 7)
	m.AddOperation(MakeAttribute("attributes-charset", TagCharset, String("utf-8")))
	m.AddJob(MakeAttribute("media-col", TagBeginCollection, mediaCol))

	expected := []byte{0x01, 0x01, 0x00, 0x02, 0x00, 0x00, 0x00, 0x07}
	expected = append(expected, byte(TagOperationGroup))
	expected = append(expected, wireAttr(TagCharset,
		"attributes-charset", []byte("utf-8"))...)
	expected = append(expected, byte(TagJobGroup))
	expected = append(expected, wireAttr(TagBeginCollection, "media-col", nil)...)
	expected = append(expected, wireAttr(TagMemberName, "", []byte("media-size"))...)
	expected = append(expected, wireAttr(TagBeginCollection, "", nil)...)
	expected = append(expected, wireAttr(TagMemberName, "", []byte("x-dimension"))...)
	expected = append(expected, wireAttr(TagInteger, "", []byte{0, 0, 0x52, 0x08})...)
	expected = append(expected, wireAttr(TagMemberName, "", []byte("y-dimension"))...)
	expected = append(expected, wireAttr(TagInteger, "", []byte{0, 0, 0x74, 0x04})...)
	expected = append(expected, wireAttr(TagEndCollection, "", nil)...)
	expected = append(expected, wireAttr(TagMemberName, "", []byte("media-type"))...)
	expected = append(expected, wireAttr(TagKeyword, "", []byte("stationery"))...)
	expected = append(expected, wireAttr(TagEndCollection, "", nil)...)
	expected = append(expected, byte(TagEnd))

	data, err := m.EncodeBytes()
	if err != nil {
		t.Fatalf("encode: %s", err)
	}

	if !bytes.Equal(data, expected) {
		t.Fatalf("encoded as:\n%x\nexpected:\n%x", data, expected)
	}

	var decoded Message
	if err = decoded.DecodeBytes(data); err != nil {
		t.Fatalf("decode: %s", err)
	}

	if !reflect.DeepEqual(&decoded, m) {
		t.Errorf("decoded message differs:\n%#v", decoded)
	}
}

// Test that decoding and re-encoding a message with every value
// kind reproduces the bytes exactly
func TestMessageEncodeIdempotent(t *testing.T) {
	col := Collection{}
	col.Add(MakeAttribute("duplex", TagKeyword, String("two-sided-long-edge")))

	m := NewResponse(Version20, StatusOk, 99)
	m.AddOperation(
		MakeAttribute("attributes-charset", TagCharset, String("utf-8")),
		MakeAttribute("status-message", TagText, String("successful-ok")),
	)
	m.AddPrinter(
		MakeAttribute("printer-state", TagEnum, Integer(3)),
		MakeAttribute("printer-is-accepting-jobs", TagBoolean, Boolean(true)),
		MakeAttribute("copies-supported", TagRange, Range{1, 999}),
		MakeAttribute("printer-resolution-default", TagResolution,
			Resolution{600, 600, UnitsDpi}),
		MakeAttribute("printer-current-time", TagDateTime,
			Time{time.Date(2026, 8, 22, 10, 0, 0, 0, time.FixedZone("", 3600))}),
		MakeAttribute("printer-name", TagNameLang,
			TextWithLang{Lang: "en", Text: "Office Printer"}),
		MakeAttribute("media-col-default", TagBeginCollection, col),
		MakeAttribute("printer-alert", TagString, Binary{0x01, 0x02, 0x03}),
		MakeAttribute("job-media-sheets-completed", TagNoValue, Void{}),
		MakeAttribute("sides-supported", TagKeyword,
			String("one-sided"), String("two-sided-long-edge")),
	)

	first, err := m.EncodeBytes()
	if err != nil {
		t.Fatalf("encode: %s", err)
	}

	var decoded Message
	if err = decoded.DecodeBytes(first); err != nil {
		t.Fatalf("decode: %s", err)
	}

	second, err := decoded.EncodeBytes()
	if err != nil {
		t.Fatalf("re-encode: %s", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("re-encoding differs:\n%x\nexpected:\n%x", second, first)
	}
}

var testDataMessageMalformed = []struct {
	name string
	wire []byte
	err  error
}{
	{
		"empty input",
		[]byte{},
		ErrMalformedHeader,
	},
	{
		"short header",
		[]byte{0x01, 0x01, 0x00, 0x0b, 0x00},
		ErrMalformedHeader,
	},
	{
		"value before any group",
		append([]byte{0x01, 0x01, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x01},
			wireAttr(TagCharset, "attributes-charset", []byte("utf-8"))...),
		ErrMalformedValue,
	},
	{
		"additional value without attribute",
		append([]byte{0x01, 0x01, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x01, 0x01},
			wireAttr(TagKeyword, "", []byte("all"))...),
		ErrMalformedValue,
	},
	{
		"memberAttrName outside collection",
		append([]byte{0x01, 0x01, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x01, 0x01},
			wireAttr(TagMemberName, "", []byte("media-size"))...),
		ErrMalformedValue,
	},
	{
		"endCollection outside collection",
		append([]byte{0x01, 0x01, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x01, 0x01},
			wireAttr(TagEndCollection, "", nil)...),
		ErrMalformedValue,
	},
	{
		"unterminated collection",
		append(append([]byte{0x01, 0x01, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x01, 0x01},
			wireAttr(TagBeginCollection, "media-col", nil)...), byte(TagEnd)),
		ErrMalformedValue,
	},
	{
		"member value without memberAttrName",
		append(append([]byte{0x01, 0x01, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x01, 0x01},
			wireAttr(TagBeginCollection, "media-col", nil)...),
			wireAttr(TagInteger, "", []byte{0, 0, 0, 1})...),
		ErrMalformedValue,
	},
	{
		"integer with bad length",
		append([]byte{0x01, 0x01, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x01, 0x01},
			wireAttr(TagInteger, "copies", []byte{0, 1})...),
		ErrMalformedValue,
	},
}

// Test structurally broken messages against their error kinds
func TestMessageMalformed(t *testing.T) {
	for _, data := range testDataMessageMalformed {
		var m Message
		err := m.DecodeBytes(data.wire)
		if err == nil {
			t.Errorf("%s: decoded, expected error", data.name)
			continue
		}

		if !errors.Is(err, data.err) {
			t.Errorf("%s: error %q is not %q", data.name, err, data.err)
		}
	}
}

// Test that a failed decode leaves the receiver untouched
func TestMessageDecodeAllOrNothing(t *testing.T) {
	var m Message
	if err := m.DecodeBytes(wireGetPrinterAttributes()); err != nil {
		t.Fatalf("decode: %s", err)
	}

	before := m

	wire := wireGetPrinterAttributes()
	err := m.DecodeBytes(wire[:len(wire)-1])
	if err == nil {
		t.Fatal("truncated message decoded, expected error")
	}

	if !reflect.DeepEqual(m, before) {
		t.Errorf("receiver modified by failed decode:\n%#v", m)
	}
}

// Test (*Message) Get()
func TestMessageGet(t *testing.T) {
	m := makeGetPrinterAttributes()

	attr, ok := m.Get(TagOperationGroup, "printer-uri")
	if !ok {
		t.Fatal("printer-uri not found")
	}

	if attr.Values.String() != "ipp://printer.local/ipp/print" {
		t.Errorf("printer-uri is %s", attr.Values)
	}

	if _, ok = m.Get(TagOperationGroup, "job-id"); ok {
		t.Error("job-id found, expected absent")
	}

	if _, ok = m.Get(TagJobGroup, "printer-uri"); ok {
		t.Error("printer-uri found in job group, expected absent")
	}
}
