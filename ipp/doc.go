/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Package documentation
 */

/*
Package ipp implements the IPP wire protocol, as defined by RFC 8010.

Its scope is limited to building, encoding and decoding IPP messages.
Higher-level operations ("print a document", "cancel a job") live in
the caller; this package only guarantees that what goes onto the wire
is well-formed and that what comes back is parsed faithfully.

Requests and responses share a single representation, Message. The
Code field holds the operation code in a request and the status code
in a response; everything else is common.

A minimal Get-Printer-Attributes request:

	m := ipp.NewRequest(ipp.DefaultVersion, ipp.OpGetPrinterAttributes, 1)
	m.AddOperation(
		ipp.MakeAttribute("attributes-charset", ipp.TagCharset, ipp.String("utf-8")),
		ipp.MakeAttribute("attributes-natural-language", ipp.TagLanguage, ipp.String("en")),
		ipp.MakeAttribute("printer-uri", ipp.TagURI, ipp.String("ipp://printer.local/ipp/print")),
	)

	data, err := m.EncodeBytes()

Decoding is the mirror image:

	var rsp ipp.Message
	err := rsp.DecodeBytes(data)

Attribute groups keep their wire order. Within a group, adding an
attribute whose name is already present appends its values to the
existing attribute instead of creating a duplicate; the first
occurrence keeps its position and its value tag.
*/
package ipp
