/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * IPP client
 */

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/kofuk/ipp-print/ipp"
)

// Cap for protocol traces, so a multi-megabyte document body
// doesn't flood the log
const logDumpMax = 1024

// requestIDs allocates request identifiers for a client session
type requestIDs struct {
	last uint32
}

// next returns the next request identifier. Identifiers start
// from 1, as zero is not valid on the wire
func (ids *requestIDs) next() uint32 {
	return atomic.AddUint32(&ids.last, 1)
}

// Client submits IPP requests to a single printer
type Client struct {
	URI     string            // Printer URI, as it appears in requests
	httpURL *url.URL          // Where requests are POSTed
	rt      http.RoundTripper // Underlying transport
	usb     *UsbTransport     // Set for usb: targets
	ids     requestIDs        // Request identifier allocator
}

// NewClient creates a client for the printer at uri.
//
// The usb: scheme selects the IPP-over-USB transport, with an
// optional vid:pid device filter ("usb:04b8:0202"). Everything
// else goes over HTTP
func NewClient(uri string) (*Client, error) {
	if uri == "" {
		return nil, ErrNoPrinterURI
	}

	if rest, ok := strings.CutPrefix(uri, "usb:"); ok {
		addr, err := ParseUsbAddr(rest)
		if err != nil {
			return nil, err
		}

		usb, err := NewUsbTransport(addr)
		if err != nil {
			return nil, err
		}

		c := &Client{
			URI: "ipp://localhost/ipp/print",
			rt:  usb,
			usb: usb,
		}
		c.httpURL, _ = url.Parse("http://localhost/ipp/print")

		return c, nil
	}

	httpURL, err := uriToHTTP(uri)
	if err != nil {
		return nil, err
	}

	return &Client{
		URI:     uri,
		httpURL: httpURL,
		rt:      newHTTPTransport(),
	}, nil
}

// Close releases the transport resources
func (c *Client) Close() {
	if c.usb != nil {
		c.usb.Close()
	} else if t, ok := c.rt.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
}

// NewRequest creates a request with the operation attributes
// every IPP request starts with
func (c *Client) NewRequest(op ipp.Op) *ipp.Message {
	m := ipp.NewRequest(ipp.DefaultVersion, op, c.ids.next())

	m.AddOperation(ipp.MakeAttribute("attributes-charset",
		ipp.TagCharset, ipp.String("utf-8")))
	m.AddOperation(ipp.MakeAttribute("attributes-natural-language",
		ipp.TagLanguage, ipp.String(Conf.Language)))
	m.AddOperation(ipp.MakeAttribute("printer-uri",
		ipp.TagURI, ipp.String(c.URI)))

	return m
}

// Do submits the request and returns the decoded response
func (c *Client) Do(m *ipp.Message) (*ipp.Message, error) {
	data, err := m.EncodeBytes()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), Conf.HTTPTimeout)
	defer cancel()

	rq, err := http.NewRequestWithContext(ctx, "POST",
		c.httpURL.String(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	rq.Header.Set("Content-Type", ipp.ContentType)
	rq.ContentLength = int64(len(data))

	Log.Debug('>', "%s request-id %d, %d bytes",
		m.Code.Op(), m.RequestID, len(data))
	logHTTPRq(rq)
	logDump('>', data)

	rsp, err := c.rt.RoundTrip(rq)
	if err != nil {
		return nil, err
	}

	defer rsp.Body.Close()

	logHTTPRsp(rsp)

	if rsp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, rsp.Status)
	}

	rspData, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, err
	}

	logDump('<', rspData)

	out := &ipp.Message{}
	err = out.DecodeBytes(rspData)
	if err != nil {
		return nil, err
	}

	Log.Debug('<', "%s request-id %d, %d bytes",
		out.Code.Status(), out.RequestID, len(rspData))

	return out, nil
}

// CheckStatus inspects a response status code and returns an
// error when the printer says the request failed
func CheckStatus(m *ipp.Message) error {
	if status := m.Code.Status(); !status.Successful() {
		return fmt.Errorf("%w: %s", ErrIPPRequest, status)
	}

	return nil
}

// logDump traces message octets, capped to keep document bodies
// out of the log
func logDump(prefix byte, data []byte) {
	if !Log.Wants(LogTrace) {
		return
	}

	if len(data) <= logDumpMax {
		Log.Dump(LogTrace, data, "%c %d bytes:", prefix, len(data))
	} else {
		Log.Dump(LogTrace, data[:logDumpMax],
			"%c %d bytes (first %d shown):",
			prefix, len(data), logDumpMax)
	}
}
