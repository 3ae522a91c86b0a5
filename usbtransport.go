/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * USB transport for HTTP
 */

package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/gousb"
)

// UsbAddr selects an USB device by vendor and product ID.
// The zero value matches any device
type UsbAddr struct {
	Vendor  gousb.ID // Vendor ID
	Product gousb.ID // Product ID
}

// String returns a human-readable representation of UsbAddr
func (addr UsbAddr) String() string {
	return fmt.Sprintf("%4.4x:%4.4x",
		uint16(addr.Vendor), uint16(addr.Product))
}

// ParseUsbAddr parses an USB device selector in the "vid:pid"
// form, i.e. "04b8:0202", hexadecimal. The empty string matches
// any device
func ParseUsbAddr(s string) (UsbAddr, error) {
	if s == "" {
		return UsbAddr{}, nil
	}

	vid, pid, ok := strings.Cut(s, ":")
	if ok {
		v, err := strconv.ParseUint(vid, 16, 16)
		p, err2 := strconv.ParseUint(pid, 16, 16)

		if err == nil && err2 == nil {
			return UsbAddr{gousb.ID(v), gousb.ID(p)}, nil
		}
	}

	return UsbAddr{}, fmt.Errorf("invalid USB device address %q", s)
}

// usbIfAddr describes where the IPP-over-USB interface lives
// within the device configuration
type usbIfAddr struct {
	Config int // Configuration number
	Num    int // Interface number within the configuration
	Alt    int // Alternate setting number
	In     int // Bulk-in endpoint number
	Out    int // Bulk-out endpoint number
}

// usbIfAddrFind locates an IPP-over-USB interface in the device
// descriptor. IPP over USB is the printer class (7), subclass 1,
// protocol 4, with a bulk endpoint pair
func usbIfAddrFind(desc *gousb.DeviceDesc) (usbIfAddr, bool) {
	for _, cfg := range desc.Configs {
		for _, intf := range cfg.Interfaces {
			for _, alt := range intf.AltSettings {
				if alt.Class != gousb.ClassPrinter ||
					alt.SubClass != 1 ||
					alt.Protocol != 4 {
					continue
				}

				ifaddr := usbIfAddr{
					Config: cfg.Number,
					Num:    intf.Number,
					Alt:    alt.Alternate,
					In:     -1,
					Out:    -1,
				}

				for _, ep := range alt.Endpoints {
					if ep.TransferType != gousb.TransferTypeBulk {
						continue
					}

					if ep.Direction == gousb.EndpointDirectionIn {
						ifaddr.In = ep.Number
					} else {
						ifaddr.Out = ep.Number
					}
				}

				if ifaddr.In >= 0 && ifaddr.Out >= 0 {
					return ifaddr, true
				}
			}
		}
	}

	return usbIfAddr{}, false
}

// UsbTransport implements http.RoundTripper on a top of an
// IPP-over-USB connection. A single bulk endpoint pair carries
// one HTTP exchange at a time
type UsbTransport struct {
	lock   sync.Mutex       // Serializes HTTP exchanges
	ctx    *gousb.Context   // USB library context
	dev    *gousb.Device    // Open device
	cfg    *gousb.Config    // Claimed configuration
	intf   *gousb.Interface // Claimed interface
	ifaddr usbIfAddr        // Interface location
	conn   usbConn          // Endpoint pair
	reader *bufio.Reader    // Reader on a top of the bulk-in endpoint
}

// NewUsbTransport opens the first IPP-over-USB printer matching
// the address and claims its print interface
func NewUsbTransport(addr UsbAddr) (*UsbTransport, error) {
	ctx := gousb.NewContext()

	transport, err := openUsbTransport(ctx, addr)
	if err != nil {
		ctx.Close()
		return nil, err
	}

	transport.ctx = ctx
	return transport, nil
}

// openUsbTransport does the NewUsbTransport work, except for the
// USB context management
func openUsbTransport(ctx *gousb.Context, addr UsbAddr) (*UsbTransport, error) {
	legacy := false

	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if addr.Vendor != 0 &&
			(desc.Vendor != addr.Vendor || desc.Product != addr.Product) {
			return false
		}

		_, ok := usbIfAddrFind(desc)
		if !ok && addr.Vendor != 0 {
			legacy = true
		}

		return ok
	})

	if len(devs) == 0 {
		if err != nil {
			return nil, err
		}
		if legacy {
			return nil, fmt.Errorf("%w: %s", ErrNotIppOverUsb, addr)
		}
		return nil, ErrNoUSBPrinter
	}

	if err != nil {
		Log.Debug('!', "usb: enumeration: %s", err)
	}

	// Use the first match, release the others
	dev := devs[0]
	for _, d := range devs[1:] {
		d.Close()
	}

	transport := &UsbTransport{dev: dev}

	transport.ifaddr, _ = usbIfAddrFind(dev.Desc)

	err = dev.SetAutoDetach(true)
	if err != nil {
		Log.Debug('!', "usb: auto-detach: %s", err)
	}

	transport.cfg, err = dev.Config(transport.ifaddr.Config)
	if err == nil {
		transport.intf, err = transport.cfg.Interface(
			transport.ifaddr.Num, transport.ifaddr.Alt)
	}

	if err == nil {
		transport.conn.in, err = transport.intf.InEndpoint(transport.ifaddr.In)
	}

	if err == nil {
		transport.conn.out, err = transport.intf.OutEndpoint(transport.ifaddr.Out)
	}

	if err != nil {
		transport.release()
		return nil, err
	}

	transport.reader = bufio.NewReader(transport.conn)

	product, _ := dev.Product()
	Log.Debug('+', "usb: using device %s, %q, interface %d alt %d",
		UsbAddr{dev.Desc.Vendor, dev.Desc.Product},
		product, transport.ifaddr.Num, transport.ifaddr.Alt)

	return transport, nil
}

// DeviceID fetches the IEEE 1284 device identification string
func (transport *UsbTransport) DeviceID() (string, error) {
	buf := make([]byte, 2048)

	n, err := transport.dev.Control(
		gousb.ControlIn|gousb.ControlClass|gousb.ControlInterface,
		0,
		uint16(transport.ifaddr.Config-1),
		uint16(transport.ifaddr.Num<<8|transport.ifaddr.Alt),
		buf)

	if err != nil {
		return "", err
	}

	// The string comes with a two-octet length prefix
	if n < 2 {
		return "", nil
	}

	return string(buf[2:n]), nil
}

// RoundTrip implements the http.RoundTripper interface
func (transport *UsbTransport) RoundTrip(rq *http.Request) (*http.Response, error) {
	transport.lock.Lock()
	defer transport.lock.Unlock()

	// Remove Expect: 100-continue, if any, and don't let the
	// stdlib add a Connection: close header
	rq.Header.Del("Expect")
	rq.Close = false

	if _, found := rq.Header["User-Agent"]; !found {
		rq.Header["User-Agent"] = []string{"ipp-print"}
	}

	err := rq.Write(transport.conn)
	if err != nil {
		return nil, err
	}

	rsp, err := http.ReadResponse(transport.reader, rq)
	if err != nil {
		return nil, err
	}

	// Drain the response while the endpoints are still ours,
	// so the next exchange starts with an empty pipe
	body, err := io.ReadAll(rsp.Body)
	rsp.Body.Close()
	if err != nil {
		return nil, err
	}

	rsp.Body = io.NopCloser(bytes.NewReader(body))
	return rsp, nil
}

// Close releases the claimed interface and closes the device
func (transport *UsbTransport) Close() {
	transport.lock.Lock()
	defer transport.lock.Unlock()

	transport.release()

	if transport.ctx != nil {
		transport.ctx.Close()
	}
}

// release unwinds whatever part of the device is claimed.
// The caller must hold the lock
func (transport *UsbTransport) release() {
	if transport.intf != nil {
		transport.intf.Close()
		transport.intf = nil
	}

	if transport.cfg != nil {
		transport.cfg.Close()
		transport.cfg = nil
	}

	if transport.dev != nil {
		transport.dev.Close()
		transport.dev = nil
	}
}

// usbConn adapts the bulk endpoint pair to the io interfaces the
// HTTP machinery expects
type usbConn struct {
	in  *gousb.InEndpoint
	out *gousb.OutEndpoint
}

// Read reads from the bulk-in endpoint
func (conn usbConn) Read(p []byte) (int, error) {
	return conn.in.Read(p)
}

// Write writes to the bulk-out endpoint
func (conn usbConn) Write(p []byte) (int, error) {
	return conn.out.Write(p)
}
