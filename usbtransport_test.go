/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * IPP-over-USB transport test
 */

package main

import (
	"testing"

	"github.com/google/gousb"
)

var testDataParseUsbAddr = []struct {
	in  string
	out UsbAddr
	ok  bool
}{
	{"", UsbAddr{}, true},
	{"04b8:0202", UsbAddr{0x04b8, 0x0202}, true},
	{"4B8:202", UsbAddr{0x04b8, 0x0202}, true},
	{"04b8", UsbAddr{}, false},
	{"04b8:zzzz", UsbAddr{}, false},
	{"12345:0202", UsbAddr{}, false},
	{"04b8:0202:1", UsbAddr{}, false},
}

// Test USB device selector parsing
func TestParseUsbAddr(t *testing.T) {
	for _, data := range testDataParseUsbAddr {
		addr, err := ParseUsbAddr(data.in)

		if data.ok != (err == nil) {
			t.Errorf("ParseUsbAddr(%q): unexpected error state: %v",
				data.in, err)
			continue
		}

		if addr != data.out {
			t.Errorf("ParseUsbAddr(%q): expected %s, got %s",
				data.in, data.out, addr)
		}
	}
}

// Test UsbAddr formatting
func TestUsbAddrString(t *testing.T) {
	addr := UsbAddr{0x4b8, 0x202}
	if s := addr.String(); s != "04b8:0202" {
		t.Errorf("UsbAddr.String: expected %q, got %q", "04b8:0202", s)
	}
}

// bulkEndpoints builds a bulk in/out endpoint pair descriptor
func bulkEndpoints(in, out int) map[gousb.EndpointAddress]gousb.EndpointDesc {
	return map[gousb.EndpointAddress]gousb.EndpointDesc{
		gousb.EndpointAddress(0x80 | in): {
			Number:       in,
			Direction:    gousb.EndpointDirectionIn,
			TransferType: gousb.TransferTypeBulk,
		},
		gousb.EndpointAddress(out): {
			Number:       out,
			Direction:    gousb.EndpointDirectionOut,
			TransferType: gousb.TransferTypeBulk,
		},
	}
}

// Test that the IPP-over-USB interface is located within the
// device descriptor, skipping the legacy printer interfaces
func TestUsbIfAddrFind(t *testing.T) {
	desc := &gousb.DeviceDesc{
		Vendor:  gousb.ID(0x04b8),
		Product: gousb.ID(0x0202),
		Configs: map[int]gousb.ConfigDesc{
			1: {
				Number: 1,
				Interfaces: []gousb.InterfaceDesc{
					{
						Number: 0,
						AltSettings: []gousb.InterfaceSetting{
							{
								Number:    0,
								Alternate: 0,
								Class:     gousb.ClassPrinter,
								SubClass:  1,
								Protocol:  2,
								Endpoints: bulkEndpoints(1, 2),
							},
						},
					},
					{
						Number: 1,
						AltSettings: []gousb.InterfaceSetting{
							{
								Number:    1,
								Alternate: 0,
								Class:     gousb.ClassPrinter,
								SubClass:  1,
								Protocol:  4,
								Endpoints: bulkEndpoints(3, 4),
							},
						},
					},
				},
			},
		},
	}

	ifaddr, ok := usbIfAddrFind(desc)
	if !ok {
		t.Fatalf("usbIfAddrFind: IPP-over-USB interface not found")
	}

	expected := usbIfAddr{Config: 1, Num: 1, Alt: 0, In: 3, Out: 4}
	if ifaddr != expected {
		t.Errorf("usbIfAddrFind: expected %#v, got %#v", expected, ifaddr)
	}
}

// Test that a device without the IPP-over-USB interface is rejected
func TestUsbIfAddrFindNotIppOverUsb(t *testing.T) {
	desc := &gousb.DeviceDesc{
		Configs: map[int]gousb.ConfigDesc{
			1: {
				Number: 1,
				Interfaces: []gousb.InterfaceDesc{
					{
						Number: 0,
						AltSettings: []gousb.InterfaceSetting{
							{
								Number:    0,
								Alternate: 0,
								Class:     gousb.ClassPrinter,
								SubClass:  1,
								Protocol:  2,
								Endpoints: bulkEndpoints(1, 2),
							},
						},
					},
				},
			},
		},
	}

	if _, ok := usbIfAddrFind(desc); ok {
		t.Errorf("usbIfAddrFind: false positive on a legacy printer interface")
	}
}
