/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Common errors
 */

package main

import (
	"errors"
)

// Error values for ipp-print
var (
	ErrNoPrinterURI  = errors.New("Printer URI not configured")
	ErrURIScheme     = errors.New("Unsupported URI scheme")
	ErrNoUSBPrinter  = errors.New("No matching USB printer found")
	ErrNotIppOverUsb = errors.New("Device doesn't implement IPP over USB")
	ErrIPPRequest    = errors.New("Request failed")
	ErrHTTPStatus    = errors.New("Unexpected HTTP status")
)
