/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Operation codes
 */

package ipp

import (
	"fmt"
)

// Op represents an IPP operation code
type Op Code

// Operation codes, as defined by RFC 8011
const (
	OpPrintJob             Op = 0x0002 // Print-Job: print a single file
	OpPrintURI             Op = 0x0003 // Print-URI: print a single URI
	OpValidateJob          Op = 0x0004 // Validate-Job: validate job attributes
	OpCreateJob            Op = 0x0005 // Create-Job: create an empty print job
	OpSendDocument         Op = 0x0006 // Send-Document: add a file to a job
	OpSendURI              Op = 0x0007 // Send-URI: add a URI to a job
	OpCancelJob            Op = 0x0008 // Cancel-Job: cancel a job
	OpGetJobAttributes     Op = 0x0009 // Get-Job-Attributes: get job attributes
	OpGetJobs              Op = 0x000a // Get-Jobs: get a list of jobs
	OpGetPrinterAttributes Op = 0x000b // Get-Printer-Attributes: get printer attributes
	OpHoldJob              Op = 0x000c // Hold-Job: hold a job for printing
	OpReleaseJob           Op = 0x000d // Release-Job: release a held job
	OpRestartJob           Op = 0x000e // Restart-Job: restart a finished job
	OpPausePrinter         Op = 0x0010 // Pause-Printer: stop a printer
	OpResumePrinter        Op = 0x0011 // Resume-Printer: start a printer
	OpPurgeJobs            Op = 0x0012 // Purge-Jobs: delete all jobs
)

var opNames = map[Op]string{
	OpPrintJob:             "Print-Job",
	OpPrintURI:             "Print-URI",
	OpValidateJob:          "Validate-Job",
	OpCreateJob:            "Create-Job",
	OpSendDocument:         "Send-Document",
	OpSendURI:              "Send-URI",
	OpCancelJob:            "Cancel-Job",
	OpGetJobAttributes:     "Get-Job-Attributes",
	OpGetJobs:              "Get-Jobs",
	OpGetPrinterAttributes: "Get-Printer-Attributes",
	OpHoldJob:              "Hold-Job",
	OpReleaseJob:           "Release-Job",
	OpRestartJob:           "Restart-Job",
	OpPausePrinter:         "Pause-Printer",
	OpResumePrinter:        "Resume-Printer",
	OpPurgeJobs:            "Purge-Jobs",
}

// String returns the operation name
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}

	return fmt.Sprintf("0x%4.4x", uint16(op))
}
