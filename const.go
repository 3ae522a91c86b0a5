/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Configuration constants
 */

package main

import (
	"time"
)

const (
	// ConfFileName defines the name of the ipp-print
	// configuration file
	ConfFileName = "ipp-print.conf"

	// PathConfDir defines the path to the system-wide
	// configuration directory
	PathConfDir = "/etc"

	// HTTPTimeoutDefault specifies how much time a whole
	// request/response exchange may take, unless the
	// configuration says otherwise
	HTTPTimeoutDefault = 30 * time.Second

	// DNSSdBrowseTimeout specifies how much time a discovery
	// run may take
	DNSSdBrowseTimeout = 5 * time.Second

	// DNSSdQuietPeriod ends a discovery run early, when no new
	// printer has appeared for this long
	DNSSdQuietPeriod = 1 * time.Second
)
