/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Discover mode
 */

package main

import (
	"fmt"
)

// cmdDiscover browses the local network for IPP printers and
// lists what it found
func cmdDiscover(opts *options) error {
	printers, err := DNSSdBrowse(DNSSdBrowseTimeout)
	if err != nil {
		return err
	}

	if len(printers) == 0 {
		Log.Info("no printers found")
		return nil
	}

	for _, p := range printers {
		fmt.Printf("%s\n", p.Instance)
		fmt.Printf("    uri:      %s\n", p.URI)

		if p.MakeModel != "" {
			fmt.Printf("    model:    %s\n", p.MakeModel)
		}
		if p.Location != "" {
			fmt.Printf("    location: %s\n", p.Location)
		}
		if p.UUID != "" {
			fmt.Printf("    uuid:     %s\n", p.UUID)
		}
		if p.PDL != "" {
			fmt.Printf("    formats:  %s\n", p.PDL)
		}
	}

	return nil
}
