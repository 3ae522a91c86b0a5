/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * DNS-SD discovery, Avahi-based system-dependent part
 */

package main

import (
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/holoplot/go-avahi"
)

// dnssdSysdep wraps the Avahi machinery behind a discovery run
type dnssdSysdep struct {
	server   *avahi.Server           // Connection to the Avahi daemon
	browsers []*avahi.ServiceBrowser // One browser per service type
	addChan  chan avahi.Service      // Merged browse events
}

// newDnssdSysdep connects to the Avahi daemon over the system bus
// and starts browsing for the given service types
func newDnssdSysdep(types []string) (*dnssdSysdep, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}

	server, err := avahi.ServerNew(conn)
	if err != nil {
		return nil, err
	}

	sysdep := &dnssdSysdep{
		server:  server,
		addChan: make(chan avahi.Service, 16),
	}

	for _, t := range types {
		browser, err := server.ServiceBrowserNew(
			avahi.InterfaceUnspec, avahi.ProtoUnspec, t, "local", 0)
		if err != nil {
			sysdep.Close()
			return nil, err
		}

		sysdep.browsers = append(sysdep.browsers, browser)
		go sysdep.forward(browser)
	}

	return sysdep, nil
}

// forward merges one browser's add events into the common channel
func (sysdep *dnssdSysdep) forward(browser *avahi.ServiceBrowser) {
	for svc := range browser.AddChannel {
		sysdep.addChan <- svc
	}
}

// resolve asks Avahi for the host, port and TXT data behind a
// browse event
func (sysdep *dnssdSysdep) resolve(svc avahi.Service) (DnsSdPrinter, error) {
	resolved, err := sysdep.server.ResolveService(
		svc.Interface, svc.Protocol, svc.Name,
		svc.Type, svc.Domain, avahi.ProtoUnspec, 0)
	if err != nil {
		return DnsSdPrinter{}, err
	}

	return dnssdMakePrinter(resolved.Type, resolved.Name,
		resolved.Host, int(resolved.Port), resolved.Txt), nil
}

// Close shuts the browsing down
func (sysdep *dnssdSysdep) Close() {
	sysdep.server.Close()
}

// DNSSdBrowse discovers IPP printers on the local network.
//
// A run ends after the timeout, or earlier when at least one
// printer was found and no new one has appeared for
// DNSSdQuietPeriod
func DNSSdBrowse(timeout time.Duration) (DnsSdPrinterList, error) {
	sysdep, err := newDnssdSysdep([]string{"_ipp._tcp", "_ipps._tcp"})
	if err != nil {
		return nil, err
	}

	defer sysdep.Close()

	var list DnsSdPrinterList

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	quiet := time.NewTimer(time.Hour)
	quiet.Stop()       // Not ticking until the first printer
	defer quiet.Stop() // And cleanup at return

	for {
		select {
		case svc := <-sysdep.addChan:
			printer, err := sysdep.resolve(svc)
			if err != nil {
				Log.Debug('!', "DNS-SD: resolve %q: %s", svc.Name, err)
				continue
			}

			if !list.Add(printer) {
				continue
			}

			Log.Debug('+', "DNS-SD: %s (%s)", printer.Instance, printer.URI)

			if !quiet.Stop() {
				select {
				case <-quiet.C:
				default:
				}
			}
			quiet.Reset(DNSSdQuietPeriod)

		case <-quiet.C:
			list.Sort()
			return list, nil

		case <-deadline.C:
			list.Sort()
			return list, nil
		}
	}
}
