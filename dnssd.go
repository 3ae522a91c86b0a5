/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * DNS-SD discovery: system-independent stuff
 */

package main

import (
	"fmt"
	"sort"
	"strings"
)

// DnsSdPrinter describes a discovered printer
type DnsSdPrinter struct {
	Instance  string // Service instance name
	Host      string // Host name the service resolves to
	Port      int    // TCP port
	URI       string // Printer URI, ready to be printed to
	MakeModel string // Make and model, the "ty" TXT value
	Location  string // Physical location, the "note" TXT value
	UUID      string // Normalized UUID, empty when not present
	PDL       string // Supported document formats
}

// key returns the identity deduplication works on. A printer
// reachable over both ipp and ipps appears as two services, but
// carries the same UUID
func (p DnsSdPrinter) key() string {
	if p.UUID != "" {
		return p.UUID
	}

	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// DnsSdPrinterList collects discovered printers, one entry per
// physical printer
type DnsSdPrinterList []DnsSdPrinter

// Add inserts a printer into the list. When the printer is
// already there, the secure endpoint wins; otherwise the first
// resolution stays. Add reports whether the list has changed
func (list *DnsSdPrinterList) Add(printer DnsSdPrinter) bool {
	for i := range *list {
		if (*list)[i].key() != printer.key() {
			continue
		}

		if strings.HasPrefix(printer.URI, "ipps:") &&
			!strings.HasPrefix((*list)[i].URI, "ipps:") {
			(*list)[i] = printer
			return true
		}

		return false
	}

	*list = append(*list, printer)
	return true
}

// Sort orders the list by service instance name
func (list DnsSdPrinterList) Sort() {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Instance < list[j].Instance
	})
}

// dnssdTxtToMap parses raw TXT records, a list of "key=value"
// octet strings, into a map. Keys are case-insensitive; when a
// key repeats, the first occurrence wins
func dnssdTxtToMap(txt [][]byte) map[string]string {
	m := make(map[string]string, len(txt))

	for _, item := range txt {
		key, value, _ := strings.Cut(string(item), "=")
		key = strings.ToLower(key)

		if _, dup := m[key]; !dup {
			m[key] = value
		}
	}

	return m
}

// dnssdMakePrinter builds a DnsSdPrinter from resolved service
// parameters. The printer URI is assembled from the service type,
// host, port and the queue path in the "rp" TXT value
func dnssdMakePrinter(svctype, instance, host string,
	port int, txt [][]byte) DnsSdPrinter {

	m := dnssdTxtToMap(txt)

	scheme := "ipp"
	if svctype == "_ipps._tcp" {
		scheme = "ipps"
	}

	rp := strings.TrimPrefix(m["rp"], "/")

	return DnsSdPrinter{
		Instance:  instance,
		Host:      host,
		Port:      port,
		URI:       fmt.Sprintf("%s://%s:%d/%s", scheme, host, port, rp),
		MakeModel: m["ty"],
		Location:  m["note"],
		UUID:      UUIDNormalize(m["uuid"]),
		PDL:       m["pdl"],
	}
}
