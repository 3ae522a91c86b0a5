/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * HTTP transport for network printers
 */

package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// uriToHTTP converts a printer URI into the URL requests are
// POSTed to. The ipp scheme maps to http and ipps to https, with
// 631 as the default port for both. Plain http and https URIs
// pass through unchanged
func uriToHTTP(uri string) (*url.URL, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "ipp":
		u.Scheme = "http"
		if u.Port() == "" {
			u.Host = net.JoinHostPort(u.Hostname(), "631")
		}

	case "ipps":
		u.Scheme = "https"
		if u.Port() == "" {
			u.Host = net.JoinHostPort(u.Hostname(), "631")
		}

	case "http", "https":

	default:
		return nil, fmt.Errorf("%w %q", ErrURIScheme, u.Scheme)
	}

	return u, nil
}

// newHTTPTransport creates the round tripper for network printers.
//
// Printers almost universally present self-signed certificates,
// so TLS verification is off unless the configuration asks for it
func newHTTPTransport() http.RoundTripper {
	return &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !Conf.TLSVerify,
		},
	}
}
