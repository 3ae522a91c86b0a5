/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Log instance and protocol trace helpers
 */

package main

import (
	"net/http"
	"os"
)

// Log is the program-wide logger. It writes to stderr, so traces
// never mix with mode output on stdout
var Log = NewLogger(os.Stderr)

// logHTTPRq traces an outgoing HTTP request
func logHTTPRq(rq *http.Request) {
	if !Log.Wants(LogTrace) {
		return
	}

	msg := Log.Begin()
	msg.Trace('>', "%s %s %s", rq.Method, rq.URL, rq.Proto)

	w := msg.LineWriter(LogTrace, '>')
	rq.Header.Write(w)
	w.Close()

	msg.Commit()
}

// logHTTPRsp traces a received HTTP response
func logHTTPRsp(rsp *http.Response) {
	if !Log.Wants(LogTrace) {
		return
	}

	msg := Log.Begin()
	msg.Trace('<', "%s %s", rsp.Proto, rsp.Status)

	w := msg.LineWriter(LogTrace, '<')
	rsp.Header.Write(w)
	w.Close()

	msg.Commit()
}
