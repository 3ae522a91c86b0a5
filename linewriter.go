/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * LineWriter splits a byte stream into text lines and hands each
 * line to a callback
 */

package main

import (
	"bytes"
)

// LineWriter implements the io.Writer and io.Closer interfaces
// on a top of a write-line callback.
//
// The stream is split at '\n' characters. The callback receives
// every complete line without its terminator. Close flushes the
// last incomplete line, if any
type LineWriter struct {
	Func func([]byte) // write-line callback
	buf  bytes.Buffer // buffer for incomplete lines
}

// Write implements the io.Writer interface
func (lw *LineWriter) Write(text []byte) (n int, err error) {
	n = len(text)

	for len(text) > 0 {
		l := bytes.IndexByte(text, '\n')
		if l < 0 {
			lw.buf.Write(text)
			break
		}

		line := text[:l]
		text = text[l+1:]

		if lw.buf.Len() > 0 {
			lw.buf.Write(line)
			line = lw.buf.Bytes()
		}

		lw.Func(line)
		lw.buf.Reset()
	}

	return
}

// Close implements the io.Closer interface.
//
// Close flushes the last incomplete line from the internal
// buffer. If it is known that the stream ends with a complete
// line, Close is not needed
func (lw *LineWriter) Close() error {
	if lw.buf.Len() > 0 {
		lw.Func(lw.buf.Bytes())
		lw.buf.Reset()
	}
	return nil
}
