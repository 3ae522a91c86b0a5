/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Logging test
 */

package main

import (
	"bytes"
	"strings"
	"testing"
)

// Test level filtering and message prefixes
func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	// The default level is info, so the debug message is dropped
	l.Info("hello, %s", "world")
	l.Debug('>', "dropped")
	l.Error("oops")

	expected := "  hello, world\n! oops\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}

	if !l.Wants(LogInfo) || l.Wants(LogDebug) {
		t.Errorf("Wants: wrong answer at the info level")
	}

	buf.Reset()
	l.SetLevel(LogTrace)

	if !l.Wants(LogTrace) {
		t.Errorf("Wants: wrong answer at the trace level")
	}

	l.Debug('>', "GET /")
	l.Trace('<', "200 OK")

	expected = "> GET /\n< 200 OK\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

// Test the HEX dump format
func TestLoggerDump(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.SetLevel(LogTrace)

	data := []byte("IPP message data!")
	l.Dump(LogTrace, data, "%d bytes:", len(data))

	expected := "  17 bytes:\n" +
		"  0000: 49 50 50 20:6d 65 73 73:61 67 65 20:64 61 74 61: IPP message data\n" +
		"  0010: 21" + strings.Repeat(" ", 47) + "!\n"

	if buf.String() != expected {
		t.Errorf("Dump:\nexpected:\n%sgot:\n%s", expected, buf.String())
	}

	// Dumps above the configured level must not appear
	buf.Reset()
	l.SetLevel(LogInfo)
	l.Dump(LogTrace, data, "%d bytes:", len(data))

	if buf.Len() != 0 {
		t.Errorf("Dump: trace dump leaked at the info level: %q",
			buf.String())
	}
}

// Test multi-line messages built with Begin/Commit
func TestLoggerMessage(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.SetLevel(LogDebug)

	msg := l.Begin()
	msg.Debug('>', "POST /ipp/print HTTP/1.1")

	w := msg.LineWriter(LogDebug, '>')
	w.Write([]byte("Content-Type: application/ipp\r\n"))
	w.Close()

	// Nothing reaches the output until Commit
	if buf.Len() != 0 {
		t.Errorf("message leaked before Commit: %q", buf.String())
	}

	msg.Trace('>', "invisible at the debug level")
	msg.Commit()

	expected := "> POST /ipp/print HTTP/1.1\n" +
		"> Content-Type: application/ipp\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

// Test the line-by-line logging writer
func TestLoggerLineWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.SetLevel(LogTrace)

	w := l.LineWriter(LogTrace, '|')
	w.Write([]byte("a\r\nb"))
	w.Close()

	expected := "| a\n| b\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
