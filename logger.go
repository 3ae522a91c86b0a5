/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Logging
 */

package main

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// LogLevel enumerates possible log levels
type LogLevel int

const (
	LogError LogLevel = iota
	LogInfo
	LogDebug
	LogTrace
)

// Logger writes leveled messages to the console. Messages with a
// level above the configured one are dropped. Multi-line output,
// such as a HEX dump or a Begin/Commit block, is written without
// interruption by other log activity
type Logger struct {
	lock  sync.Mutex // Write lock
	out   io.Writer  // Log output
	level LogLevel   // Messages above this level are dropped
}

// NewLogger creates a logger on a top of the output stream
func NewLogger(out io.Writer) *Logger {
	return &Logger{
		out:   out,
		level: LogInfo,
	}
}

// SetLevel changes the maximum level of messages the logger passes
func (l *Logger) SetLevel(level LogLevel) {
	l.lock.Lock()
	l.level = level
	l.lock.Unlock()
}

// Wants reports whether messages of the given level reach the output
func (l *Logger) Wants(level LogLevel) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	return level <= l.level
}

// Begin starts a new log message. Use the LogMessage methods to
// add lines to it and Commit to send it to the output
func (l *Logger) Begin() *LogMessage {
	return &LogMessage{logger: l}
}

// Error writes a LogError message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Begin().Error(format, args...).Commit()
}

// Info writes a LogInfo message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Begin().Info(format, args...).Commit()
}

// Debug writes a LogDebug message with a prefix character
func (l *Logger) Debug(prefix byte, format string, args ...interface{}) {
	l.Begin().Debug(prefix, format, args...).Commit()
}

// Trace writes a LogTrace message with a prefix character
func (l *Logger) Trace(prefix byte, format string, args ...interface{}) {
	l.Begin().Trace(prefix, format, args...).Commit()
}

// Dump writes a HEX dump with optional title. If title is not "",
// it is formatted, as fmt.Printf does, and prepended to the dump
func (l *Logger) Dump(level LogLevel, data []byte, title string, args ...interface{}) {
	l.Begin().Dump(level, data, title, args...).Commit()
}

// LineWriter returns a writer that logs every line written to it
// as a message of the given level. CRLF-terminated input, such as
// HTTP headers, is logged without the CR
func (l *Logger) LineWriter(level LogLevel, prefix byte) *LineWriter {
	return &LineWriter{
		Func: func(line []byte) {
			line = bytes.TrimSuffix(line, []byte("\r"))

			l.lock.Lock()
			defer l.lock.Unlock()

			l.line(level, prefix, "%s", line)
		},
	}
}

// line formats a single line and sends it to the output. The
// caller must hold the lock
func (l *Logger) line(level LogLevel, prefix byte, format string, args ...interface{}) {
	if level > l.level {
		return
	}

	var buf bytes.Buffer
	buf.WriteByte(prefix)
	buf.WriteByte(' ')
	fmt.Fprintf(&buf, format, args...)
	buf.WriteByte('\n')

	l.out.Write(buf.Bytes())
}

// LogMessage is a log message under construction. The message may
// span multiple lines, collected with the Error/Info/Debug/Trace
// and Dump methods. Commit sends them to the output in one piece,
// not interleaved with other log activity
type LogMessage struct {
	logger *Logger   // Logger the message belongs to
	lines  []logLine // Collected lines
}

// logLine is a single formatted line of a LogMessage
type logLine struct {
	level  LogLevel
	prefix byte
	text   string
}

// add formats the next line of the message
func (msg *LogMessage) add(level LogLevel, prefix byte,
	format string, args ...interface{}) *LogMessage {

	msg.lines = append(msg.lines, logLine{
		level:  level,
		prefix: prefix,
		text:   fmt.Sprintf(format, args...),
	})

	return msg
}

// Error adds a LogError line
func (msg *LogMessage) Error(format string, args ...interface{}) *LogMessage {
	return msg.add(LogError, '!', format, args...)
}

// Info adds a LogInfo line
func (msg *LogMessage) Info(format string, args ...interface{}) *LogMessage {
	return msg.add(LogInfo, ' ', format, args...)
}

// Debug adds a LogDebug line with a prefix character
func (msg *LogMessage) Debug(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogDebug, prefix, format, args...)
}

// Trace adds a LogTrace line with a prefix character
func (msg *LogMessage) Trace(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogTrace, prefix, format, args...)
}

// Dump adds a HEX dump with optional title. If title is not "",
// it is formatted, as fmt.Printf does, and prepended to the dump
func (msg *LogMessage) Dump(level LogLevel, data []byte, title string, args ...interface{}) *LogMessage {
	if title != "" {
		msg.add(level, ' ', title, args...)
	}

	var hex, chr bytes.Buffer
	off := 0

	for len(data) > 0 {
		hex.Reset()
		chr.Reset()

		sz := len(data)
		if sz > 16 {
			sz = 16
		}

		i := 0
		for ; i < sz; i++ {
			c := data[i]
			fmt.Fprintf(&hex, "%2.2x", c)
			if i%4 == 3 {
				hex.WriteByte(':')
			} else {
				hex.WriteByte(' ')
			}

			if 0x20 <= c && c < 0x80 {
				chr.WriteByte(c)
			} else {
				chr.WriteByte('.')
			}
		}

		for ; i < 16; i++ {
			hex.WriteString("   ")
		}

		msg.add(level, ' ', "%4.4x: %s %s", off, hex.Bytes(), chr.Bytes())

		off += sz
		data = data[sz:]
	}

	return msg
}

// LineWriter returns a writer that adds every line written to it
// as a line of the message. CRLF-terminated input, such as HTTP
// headers, is added without the CR
func (msg *LogMessage) LineWriter(level LogLevel, prefix byte) *LineWriter {
	return &LineWriter{
		Func: func(line []byte) {
			line = bytes.TrimSuffix(line, []byte("\r"))
			msg.add(level, prefix, "%s", line)
		},
	}
}

// Commit sends the collected lines to the output. Lines with a
// level above the configured one are dropped here, so the level
// in effect at Commit time decides for the whole message
func (msg *LogMessage) Commit() {
	l := msg.logger

	l.lock.Lock()
	defer l.lock.Unlock()

	for _, ln := range msg.lines {
		l.line(ln.level, ln.prefix, "%s", ln.text)
	}

	msg.lines = nil
}
