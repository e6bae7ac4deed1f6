/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Logging
 */

package ippwire

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logMessagePool = sync.Pool{New: func() interface{} { return &LogMessage{} }}
	logBufferPool  = sync.Pool{New: func() interface{} { return &bytes.Buffer{} }}
)

// LogLevel enumerates possible log levels
type LogLevel int

// LogLevel bits
const (
	LogError LogLevel = 1 << iota
	LogInfo
	LogDebug
	LogTraceIPP

	LogAll = LogError | LogInfo | LogDebug | LogTraceIPP
)

// Logger implements logging facilities.
//
// Logger output goes to the zerolog.Logger, one event per line.
// Multi-line messages are committed atomically.
//
// The nil *Logger is valid and discards everything.
type Logger struct {
	lock   sync.Mutex     // Write lock
	out    zerolog.Logger // Output
	levels LogLevel       // Enabled levels
}

// NewLogger creates a new console logger, writing to out
func NewLogger(out io.Writer, levels LogLevel, color bool) *Logger {
	w := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !color,
		TimeFormat: time.TimeOnly,
	}

	return &Logger{
		out:    zerolog.New(w).With().Timestamp().Logger(),
		levels: levels,
	}
}

// Enabled reports whether any of the given levels is enabled
func (l *Logger) Enabled(level LogLevel) bool {
	return l != nil && l.levels&level != 0
}

// Begin new log message
func (l *Logger) Begin() *LogMessage {
	msg := logMessagePool.Get().(*LogMessage)
	msg.logger = l
	return msg
}

// Debug writes a LogDebug message
func (l *Logger) Debug(prefix byte, format string, args ...interface{}) {
	if l.Enabled(LogDebug) {
		l.Begin().Debug(prefix, format, args...).Commit()
	}
}

// Trace writes a LogTraceIPP message
func (l *Logger) Trace(prefix byte, format string, args ...interface{}) {
	if l.Enabled(LogTraceIPP) {
		l.Begin().Trace(prefix, format, args...).Commit()
	}
}

// Info writes a LogInfo message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Enabled(LogInfo) {
		l.Begin().Info(format, args...).Commit()
	}
}

// Error writes a LogError message
func (l *Logger) Error(format string, args ...interface{}) {
	if l.Enabled(LogError) {
		l.Begin().Error(format, args...).Commit()
	}
}

// Dump writes HEX dump with optional title. If title is not "", it
// is formatted, as fmt.Printf does, and prepended to the dump
func (l *Logger) Dump(data []byte, title string, args ...interface{}) {
	if l.Enabled(LogDebug) {
		l.Begin().Dump(data, title, args...).Commit()
	}
}

// LineWriter returns LineWriter that writes each line
// as a LogTraceIPP message
func (l *Logger) LineWriter(prefix byte) *LineWriter {
	return &LineWriter{
		Func: func(line []byte) {
			l.Trace(prefix, "%s", line)
		},
	}
}

// logLine is a single line of LogMessage
type logLine struct {
	level LogLevel      // Line level
	buf   *bytes.Buffer // Line text
}

// LogMessage represents a single (possible multi line) log
// message, which will appear in the output log atomically,
// and will not be interrupted in the middle by other log activity
type LogMessage struct {
	logger *Logger   // Underlying logger
	lines  []logLine // One buffer per line
}

// add formats a next line of log message, with level and prefix char
func (msg *LogMessage) add(level LogLevel, prefix byte,
	format string, args ...interface{}) *LogMessage {

	if !msg.logger.Enabled(level) {
		return msg
	}

	buf := logBufAlloc()
	buf.Write([]byte{prefix, ' '})
	fmt.Fprintf(buf, format, args...)
	msg.lines = append(msg.lines, logLine{level, buf})
	return msg
}

// Debug writes a LogDebug message
func (msg *LogMessage) Debug(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogDebug, prefix, format, args...)
}

// Trace writes a LogTraceIPP message
func (msg *LogMessage) Trace(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogTraceIPP, prefix, format, args...)
}

// Info writes a LogInfo message
func (msg *LogMessage) Info(format string, args ...interface{}) *LogMessage {
	return msg.add(LogInfo, ' ', format, args...)
}

// Error writes a LogError message
func (msg *LogMessage) Error(format string, args ...interface{}) *LogMessage {
	return msg.add(LogError, '!', format, args...)
}

// Dump writes HEX dump with optional title. If title is not "", it
// is formatted, as fmt.Printf does, and prepended to the dump
func (msg *LogMessage) Dump(data []byte, title string, args ...interface{}) *LogMessage {
	if !msg.logger.Enabled(LogDebug) {
		return msg
	}

	if title != "" {
		msg.Debug(' ', title, args...)
	}

	hex := logBufAlloc()
	chr := logBufAlloc()

	defer logBufFree(hex)
	defer logBufFree(chr)

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
			fmt.Fprintf(hex, "%2.2x", data[i])
			if i%4 == 3 {
				hex.Write([]byte(":"))
			} else {
				hex.Write([]byte(" "))
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

		msg.Debug(' ', "%4.4x: %s %s", off, hex, chr)

		off += sz
		data = data[sz:]
	}

	return msg
}

// Commit message to the log
func (msg *LogMessage) Commit() {
	// Don't forget to free the message
	defer msg.free()

	// Ignore empty messages
	if len(msg.lines) == 0 || msg.logger == nil {
		return
	}

	// Lock the logger
	msg.logger.lock.Lock()
	defer msg.logger.lock.Unlock()

	// Send message content to the logger
	for _, l := range msg.lines {
		msg.logger.out.WithLevel(l.level.zerologLevel()).Msg(l.buf.String())
	}
}

// Return message to the logMessagePool
func (msg *LogMessage) free() {
	for _, l := range msg.lines {
		logBufFree(l.buf)
	}

	// Reset the message and put it to the pool
	if len(msg.lines) < 16 {
		msg.lines = msg.lines[:0] // Keep memory, reset content
	} else {
		msg.lines = nil
	}

	msg.logger = nil

	// Put the message
	logMessagePool.Put(msg)
}

// zerologLevel returns zerolog.Level for the LogLevel.
// LogTraceIPP maps to zerolog.DebugLevel.
func (level LogLevel) zerologLevel() zerolog.Level {
	switch {
	case level&LogError != 0:
		return zerolog.ErrorLevel
	case level&LogInfo != 0:
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}

// Allocate a buffer
func logBufAlloc() *bytes.Buffer {
	return logBufferPool.Get().(*bytes.Buffer)
}

// Free a buffer
func logBufFree(buf *bytes.Buffer) {
	if buf.Cap() <= 256 {
		buf.Reset()
		logBufferPool.Put(buf)
	}
}
