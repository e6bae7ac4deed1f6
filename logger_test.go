/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Tests for logging
 */

package ippwire

import (
	"bytes"
	"strings"
	"testing"
)

// Test that nil Logger discards everything
func TestLoggerNil(t *testing.T) {
	var l *Logger

	if l.Enabled(LogAll) {
		t.Errorf("nil Logger: Enabled returned true")
	}

	l.Debug(' ', "debug")
	l.Info("info")
	l.Error("error")
	l.Dump([]byte{1, 2, 3}, "dump")
	l.Begin().Debug(' ', "debug").Error("error").Commit()

	w := l.LineWriter('>')
	w.Write([]byte("line\n"))
	w.Close()
}

// Test log levels
func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LogError|LogInfo, false)

	l.Debug(' ', "hidden debug")
	l.Trace('>', "hidden trace")
	l.Info("visible info")
	l.Error("visible error")

	out := buf.String()
	for _, s := range []string{"visible info", "visible error", "ERR"} {
		if !strings.Contains(out, s) {
			t.Errorf("%q not found in:\n%s", s, out)
		}
	}

	if strings.Contains(out, "hidden") {
		t.Errorf("disabled levels logged:\n%s", out)
	}
}

// Test multi-line messages
func TestLoggerMessage(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LogAll, false)

	msg := l.Begin()
	msg.Debug(' ', "first %d", 1)
	msg.Error("second %d", 2)
	msg.Commit()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, present %d:\n%s", len(lines), buf.String())
	}

	if !strings.Contains(lines[0], "first 1") ||
		!strings.Contains(lines[1], "! second 2") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

// Test hex dumps
func TestLoggerDump(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, LogDebug, false)

	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i) + 0x40
	}

	l.Dump(data, "%d bytes", len(data))

	out := buf.String()
	expected := []string{
		"20 bytes",
		"0000: 40 41 42 43:44 45 46 47:48 49 4a 4b:4c 4d 4e 4f: @ABCDEFGHIJKLMNO",
		"0010: 50 51 52 53:",
		"PQRS",
	}

	for _, s := range expected {
		if !strings.Contains(out, s) {
			t.Errorf("%q not found in:\n%s", s, out)
		}
	}
}

// Test LineWriter
func TestLineWriter(t *testing.T) {
	var lines []string
	w := &LineWriter{Func: func(line []byte) {
		lines = append(lines, string(line))
	}}

	w.Write([]byte("first\nsec"))
	w.Write([]byte("ond\n\nthi"))
	w.Write([]byte("rd"))
	w.Close()

	expected := []string{"first", "second", "", "third"}
	if strings.Join(lines, "|") != strings.Join(expected, "|") {
		t.Errorf("expected %q, present %q", expected, lines)
	}

	var buf bytes.Buffer
	l := NewLogger(&buf, LogTraceIPP, false)
	lw := l.LineWriter('<')
	lw.Write([]byte("GROUP job-attributes-tag\n"))
	lw.Close()

	if !strings.Contains(buf.String(), "< GROUP job-attributes-tag") {
		t.Errorf("trace line not found in:\n%s", buf.String())
	}
}
