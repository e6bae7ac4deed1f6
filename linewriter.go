/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * LineWriter turns a text stream (i.e., the encoder trace)
 * into a sequence of lines
 */

package ippwire

import (
	"bytes"
)

// LineWriter implements io.Writer and io.Closer interfaces.
// It splits stream into text lines and calls a provided
// callback for each complete line.
//
// Line passed to callback is not terminated by '\n'
// character. Close flushes last incomplete line, if any
type LineWriter struct {
	Func func([]byte) // write-line callback
	buf  bytes.Buffer // buffer for incomplete lines
}

// Write implements io.Writer interface
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

// Close implements io.Closer interface
//
// Close flushes the last incomplete line from the
// internal buffer.
func (lw *LineWriter) Close() error {
	if lw.buf.Len() > 0 {
		lw.Func(lw.buf.Bytes())
		lw.buf.Reset()
	}
	return nil
}
