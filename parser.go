/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Streaming (incremental) message parser
 */

package ippwire

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// Handler receives events from the Parser
type Handler interface {
	// OnHeader is called when message header is received
	OnHeader(hdr Header)

	// OnGroup is called for each complete group of attributes
	OnGroup(g Group)

	// OnContentEnd is called when end-of-attributes tag is received.
	// Everything that follows is the document data
	OnContentEnd()

	// OnException is called when header or group cannot be decoded
	OnException(err error)
}

// HandlerFuncs implements Handler with optional callbacks.
// Nil callbacks are ignored
type HandlerFuncs struct {
	Header     func(hdr Header)
	Group      func(g Group)
	ContentEnd func()
	Exception  func(err error)
}

// OnHeader implements Handler interface
func (h HandlerFuncs) OnHeader(hdr Header) {
	if h.Header != nil {
		h.Header(hdr)
	}
}

// OnGroup implements Handler interface
func (h HandlerFuncs) OnGroup(g Group) {
	if h.Group != nil {
		h.Group(g)
	}
}

// OnContentEnd implements Handler interface
func (h HandlerFuncs) OnContentEnd() {
	if h.ContentEnd != nil {
		h.ContentEnd()
	}
}

// OnException implements Handler interface
func (h HandlerFuncs) OnException(err error) {
	if h.Exception != nil {
		h.Exception(err)
	}
}

// scanState represents the scanner state
type scanState int

const (
	scanHeader scanState = iota
	scanAttrGroup
	scanAttrValueTag
	scanAttrNameLength
	scanAttrName
	scanAttrValueLength
	scanAttrValue
	scanEndOfAttr
)

// String returns state name, for debugging
func (s scanState) String() string {
	switch s {
	case scanHeader:
		return "HEADER"
	case scanAttrGroup:
		return "ATTR_GROUP"
	case scanAttrValueTag:
		return "ATTR_VALUE_TAG"
	case scanAttrNameLength:
		return "ATTR_NAME_LENGTH"
	case scanAttrName:
		return "ATTR_NAME"
	case scanAttrValueLength:
		return "ATTR_VALUE_LENGTH"
	case scanAttrValue:
		return "ATTR_VALUE"
	case scanEndOfAttr:
		return "END_OF_ATTR"
	}
	return fmt.Sprintf("scanState(%d)", int(s))
}

// scanAction is the set of actions, requested by scanner.step.
// Actions are performed in the order of bits
type scanAction int

const (
	// Complete group is in the buffer, flush it before
	// appending the current byte
	actGroup scanAction = 1 << iota

	// Append current byte to the buffer
	actAppend

	// Complete header is in the buffer, flush it
	actHeader

	// End of attributes reached
	actEnd
)

// scanner splits the byte stream into the message header and
// groups of attributes, using the TLV framing only.
//
// scanner is a plain value. step is a pure function of the
// scanner and the input byte.
type scanner struct {
	state scanState // Current state
	cnt   int       // Bytes left in the current fixed-size item
	size  int       // Length field being assembled
}

// newScanner returns scanner in the initial state
func newScanner() scanner {
	return scanner{state: scanHeader, cnt: HeaderSize}
}

// step consumes one byte and returns the new scanner and the actions
// to perform with this byte
func (s scanner) step(b byte) (scanner, scanAction) {
	switch s.state {
	case scanHeader:
		s.cnt--
		if s.cnt == 0 {
			s.state = scanAttrGroup
			return s, actAppend | actHeader
		}
		return s, actAppend

	case scanAttrGroup:
		if b == DelimiterEndOfAttributes.Byte() {
			s.state = scanEndOfAttr
			return s, actEnd
		}
		s.state = scanAttrValueTag
		return s, actAppend

	case scanAttrValueTag:
		if IsGroupDelimiter(b) {
			s.state = scanAttrGroup
			s, act := s.step(b)
			return s, actGroup | act
		}
		s.state, s.cnt, s.size = scanAttrNameLength, 2, 0
		return s, actAppend

	case scanAttrNameLength, scanAttrValueLength:
		s.size = s.size<<8 | int(b)
		s.cnt--
		if s.cnt > 0 {
			return s, actAppend
		}

		switch {
		case s.size > 0 && s.state == scanAttrNameLength:
			s.state, s.cnt = scanAttrName, s.size
		case s.size > 0:
			s.state, s.cnt = scanAttrValue, s.size
		case s.state == scanAttrNameLength:
			// Additional value
			s.state, s.cnt = scanAttrValueLength, 2
		default:
			s.state = scanAttrValueTag
		}
		s.size = 0
		return s, actAppend

	case scanAttrName, scanAttrValue:
		s.cnt--
		if s.cnt == 0 {
			if s.state == scanAttrName {
				s.state, s.cnt = scanAttrValueLength, 2
			} else {
				s.state = scanAttrValueTag
			}
		}
		return s, actAppend
	}

	// scanEndOfAttr: nothing to do
	return s, 0
}

// Parser decodes IPP message incrementally, as bytes arrive.
//
// Parser buffers input until a complete header or a complete group
// of attributes is available, decodes it and dispatches to the
// Handler. Memory usage is bounded by the largest group.
//
// Parser is not safe for concurrent use. Each message needs
// its own Parser.
type Parser struct {
	handler Handler        // Events handler
	scan    scanner        // Byte stream scanner
	buf     bytes.Buffer   // Accumulated bytes of the current unit
	off     int            // Stream offset of the buffer start
	cnt     int            // Count of consumed bytes
	gd      *groupsDecoder // Groups decoder, shared between groups
	err     error          // Options error, reported on first Feed
}

// NewParser creates a new Parser
func NewParser(h Handler, opt DecoderOptions) *Parser {
	p := &Parser{
		handler: h,
		scan:    newScanner(),
	}

	p.gd, p.err = newGroupsDecoder(opt)
	return p
}

// Feed feeds the next chunk of the message to the Parser.
//
// It returns count of consumed bytes. It is less that len(data)
// only when end of attributes is reached. The rest of data (and
// everything that follows) is the document data.
//
// Decoding errors are never returned, they are passed to
// Handler.OnException. Parsing continues with the next group.
func (p *Parser) Feed(data []byte) int {
	if p.err != nil {
		err := p.err
		p.err = nil
		p.exception(err)
	}

	for i, b := range data {
		if p.Done() {
			return i
		}

		var act scanAction
		p.scan, act = p.scan.step(b)
		p.cnt++

		if act&actGroup != 0 {
			p.flushGroup()
		}

		if act&actAppend != 0 {
			p.buf.WriteByte(b)
		}

		if act&actHeader != 0 {
			p.flushHeader()
		}

		if act&actEnd != 0 {
			p.buf.Reset()
			p.dispatch(p.handler.OnContentEnd)
		}
	}

	return len(data)
}

// Done reports whether end of attributes was reached
func (p *Parser) Done() bool {
	return p.scan.state == scanEndOfAttr
}

// Consumed returns count of bytes consumed so far
func (p *Parser) Consumed() int {
	return p.cnt
}

// flushHeader decodes and dispatches the message header
func (p *Parser) flushHeader() {
	hdr, err := DecodeHeader(p.buf.Bytes())
	p.reset(p.cnt)

	if err != nil {
		p.exception(err)
		return
	}

	p.dispatch(func() { p.handler.OnHeader(hdr) })
}

// flushGroup decodes and dispatches the buffered group
func (p *Parser) flushGroup() {
	data := p.buf.Bytes()
	off := p.off
	defer p.reset(p.cnt - 1)

	var g Group
	err := p.protect(func() error {
		var err error
		g, err = p.decodeGroup(data, off)
		return err
	})

	if err != nil {
		p.exception(err)
		return
	}

	p.dispatch(func() { p.handler.OnGroup(g) })
}

// decodeGroup decodes the group. data starts with the delimiter
// and contains exactly one group
func (p *Parser) decodeGroup(data []byte, off int) (Group, error) {
	if p.gd == nil {
		return Group{}, errors.New("decoder not initialized")
	}

	delim, err := DelimiterTagFromByte(data[0])
	if err != nil {
		return Group{}, errors.Wrapf(err, "at 0x%x", off)
	}

	p.gd.in = bytes.NewReader(data[1:])
	p.gd.cnt = off + 1

	g, next, err := p.gd.decodeGroup(delim)
	if err == nil && next >= 0 {
		err = errors.Errorf("unexpected delimiter 0x%2.2x", next)
	}

	if err != nil {
		return Group{}, errors.Wrapf(err, "at 0x%x", p.gd.off)
	}

	return g, nil
}

// reset resets the buffer for the next unit, which starts
// at the given stream offset
func (p *Parser) reset(off int) {
	p.buf.Reset()
	p.off = off
}

// exception passes error to the Handler
func (p *Parser) exception(err error) {
	p.dispatch(func() { p.handler.OnException(err) })
}

// dispatch calls the Handler callback. Panics are converted
// to the OnException calls (but panics in OnException are not)
func (p *Parser) dispatch(callback func()) {
	err := p.protect(func() error {
		callback()
		return nil
	})

	if err != nil {
		p.handler.OnException(err)
	}
}

// protect calls the function and converts panic into error
func (p *Parser) protect(f func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.Errorf("panic: %v", v)
		}
	}()

	return f()
}
