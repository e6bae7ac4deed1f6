/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Groups of attributes decoder
 */

package ippwire

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// DecoderOptions represents decoder options
type DecoderOptions struct {
	// Charset is the initial charset, until "attributes-charset"
	// is seen. If empty, DefaultCharset is used
	Charset string

	// Dictionary, if not nil, is consulted for every named
	// attribute outside of collections. Attributes missing from
	// the Dictionary are logged and decoded anyway
	Dictionary Dictionary

	// Logger receives decoding diagnostics. May be nil
	Logger *Logger
}

// groupsDecoder decodes groups of attributes.
//
// The active charset lives here and survives from group to group,
// so the streaming Parser reuses the same groupsDecoder for all
// groups of the message.
type groupsDecoder struct {
	in   io.Reader  // Input stream
	off  int        // Offset of last read
	cnt  int        // Count of read bytes
	cs   *Charset   // Active charset
	dict Dictionary // Attributes dictionary, may be nil
	log  *Logger    // Diagnostics
}

// field represents a single decoded attribute field
//
// Wire format:
//
//	1   byte:   Value tag
//	2+N bytes:  Name length (2 bytes) + name string
//	2+N bytes:  Value length (2 bytes) + value bytes
type field struct {
	tag   ValueTag // Value tag
	name  string   // Name, "" for additional values
	value string   // Decoded value
	ok    bool     // Value tag has decoding rule
}

// DecodeGroups decodes groups of attributes.
//
// Input must be positioned at the first delimiter tag of the
// message attributes, i.e. right after the message header.
// Decoding stops after end-of-attributes tag, and the input is
// never consumed beyond it, so the document data, if any, may
// be read from the same io.Reader.
//
// On error, no groups are returned.
func DecodeGroups(in io.Reader, opt DecoderOptions) (Groups, error) {
	gd, err := newGroupsDecoder(opt)
	if err != nil {
		return nil, err
	}

	gd.in = in
	return gd.decode()
}

// DecodeGroupsBytes decodes groups of attributes from the byte slice
func DecodeGroupsBytes(data []byte, opt DecoderOptions) (Groups, error) {
	return DecodeGroups(bytes.NewReader(data), opt)
}

// newGroupsDecoder creates a new groupsDecoder
func newGroupsDecoder(opt DecoderOptions) (*groupsDecoder, error) {
	cs, err := LookupCharset(opt.Charset)
	if err != nil {
		return nil, err
	}

	return &groupsDecoder{
		cs:   cs,
		dict: opt.Dictionary,
		log:  opt.Logger,
	}, nil
}

// decode decodes groups until end-of-attributes
func (gd *groupsDecoder) decode() (Groups, error) {
	var groups Groups

	next, err := gd.readTag()
	if err == nil && next < 0 {
		err = errors.Wrap(ErrMalformedLength, "no end-of-attributes tag")
	}

	for err == nil {
		var delim DelimiterTag
		delim, err = DelimiterTagFromByte(byte(next))
		if err != nil {
			break
		}

		if delim == DelimiterEndOfAttributes {
			return groups, nil
		}

		var g Group
		g, next, err = gd.decodeGroup(delim)
		if err == nil {
			groups.Add(g)
			if next < 0 {
				err = errors.Wrap(ErrMalformedLength,
					"no end-of-attributes tag")
			}
		}
	}

	return nil, errors.Wrapf(err, "at 0x%x", gd.off)
}

// decodeGroup decodes a group of attributes, which delimiter
// is already consumed. It returns the group and the next delimiter
// byte, or -1 if input ends at the field boundary.
func (gd *groupsDecoder) decodeGroup(delim DelimiterTag) (Group, int, error) {
	msg := gd.log.Begin()
	defer msg.Commit()

	if delim.IsReserved() {
		msg.Debug(' ', "%s: group delimiter reserved for future use", delim)
	}

	b := newGroupBuilder(delim, msg)

	for {
		t, err := gd.readTag()
		if err != nil {
			return Group{}, -1, err
		}

		if t < 0 || IsGroupDelimiter(byte(t)) {
			return b.finish(), t, nil
		}

		f, err := gd.decodeField(byte(t))
		if err != nil {
			return Group{}, -1, err
		}

		gd.apply(b, f, msg)
	}
}

// apply applies decoded field to the groupBuilder
func (gd *groupsDecoder) apply(b *groupBuilder, f field, msg *LogMessage) {
	switch {
	case f.tag == TagBeginCollection:
		if !b.inCollection() && f.name != "" {
			gd.lookup(b.group.Delimiter, f, msg)
		}
		b.begin(f.name)

	case f.tag == TagEndCollection:
		b.end()

	case f.tag == TagMemberAttrName:
		b.member(f.value)

	case !f.ok:
		msg.Debug(' ', "%q: %s: %s, skipped",
			f.name, f.tag, ErrUnrecognizedValueTag)

		switch {
		case b.inCollection():
			b.skipMember()
		case f.name != "":
			b.skip()
		default:
			b.commit()
		}

	case b.inCollection():
		b.memberValue(f.tag, f.name, f.value)

	case f.name == "":
		b.additional(f.tag, f.value)

	default:
		gd.lookup(b.group.Delimiter, f, msg)
		b.attribute(MakeAttribute(f.name, f.tag, f.value))

		if f.name == "attributes-charset" {
			gd.setCharset(f.value, msg)
		}
	}
}

// lookup checks the named field against the Dictionary
func (gd *groupsDecoder) lookup(delim DelimiterTag, f field, msg *LogMessage) {
	if gd.dict == nil {
		return
	}

	def, found := gd.dict.Lookup(delim, f.name)
	switch {
	case !found:
		msg.Debug(' ', "%s: %q: %s", delim, f.name, ErrUnsupportedAttribute)
	case def.Syntax != f.tag && !f.tag.IsOutOfBand():
		msg.Debug(' ', "%s: %q: syntax %s, expected %s",
			delim, f.name, f.tag, def.Syntax)
	}
}

// setCharset switches the active charset
func (gd *groupsDecoder) setCharset(name string, msg *LogMessage) {
	cs, err := LookupCharset(name)
	if err != nil {
		msg.Error("attributes-charset: %s, keeping %s", err, gd.cs.Name())
		return
	}

	gd.cs = cs
	msg.Debug(' ', "charset: %s", cs.Name())
}

// decodeField decodes an attribute field, which tag is already consumed
func (gd *groupsDecoder) decodeField(t byte) (field, error) {
	tag, err := ValueTagFromByte(t)
	if err != nil {
		return field{}, err
	}

	name, err := gd.readBytes()
	if err != nil {
		return field{}, err
	}

	value, err := gd.readBytes()
	if err != nil {
		return field{}, err
	}

	f := field{tag: tag}

	f.name, err = gd.cs.Decode(name)
	if err == nil {
		f.value, f.ok, err = DecodeValue(tag, value, gd.cs)
	}

	return f, err
}

// readTag reads a tag byte. At the end of input it returns -1
// and no error
func (gd *groupsDecoder) readTag() (int, error) {
	var buf [1]byte

	gd.off = gd.cnt
	n, err := io.ReadFull(gd, buf[:])
	switch {
	case n == 1:
		return int(buf[0]), nil
	case err == io.EOF:
		return -1, nil
	}

	return -1, err
}

// readBytes reads length-prefixed sequence of bytes
func (gd *groupsDecoder) readBytes() ([]byte, error) {
	gd.off = gd.cnt
	length, err := ReadInt(gd, 2)
	if err != nil {
		return nil, err
	}

	data := make([]byte, length)
	_, err = io.ReadFull(gd, data)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = errors.Wrapf(ErrMalformedLength,
			"%d bytes expected", length)
	}

	return data, err
}

// Read implements io.Reader interface on a top of gd.in,
// counting the bytes
func (gd *groupsDecoder) Read(data []byte) (int, error) {
	n, err := gd.in.Read(data)
	gd.cnt += n
	return n, err
}
