/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Groups of attributes encoder
 */

package ippwire

import (
	"bytes"
	"io"
	"math"

	"github.com/pkg/errors"
)

// EncoderOptions represents encoder options
type EncoderOptions struct {
	// Charset is the initial charset, until "attributes-charset"
	// is written. If empty, DefaultCharset is used
	Charset string

	// Trace, if not nil, receives human-readable trace of every
	// emitted field
	Trace io.Writer

	// Logger, if Trace is nil and LogTraceIPP is enabled,
	// receives the trace instead
	Logger *Logger
}

// Encoder writes groups of attributes to the output stream
type Encoder struct {
	out io.Writer      // Output stream
	opt EncoderOptions // Options
}

// collectionKind defines how collection is opened on the wire
type collectionKind int

const (
	// Group-level collection. Name goes to begCollection
	collectionMain collectionKind = iota

	// Member of other collection. Name goes to the preceding
	// memberAttrName, begCollection has empty name
	collectionMember

	// Second and subsequent members of 1setOf. No name at all.
	// The first member is opened as the 1setOf itself
	collectionNextOfSet
)

// groupsEncoder does the actual encoding work
type groupsEncoder struct {
	buf   bytes.Buffer // Output buffer
	cs    *Charset     // Active charset
	trace *Formatter   // Trace formatter, nil if not tracing
}

// NewEncoder creates a new Encoder
func NewEncoder(out io.Writer, opt EncoderOptions) *Encoder {
	return &Encoder{out: out, opt: opt}
}

// Encode writes groups of attributes, followed by the
// end-of-attributes tag.
//
// Output is written at once and only if encoding succeeds.
func (e *Encoder) Encode(groups Groups) error {
	cs, err := LookupCharset(e.opt.Charset)
	if err != nil {
		return err
	}

	ge := &groupsEncoder{cs: cs}
	if e.opt.Trace != nil || e.opt.Logger.Enabled(LogTraceIPP) {
		ge.trace = NewFormatter()
	}

	err = ge.encode(groups)
	if err == nil {
		_, err = e.out.Write(ge.buf.Bytes())
	}

	if ge.trace != nil {
		if e.opt.Trace != nil {
			ge.trace.WriteTo(e.opt.Trace)
		} else {
			w := e.opt.Logger.LineWriter('>')
			ge.trace.WriteTo(w)
			w.Close()
		}
	}

	return err
}

// EncodeGroups encodes groups of attributes into the byte slice
func EncodeGroups(groups Groups, opt EncoderOptions) ([]byte, error) {
	var buf bytes.Buffer
	err := NewEncoder(&buf, opt).Encode(groups)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encode encodes all groups
func (ge *groupsEncoder) encode(groups Groups) error {
	for _, g := range groups {
		err := ge.encodeGroup(g)
		if err != nil {
			return err
		}
	}

	ge.buf.WriteByte(DelimiterEndOfAttributes.Byte())
	ge.tracef("%s", DelimiterEndOfAttributes)

	return nil
}

// encodeGroup encodes a single group
func (ge *groupsEncoder) encodeGroup(g Group) error {
	if !g.Delimiter.IsGroup() {
		return errors.Errorf("%s: invalid group delimiter", g.Delimiter)
	}

	ge.buf.WriteByte(g.Delimiter.Byte())
	ge.tracef("GROUP %s", g.Delimiter)

	for _, attr := range g.Attributes {
		err := ge.encodeAttr(attr)
		if err != nil {
			return errors.Wrapf(err, "%s", g.Delimiter)
		}

		if attr.Name == "attributes-charset" {
			cs, err := LookupCharset(attr.Values[0])
			if err != nil {
				return errors.Wrapf(err, "%s", g.Delimiter)
			}
			ge.cs = cs
		}
	}

	for _, c := range g.Collections {
		err := ge.encodeCollection(c, collectionMain)
		if err != nil {
			return errors.Wrapf(err, "%s", g.Delimiter)
		}
	}

	return nil
}

// encodeAttr encodes group attribute: the first value as
// attribute-with-one-value, the rest as additional values
func (ge *groupsEncoder) encodeAttr(attr Attribute) error {
	if attr.Name == "" {
		return errors.New("Attribute without name")
	}

	err := ge.checkAttr(attr)
	if err != nil {
		return err
	}

	name := attr.Name
	for _, v := range attr.Values {
		err = ge.encodeField(attr.Syntax, name, v)
		if err != nil {
			return errors.Wrapf(err, "%q", attr.Name)
		}
		name = ""
	}

	return nil
}

// encodeMember encodes collection member attribute:
// memberAttrName followed by values with empty names
func (ge *groupsEncoder) encodeMember(attr Attribute) error {
	if attr.Name == "" {
		return errors.New("Collection member without name")
	}

	err := ge.checkAttr(attr)
	if err == nil {
		err = ge.encodeField(TagMemberAttrName, "", attr.Name)
	}

	for i := 0; err == nil && i < len(attr.Values); i++ {
		err = ge.encodeField(attr.Syntax, "", attr.Values[i])
	}

	if err != nil {
		err = errors.Wrapf(err, "%q", attr.Name)
	}

	return err
}

// checkAttr checks attribute values and syntax
func (ge *groupsEncoder) checkAttr(attr Attribute) error {
	switch {
	case len(attr.Values) == 0:
		return errors.Errorf("%q: Attribute without value", attr.Name)
	case attr.Syntax == TagBeginCollection, attr.Syntax == TagEndCollection,
		attr.Syntax == TagMemberAttrName:
		return errors.Errorf("%q: %s: use Collection instead",
			attr.Name, attr.Syntax)
	}
	return nil
}

// encodeCollection encodes collection, recursively
func (ge *groupsEncoder) encodeCollection(c Collection, kind collectionKind) error {
	if c.SetOf {
		return ge.encodeSetOf(c, kind)
	}

	if c.Name == "" && kind != collectionNextOfSet {
		return errors.New("Collection without name")
	}

	var err error
	switch kind {
	case collectionMain:
		err = ge.encodeField(TagBeginCollection, c.Name, "")
	case collectionMember:
		err = ge.encodeField(TagMemberAttrName, "", c.Name)
		if err == nil {
			err = ge.encodeField(TagBeginCollection, "", "")
		}
	case collectionNextOfSet:
		err = ge.encodeField(TagBeginCollection, "", "")
	}

	if err != nil {
		return errors.Wrapf(err, "%q", c.Name)
	}

	ge.indent(1)

	for _, attr := range c.Attributes {
		err = ge.encodeMember(attr)
		if err != nil {
			return errors.Wrapf(err, "%q", c.Name)
		}
	}

	for _, c2 := range c.Collections {
		err = ge.encodeCollection(c2, collectionMember)
		if err != nil {
			return errors.Wrapf(err, "%q", c.Name)
		}
	}

	ge.indent(-1)

	return ge.encodeField(TagEndCollection, "", "")
}

// encodeSetOf encodes 1setOf collection. The first member
// is opened the same way as the 1setOf itself, the next ones
// with the blank begCollection
func (ge *groupsEncoder) encodeSetOf(c Collection, kind collectionKind) error {
	if len(c.Collections) == 0 {
		return errors.Errorf("%q: 1setOf without members", c.Name)
	}

	for i, member := range c.Collections {
		if member.SetOf {
			return errors.Errorf("%q: 1setOf of 1setOf", c.Name)
		}

		if i > 0 {
			kind = collectionNextOfSet
		}

		member.Name = c.Name
		err := ge.encodeCollection(member, kind)
		if err != nil {
			return err
		}
	}

	return nil
}

// encodeField encodes a single field
//
// Wire format:
//
//	1 byte:   Tag
//	2 bytes:  len(Name)
//	variable: name
//	2 bytes:  len(Value)
//	variable  Value
func (ge *groupsEncoder) encodeField(tag ValueTag, name, value string) error {
	nameData, err := ge.cs.Encode(name)
	if err != nil {
		return err
	}

	valueData, err := EncodeValue(tag, value, ge.cs)
	if err != nil {
		return err
	}

	switch {
	case len(nameData) > math.MaxInt16:
		return errors.Wrapf(ErrMalformedValue,
			"name exceeds %d bytes", math.MaxInt16)
	case len(valueData) > math.MaxInt16:
		return errors.Wrapf(ErrMalformedValue,
			"%s value exceeds %d bytes", tag, math.MaxInt16)
	}

	ge.buf.WriteByte(tag.Byte())
	WriteInt(&ge.buf, 2, len(nameData))
	ge.buf.Write(nameData)
	WriteInt(&ge.buf, 2, len(valueData))
	ge.buf.Write(valueData)

	switch {
	case tag == TagEndCollection:
		ge.tracef("%s", tag)
	case tag == TagBeginCollection:
		ge.tracef("%s %q", tag, name)
	default:
		ge.tracef("%s %q %s", tag, name, fmtValue(tag, value))
	}

	return nil
}

// tracef writes a trace line, if tracing is enabled
func (ge *groupsEncoder) tracef(format string, args ...interface{}) {
	if ge.trace != nil {
		ge.trace.Printf(format, args...)
	}
}

// indent changes the trace indentation level
func (ge *groupsEncoder) indent(delta int) {
	if ge.trace != nil {
		ge.trace.indent += delta
	}
}
