/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Formatter (pretty-printer)
 */

package ippwire

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatterIndentShift is the indentation shift, number of space
// characters per indentation level.
const FormatterIndentShift = 4

// Formatter formats headers, groups, attributes and collections
// for pretty-printing.
type Formatter struct {
	indent     int          // Indentation level
	userIndent int          // User-settable indent
	buf        bytes.Buffer // Output buffer
}

// NewFormatter returns a new Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Reset resets the formatter.
func (f *Formatter) Reset() {
	f.buf.Reset()
	f.indent = 0
}

// SetIndent configures indentation. If parameter is greater that
// zero, the specified amount of white space will prepended to each
// non-empty output line.
func (f *Formatter) SetIndent(n int) {
	f.userIndent = 0
	if n > 0 {
		f.userIndent = n
	}
}

// String returns formatted text as a string.
func (f *Formatter) String() string {
	return f.buf.String()
}

// WriteTo writes formatted text to w.
// It implements io.WriterTo interface.
func (f *Formatter) WriteTo(w io.Writer) (int64, error) {
	return f.buf.WriteTo(w)
}

// Printf writes formatted line into the Formatter, automatically
// indented and with added newline at the end.
func (f *Formatter) Printf(format string, args ...interface{}) (int, error) {
	s := fmt.Sprintf(format, args...)
	cnt := 0

	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			cnt += f.doIndent()
		}

		f.buf.WriteString(line)
		f.buf.WriteByte('\n')
		cnt += len(line) + 1
	}

	return cnt, nil
}

// FmtRequest formats a request Message.
func (f *Formatter) FmtRequest(msg *Message) {
	f.fmtMessage(msg, true)
}

// FmtResponse formats a response Message.
func (f *Formatter) FmtResponse(msg *Message) {
	f.fmtMessage(msg, false)
}

// fmtHeader formats a message Header
func (f *Formatter) fmtHeader(hdr Header, request bool) {
	f.Printf("REQUEST-ID %d", hdr.RequestID)
	f.Printf("VERSION %s", hdr.Version)

	if request {
		f.Printf("OPERATION %s", hdr.Op())
	} else {
		f.Printf("STATUS %s", hdr.Status())
	}
}

// fmtMessage formats a request or response Message.
func (f *Formatter) fmtMessage(msg *Message, request bool) {
	f.Printf("{")
	f.indent++

	f.fmtHeader(msg.Header, request)

	if len(msg.Groups) != 0 {
		f.Printf("")
		f.FmtGroups(msg.Groups)
	}

	if len(msg.Data) != 0 {
		f.Printf("")
		f.Printf("DATA %d bytes", len(msg.Data))
	}

	f.indent--
	f.Printf("}")
}

// FmtGroups formats a Groups slice.
func (f *Formatter) FmtGroups(groups Groups) {
	for i, g := range groups {
		if i != 0 {
			f.Printf("")
		}
		f.FmtGroup(g)
	}
}

// FmtGroup formats a single Group.
func (f *Formatter) FmtGroup(g Group) {
	f.Printf("GROUP %s", g.Delimiter)
	f.FmtAttributes(g.Attributes)
	f.FmtCollections(g.Collections, "COLLECTION")
}

// FmtAttributes formats a Attributes slice.
func (f *Formatter) FmtAttributes(attrs Attributes) {
	for _, attr := range attrs {
		f.FmtAttribute(attr)
	}
}

// FmtAttribute formats a single Attribute.
func (f *Formatter) FmtAttribute(attr Attribute) {
	f.fmtAttributeOrMember(attr, "ATTR")
}

// FmtCollections formats a Collections slice. Prefix is
// the keyword written in front of each collection name.
func (f *Formatter) FmtCollections(cols Collections, prefix string) {
	for _, c := range cols {
		f.FmtCollection(c, prefix)
	}
}

// FmtCollection formats a single Collection
func (f *Formatter) FmtCollection(c Collection, prefix string) {
	if c.SetOf {
		f.Printf("%s %q 1setOf [", prefix, c.Name)
		f.indent++
		for _, member := range c.Collections {
			f.fmtCollectionBody(member)
		}
		f.indent--
		f.Printf("]")
		return
	}

	f.Printf("%s %q {", prefix, c.Name)
	f.fmtCollectionMembers(c)
	f.Printf("}")
}

// fmtCollectionBody formats the 1setOf member
func (f *Formatter) fmtCollectionBody(c Collection) {
	f.Printf("{")
	f.fmtCollectionMembers(c)
	f.Printf("}")
}

// fmtCollectionMembers formats collection members, indented
func (f *Formatter) fmtCollectionMembers(c Collection) {
	f.indent++
	for _, attr := range c.Attributes {
		f.fmtAttributeOrMember(attr, "MEMBER")
	}
	f.FmtCollections(c.Collections, "MEMBER")
	f.indent--
}

// fmtAttributeOrMember formats a single Attribute or collection member.
func (f *Formatter) fmtAttributeOrMember(attr Attribute, prefix string) {
	buf := &f.buf

	f.doIndent()
	fmt.Fprintf(buf, "%s %q %s:", prefix, attr.Name, attr.Syntax)

	for _, v := range attr.Values {
		buf.WriteByte(' ')
		buf.WriteString(fmtValue(attr.Syntax, v))
	}

	buf.WriteByte('\n')
}

// fmtValue formats a single value. Values that may contain
// binary data or spaces are quoted
func fmtValue(tag ValueTag, v string) string {
	switch {
	case tag == TagOctetString, tag == TagText, tag == TagName,
		v == "", strings.ContainsAny(v, " \t\r\n"):
		return strconv.Quote(v)
	}
	return v
}

// doIndent outputs indentation space.
// It returns number of characters written.
func (f *Formatter) doIndent() int {
	cnt := FormatterIndentShift*f.indent + f.userIndent
	f.buf.WriteString(strings.Repeat(" ", cnt))
	return cnt
}
