/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Wire format builder for tests
 */

package ippwire

import (
	"bytes"
)

// wire builds raw IPP byte sequences in tests
type wire struct {
	buf bytes.Buffer
}

// header appends message header
func (w *wire) header(code uint16, id uint32) *wire {
	w.buf.Write([]byte{0x02, 0x00, byte(code >> 8), byte(code),
		byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)})
	return w
}

// delim appends delimiter byte
func (w *wire) delim(b byte) *wire {
	w.buf.WriteByte(b)
	return w
}

// end appends end-of-attributes tag
func (w *wire) end() *wire {
	return w.delim(DelimiterEndOfAttributes.Byte())
}

// raw appends raw field
func (w *wire) raw(tag byte, name string, value []byte) *wire {
	w.buf.WriteByte(tag)
	w.buf.Write([]byte{byte(len(name) >> 8), byte(len(name))})
	w.buf.WriteString(name)
	w.buf.Write([]byte{byte(len(value) >> 8), byte(len(value))})
	w.buf.Write(value)
	return w
}

// str appends field with string value
func (w *wire) str(tag ValueTag, name, value string) *wire {
	return w.raw(tag.Byte(), name, []byte(value))
}

// integer appends integer field
func (w *wire) integer(tag ValueTag, name string, v int) *wire {
	return w.raw(tag.Byte(), name, encodeInt32(nil, v))
}

// begin appends begCollection
func (w *wire) begin(name string) *wire {
	return w.raw(TagBeginCollection.Byte(), name, nil)
}

// endc appends endCollection
func (w *wire) endc() *wire {
	return w.raw(TagEndCollection.Byte(), "", nil)
}

// member appends memberAttrName
func (w *wire) member(name string) *wire {
	return w.str(TagMemberAttrName, "", name)
}

// bytes returns accumulated bytes
func (w *wire) bytes() []byte {
	return w.buf.Bytes()
}

// mediaColWire returns wire representation of the job group
// with media-col, as the encoder writes it
func mediaColWire() *wire {
	return new(wire).
		delim(0x02).
		begin("media-col").
		member("media-type").
		str(TagKeyword, "", "stationery").
		member("media-size").
		begin("").
		member("x-dimension").
		integer(TagInteger, "", 21000).
		member("y-dimension").
		integer(TagInteger, "", 29700).
		endc().
		endc()
}

// mediaColGroup returns the job group with media-col
func mediaColGroup() Group {
	mediaSize := MakeCollection("media-size",
		MakeAttribute("x-dimension", TagInteger, "21000"),
		MakeAttribute("y-dimension", TagInteger, "29700"),
	)

	mediaCol := MakeCollection("media-col",
		MakeAttribute("media-type", TagKeyword, "stationery"))
	mediaCol.AddCollection(mediaSize)

	g := Group{Delimiter: DelimiterJob}
	g.AddCollection(mediaCol)
	return g
}
