/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP message header and whole-message helpers
 */

package ippwire

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/OpenPrinting/goipp"
	"github.com/pkg/errors"
)

// HeaderSize is the size of IPP message header, in bytes
const HeaderSize = 8

// Header represents IPP message header
//
// Wire format:
//
//	2 bytes:  Version
//	2 bytes:  Code (Operation or Status)
//	4 bytes:  RequestID
type Header struct {
	Version   goipp.Version // Protocol version
	Code      goipp.Code    // Operation for request, status for response
	RequestID uint32        // Set in request, returned in response
}

// Message represents a whole IPP message: header, groups
// of attributes and the document data that follows the
// end-of-attributes tag
type Message struct {
	Header
	Groups Groups // Groups of attributes
	Data   []byte // Trailing document data, if any
}

// DecodeHeader decodes IPP message header
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errors.Wrapf(ErrMalformedLength,
			"header: %d bytes", len(data))
	}

	return Header{
		Version:   goipp.Version(binary.BigEndian.Uint16(data[0:2])),
		Code:      goipp.Code(binary.BigEndian.Uint16(data[2:4])),
		RequestID: binary.BigEndian.Uint32(data[4:8]),
	}, nil
}

// Encode returns wire representation of the Header
func (h Header) Encode() []byte {
	data := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(data[0:2], uint16(h.Version))
	binary.BigEndian.PutUint16(data[2:4], uint16(h.Code))
	binary.BigEndian.PutUint32(data[4:8], h.RequestID)
	return data
}

// Op interprets Code as operation code (for requests)
func (h Header) Op() goipp.Op {
	return goipp.Op(h.Code)
}

// Status interprets Code as status code (for responses)
func (h Header) Status() goipp.Status {
	return goipp.Status(h.Code)
}

// DecodeMessage decodes the whole IPP message
func DecodeMessage(data []byte, opt DecoderOptions) (*Message, error) {
	hdr, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	in := bytes.NewReader(data[HeaderSize:])
	groups, err := DecodeGroups(in, opt)
	if err != nil {
		return nil, err
	}

	m := &Message{Header: hdr, Groups: groups}
	if in.Len() > 0 {
		m.Data = data[len(data)-in.Len():]
	}

	return m, nil
}

// Encode writes the whole IPP message
func (m *Message) Encode(out io.Writer, opt EncoderOptions) error {
	_, err := out.Write(m.Header.Encode())
	if err == nil {
		err = NewEncoder(out, opt).Encode(m.Groups)
	}
	if err == nil && len(m.Data) > 0 {
		_, err = out.Write(m.Data)
	}
	return err
}

// EncodeBytes encodes the whole IPP message into byte slice
func (m *Message) EncodeBytes(opt EncoderOptions) ([]byte, error) {
	var buf bytes.Buffer
	err := m.Encode(&buf, opt)
	return buf.Bytes(), err
}
