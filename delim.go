/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP group delimiter tags
 */

package ippwire

import (
	"fmt"

	"github.com/pkg/errors"
)

// DelimiterTag represents a group delimiter tag
type DelimiterTag uint8

// Delimiter tags
const (
	DelimiterReserved00        DelimiterTag = 0x00 // Reserved for definition in a future IETF document
	DelimiterOperation         DelimiterTag = 0x01 // Operation attributes
	DelimiterJob               DelimiterTag = 0x02 // Job attributes
	DelimiterEndOfAttributes   DelimiterTag = 0x03 // End of attributes
	DelimiterPrinter           DelimiterTag = 0x04 // Printer attributes
	DelimiterUnsupported       DelimiterTag = 0x05 // Unsupported attributes
	DelimiterSubscription      DelimiterTag = 0x06 // Subscription attributes
	DelimiterEventNotification DelimiterTag = 0x07 // Event notification attributes
	DelimiterReserved08        DelimiterTag = 0x08 // \
	DelimiterReserved09        DelimiterTag = 0x09 //  \
	DelimiterReserved0A        DelimiterTag = 0x0a //   \
	DelimiterReserved0B        DelimiterTag = 0x0b //    \
	DelimiterReserved0C        DelimiterTag = 0x0c //     | Reserved for future
	DelimiterReserved0D        DelimiterTag = 0x0d //    /  delimiters
	DelimiterReserved0E        DelimiterTag = 0x0e //   /
	DelimiterReserved0F        DelimiterTag = 0x0f //  /
	delimiterLast              DelimiterTag = DelimiterReserved0F
)

// DelimiterTagFromByte maps a wire byte into the DelimiterTag.
//
// Every byte below 0x10 is a delimiter. Bytes reserved for future
// use map to the DelimiterReservedXX variants: they are structurally
// valid, though carry no defined semantics. Other bytes fail with
// ErrUnknownTag.
func DelimiterTagFromByte(b byte) (DelimiterTag, error) {
	if !IsGroupDelimiter(b) {
		return 0, errors.Wrapf(ErrUnknownTag, "delimiter tag 0x%2.2x", b)
	}
	return DelimiterTag(b), nil
}

// Byte returns the wire representation of the tag
func (tag DelimiterTag) Byte() byte {
	return byte(tag)
}

// IsReserved returns true for delimiters reserved for future use
func (tag DelimiterTag) IsReserved() bool {
	return tag == DelimiterReserved00 ||
		(DelimiterReserved08 <= tag && tag <= delimiterLast)
}

// IsGroup returns true for tags that start a group of attributes,
// i.e. all delimiters except DelimiterEndOfAttributes
func (tag DelimiterTag) IsGroup() bool {
	return tag <= delimiterLast && tag != DelimiterEndOfAttributes
}

// String returns a tag name, as defined by RFC 8010
func (tag DelimiterTag) String() string {
	if int(tag) < len(delimiterTagNames) {
		if s := delimiterTagNames[tag]; s != "" {
			return s
		}
		return fmt.Sprintf("reserved-0x%2.2x", uint8(tag))
	}
	return fmt.Sprintf("0x%2.2x", uint8(tag))
}

var delimiterTagNames = [...]string{
	DelimiterReserved00:        "",
	DelimiterOperation:         "operation-attributes-tag",
	DelimiterJob:               "job-attributes-tag",
	DelimiterEndOfAttributes:   "end-of-attributes-tag",
	DelimiterPrinter:           "printer-attributes-tag",
	DelimiterUnsupported:       "unsupported-attributes-tag",
	DelimiterSubscription:      "subscription-attributes-tag",
	DelimiterEventNotification: "event-notification-attributes-tag",
	delimiterLast:              "",
}
