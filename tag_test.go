/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Tests for value and delimiter tags
 */

package ippwire

import (
	"errors"
	"testing"
)

// Test ValueTagFromByte
func TestValueTagFromByte(t *testing.T) {
	known := 0

	for b := 0; b < 256; b++ {
		tag, err := ValueTagFromByte(byte(b))
		if valueTagNames[b] == "" {
			if !errors.Is(err, ErrUnknownTag) {
				t.Errorf("0x%2.2x: expected ErrUnknownTag, present %v",
					b, err)
			}
			continue
		}

		known++

		if err != nil {
			t.Errorf("0x%2.2x: unexpected error %s", b, err)
			continue
		}

		if tag.Byte() != byte(b) {
			t.Errorf("0x%2.2x: Byte() returned 0x%2.2x", b, tag.Byte())
		}

		tag2, ok := ValueTagByName(tag.String())
		if !ok || tag2 != tag {
			t.Errorf("ValueTagByName(%q): %s %v", tag.String(), tag2, ok)
		}
	}

	if known != 27 {
		t.Errorf("%d value tags registered, expected 27", known)
	}
}

// Test ValueTag classification
func TestValueTagClasses(t *testing.T) {
	testData := []struct {
		tag                 ValueTag
		outOfBand, coll, st bool
	}{
		{TagUnsupported, true, false, false},
		{TagNoValue, true, false, false},
		{TagAdminDefine, true, false, false},
		{TagInteger, false, false, false},
		{TagOctetString, false, false, false},
		{TagBeginCollection, false, true, false},
		{TagEndCollection, false, true, false},
		{TagTextWithLanguage, false, false, false},
		{TagText, false, false, true},
		{TagKeyword, false, false, true},
		{TagMemberAttrName, false, false, true},
	}

	for _, data := range testData {
		if v := data.tag.IsOutOfBand(); v != data.outOfBand {
			t.Errorf("%s: IsOutOfBand: %v", data.tag, v)
		}
		if v := data.tag.IsCollectionDelimiter(); v != data.coll {
			t.Errorf("%s: IsCollectionDelimiter: %v", data.tag, v)
		}
		if v := data.tag.IsString(); v != data.st {
			t.Errorf("%s: IsString: %v", data.tag, v)
		}
	}
}

// Test ValueTag names
func TestValueTagString(t *testing.T) {
	testData := []struct {
		tag  ValueTag
		name string
	}{
		{TagInteger, "integer"},
		{TagRangeOfInteger, "rangeOfInteger"},
		{TagName, "nameWithoutLanguage"},
		{TagBeginCollection, "collection"},
		{ValueTag(0x7f), "0x7f"},
	}

	for _, data := range testData {
		if s := data.tag.String(); s != data.name {
			t.Errorf("0x%2.2x: expected %q, present %q",
				uint8(data.tag), data.name, s)
		}
	}

	if tag, ok := ValueTagByName("name"); !ok || tag != TagName {
		t.Errorf(`ValueTagByName("name"): %s %v`, tag, ok)
	}
}

// Test DelimiterTagFromByte
func TestDelimiterTagFromByte(t *testing.T) {
	reserved := map[byte]bool{
		0x00: true, 0x08: true, 0x09: true, 0x0a: true, 0x0b: true,
		0x0c: true, 0x0d: true, 0x0e: true, 0x0f: true,
	}

	for b := 0; b < 0x10; b++ {
		if !IsGroupDelimiter(byte(b)) {
			t.Errorf("IsGroupDelimiter(0x%2.2x): false", b)
		}

		tag, err := DelimiterTagFromByte(byte(b))
		if err != nil {
			t.Errorf("0x%2.2x: unexpected error %s", b, err)
			continue
		}

		if tag.Byte() != byte(b) {
			t.Errorf("0x%2.2x: Byte() returned 0x%2.2x", b, tag.Byte())
		}

		if tag.IsReserved() != reserved[byte(b)] {
			t.Errorf("%s: IsReserved: %v", tag, tag.IsReserved())
		}

		if tag.IsGroup() != (tag != DelimiterEndOfAttributes) {
			t.Errorf("%s: IsGroup: %v", tag, tag.IsGroup())
		}
	}

	for b := 0x10; b < 256; b++ {
		if IsGroupDelimiter(byte(b)) {
			t.Errorf("IsGroupDelimiter(0x%2.2x): true", b)
		}

		_, err := DelimiterTagFromByte(byte(b))
		if !errors.Is(err, ErrUnknownTag) {
			t.Errorf("0x%2.2x: expected ErrUnknownTag, present %v", b, err)
		}
	}
}

// Test DelimiterTag names
func TestDelimiterTagString(t *testing.T) {
	testData := []struct {
		tag  DelimiterTag
		name string
	}{
		{DelimiterOperation, "operation-attributes-tag"},
		{DelimiterEndOfAttributes, "end-of-attributes-tag"},
		{DelimiterEventNotification, "event-notification-attributes-tag"},
		{DelimiterReserved00, "reserved-0x00"},
		{DelimiterReserved0B, "reserved-0x0b"},
		{DelimiterTag(0x20), "0x20"},
	}

	for _, data := range testData {
		if s := data.tag.String(); s != data.name {
			t.Errorf("0x%2.2x: expected %q, present %q",
				uint8(data.tag), data.name, s)
		}
	}
}
