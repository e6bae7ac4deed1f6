/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP value tags
 */

package ippwire

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValueTag represents a value tag, i.e. the syntax of a single
// attribute value, as it appears on the wire.
type ValueTag uint8

// Value tags
const (
	// Out-of-band values
	TagUnsupported     ValueTag = 0x10 // Unsupported value
	TagDefault         ValueTag = 0x11 // Default value (reserved)
	TagUnknown         ValueTag = 0x12 // Unknown value
	TagNoValue         ValueTag = 0x13 // No-value value
	TagNotSettable     ValueTag = 0x15 // Not-settable value
	TagDeleteAttribute ValueTag = 0x16 // Delete-attribute value
	TagAdminDefine     ValueTag = 0x17 // Admin-defined value

	// Integer values
	TagInteger ValueTag = 0x21 // Integer value
	TagBoolean ValueTag = 0x22 // Boolean value
	TagEnum    ValueTag = 0x23 // Enumeration value

	// Octet-string values
	TagOctetString      ValueTag = 0x30 // Octet string value
	TagDateTime         ValueTag = 0x31 // Date/time value
	TagResolution       ValueTag = 0x32 // Resolution value
	TagRangeOfInteger   ValueTag = 0x33 // Range value
	TagBeginCollection  ValueTag = 0x34 // Beginning of collection value
	TagTextWithLanguage ValueTag = 0x35 // Text-with-language value
	TagNameWithLanguage ValueTag = 0x36 // Name-with-language value
	TagEndCollection    ValueTag = 0x37 // End of collection value

	// Character-string values
	TagText            ValueTag = 0x41 // Text value
	TagName            ValueTag = 0x42 // Name value
	TagKeyword         ValueTag = 0x44 // Keyword value
	TagURI             ValueTag = 0x45 // URI value
	TagURIScheme       ValueTag = 0x46 // URI scheme value
	TagCharset         ValueTag = 0x47 // Character set value
	TagNaturalLanguage ValueTag = 0x48 // Language value
	TagMimeMediaType   ValueTag = 0x49 // MIME media type value
	TagMemberAttrName  ValueTag = 0x4a // Collection member name value
)

// IsGroupDelimiter reports whether the byte b, read where either
// a group delimiter or a value tag may appear, is a delimiter.
//
// Group delimiters and value tags share the same position on the
// wire and are distinguished only by numeric range.
func IsGroupDelimiter(b byte) bool {
	return b < 0x10
}

// ValueTagFromByte maps a wire byte into the ValueTag.
// It fails with ErrUnknownTag if byte is not registered.
func ValueTagFromByte(b byte) (ValueTag, error) {
	tag := ValueTag(b)
	if valueTagNames[tag] == "" {
		return 0, errors.Wrapf(ErrUnknownTag, "value tag 0x%2.2x", b)
	}
	return tag, nil
}

// ValueTagByName returns ValueTag by its RFC 8010 name
// (i.e., "keyword" or "rangeOfInteger").
func ValueTagByName(name string) (ValueTag, bool) {
	tag, ok := valueTagByName[name]
	return tag, ok
}

// Byte returns the wire representation of the tag
func (tag ValueTag) Byte() byte {
	return byte(tag)
}

// IsOutOfBand returns true for tags that carry no value
// (unsupported, unknown, no-value and friends)
func (tag ValueTag) IsOutOfBand() bool {
	return 0x10 <= tag && tag <= 0x1f
}

// IsCollectionDelimiter returns true for TagBeginCollection and
// TagEndCollection
func (tag ValueTag) IsCollectionDelimiter() bool {
	return tag == TagBeginCollection || tag == TagEndCollection
}

// IsString returns true for character-string syntaxes, which values
// are decoded with the active charset
func (tag ValueTag) IsString() bool {
	switch tag {
	case TagText, TagName, TagKeyword, TagURI, TagURIScheme,
		TagCharset, TagNaturalLanguage, TagMimeMediaType,
		TagMemberAttrName:
		return true
	}
	return false
}

// String returns a tag name, as defined by RFC 8010
func (tag ValueTag) String() string {
	if s := valueTagNames[tag]; s != "" {
		return s
	}
	return fmt.Sprintf("0x%2.2x", uint8(tag))
}

var valueTagNames = [256]string{
	TagUnsupported:      "unsupported",
	TagDefault:          "default",
	TagUnknown:          "unknown",
	TagNoValue:          "no-value",
	TagNotSettable:      "not-settable",
	TagDeleteAttribute:  "delete-attribute",
	TagAdminDefine:      "admin-define",
	TagInteger:          "integer",
	TagBoolean:          "boolean",
	TagEnum:             "enum",
	TagOctetString:      "octetString",
	TagDateTime:         "dateTime",
	TagResolution:       "resolution",
	TagRangeOfInteger:   "rangeOfInteger",
	TagBeginCollection:  "collection",
	TagTextWithLanguage: "textWithLanguage",
	TagNameWithLanguage: "nameWithLanguage",
	TagEndCollection:    "endCollection",
	TagText:             "textWithoutLanguage",
	TagName:             "nameWithoutLanguage",
	TagKeyword:          "keyword",
	TagURI:              "uri",
	TagURIScheme:        "uriScheme",
	TagCharset:          "charset",
	TagNaturalLanguage:  "naturalLanguage",
	TagMimeMediaType:    "mimeMediaType",
	TagMemberAttrName:   "memberAttrName",
}

var valueTagByName = map[string]ValueTag{}

func init() {
	for i, name := range valueTagNames {
		if name != "" {
			valueTagByName[name] = ValueTag(i)
		}
	}

	// Short aliases, handy in dictionary files
	valueTagByName["text"] = TagText
	valueTagByName["name"] = TagName
}
