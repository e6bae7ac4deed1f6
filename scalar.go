/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Scalar values codec
 */

package ippwire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Resolution units codes
const (
	UnitsDpi  = 3 // Dots per inch
	UnitsDpcm = 4 // Dots per cm
)

// ReadInt reads exactly n (1, 2 or 4) bytes of big-endian integer.
//
// 1- and 2-byte integers are unsigned. 4-byte integers are signed,
// so 0xffffffff reads as -1 rather than overflowing.
func ReadInt(in io.Reader, n int) (int, error) {
	var buf [4]byte

	if n != 1 && n != 2 && n != 4 {
		return 0, errors.Errorf("ReadInt: invalid size %d", n)
	}

	_, err := io.ReadFull(in, buf[:n])
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = errors.Wrapf(ErrMalformedLength,
				"%d-byte integer", n)
		}
		return 0, err
	}

	switch n {
	case 1:
		return int(buf[0]), nil
	case 2:
		return int(binary.BigEndian.Uint16(buf[:2])), nil
	}

	return int(int32(binary.BigEndian.Uint32(buf[:4]))), nil
}

// WriteInt writes v as exactly n (1, 2 or 4) bytes of big-endian integer
func WriteInt(out io.Writer, n int, v int) error {
	var buf [4]byte

	switch n {
	case 1:
		buf[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(buf[:2], uint16(v))
	case 4:
		binary.BigEndian.PutUint32(buf[:4], uint32(v))
	default:
		return errors.Errorf("WriteInt: invalid size %d", n)
	}

	_, err := out.Write(buf[:n])
	return err
}

// DecodeValue decodes value bytes of the given tag into the
// string representation.
//
// If tag has no decoding rule, it returns ok == false and no error:
// the value bytes are considered consumed and the value is dropped.
// Fixed-size values of the wrong size fail with ErrMalformedValue.
//
// Representation by syntax:
//
//	out-of-band, collection delimiters  ""
//	boolean                             "0" or "1"
//	integer, enum                       "-123"
//	rangeOfInteger                      "1-100"
//	dateTime                            "2020-01-15T12:30:00.0+03:00"
//	resolution                          "600x600dpi"
//	character strings                   decoded with the Charset
//	textWithLanguage, nameWithLanguage  "text [lang]"
//	octetString                         raw bytes
func DecodeValue(tag ValueTag, data []byte, cs *Charset) (
	value string, ok bool, err error) {

	switch {
	case tag.IsOutOfBand(), tag.IsCollectionDelimiter():
		return "", true, nil

	case tag.IsString():
		value, err = cs.Decode(data)
		return value, err == nil, err
	}

	switch tag {
	case TagBoolean:
		if len(data) != 1 {
			break
		}
		if data[0] != 0 {
			return "1", true, nil
		}
		return "0", true, nil

	case TagInteger, TagEnum:
		if len(data) != 4 {
			break
		}
		return strconv.Itoa(decodeInt32(data)), true, nil

	case TagRangeOfInteger:
		if len(data) != 8 {
			break
		}
		return formatRange(decodeInt32(data[0:4]),
			decodeInt32(data[4:8])), true, nil

	case TagDateTime:
		if len(data) != 11 {
			break
		}
		return decodeDateTime(data), true, nil

	case TagResolution:
		if len(data) != 9 {
			break
		}
		return formatResolution(decodeInt32(data[0:4]),
			decodeInt32(data[4:8]), int(data[8])), true, nil

	case TagTextWithLanguage, TagNameWithLanguage:
		value, err = decodeWithLanguage(data, cs)
		if err != nil {
			return "", false, errors.Wrapf(ErrMalformedValue,
				"%s: %s", tag, err)
		}
		return value, true, nil

	case TagOctetString:
		return string(data), true, nil

	default:
		return "", false, nil
	}

	return "", false, errors.Wrapf(ErrMalformedValue,
		"%s: invalid size %d", tag, len(data))
}

// EncodeValue encodes string representation of value of the given
// tag into the wire format. It is the exact inverse of DecodeValue.
func EncodeValue(tag ValueTag, value string, cs *Charset) ([]byte, error) {
	switch {
	case tag.IsOutOfBand(), tag.IsCollectionDelimiter():
		return []byte{}, nil

	case tag.IsString():
		return cs.Encode(value)
	}

	var data []byte
	var err error

	switch tag {
	case TagBoolean:
		switch value {
		case "1", "true":
			data = []byte{1}
		case "0", "false":
			data = []byte{0}
		default:
			err = errors.New("must be 0 or 1")
		}

	case TagInteger, TagEnum:
		var v int64
		v, err = strconv.ParseInt(value, 10, 32)
		if err == nil {
			data = encodeInt32(nil, int(v))
		}

	case TagRangeOfInteger:
		var lower, upper int
		_, err = fmt.Sscanf(value, "%d-%d", &lower, &upper)
		if err == nil && formatRange(lower, upper) != value {
			err = errors.New("must be MIN-MAX")
		}
		if err == nil {
			data = encodeInt32(encodeInt32(nil, lower), upper)
		}

	case TagDateTime:
		data, err = encodeDateTime(value)

	case TagResolution:
		data, err = encodeResolution(value)

	case TagTextWithLanguage, TagNameWithLanguage:
		data, err = encodeWithLanguage(value, cs)

	case TagOctetString:
		data = []byte(value)

	default:
		return nil, errors.Wrapf(ErrUnrecognizedValueTag, "%s", tag)
	}

	if err != nil {
		return nil, errors.Wrapf(ErrMalformedValue, "%s %q: %s",
			tag, value, err)
	}

	return data, nil
}

// decodeInt32 decodes 4-byte signed big-endian integer
func decodeInt32(data []byte) int {
	return int(int32(binary.BigEndian.Uint32(data)))
}

// encodeInt32 appends 4-byte big-endian integer to the slice
func encodeInt32(data []byte, v int) []byte {
	return append(data, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// formatRange formats rangeOfInteger value
func formatRange(lower, upper int) string {
	return fmt.Sprintf("%d-%d", lower, upper)
}

// formatResolution formats resolution value
func formatResolution(x, y, units int) string {
	switch units {
	case UnitsDpi:
		return fmt.Sprintf("%dx%ddpi", x, y)
	case UnitsDpcm:
		return fmt.Sprintf("%dx%ddpcm", x, y)
	}
	return fmt.Sprintf("%dx%du%d", x, y, units)
}

// encodeResolution encodes resolution value
//
// Wire format
//
//	4 bytes: Xres
//	4 bytes: Yres
//	1 byte:  Units
func encodeResolution(value string) ([]byte, error) {
	var x, y, units int
	var unitsName string

	_, err := fmt.Sscanf(value, "%dx%d%s", &x, &y, &unitsName)
	if err != nil {
		return nil, err
	}

	switch unitsName {
	case "dpi":
		units = UnitsDpi
	case "dpcm":
		units = UnitsDpcm
	default:
		_, err = fmt.Sscanf(unitsName, "u%d", &units)
		if err != nil || units < 0 || units > 255 {
			return nil, errors.New("invalid units")
		}
	}

	if formatResolution(x, y, units) != value {
		return nil, errors.New("must be XxY{dpi|dpcm}")
	}

	data := encodeInt32(encodeInt32(nil, x), y)
	return append(data, byte(units)), nil
}

// decodeWithLanguage decodes textWithLanguage and
// nameWithLanguage values
//
// Wire format (RFC 8010, 3.9):
//
//	2 bytes:  len(Lang)
//	variable: Lang
//	2 bytes:  len(Text)
//	variable: Text
func decodeWithLanguage(data []byte, cs *Charset) (string, error) {
	if len(data) < 2 {
		return "", errors.New("truncated language length")
	}

	langLen := int(binary.BigEndian.Uint16(data[0:2]))
	data = data[2:]
	if len(data) < langLen+2 {
		return "", errors.New("truncated language name")
	}

	lang := data[:langLen]
	data = data[langLen:]

	textLen := int(binary.BigEndian.Uint16(data[0:2]))
	data = data[2:]
	switch {
	case len(data) < textLen:
		return "", errors.New("truncated text string")
	case len(data) > textLen:
		return "", errors.New("extra data after text string")
	}

	l, err := cs.Decode(lang)
	if err != nil {
		return "", err
	}

	text, err := cs.Decode(data)
	if err != nil {
		return "", err
	}

	return formatWithLanguage(text, l), nil
}

// formatWithLanguage formats textWithLanguage and
// nameWithLanguage values
func formatWithLanguage(text, lang string) string {
	return text + " [" + lang + "]"
}

// encodeWithLanguage encodes textWithLanguage and
// nameWithLanguage values
func encodeWithLanguage(value string, cs *Charset) ([]byte, error) {
	i := strings.LastIndex(value, " [")
	if i < 0 || !strings.HasSuffix(value, "]") {
		return nil, errors.New("must be TEXT [LANG]")
	}

	lang, err := cs.Encode(value[i+2 : len(value)-1])
	if err != nil {
		return nil, err
	}

	text, err := cs.Encode(value[:i])
	if err != nil {
		return nil, err
	}

	if len(lang) > math.MaxInt16 || len(text) > math.MaxInt16 {
		return nil, errors.New("too long")
	}

	data := make([]byte, 0, 4+len(lang)+len(text))
	data = append(data, byte(len(lang)>>8), byte(len(lang)))
	data = append(data, lang...)
	data = append(data, byte(len(text)>>8), byte(len(text)))
	data = append(data, text...)

	return data, nil
}

// decodeDateTime decodes dateTime value
//
// From RFC2579:
//
//	field  octets  contents                  range
//	-----  ------  --------                  -----
//	  1      1-2   year*                     0..65536
//	  2       3    month                     1..12
//	  3       4    day                       1..31
//	  4       5    hour                      0..23
//	  5       6    minutes                   0..59
//	  6       7    seconds                   0..60
//	               (use 60 for leap-second)
//	  7       8    deci-seconds              0..9
//	  8       9    direction from UTC        '+' / '-'
//	  9      10    hours from UTC*           0..13
//	 10      11    minutes from UTC          0..59
//
// Fields are not range-checked here.
func decodeDateTime(data []byte) string {
	dir := data[8]
	if dir != '-' {
		dir = '+'
	}

	return fmt.Sprintf("%4.4d-%2.2d-%2.2dT%2.2d:%2.2d:%2.2d.%d%c%2.2d:%2.2d",
		binary.BigEndian.Uint16(data[0:2]),
		data[2], data[3], data[4], data[5], data[6], data[7],
		dir, data[9], data[10])
}

// encodeDateTime encodes dateTime value
func encodeDateTime(value string) ([]byte, error) {
	var year, month, day, hour, minute, sec, dsec, tzHour, tzMin int
	var dir rune

	_, err := fmt.Sscanf(value, "%d-%d-%dT%d:%d:%d.%1d%c%d:%d",
		&year, &month, &day, &hour, &minute, &sec, &dsec,
		&dir, &tzHour, &tzMin)

	switch {
	case err != nil:
		return nil, err
	case year < 0 || year > 65535:
		return nil, errors.New("year out of range")
	case dir != '+' && dir != '-':
		return nil, errors.New("bad UTC sign")
	}

	for _, v := range []int{month, day, hour, minute, sec, dsec, tzHour, tzMin} {
		if v < 0 || v > 255 {
			return nil, errors.New("field out of range")
		}
	}

	data := []byte{
		byte(year >> 8), byte(year),
		byte(month), byte(day),
		byte(hour), byte(minute), byte(sec), byte(dsec),
		byte(dir), byte(tzHour), byte(tzMin),
	}

	if decodeDateTime(data) != value {
		return nil, errors.New("must be YYYY-MM-DDThh:mm:ss.d+hh:mm")
	}

	return data, nil
}
