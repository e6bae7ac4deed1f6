/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Character sets
 */

package ippwire

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Charset names
const (
	CharsetASCII = "us-ascii"
	CharsetUTF8  = "utf-8"

	// DefaultCharset is used until "attributes-charset" is seen
	DefaultCharset = CharsetASCII
)

// Charset decodes and encodes character-string values.
//
// US-ASCII and UTF-8 are handled internally, all other IANA
// charsets are resolved by golang.org/x/text.
type Charset struct {
	name string            // Normalized (lowercase) name
	enc  encoding.Encoding // nil for built-in charsets
}

var (
	charsetASCII = &Charset{name: CharsetASCII}
	charsetUTF8  = &Charset{name: CharsetUTF8}
)

// LookupCharset returns Charset by its IANA name. Empty name means
// DefaultCharset
func LookupCharset(name string) (*Charset, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	switch name {
	case "", CharsetASCII, "ascii", "us":
		return charsetASCII, nil
	case CharsetUTF8, "utf8":
		return charsetUTF8, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, errors.Wrapf(ErrUnknownCharset, "%q", name)
	}

	return &Charset{name: name, enc: enc}, nil
}

// Name returns the charset name
func (cs *Charset) Name() string {
	return cs.name
}

// Decode converts string in this charset into the Go (UTF-8) string
func (cs *Charset) Decode(data []byte) (string, error) {
	switch {
	case cs.enc != nil:
		out, err := cs.enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", errors.Wrapf(ErrMalformedValue, "%s: %s", cs.name, err)
		}
		return string(out), nil

	case cs.name == CharsetASCII:
		for _, c := range data {
			if c >= utf8.RuneSelf {
				return cs.decodeASCIISlow(data), nil
			}
		}
	}

	return string(data), nil
}

// decodeASCIISlow replaces non-ASCII bytes with utf8.RuneError
func (cs *Charset) decodeASCIISlow(data []byte) string {
	var buf strings.Builder
	for _, c := range data {
		if c >= utf8.RuneSelf {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.WriteByte(c)
		}
	}
	return buf.String()
}

// Encode converts Go string into this charset
func (cs *Charset) Encode(s string) ([]byte, error) {
	switch {
	case cs.enc != nil:
		out, err := cs.enc.NewEncoder().String(s)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedValue, "%s: %s", cs.name, err)
		}
		return []byte(out), nil

	case cs.name == CharsetASCII:
		for i := 0; i < len(s); i++ {
			if s[i] >= utf8.RuneSelf {
				return nil, errors.Wrapf(ErrMalformedValue,
					"%s: %q is not representable", cs.name, s)
			}
		}
	}

	return []byte(s), nil
}
