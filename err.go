/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Common errors
 */

package ippwire

import (
	"errors"
)

// Error values for ippwire.
//
// ErrUnknownTag, ErrMalformedLength and ErrMalformedValue are fatal
// to the decode call that returns them. ErrUnsupportedAttribute and
// ErrUnrecognizedValueTag never abort decoding, they are only logged.
var (
	ErrUnknownTag           = errors.New("Unknown tag")
	ErrMalformedLength      = errors.New("Message truncated")
	ErrMalformedValue       = errors.New("Malformed value")
	ErrUnsupportedAttribute = errors.New("Unsupported attribute")
	ErrUnrecognizedValueTag = errors.New("Unrecognized value tag")
	ErrUnknownCharset       = errors.New("Unknown charset")
)
