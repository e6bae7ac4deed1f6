/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Tests for groups of attributes encoder
 */

package ippwire

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Test that encoder writes collections exactly as expected
func TestEncodeMediaCol(t *testing.T) {
	data, err := EncodeGroups(Groups{mediaColGroup()}, EncoderOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	expected := mediaColWire().end().bytes()
	if !bytes.Equal(data, expected) {
		t.Errorf("encoded data mismatch:\nexpected: % x\npresent:  % x",
			expected, data)
	}
}

// Test additional values encoding
func TestEncodeAdditionalValues(t *testing.T) {
	groups := Groups{
		{
			Delimiter: DelimiterPrinter,
			Attributes: Attributes{
				MakeAttribute("sides-supported", TagKeyword,
					"one-sided", "two-sided-long-edge"),
				MakeAttribute("copies-default", TagInteger, "1"),
			},
		},
	}

	data, err := EncodeGroups(groups, EncoderOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	expected := new(wire).
		delim(0x04).
		str(TagKeyword, "sides-supported", "one-sided").
		str(TagKeyword, "", "two-sided-long-edge").
		integer(TagInteger, "copies-default", 1).
		end().bytes()

	if !bytes.Equal(data, expected) {
		t.Errorf("encoded data mismatch:\nexpected: % x\npresent:  % x",
			expected, data)
	}
}

// Test encode-decode round trip
func TestEncodeRoundTrip(t *testing.T) {
	op := Group{Delimiter: DelimiterOperation}
	op.Add(MakeAttribute("attributes-charset", TagCharset, "utf-8"))
	op.Add(MakeAttribute("attributes-natural-language", TagNaturalLanguage, "en"))
	op.Add(MakeAttribute("requesting-user-name", TagName, "müller"))
	op.Add(MakeAttribute("job-id", TagInteger, "-1"))

	job := mediaColGroup()
	job.Add(MakeAttribute("copies", TagInteger, "2"))
	job.Add(MakeAttribute("print-quality", TagEnum, "5"))
	job.Add(MakeAttribute("printer-resolution", TagResolution, "600x600dpi"))
	job.Add(MakeAttribute("page-ranges", TagRangeOfInteger, "1-5", "7-9"))
	job.Add(MakeAttribute("job-hold-until-time", TagDateTime,
		"2020-01-15T12:30:00.0+03:00"))
	job.Add(MakeAttribute("job-password", TagOctetString, "\x00\x01\x02"))
	job.Add(MakeAttribute("job-sheets", TagNoValue, ""))
	job.Add(MakeAttribute("ipp-attribute-fidelity", TagBoolean, "1"))

	printer := Group{Delimiter: DelimiterPrinter}
	printer.AddCollection(MakeSetOf("media-col-database",
		MakeCollection("", MakeAttribute("media-type", TagKeyword, "a")),
		MakeCollection("", MakeAttribute("media-type", TagKeyword, "b")),
	))

	groups := Groups{op, job, printer}

	data, err := EncodeGroups(groups, EncoderOptions{})
	if err != nil {
		t.Fatalf("encode: %s", err)
	}

	decoded, err := DecodeGroupsBytes(data, DecoderOptions{})
	if err != nil {
		t.Fatalf("decode: %s", err)
	}

	if diff := cmp.Diff(groups, decoded); diff != "" {
		t.Errorf("groups mismatch (-expected +present):\n%s", diff)
	}

	// And once again, bytes must be the same
	data2, err := EncodeGroups(decoded, EncoderOptions{})
	if err != nil {
		t.Fatalf("re-encode: %s", err)
	}

	if !bytes.Equal(data, data2) {
		t.Errorf("re-encoded data mismatch:\n% x\n% x", data, data2)
	}
}

// Test 1setOf collections encoding
func TestEncodeSetOf(t *testing.T) {
	for _, n := range []int{2, 3} {
		var members []Collection
		for i := 0; i < n; i++ {
			members = append(members, MakeCollection("",
				MakeAttribute("media-type", TagKeyword, "plain")))
		}

		g := Group{Delimiter: DelimiterPrinter}
		g.AddCollection(MakeSetOf("media-col-database", members...))

		data, err := EncodeGroups(Groups{g}, EncoderOptions{})
		if err != nil {
			t.Errorf("%d members: unexpected error: %s", n, err)
			continue
		}

		// Each member starts with begCollection, and only the
		// first one has a name
		begin := []byte{TagBeginCollection.Byte(), 0, 0, 0, 0}
		named := append([]byte{TagBeginCollection.Byte(), 0,
			byte(len("media-col-database"))},
			"media-col-database"...)

		if cnt := bytes.Count(data, begin); cnt != n-1 {
			t.Errorf("%d members: %d blank begCollection", n, cnt)
		}

		if cnt := bytes.Count(data, named); cnt != 1 {
			t.Errorf("%d members: %d named begCollection", n, cnt)
		}

		decoded, err := DecodeGroupsBytes(data, DecoderOptions{})
		if err != nil {
			t.Errorf("%d members: decode: %s", n, err)
			continue
		}

		if diff := cmp.Diff(Groups{g}, decoded); diff != "" {
			t.Errorf("%d members: mismatch (-expected +present):\n%s",
				n, diff)
		}
	}
}

// Test 1setOf as collection member
func TestEncodeSetOfMember(t *testing.T) {
	jobCol := MakeCollection("job-col", MakeAttribute("job-name", TagName, "x"))
	jobCol.AddCollection(MakeSetOf("finishings-col",
		MakeCollection("",
			MakeAttribute("finishing-template", TagKeyword, "staple")),
		MakeCollection("",
			MakeAttribute("finishing-template", TagKeyword, "punch")),
	))

	g := Group{Delimiter: DelimiterJob}
	g.AddCollection(jobCol)

	data, err := EncodeGroups(Groups{g}, EncoderOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	expected := new(wire).
		delim(0x02).
		begin("job-col").
		member("job-name").str(TagName, "", "x").
		member("finishings-col").
		begin("").
		member("finishing-template").str(TagKeyword, "", "staple").
		endc().
		begin("").
		member("finishing-template").str(TagKeyword, "", "punch").
		endc().
		endc().
		end().bytes()

	if !bytes.Equal(data, expected) {
		t.Errorf("encoded data mismatch:\nexpected: % x\npresent:  % x",
			expected, data)
	}
}

// Test charset switching on encode
func TestEncodeCharset(t *testing.T) {
	op := Group{Delimiter: DelimiterOperation}
	op.Add(MakeAttribute("attributes-charset", TagCharset, "utf-8"))
	op.Add(MakeAttribute("requesting-user-name", TagName, "müller"))

	data, err := EncodeGroups(Groups{op}, EncoderOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if !bytes.Contains(data, []byte("m\xc3\xbcller")) {
		t.Errorf("UTF-8 name not found in % x", data)
	}

	// Without attributes-charset, us-ascii cannot encode the name
	op = Group{Delimiter: DelimiterOperation}
	op.Add(MakeAttribute("requesting-user-name", TagName, "müller"))

	_, err = EncodeGroups(Groups{op}, EncoderOptions{})
	if !errors.Is(err, ErrMalformedValue) {
		t.Errorf("expected ErrMalformedValue, present %v", err)
	}

	// But the initial charset may be given by options
	data, err = EncodeGroups(Groups{op},
		EncoderOptions{Charset: "iso-8859-1"})
	if err != nil {
		t.Fatalf("iso-8859-1: unexpected error: %s", err)
	}

	if !bytes.Contains(data, []byte("m\xfcller")) {
		t.Errorf("iso-8859-1 name not found in % x", data)
	}
}

// Test encoder errors
func TestEncodeErrors(t *testing.T) {
	long := strings.Repeat("x", 32768)

	testData := []struct {
		name   string
		groups Groups
		err    error
	}{
		{
			name: "attribute without name",
			groups: Groups{{Delimiter: DelimiterJob,
				Attributes: Attributes{MakeAttribute("", TagInteger, "1")}}},
		},
		{
			name: "attribute without values",
			groups: Groups{{Delimiter: DelimiterJob,
				Attributes: Attributes{{Name: "copies", Syntax: TagInteger}}}},
		},
		{
			name: "collection syntax in attribute",
			groups: Groups{{Delimiter: DelimiterJob,
				Attributes: Attributes{
					MakeAttribute("media-col", TagBeginCollection, "")}}},
		},
		{
			name: "value too long",
			groups: Groups{{Delimiter: DelimiterJob,
				Attributes: Attributes{
					MakeAttribute("job-name", TagName, long)}}},
			err: ErrMalformedValue,
		},
		{
			name: "name too long",
			groups: Groups{{Delimiter: DelimiterJob,
				Attributes: Attributes{
					MakeAttribute(long, TagInteger, "1")}}},
			err: ErrMalformedValue,
		},
		{
			name:   "end-of-attributes as group",
			groups: Groups{{Delimiter: DelimiterEndOfAttributes}},
		},
		{
			name: "empty 1setOf",
			groups: Groups{{Delimiter: DelimiterPrinter,
				Collections: Collections{MakeSetOf("media-col-database")}}},
		},
		{
			name: "collection without name",
			groups: Groups{{Delimiter: DelimiterPrinter,
				Collections: Collections{MakeCollection("")}}},
		},
		{
			name: "value without encoding rule",
			groups: Groups{{Delimiter: DelimiterJob,
				Attributes: Attributes{
					MakeAttribute("job-name", ValueTag(0x3f), "x")}}},
			err: ErrUnrecognizedValueTag,
		},
		{
			name: "malformed nameWithLanguage",
			groups: Groups{{Delimiter: DelimiterJob,
				Attributes: Attributes{
					MakeAttribute("job-name", TagNameWithLanguage, "x")}}},
			err: ErrMalformedValue,
		},
		{
			name: "malformed integer",
			groups: Groups{{Delimiter: DelimiterJob,
				Attributes: Attributes{
					MakeAttribute("copies", TagInteger, "two")}}},
			err: ErrMalformedValue,
		},
	}

	for _, data := range testData {
		var buf bytes.Buffer
		err := NewEncoder(&buf, EncoderOptions{}).Encode(data.groups)

		switch {
		case err == nil:
			t.Errorf("%s: error not detected", data.name)
		case data.err != nil && !errors.Is(err, data.err):
			t.Errorf("%s: expected %v, present %v", data.name, data.err, err)
		case buf.Len() != 0:
			t.Errorf("%s: %d bytes written on error", data.name, buf.Len())
		}
	}

	_, err := EncodeGroups(nil, EncoderOptions{Charset: "x-klingon"})
	if !errors.Is(err, ErrUnknownCharset) {
		t.Errorf("expected ErrUnknownCharset, present %v", err)
	}
}

// Test encoder trace
func TestEncodeTrace(t *testing.T) {
	var trace bytes.Buffer

	_, err := EncodeGroups(Groups{mediaColGroup()},
		EncoderOptions{Trace: &trace})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	expected := []string{
		"GROUP job-attributes-tag",
		`collection "media-col"`,
		`    memberAttrName "" media-type`,
		`    keyword "" stationery`,
		`    memberAttrName "" media-size`,
		`    collection ""`,
		`        memberAttrName "" x-dimension`,
		`        integer "" 21000`,
		`        memberAttrName "" y-dimension`,
		`        integer "" 29700`,
		`    endCollection`,
		`endCollection`,
		`end-of-attributes-tag`,
	}

	present := strings.Split(strings.TrimSuffix(trace.String(), "\n"), "\n")
	if diff := cmp.Diff(expected, present); diff != "" {
		t.Errorf("trace mismatch (-expected +present):\n%s", diff)
	}

	// Trace to Logger
	var log bytes.Buffer
	_, err = EncodeGroups(Groups{mediaColGroup()},
		EncoderOptions{Logger: testLogger(&log)})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if !strings.Contains(log.String(), "> GROUP job-attributes-tag") {
		t.Errorf("trace not logged:\n%s", log.String())
	}
}
