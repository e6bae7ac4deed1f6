/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Attribute dictionaries
 */

package ippwire

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// AttributeDef is the canonical definition of the attribute
type AttributeDef struct {
	Name   string   // Attribute name
	Syntax ValueTag // Canonical value syntax
}

// Dictionary maps (group, attribute name) into attribute definition.
//
// Decoder consults Dictionary for every named attribute outside of
// collections. Missing entries are not errors: attribute is created
// ad hoc from its name and wire value tag.
type Dictionary interface {
	Lookup(group DelimiterTag, name string) (AttributeDef, bool)
}

// DictionaryFunc adapts ordinary function to the Dictionary interface
type DictionaryFunc func(group DelimiterTag, name string) (AttributeDef, bool)

// Lookup calls f(group, name)
func (f DictionaryFunc) Lookup(group DelimiterTag, name string) (AttributeDef, bool) {
	return f(group, name)
}

// Table is the Dictionary, built of exact names and glob-style
// patterns (see GlobMatch).
//
// Exact name wins over patterns, and more specific (heavier)
// pattern wins over less specific. Among patterns of the same
// weight the first added wins.
type Table struct {
	exact    map[DelimiterTag]map[string]ValueTag
	patterns map[DelimiterTag][]tablePattern
}

// tablePattern represents a pattern entry of the Table
type tablePattern struct {
	pattern string
	syntax  ValueTag
}

// NewTable creates a new empty Table
func NewTable() *Table {
	return &Table{
		exact:    make(map[DelimiterTag]map[string]ValueTag),
		patterns: make(map[DelimiterTag][]tablePattern),
	}
}

// Add adds attribute definition to the Table. Name may be a
// glob-style pattern. Entries for the same group and name
// replace each other.
func (t *Table) Add(group DelimiterTag, name string, syntax ValueTag) {
	if strings.ContainsAny(name, "*?\\") {
		patterns := t.patterns[group]
		for i := range patterns {
			if patterns[i].pattern == name {
				patterns[i].syntax = syntax
				return
			}
		}
		t.patterns[group] = append(patterns, tablePattern{name, syntax})
		return
	}

	names := t.exact[group]
	if names == nil {
		names = make(map[string]ValueTag)
		t.exact[group] = names
	}
	names[name] = syntax
}

// Lookup implements Dictionary interface
func (t *Table) Lookup(group DelimiterTag, name string) (AttributeDef, bool) {
	if syntax, ok := t.exact[group][name]; ok {
		return AttributeDef{name, syntax}, true
	}

	best := -1
	def := AttributeDef{Name: name}
	for _, p := range t.patterns[group] {
		if w := GlobMatch(name, p.pattern); w > best {
			best = w
			def.Syntax = p.syntax
		}
	}

	return def, best >= 0
}

// Len returns count of entries in the Table
func (t *Table) Len() int {
	n := 0
	for _, names := range t.exact {
		n += len(names)
	}
	for _, patterns := range t.patterns {
		n += len(patterns)
	}
	return n
}

// LoadDictionary loads Table from the TOML file.
// See ParseDictionary for the file format.
func LoadDictionary(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ParseDictionary(f)
	if err != nil {
		err = errors.Wrapf(err, "%s", path)
	}

	return t, err
}

// ParseDictionary parses Table from the TOML text.
//
// Each section names a group, each key names an attribute (or
// pattern), and value is the syntax name:
//
//	[operation]
//	"attributes-charset" = "charset"
//
//	[printer]
//	"printer-state" = "enum"
//	"*-supported"   = "keyword"
//
// Section names are delimiter tag names with or without the
// "-attributes-tag" suffix ("printer" or "printer-attributes-tag").
func ParseDictionary(in io.Reader) (*Table, error) {
	var sections map[string]map[string]string

	_, err := toml.NewDecoder(in).Decode(&sections)
	if err != nil {
		return nil, err
	}

	t := NewTable()
	for section, names := range sections {
		group, ok := delimiterTagByGroupName(section)
		if !ok {
			return nil, errors.Errorf("[%s]: unknown group", section)
		}

		for name, syntaxName := range names {
			syntax, ok := ValueTagByName(syntaxName)
			if !ok {
				return nil, errors.Errorf("[%s] %s: unknown syntax %q",
					section, name, syntaxName)
			}
			t.Add(group, name, syntax)
		}
	}

	return t, nil
}

// delimiterTagByGroupName returns group DelimiterTag by its name
func delimiterTagByGroupName(name string) (DelimiterTag, bool) {
	name = strings.TrimSuffix(name, "-attributes-tag")
	for tag := DelimiterTag(0); tag <= delimiterLast; tag++ {
		if tag.IsGroup() && !tag.IsReserved() &&
			strings.TrimSuffix(tag.String(), "-attributes-tag") == name {
			return tag, true
		}
	}
	return 0, false
}
