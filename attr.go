/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Attributes, collections and groups
 */

package ippwire

// Attribute represents a single attribute, which consist of
// the Name, the value syntax and one or more Values
type Attribute struct {
	Name   string   // Attribute name
	Syntax ValueTag // Value syntax
	Values []string // Values, see DecodeValue for representation
}

// Attributes represents a slice of attributes
type Attributes []Attribute

// Collection represents a collection attribute (RFC 3382).
//
// If SetOf is true, the collection is a "1setOf collection": a
// container for repeated collection values that share its Name.
// Container's members are kept in Collections and have empty
// names, Attributes of the container are not used.
type Collection struct {
	Name        string      // Attribute (or member) name
	Attributes  Attributes  // Member attributes
	Collections Collections // Member collections
	SetOf       bool        // This is a 1setOf container
}

// Collections represents a slice of collections
type Collections []Collection

// Group represents a group of attributes
type Group struct {
	Delimiter   DelimiterTag // Group delimiter
	Attributes  Attributes   // Group attributes
	Collections Collections  // Group collections
}

// Groups represents a sequence of groups
type Groups []Group

// MakeAttribute makes Attribute with one or more values
func MakeAttribute(name string, syntax ValueTag,
	val1 string, values ...string) Attribute {

	attr := Attribute{Name: name, Syntax: syntax}
	attr.Values = make([]string, 0, len(values)+1)
	attr.Values = append(attr.Values, val1)
	attr.Values = append(attr.Values, values...)
	return attr
}

// MakeCollection makes Collection with given member attributes
func MakeCollection(name string, attrs ...Attribute) Collection {
	col := Collection{Name: name}
	for _, attr := range attrs {
		col.Add(attr)
	}
	return col
}

// MakeSetOf makes 1setOf Collection out of member collections.
// Member names are cleared.
func MakeSetOf(name string, members ...Collection) Collection {
	col := Collection{Name: name, SetOf: true}
	for _, member := range members {
		member.Name = ""
		col.AddCollection(member)
	}
	return col
}

// Add appends value to the Attribute
func (a *Attribute) Add(value string) {
	a.Values = append(a.Values, value)
}

// Equal checks that Attribute is equal to another Attribute
func (a Attribute) Equal(a2 Attribute) bool {
	if a.Name != a2.Name || a.Syntax != a2.Syntax ||
		len(a.Values) != len(a2.Values) {
		return false
	}

	for i := range a.Values {
		if a.Values[i] != a2.Values[i] {
			return false
		}
	}

	return true
}

// Add Attribute to Attributes
func (attrs *Attributes) Add(attr Attribute) {
	*attrs = append(*attrs, attr)
}

// Lookup returns the first Attribute of the given name
func (attrs Attributes) Lookup(name string) (Attribute, bool) {
	for _, attr := range attrs {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Equal checks that attrs and attrs2 are equal
func (attrs Attributes) Equal(attrs2 Attributes) bool {
	if len(attrs) != len(attrs2) {
		return false
	}

	for i, attr := range attrs {
		if !attr.Equal(attrs2[i]) {
			return false
		}
	}

	return true
}

// Add member Attribute to the Collection
func (c *Collection) Add(attr Attribute) {
	c.Attributes.Add(attr)
}

// AddCollection adds member Collection to the Collection
func (c *Collection) AddCollection(c2 Collection) {
	c.Collections.Add(c2)
}

// Equal checks that Collection is equal to another Collection
func (c Collection) Equal(c2 Collection) bool {
	return c.Name == c2.Name && c.SetOf == c2.SetOf &&
		c.Attributes.Equal(c2.Attributes) &&
		c.Collections.Equal(c2.Collections)
}

// Add Collection to Collections
func (cols *Collections) Add(c Collection) {
	*cols = append(*cols, c)
}

// Lookup returns the first Collection of the given name
func (cols Collections) Lookup(name string) (Collection, bool) {
	for _, c := range cols {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// Equal checks that cols and cols2 are equal
func (cols Collections) Equal(cols2 Collections) bool {
	if len(cols) != len(cols2) {
		return false
	}

	for i, c := range cols {
		if !c.Equal(cols2[i]) {
			return false
		}
	}

	return true
}

// Add Attribute to the Group
func (g *Group) Add(attr Attribute) {
	g.Attributes.Add(attr)
}

// AddCollection adds Collection to the Group
func (g *Group) AddCollection(c Collection) {
	g.Collections.Add(c)
}

// Equal checks that groups g and g2 are equal
func (g Group) Equal(g2 Group) bool {
	return g.Delimiter == g2.Delimiter &&
		g.Attributes.Equal(g2.Attributes) &&
		g.Collections.Equal(g2.Collections)
}

// Add Group to Groups
func (groups *Groups) Add(g Group) {
	*groups = append(*groups, g)
}

// Equal checks that groups and groups2 are equal
func (groups Groups) Equal(groups2 Groups) bool {
	if len(groups) != len(groups2) {
		return false
	}

	for i, g := range groups {
		if !g.Equal(groups2[i]) {
			return false
		}
	}

	return true
}
