/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Group and collection tree builder
 */

package ippwire

// groupBuilder assembles a Group out of decoded attribute fields.
//
// Collections are kept on a stack while open. A collection closed by
// endCollection is not attached to its parent immediately: it becomes
// pending, because only the next field tells whether it is a plain
// collection or the first member of a 1setOf sequence. Blank
// begCollection right after endCollection continues the sequence,
// anything else commits the pending collection as it is.
//
// The 1setOf container lives on the stack under its currently open
// member, and becomes pending again when that member is closed.
type groupBuilder struct {
	group      Group        // Group being built
	stack      []Collection // Open collections, innermost last
	pending    *Collection  // Closed, not committed yet
	memberName string       // Last memberAttrName value
	last       int          // Last group attribute index, -1 if none
	log        *LogMessage  // Repairs are logged here
}

// newGroupBuilder creates a new groupBuilder
func newGroupBuilder(delim DelimiterTag, log *LogMessage) *groupBuilder {
	return &groupBuilder{
		group: Group{Delimiter: delim},
		last:  -1,
		log:   log,
	}
}

// inCollection reports whether there is open collection
func (b *groupBuilder) inCollection() bool {
	return len(b.stack) > 0
}

// top returns innermost open collection
func (b *groupBuilder) top() *Collection {
	return &b.stack[len(b.stack)-1]
}

// commit attaches pending collection, if any, to its parent
func (b *groupBuilder) commit() {
	if b.pending == nil {
		return
	}

	c := *b.pending
	b.pending = nil

	if b.inCollection() {
		b.top().AddCollection(c)
	} else {
		b.group.AddCollection(c)
		b.last = -1
	}
}

// begin handles begCollection with the given name field
func (b *groupBuilder) begin(name string) {
	// 1setOf continuation
	if b.pending != nil && name == "" && b.memberName == "" {
		c := *b.pending
		b.pending = nil

		if !c.SetOf {
			first := c
			first.Name = ""
			c = Collection{
				Name:        c.Name,
				Collections: Collections{first},
				SetOf:       true,
			}
		}

		b.stack = append(b.stack, c, Collection{})
		return
	}

	b.commit()

	switch {
	case b.memberName != "":
		// Nested collection
		name = b.memberName
		b.memberName = ""

	case name == "":
		b.log.Debug(' ', "collection without name")
	}

	if !b.inCollection() {
		b.last = -1
	}

	b.stack = append(b.stack, Collection{Name: name})
}

// end handles endCollection
func (b *groupBuilder) end() {
	b.commit()

	if !b.inCollection() {
		b.log.Debug(' ', "%s without %s", TagEndCollection, TagBeginCollection)
		return
	}

	if b.memberName != "" {
		b.log.Debug(' ', "member %q: no value", b.memberName)
		b.memberName = ""
	}

	c := *b.top()
	b.stack = b.stack[:len(b.stack)-1]

	if b.inCollection() && b.top().SetOf && c.Name == "" {
		container := b.top()
		container.AddCollection(c)
		c = *container
		b.stack = b.stack[:len(b.stack)-1]
	}

	b.pending = &c
}

// member handles memberAttrName
func (b *groupBuilder) member(value string) {
	b.commit()

	switch {
	case !b.inCollection():
		b.log.Debug(' ', "%s %q outside of collection",
			TagMemberAttrName, value)
	case value == "":
		b.log.Debug(' ', "%s is empty", TagMemberAttrName)
	default:
		b.memberName = value
	}
}

// memberValue handles a value inside of collection
func (b *groupBuilder) memberValue(tag ValueTag, name, value string) {
	b.commit()

	if b.memberName == "" && name != "" {
		// Some printers use named attributes instead of
		// memberAttrName within collections
		b.memberName = name
	}

	c := b.top()
	switch {
	case b.memberName != "":
		c.Add(MakeAttribute(b.memberName, tag, value))
		b.memberName = ""

	case len(c.Attributes) > 0:
		b.addValue(&c.Attributes[len(c.Attributes)-1], tag, value)

	default:
		b.log.Debug(' ', "%s value without member name", tag)
	}
}

// skipMember drops the member which value cannot be decoded
func (b *groupBuilder) skipMember() {
	b.commit()
	b.memberName = ""
}

// attribute adds a named attribute to the group
func (b *groupBuilder) attribute(attr Attribute) {
	b.commit()
	b.group.Add(attr)
	b.last = len(b.group.Attributes) - 1
}

// additional adds additional value to the last group attribute
func (b *groupBuilder) additional(tag ValueTag, value string) {
	b.commit()

	if b.last < 0 {
		b.log.Debug(' ', "%s additional value without attribute", tag)
		return
	}

	b.addValue(&b.group.Attributes[b.last], tag, value)
}

// addValue appends additional value to the attribute. Values
// of other syntax are dropped, as Attribute has only one Syntax
func (b *groupBuilder) addValue(attr *Attribute, tag ValueTag, value string) {
	if tag != attr.Syntax {
		b.log.Debug(' ', "%q: additional value syntax %s, expected %s",
			attr.Name, tag, attr.Syntax)
		return
	}

	attr.Add(value)
}

// skip drops the attribute which value cannot be decoded,
// with its additional values
func (b *groupBuilder) skip() {
	b.commit()
	b.last = -1
}

// finish closes everything left open and returns the Group
func (b *groupBuilder) finish() Group {
	b.commit()

	if b.memberName != "" {
		b.log.Debug(' ', "member %q: no value", b.memberName)
		b.memberName = ""
	}

	if b.inCollection() {
		b.log.Debug(' ', "%s: %d collection(s) not closed",
			b.group.Delimiter, len(b.stack))
		for b.inCollection() {
			b.end()
			b.commit()
		}
	}

	return b.group
}
