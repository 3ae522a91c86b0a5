/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Message attributes
 */

package ipp

import (
	"strings"
)

// Attribute represents a single named attribute. An attribute owns
// one or more values; on the wire the name is sent with the first
// value only, each following value of the same attribute is sent
// with a zero-length name.
type Attribute struct {
	Name   string // Attribute name
	Values Values // Attribute values, at least one
}

// MakeAttribute makes an attribute with the given name and one or
// more values, all sharing the same tag:
//
//	attr := ipp.MakeAttribute("attributes-charset",
//	        ipp.TagCharset, ipp.String("utf-8"))
func MakeAttribute(name string, tag Tag, values ...Value) Attribute {
	attr := Attribute{Name: name}
	for _, v := range values {
		attr.Values.Add(tag, v)
	}

	return attr
}

// Values represents a sequence of values with their tags. Order is
// preserved: it is part of the wire contract.
type Values []struct {
	T Tag   // The tag
	V Value // The value
}

// Add appends a value to Values
func (values *Values) Add(t Tag, v Value) {
	*values = append(*values, struct {
		T Tag
		V Value
	}{t, v})
}

// String converts Values to string
func (values Values) String() string {
	if len(values) == 1 {
		return values[0].V.String()
	}

	var buf strings.Builder
	buf.WriteByte('[')
	for i, v := range values {
		if i != 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(v.V.String())
	}
	buf.WriteByte(']')

	return buf.String()
}

// Attributes represents an ordered sequence of attributes
type Attributes []Attribute

// Add appends an attribute to Attributes
func (attrs *Attributes) Add(attr Attribute) {
	*attrs = append(*attrs, attr)
}
