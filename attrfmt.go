/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * IPP attribute access and formatting
 */

package main

import (
	"fmt"
	"io"

	"github.com/kofuk/ipp-print/ipp"
)

// ippAttrs represents a collection of IPP attributes from one
// group, enrolled into a map for convenient access
type ippAttrs map[string]ipp.Values

// groupAttrs enrolls one group's attributes.
//
// Note, we move from the end of the list to the beginning, so
// in a case of duplicated attributes, first occurrence wins
func groupAttrs(g *ipp.Group) ippAttrs {
	attrs := make(ippAttrs)

	for i := len(g.Attrs) - 1; i >= 0; i-- {
		attrs[g.Attrs[i].Name] = g.Attrs[i].Values
	}

	return attrs
}

// newIppAttrs collects attributes of the first group with the
// given tag
func newIppAttrs(m *ipp.Message, tag ipp.Tag) ippAttrs {
	for gi := range m.Groups {
		if m.Groups[gi].Tag == tag {
			return groupAttrs(&m.Groups[gi])
		}
	}

	return make(ippAttrs)
}

// Get attribute's values by attribute name.
// Multiple names may be specified, for fallback purposes.
// Value type is checked and enforced
func (attrs ippAttrs) getAttr(t ipp.Type, names ...string) []ipp.Value {
	for _, name := range names {
		v, ok := attrs[name]
		if ok && len(v) > 0 && v[0].V.Type() == t {
			vals := make([]ipp.Value, len(v))
			for i := range v {
				vals[i] = v[i].V
			}
			return vals
		}
	}

	return nil
}

// Get the first value of a string attribute. Returns "" if the
// attribute is not found
func (attrs ippAttrs) strSingle(names ...string) string {
	vals := attrs.getAttr(ipp.TypeString, names...)
	if vals == nil {
		return ""
	}

	return string(vals[0].(ipp.String))
}

// Get all values of a string attribute
func (attrs ippAttrs) strSet(names ...string) []string {
	vals := attrs.getAttr(ipp.TypeString, names...)
	strs := make([]string, len(vals))
	for i := range vals {
		strs[i] = string(vals[i].(ipp.String))
	}

	return strs
}

// Get the first value of an integer or enum attribute. Returns 0
// if the attribute is not found
func (attrs ippAttrs) intSingle(names ...string) int32 {
	vals := attrs.getAttr(ipp.TypeInteger, names...)
	if vals == nil {
		return 0
	}

	return int32(vals[0].(ipp.Integer))
}

// printAttrGroups writes the message's attribute groups to w, one
// attribute per line, in wire order
func printAttrGroups(w io.Writer, m *ipp.Message) {
	for _, g := range m.Groups {
		fmt.Fprintf(w, "[%s]\n", g.Tag)

		for _, attr := range g.Attrs {
			fmt.Fprintf(w, "    %s = %s\n", attr.Name, attr.Values)
		}
	}
}

// jobStateName converts a job-state enum value into its keyword
func jobStateName(state int32) string {
	switch state {
	case 3:
		return "pending"
	case 4:
		return "pending-held"
	case 5:
		return "processing"
	case 6:
		return "processing-stopped"
	case 7:
		return "canceled"
	case 8:
		return "aborted"
	case 9:
		return "completed"
	}

	return fmt.Sprintf("unknown(%d)", state)
}
