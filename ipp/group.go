/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Groups of attributes
 */

package ipp

// Group represents a single attribute group within a message:
// a delimiter tag plus the attributes that follow it. A message may
// contain several groups with the same tag (a Get-Jobs response
// carries one job-attributes group per job).
type Group struct {
	Tag   Tag        // Group tag
	Attrs Attributes // Group attributes
}

// Add adds an attribute to the group. If the group already has an
// attribute with the same name, the new values are appended to the
// existing attribute: per 1setOf semantics a repeated name continues
// the first occurrence, it never replaces it.
func (g *Group) Add(attr Attribute) {
	g.merge(attr)
}

// merge implements Add and additionally reports the index the
// attribute landed at, which the decoder needs to route subsequent
// additional values.
func (g *Group) merge(attr Attribute) int {
	for i := range g.Attrs {
		if g.Attrs[i].Name == attr.Name {
			g.Attrs[i].Values = append(g.Attrs[i].Values, attr.Values...)
			return i
		}
	}

	g.Attrs.Add(attr)

	return len(g.Attrs) - 1
}

// Get returns the group's attribute with the given name
func (g *Group) Get(name string) (Attribute, bool) {
	for i := range g.Attrs {
		if g.Attrs[i].Name == name {
			return g.Attrs[i], true
		}
	}

	return Attribute{}, false
}

// Groups represents an ordered sequence of attribute groups
type Groups []Group

// Add appends a group to Groups
func (groups *Groups) Add(g Group) {
	*groups = append(*groups, g)
}
