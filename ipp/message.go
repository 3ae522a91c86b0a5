/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * IPP message
 */

package ipp

import (
	"errors"
	"fmt"
)

// ContentType is the HTTP content type used for IPP messages
const ContentType = "application/ipp"

// Message parsing and encoding errors. Decode errors wrap one of
// these kinds and add the byte offset the failure was detected at;
// use errors.Is to classify.
var (
	ErrMalformedHeader = errors.New("malformed message header")
	ErrUnknownGroupTag = errors.New("unknown attribute group tag")
	ErrTruncated       = errors.New("message truncated")
	ErrMalformedValue  = errors.New("malformed attribute value")
	ErrValueTooLarge   = errors.New("value exceeds 65535 octets")
)

// Version represents a protocol version. The major version lives in
// the upper byte, the minor version in the lower byte, which is also
// the wire representation.
type Version uint16

// Protocol versions
var (
	Version10 = MakeVersion(1, 0)
	Version11 = MakeVersion(1, 1)
	Version20 = MakeVersion(2, 0)

	// DefaultVersion is what this client speaks unless told
	// otherwise. 1.1 is the least common denominator that every
	// IPP printer in the field accepts.
	DefaultVersion = Version11
)

// MakeVersion makes a Version from major and minor parts
func MakeVersion(major, minor uint8) Version {
	return Version(major)<<8 | Version(minor)
}

// Major returns the major part of the version
func (v Version) Major() uint8 { return uint8(v >> 8) }

// Minor returns the minor part of the version
func (v Version) Minor() uint8 { return uint8(v) }

// String converts Version to string (eg "1.1")
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// Code is the 16-bit word following the version: an operation code
// in a request, a status code in a response. Which one it is depends
// on the direction of the message, not on the bits, so Message keeps
// the raw value and the caller converts.
type Code uint16

// Op converts Code to an operation code
func (code Code) Op() Op { return Op(code) }

// Status converts Code to a status code
func (code Code) Status() Status { return Status(code) }

// Message represents a single IPP message, request or response:
//
//	Version   protocol version
//	Code      Op on requests, Status on responses
//	RequestID request identifier, echoed by the responder
//	Groups    attribute groups, in order
//	Body      octets following end-of-attributes (the print document
//	          in a Print-Job request; usually empty on responses)
type Message struct {
	Version   Version
	Code      Code
	RequestID uint32
	Groups    Groups
	Body      []byte
}

// NewRequest creates a new request message
func NewRequest(v Version, op Op, id uint32) *Message {
	return &Message{Version: v, Code: Code(op), RequestID: id}
}

// NewResponse creates a new response message
func NewResponse(v Version, status Status, id uint32) *Message {
	return &Message{Version: v, Code: Code(status), RequestID: id}
}

// AddOperation adds attributes to the message's operation-attributes
// group, creating the group when the message has none yet
func (m *Message) AddOperation(attrs ...Attribute) {
	m.addTo(TagOperationGroup, attrs)
}

// AddJob adds attributes to the message's job-attributes group,
// creating the group when the message has none yet
func (m *Message) AddJob(attrs ...Attribute) {
	m.addTo(TagJobGroup, attrs)
}

// AddPrinter adds attributes to the message's printer-attributes
// group, creating the group when the message has none yet
func (m *Message) AddPrinter(attrs ...Attribute) {
	m.addTo(TagPrinterGroup, attrs)
}

// addTo adds attributes to the last group with the given tag,
// appending a new group when there is none
func (m *Message) addTo(tag Tag, attrs []Attribute) {
	g := -1
	for i := range m.Groups {
		if m.Groups[i].Tag == tag {
			g = i
		}
	}

	if g < 0 {
		m.Groups.Add(Group{Tag: tag})
		g = len(m.Groups) - 1
	}

	for _, attr := range attrs {
		m.Groups[g].Add(attr)
	}
}

// Get returns the named attribute from the first group with the
// given tag
func (m *Message) Get(tag Tag, name string) (Attribute, bool) {
	for i := range m.Groups {
		if m.Groups[i].Tag == tag {
			return m.Groups[i].Get(name)
		}
	}

	return Attribute{}, false
}

// canonicalGroups returns the message groups in encoding order:
// operation-attributes groups first, then the remaining groups in
// the order they were added.
func (m *Message) canonicalGroups() []Group {
	ordered := make([]Group, 0, len(m.Groups))

	for i := range m.Groups {
		if m.Groups[i].Tag == TagOperationGroup {
			ordered = append(ordered, m.Groups[i])
		}
	}

	for i := range m.Groups {
		if m.Groups[i].Tag != TagOperationGroup {
			ordered = append(ordered, m.Groups[i])
		}
	}

	return ordered
}
