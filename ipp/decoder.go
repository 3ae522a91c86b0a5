/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Message decoder
 */

package ipp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Decode reads and parses a message from the reader in a single
// forward pass. Parsing is all or nothing: on error the receiver is
// left untouched and no partially decoded message exists anywhere.
//
// Structural faults map to the error kinds declared in this package:
// a header shorter than 8 bytes is ErrMalformedHeader, a delimiter
// outside the known group tags is ErrUnknownGroupTag, input ending
// before a declared length is ErrTruncated, everything else
// structurally wrong is ErrMalformedValue. Unknown value tags are
// not faults; their octets are preserved verbatim as Binary values.
func (m *Message) Decode(r io.Reader) error {
	dec := messageDecoder{in: r}

	var msg Message
	if err := dec.decode(&msg); err != nil {
		return err
	}

	*m = msg
	return nil
}

// DecodeBytes parses a message from a byte slice
func (m *Message) DecodeBytes(data []byte) error {
	return m.Decode(bytes.NewReader(data))
}

// messageDecoder is the decoding state: the input stream and the
// count of bytes consumed so far, reported in errors.
type messageDecoder struct {
	in  io.Reader
	off int
}

// collFrame is one level of collection nesting under construction.
// attrName is the group-level name the finished collection attaches
// to; it is empty for nested collections and for collections that
// continue a multi-valued attribute.
type collFrame struct {
	attrName string
	members  Collection
}

func (dec *messageDecoder) decode(msg *Message) error {
	var header [8]byte
	if _, err := io.ReadFull(dec.in, header[:]); err != nil {
		return fmt.Errorf("%w: want 8 bytes", ErrMalformedHeader)
	}
	dec.off = 8

	msg.Version = Version(binary.BigEndian.Uint16(header[0:2]))
	msg.Code = Code(binary.BigEndian.Uint16(header[2:4]))
	msg.RequestID = binary.BigEndian.Uint32(header[4:8])

	// The group section. curGroup indexes the group being filled,
	// lastAttr the attribute additional values are routed to, and
	// stack the open collections, innermost last.
	curGroup := -1
	lastAttr := -1
	var stack []collFrame

	for {
		tag, err := dec.decodeTag()
		if err != nil {
			return err
		}

		if tag.IsDelimiter() {
			if len(stack) != 0 {
				return fmt.Errorf("%w: unterminated collection at 0x%x",
					ErrMalformedValue, dec.off)
			}

			if tag == TagEnd {
				break
			}

			if !tag.IsGroup() {
				return fmt.Errorf("%w: %s at 0x%x",
					ErrUnknownGroupTag, tag, dec.off)
			}

			msg.Groups.Add(Group{Tag: tag})
			curGroup = len(msg.Groups) - 1
			lastAttr = -1
			continue
		}

		if curGroup < 0 {
			return fmt.Errorf("%w: value tag %s before any group at 0x%x",
				ErrMalformedValue, tag, dec.off)
		}

		name, err := dec.decodeString()
		if err != nil {
			return err
		}

		data, err := dec.decodeOctets()
		if err != nil {
			return err
		}

		switch {
		case tag == TagMemberName:
			if len(stack) == 0 {
				return fmt.Errorf("%w: %s outside collection at 0x%x",
					ErrMalformedValue, tag, dec.off)
			}
			if name != "" {
				return fmt.Errorf("%w: %s with non-empty attribute name at 0x%x",
					ErrMalformedValue, tag, dec.off)
			}

			frame := &stack[len(stack)-1]
			frame.members.Add(Attribute{Name: string(data)})

		case tag == TagEndCollection:
			if len(stack) == 0 {
				return fmt.Errorf("%w: %s outside collection at 0x%x",
					ErrMalformedValue, tag, dec.off)
			}

			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			lastAttr, err = dec.attach(msg, curGroup, lastAttr, stack,
				frame.attrName, TagBeginCollection, Collection(frame.members))
			if err != nil {
				return err
			}

		case tag == TagBeginCollection:
			if len(stack) != 0 && name != "" {
				return fmt.Errorf("%w: named attribute inside collection at 0x%x",
					ErrMalformedValue, dec.off)
			}
			if len(stack) == 0 && name == "" && lastAttr < 0 {
				return fmt.Errorf("%w: additional value without preceding attribute at 0x%x",
					ErrMalformedValue, dec.off)
			}

			// The begCollection octets carry no information
			// and are dropped; members follow as attributes.
			stack = append(stack, collFrame{attrName: name})

		default:
			value, err := decodeValue(tag, data)
			if err != nil {
				if name != "" {
					return fmt.Errorf("%q: %w at 0x%x", name, err, dec.off)
				}
				return fmt.Errorf("%w at 0x%x", err, dec.off)
			}

			lastAttr, err = dec.attach(msg, curGroup, lastAttr, stack,
				name, tag, value)
			if err != nil {
				return err
			}
		}
	}

	body, err := io.ReadAll(dec.in)
	if err != nil {
		return fmt.Errorf("%w at 0x%x", ErrTruncated, dec.off)
	}
	if len(body) != 0 {
		msg.Body = body
	}

	return nil
}

// attach routes a decoded value to its home: the current member of
// the innermost open collection, a fresh group attribute when it
// arrived under a name, or the latest attribute when the name was
// empty (an additional value). Returns the updated lastAttr index.
func (dec *messageDecoder) attach(msg *Message, curGroup, lastAttr int,
	stack []collFrame, name string, tag Tag, value Value) (int, error) {

	if len(stack) != 0 {
		if name != "" {
			return 0, fmt.Errorf("%w: named attribute inside collection at 0x%x",
				ErrMalformedValue, dec.off)
		}

		frame := &stack[len(stack)-1]
		if len(frame.members) == 0 {
			return 0, fmt.Errorf("%w: member value without memberAttrName at 0x%x",
				ErrMalformedValue, dec.off)
		}

		frame.members[len(frame.members)-1].Values.Add(tag, value)
		return lastAttr, nil
	}

	group := &msg.Groups[curGroup]

	if name != "" {
		attr := Attribute{Name: name}
		attr.Values.Add(tag, value)
		return group.merge(attr), nil
	}

	if lastAttr < 0 {
		return 0, fmt.Errorf("%w: additional value without preceding attribute at 0x%x",
			ErrMalformedValue, dec.off)
	}

	group.Attrs[lastAttr].Values.Add(tag, value)
	return lastAttr, nil
}

// decodeTag reads a single tag byte
func (dec *messageDecoder) decodeTag() (Tag, error) {
	var buf [1]byte
	if err := dec.read(buf[:]); err != nil {
		return 0, err
	}

	return Tag(buf[0]), nil
}

// decodeString reads a 16-bit length and that many octets as a string
func (dec *messageDecoder) decodeString() (string, error) {
	data, err := dec.decodeOctets()
	return string(data), err
}

// decodeOctets reads a 16-bit length and that many octets. The
// returned slice is freshly allocated, so values built on it do not
// alias the caller's input buffer.
func (dec *messageDecoder) decodeOctets() ([]byte, error) {
	var lbuf [2]byte
	if err := dec.read(lbuf[:]); err != nil {
		return nil, err
	}

	n := int(binary.BigEndian.Uint16(lbuf[:]))
	if n == 0 {
		return []byte{}, nil
	}

	data := make([]byte, n)
	if err := dec.read(data); err != nil {
		return nil, err
	}

	return data, nil
}

// read fills the buffer or fails with ErrTruncated
func (dec *messageDecoder) read(data []byte) error {
	n, err := io.ReadFull(dec.in, data)
	dec.off += n

	if err != nil {
		return fmt.Errorf("%w at 0x%x", ErrTruncated, dec.off)
	}

	return nil
}
