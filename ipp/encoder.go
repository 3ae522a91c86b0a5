/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Message encoder
 */

package ipp

import (
	"bytes"
	"fmt"
	"io"
)

// Encode writes the message in its wire form: the 8-byte header,
// attribute groups in canonical order (operation attributes first),
// the end-of-attributes tag and finally the body, if any.
//
// Multi-valued attributes are encoded per the 1setOf convention: the
// name goes out with the first value, every further value carries a
// zero-length name.
func (m *Message) Encode(w io.Writer) error {
	enc := messageEncoder{out: w}

	err := enc.encodeU16(uint16(m.Version))
	if err == nil {
		err = enc.encodeU16(uint16(m.Code))
	}
	if err == nil {
		err = enc.encodeU32(m.RequestID)
	}
	if err != nil {
		return err
	}

	for _, g := range m.canonicalGroups() {
		if !g.Tag.IsGroup() {
			return fmt.Errorf("%w: %s", ErrUnknownGroupTag, g.Tag)
		}

		if err = enc.encodeU8(byte(g.Tag)); err != nil {
			return err
		}

		for i := range g.Attrs {
			if err = enc.encodeAttr(g.Attrs[i]); err != nil {
				return err
			}
		}
	}

	if err = enc.encodeU8(byte(TagEnd)); err != nil {
		return err
	}

	if len(m.Body) != 0 {
		if err = enc.write(m.Body); err != nil {
			return err
		}
	}

	return nil
}

// EncodeBytes encodes the message into a byte slice
func (m *Message) EncodeBytes() ([]byte, error) {
	var buf bytes.Buffer

	if err := m.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// messageEncoder is the encoding state. It only wraps the output
// writer; unlike decoding there is nothing to track between calls.
type messageEncoder struct {
	out io.Writer
}

// encodeAttr encodes one attribute with all its values
func (enc *messageEncoder) encodeAttr(attr Attribute) error {
	if len(attr.Values) == 0 {
		return fmt.Errorf("%w: attribute %q has no values",
			ErrMalformedValue, attr.Name)
	}

	if attr.Name == "" {
		return fmt.Errorf("%w: attribute with empty name", ErrMalformedValue)
	}

	name := attr.Name
	for _, v := range attr.Values {
		var err error
		if collection, ok := v.V.(Collection); ok {
			err = enc.encodeCollection(name, collection)
		} else {
			err = enc.encodeValue(v.T, name, v.V)
		}

		if err != nil {
			return fmt.Errorf("%q: %w", attr.Name, err)
		}

		name = ""
	}

	return nil
}

// encodeCollection encodes a collection value: begCollection under
// the attribute's name, one memberAttrName per member followed by
// the member's values with zero-length names, then endCollection.
// Nested collections recurse.
func (enc *messageEncoder) encodeCollection(name string, collection Collection) error {
	err := enc.encodeValue(TagBeginCollection, name, Void{})

	for i := 0; err == nil && i < len(collection); i++ {
		member := collection[i]

		if len(member.Values) == 0 {
			return fmt.Errorf("%w: member %q has no values",
				ErrMalformedValue, member.Name)
		}

		err = enc.encodeValue(TagMemberName, "", String(member.Name))

		for _, v := range member.Values {
			if err != nil {
				break
			}

			if nested, ok := v.V.(Collection); ok {
				err = enc.encodeCollection("", nested)
			} else {
				err = enc.encodeValue(v.T, "", v.V)
			}
		}
	}

	if err == nil {
		err = enc.encodeValue(TagEndCollection, "", Void{})
	}

	return err
}

// encodeValue encodes a single tag/name/value triple
func (enc *messageEncoder) encodeValue(tag Tag, name string, v Value) error {
	data, err := v.encode()
	if err != nil {
		return err
	}

	if len(name) > 65535 {
		return fmt.Errorf("%w: name is %d octets", ErrValueTooLarge, len(name))
	}

	if len(data) > 65535 {
		return fmt.Errorf("%w: value is %d octets", ErrValueTooLarge, len(data))
	}

	err = enc.encodeU8(byte(tag))
	if err == nil {
		err = enc.encodeU16(uint16(len(name)))
	}
	if err == nil {
		err = enc.write([]byte(name))
	}
	if err == nil {
		err = enc.encodeU16(uint16(len(data)))
	}
	if err == nil {
		err = enc.write(data)
	}

	return err
}

func (enc *messageEncoder) encodeU8(v byte) error {
	return enc.write([]byte{v})
}

func (enc *messageEncoder) encodeU16(v uint16) error {
	return enc.write([]byte{byte(v >> 8), byte(v)})
}

func (enc *messageEncoder) encodeU32(v uint32) error {
	return enc.write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func (enc *messageEncoder) write(data []byte) error {
	for len(data) > 0 {
		n, err := enc.out.Write(data)
		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}
