/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Attribute values
 */

package ipp

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Type classifies the binary layout shared by a set of value tags.
// Each Type has exactly one decoding rule; the tag read from the wire
// selects the Type, the Type selects the rule.
type Type int

const (
	TypeInvalid      Type = iota // Invalid or delimiter tag
	TypeVoid                     // Out-of-band value, eg no-value
	TypeInteger                  // 32-bit signed integer
	TypeBoolean                  // Boolean
	TypeString                   // Character string
	TypeDateTime                 // RFC 2579 DateAndTime
	TypeResolution               // Resolution
	TypeRange                    // Range of integers
	TypeTextWithLang             // Text with language
	TypeBinary                   // Opaque octets
	TypeCollection               // Collection of attributes
)

var typeNames = map[Type]string{
	TypeInvalid:      "Invalid",
	TypeVoid:         "Void",
	TypeInteger:      "Integer",
	TypeBoolean:      "Boolean",
	TypeString:       "String",
	TypeDateTime:     "DateTime",
	TypeResolution:   "Resolution",
	TypeRange:        "Range",
	TypeTextWithLang: "TextWithLang",
	TypeBinary:       "Binary",
	TypeCollection:   "Collection",
}

// String returns the type name, for diagnostics
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Value is a single attribute value. Concrete implementations form
// the closed set of IPP value representations; the message codec
// dispatches on the wire tag, never on the dynamic type of a Value.
type Value interface {
	String() string
	Type() Type
	encode() ([]byte, error)
	decode(data []byte) (Value, error)
}

// Void represents a value of an out-of-band tag (no-value, unknown,
// delete-attribute and so on). It carries no octets.
type Void struct{}

// String converts Void to string
func (Void) String() string { return "" }

// Type returns the Value type
func (Void) Type() Type { return TypeVoid }

func (v Void) encode() ([]byte, error) {
	return []byte{}, nil
}

func (Void) decode([]byte) (Value, error) {
	return Void{}, nil
}

// Integer represents an integer or enum value
type Integer int32

// String converts Integer to string
func (v Integer) String() string { return fmt.Sprintf("%d", int32(v)) }

// Type returns the Value type
func (Integer) Type() Type { return TypeInteger }

func (v Integer) encode() ([]byte, error) {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}, nil
}

func (Integer) decode(data []byte) (Value, error) {
	if len(data) != 4 {
		return nil, fmt.Errorf("%w: integer must be 4 bytes, got %d",
			ErrMalformedValue, len(data))
	}

	return Integer(binary.BigEndian.Uint32(data)), nil
}

// Boolean represents a boolean value
type Boolean bool

// String converts Boolean to string
func (v Boolean) String() string { return fmt.Sprintf("%t", bool(v)) }

// Type returns the Value type
func (Boolean) Type() Type { return TypeBoolean }

func (v Boolean) encode() ([]byte, error) {
	if v {
		return []byte{1}, nil
	}

	return []byte{0}, nil
}

func (Boolean) decode(data []byte) (Value, error) {
	if len(data) != 1 {
		return nil, fmt.Errorf("%w: boolean must be 1 byte, got %d",
			ErrMalformedValue, len(data))
	}

	return Boolean(data[0] != 0), nil
}

// String represents a value of any character-string tag (keyword,
// uri, charset, text and so on)
type String string

// String converts String value to string
func (v String) String() string { return string(v) }

// Type returns the Value type
func (String) Type() Type { return TypeString }

func (v String) encode() ([]byte, error) {
	return []byte(v), nil
}

func (String) decode(data []byte) (Value, error) {
	return String(data), nil
}

// Time represents a dateTime value. The wire layout is the 11-byte
// RFC 2579 DateAndTime: year, month, day, hour, minute, second,
// deciseconds, then the UTC offset as direction byte ('+' or '-'),
// hours and minutes.
type Time struct{ time.Time }

// String converts Time to string
func (v Time) String() string { return v.Time.Format(time.RFC3339) }

// Type returns the Value type
func (Time) Type() Type { return TypeDateTime }

func (v Time) encode() ([]byte, error) {
	year := v.Year()
	_, off := v.Zone()

	direction := byte('+')
	if off < 0 {
		direction = '-'
		off = -off
	}
	off /= 60

	return []byte{
		byte(year >> 8), byte(year),
		byte(v.Month()),
		byte(v.Day()),
		byte(v.Hour()),
		byte(v.Minute()),
		byte(v.Second()),
		byte(v.Nanosecond() / 100000000),
		direction,
		byte(off / 60),
		byte(off % 60),
	}, nil
}

func (Time) decode(data []byte) (Value, error) {
	if len(data) != 11 {
		return nil, fmt.Errorf("%w: dateTime must be 11 bytes, got %d",
			ErrMalformedValue, len(data))
	}

	switch data[8] {
	case '+', '-':
	default:
		return nil, fmt.Errorf("%w: dateTime offset direction must be '+' or '-'",
			ErrMalformedValue)
	}

	off := (int(data[9])*60 + int(data[10])) * 60
	if data[8] == '-' {
		off = -off
	}

	t := time.Date(
		int(binary.BigEndian.Uint16(data[0:2])),
		time.Month(data[2]),
		int(data[3]),
		int(data[4]),
		int(data[5]),
		int(data[6]),
		int(data[7])*100000000,
		time.FixedZone("", off),
	)

	return Time{t}, nil
}

// Units represents resolution units
type Units uint8

const (
	UnitsDpi  Units = 3 // Dots per inch
	UnitsDpcm Units = 4 // Dots per centimeter
)

// String converts Units to string
func (u Units) String() string {
	switch u {
	case UnitsDpi:
		return "dpi"
	case UnitsDpcm:
		return "dpcm"
	}

	return fmt.Sprintf("unknown(0x%2.2x)", uint8(u))
}

// Resolution represents a resolution value: cross-feed and feed
// resolutions plus a unit
type Resolution struct {
	Xres, Yres int   // Resolution in both dimensions
	Units      Units // Resolution units
}

// String converts Resolution to string
func (v Resolution) String() string {
	return fmt.Sprintf("%dx%d%s", v.Xres, v.Yres, v.Units)
}

// Type returns the Value type
func (Resolution) Type() Type { return TypeResolution }

func (v Resolution) encode() ([]byte, error) {
	x, y := v.Xres, v.Yres

	return []byte{
		byte(x >> 24), byte(x >> 16), byte(x >> 8), byte(x),
		byte(y >> 24), byte(y >> 16), byte(y >> 8), byte(y),
		byte(v.Units),
	}, nil
}

func (Resolution) decode(data []byte) (Value, error) {
	if len(data) != 9 {
		return nil, fmt.Errorf("%w: resolution must be 9 bytes, got %d",
			ErrMalformedValue, len(data))
	}

	return Resolution{
		Xres:  int(int32(binary.BigEndian.Uint32(data[0:4]))),
		Yres:  int(int32(binary.BigEndian.Uint32(data[4:8]))),
		Units: Units(data[8]),
	}, nil
}

// Range represents a rangeOfInteger value. The protocol does not
// require Lower <= Upper, so decoding preserves whatever the peer
// sent; validation, if wanted, is the caller's business.
type Range struct {
	Lower, Upper int // Range boundaries, inclusive
}

// String converts Range to string
func (v Range) String() string {
	return fmt.Sprintf("%d-%d", v.Lower, v.Upper)
}

// Type returns the Value type
func (Range) Type() Type { return TypeRange }

func (v Range) encode() ([]byte, error) {
	l, u := v.Lower, v.Upper

	return []byte{
		byte(l >> 24), byte(l >> 16), byte(l >> 8), byte(l),
		byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u),
	}, nil
}

func (Range) decode(data []byte) (Value, error) {
	if len(data) != 8 {
		return nil, fmt.Errorf("%w: rangeOfInteger must be 8 bytes, got %d",
			ErrMalformedValue, len(data))
	}

	return Range{
		Lower: int(int32(binary.BigEndian.Uint32(data[0:4]))),
		Upper: int(int32(binary.BigEndian.Uint32(data[4:8]))),
	}, nil
}

// TextWithLang represents a textWithLanguage or nameWithLanguage
// value: a string paired with its natural language
type TextWithLang struct {
	Lang, Text string
}

// String converts TextWithLang to string
func (v TextWithLang) String() string { return v.Text + " [" + v.Lang + "]" }

// Type returns the Value type
func (TextWithLang) Type() Type { return TypeTextWithLang }

func (v TextWithLang) encode() ([]byte, error) {
	if len(v.Lang) > 65535 {
		return nil, fmt.Errorf("%w: language length %d",
			ErrValueTooLarge, len(v.Lang))
	}

	if len(v.Text) > 65535 {
		return nil, fmt.Errorf("%w: text length %d",
			ErrValueTooLarge, len(v.Text))
	}

	data := make([]byte, 0, 4+len(v.Lang)+len(v.Text))
	data = append(data, byte(len(v.Lang)>>8), byte(len(v.Lang)))
	data = append(data, v.Lang...)
	data = append(data, byte(len(v.Text)>>8), byte(len(v.Text)))
	data = append(data, v.Text...)

	return data, nil
}

func (TextWithLang) decode(data []byte) (Value, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: truncated language length",
			ErrMalformedValue)
	}

	langLen := int(binary.BigEndian.Uint16(data[0:2]))
	data = data[2:]
	if len(data) < langLen {
		return nil, fmt.Errorf("%w: truncated language", ErrMalformedValue)
	}

	lang := string(data[:langLen])
	data = data[langLen:]

	if len(data) < 2 {
		return nil, fmt.Errorf("%w: truncated text length", ErrMalformedValue)
	}

	textLen := int(binary.BigEndian.Uint16(data[0:2]))
	data = data[2:]
	if len(data) != textLen {
		return nil, fmt.Errorf("%w: text length %d does not match remaining %d bytes",
			ErrMalformedValue, textLen, len(data))
	}

	return TextWithLang{Lang: lang, Text: string(data)}, nil
}

// Binary represents an octetString value and any value with a tag
// this implementation does not recognize. Decoding keeps the raw
// octets so re-encoding reproduces them exactly.
type Binary []byte

// String converts Binary value to string
func (v Binary) String() string { return fmt.Sprintf("%x", []byte(v)) }

// Type returns the Value type
func (Binary) Type() Type { return TypeBinary }

func (v Binary) encode() ([]byte, error) {
	return []byte(v), nil
}

func (Binary) decode(data []byte) (Value, error) {
	return Binary(data), nil
}

// Collection represents a collection value: attributes nested inside
// another attribute's value
type Collection Attributes

// Add appends an attribute to the collection
func (v *Collection) Add(attr Attribute) {
	*v = append(*v, attr)
}

// String converts Collection to string
func (v Collection) String() string {
	var buf strings.Builder
	buf.WriteByte('{')
	for i, attr := range v {
		if i != 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%s=%s", attr.Name, attr.Values)
	}
	buf.WriteByte('}')

	return buf.String()
}

// Type returns the Value type
func (Collection) Type() Type { return TypeCollection }

// Collections are built from member attributes by the message codec,
// not from a flat byte buffer; these methods exist to satisfy the
// Value interface. The begCollection value octets are empty.
func (Collection) encode() ([]byte, error) {
	return []byte{}, nil
}

func (Collection) decode([]byte) (Value, error) {
	return Collection{}, nil
}

// decodeValue decodes a single value of the given tag from its
// octets. Unknown tags decode as Binary.
func decodeValue(tag Tag, data []byte) (Value, error) {
	var proto Value

	switch tag.Type() {
	case TypeVoid:
		proto = Void{}
	case TypeInteger:
		proto = Integer(0)
	case TypeBoolean:
		proto = Boolean(false)
	case TypeString:
		proto = String("")
	case TypeDateTime:
		proto = Time{}
	case TypeResolution:
		proto = Resolution{}
	case TypeRange:
		proto = Range{}
	case TypeTextWithLang:
		proto = TextWithLang{}
	case TypeCollection:
		proto = Collection{}
	default:
		proto = Binary(nil)
	}

	return proto.decode(data)
}
