/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * IPP protocol tags
 */

package ipp

import (
	"fmt"
)

// Tag represents a single IPP tag. Tags below 0x10 are delimiters,
// separating attribute groups in a message; the remaining tags
// identify binary types of attribute values. Both kinds share one
// byte-sized space on the wire, so an attribute parser may encounter
// a delimiter where it expects a value tag: that is how the end of a
// group is detected.
type Tag int

const (
	// Delimiter tags
	TagOperationGroup   Tag = 0x01 // operation-attributes group
	TagJobGroup         Tag = 0x02 // job-attributes group
	TagEnd              Tag = 0x03 // end-of-attributes
	TagPrinterGroup     Tag = 0x04 // printer-attributes group
	TagUnsupportedGroup Tag = 0x05 // unsupported-attributes group

	// Out-of-band value tags
	TagUnsupportedValue Tag = 0x10 // unsupported value
	TagDefault          Tag = 0x11 // default value
	TagUnknown          Tag = 0x12 // unknown value
	TagNoValue          Tag = 0x13 // no-value
	TagNotSettable      Tag = 0x15 // not-settable
	TagDeleteAttr       Tag = 0x16 // delete-attribute
	TagAdminDefine      Tag = 0x17 // admin-define

	// Integer value tags
	TagInteger Tag = 0x21 // signed 32-bit integer
	TagBoolean Tag = 0x22 // boolean
	TagEnum    Tag = 0x23 // enumerated value

	// Octet-string value tags
	TagString          Tag = 0x30 // octetString with unspecified format
	TagDateTime        Tag = 0x31 // dateTime, RFC 2579 layout
	TagResolution      Tag = 0x32 // resolution
	TagRange           Tag = 0x33 // rangeOfInteger
	TagBeginCollection Tag = 0x34 // begCollection
	TagTextLang        Tag = 0x35 // textWithLanguage
	TagNameLang        Tag = 0x36 // nameWithLanguage
	TagEndCollection   Tag = 0x37 // endCollection

	// Character-string value tags
	TagText       Tag = 0x41 // textWithoutLanguage
	TagName       Tag = 0x42 // nameWithoutLanguage
	TagKeyword    Tag = 0x44 // keyword
	TagURI        Tag = 0x45 // uri
	TagURIScheme  Tag = 0x46 // uriScheme
	TagCharset    Tag = 0x47 // charset
	TagLanguage   Tag = 0x48 // naturalLanguage
	TagMimeType   Tag = 0x49 // mimeMediaType
	TagMemberName Tag = 0x4a // memberAttrName
)

// IsDelimiter reports whether the tag belongs to the delimiter space.
func (tag Tag) IsDelimiter() bool {
	return tag < 0x10
}

// IsGroup reports whether the tag opens an attribute group this
// implementation recognizes. Delimiters outside this set (and outside
// TagEnd) are a hard parse error: skipping them silently would lose
// whole groups of attributes.
func (tag Tag) IsGroup() bool {
	switch tag {
	case TagOperationGroup, TagJobGroup, TagPrinterGroup, TagUnsupportedGroup:
		return true
	}
	return false
}

// Type returns the value type a tag implies on the wire. Value tags
// not covered by the tables above decode as TypeBinary, so unknown
// attributes survive a decode/encode round trip unchanged.
func (tag Tag) Type() Type {
	if tag.IsDelimiter() {
		return TypeInvalid
	}

	switch tag {
	case TagInteger, TagEnum:
		return TypeInteger

	case TagBoolean:
		return TypeBoolean

	case TagUnsupportedValue, TagDefault, TagUnknown, TagNoValue,
		TagNotSettable, TagDeleteAttr, TagAdminDefine:
		return TypeVoid

	case TagText, TagName, TagKeyword, TagURI, TagURIScheme,
		TagCharset, TagLanguage, TagMimeType, TagMemberName:
		return TypeString

	case TagDateTime:
		return TypeDateTime

	case TagResolution:
		return TypeResolution

	case TagRange:
		return TypeRange

	case TagTextLang, TagNameLang:
		return TypeTextWithLang

	case TagBeginCollection:
		return TypeCollection

	default:
		return TypeBinary
	}
}

var tagNames = map[Tag]string{
	TagOperationGroup:   "operation-attributes-tag",
	TagJobGroup:         "job-attributes-tag",
	TagEnd:              "end-of-attributes-tag",
	TagPrinterGroup:     "printer-attributes-tag",
	TagUnsupportedGroup: "unsupported-attributes-tag",
	TagUnsupportedValue: "unsupported",
	TagDefault:          "default",
	TagUnknown:          "unknown",
	TagNoValue:          "no-value",
	TagNotSettable:      "not-settable",
	TagDeleteAttr:       "delete-attribute",
	TagAdminDefine:      "admin-define",
	TagInteger:          "integer",
	TagBoolean:          "boolean",
	TagEnum:             "enum",
	TagString:           "octetString",
	TagDateTime:         "dateTime",
	TagResolution:       "resolution",
	TagRange:            "rangeOfInteger",
	TagBeginCollection:  "collection",
	TagTextLang:         "textWithLanguage",
	TagNameLang:         "nameWithLanguage",
	TagEndCollection:    "endCollection",
	TagText:             "textWithoutLanguage",
	TagName:             "nameWithoutLanguage",
	TagKeyword:          "keyword",
	TagURI:              "uri",
	TagURIScheme:        "uriScheme",
	TagCharset:          "charset",
	TagLanguage:         "naturalLanguage",
	TagMimeType:         "mimeMediaType",
	TagMemberName:       "memberAttrName",
}

// String returns the tag name, as defined by RFC 8010
func (tag Tag) String() string {
	if name, ok := tagNames[tag]; ok {
		return name
	}

	return fmt.Sprintf("0x%2.2x", int(tag))
}
