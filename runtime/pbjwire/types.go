// Package pbjwire implements the protobuf 3 wire-format primitives: varint,
// zigzag, fixed32/64, tag, and UTF-8 string codecs, plus the size-function
// family mirroring every encoder (spec §4.1). Functions operate over the
// runtime/pbjio sequential-data abstractions rather than raw []byte, so the
// same codec serves both buffered and streaming callers.
//
// Grounded on protobuf3/decode.go and protobuf3/encode.go (teacher), whose
// concrete *Buffer receivers are generalized here to the
// ReadableSequentialData / WritableSequentialData interfaces spec §4.2
// requires.
package pbjwire

// WireType is the low 3 bits of a protobuf tag (spec glossary).
type WireType uint8

const (
	WireVarint          WireType = 0
	WireFixed64         WireType = 1
	WireBytes           WireType = 2
	WireStartGroupLegacy WireType = 3 // rejected: proto2 groups unsupported
	WireEndGroupLegacy   WireType = 4 // rejected: proto2 groups unsupported
	WireFixed32          WireType = 5
)

// IsSupported reports whether w is one of the four wire types PBJ
// understands (0, 1, 2, 5); 3 and 4 are legacy groups and are always
// rejected (spec §4.1 readTag, skipField).
func (w WireType) IsSupported() bool {
	switch w {
	case WireVarint, WireFixed64, WireBytes, WireFixed32:
		return true
	default:
		return false
	}
}

// FieldType is the closed enumeration of protobuf scalar and structural
// field kinds (spec §3).
type FieldType int

const (
	TypeDouble FieldType = iota
	TypeFloat
	TypeInt32
	TypeInt64
	TypeUint32
	TypeUint64
	TypeSint32
	TypeSint64
	TypeFixed32
	TypeFixed64
	TypeSfixed32
	TypeSfixed64
	TypeBool
	TypeString
	TypeBytes
	TypeEnum
	TypeMessage
)

var fieldTypeNames = [...]string{
	"DOUBLE", "FLOAT", "INT32", "INT64", "UINT32", "UINT64", "SINT32", "SINT64",
	"FIXED32", "FIXED64", "SFIXED32", "SFIXED64", "BOOL", "STRING", "BYTES",
	"ENUM", "MESSAGE",
}

func (t FieldType) String() string {
	if t < 0 || int(t) >= len(fieldTypeNames) {
		return "UNKNOWN"
	}
	return fieldTypeNames[t]
}

// WireType returns the canonical wire type used to encode values of t
// (spec §3).
func (t FieldType) WireType() WireType {
	switch t {
	case TypeInt32, TypeInt64, TypeUint32, TypeUint64, TypeSint32, TypeSint64, TypeBool, TypeEnum:
		return WireVarint
	case TypeFixed64, TypeSfixed64, TypeDouble:
		return WireFixed64
	case TypeFixed32, TypeSfixed32, TypeFloat:
		return WireFixed32
	case TypeString, TypeBytes, TypeMessage:
		return WireBytes
	default:
		return WireVarint
	}
}

// IsPackable reports whether repeated fields of t are packed by default on
// write and accepted in either packed or unpacked form on read (spec §4.1
// "Repeated encoding").
func (t FieldType) IsPackable() bool {
	switch t {
	case TypeString, TypeBytes, TypeMessage:
		return false
	default:
		return true
	}
}

// IsNumeric reports whether t is one of the numeric scalar kinds (excludes
// BOOL, STRING, BYTES, ENUM, MESSAGE).
func (t FieldType) IsNumeric() bool {
	switch t {
	case TypeDouble, TypeFloat, TypeInt32, TypeInt64, TypeUint32, TypeUint64,
		TypeSint32, TypeSint64, TypeFixed32, TypeFixed64, TypeSfixed32, TypeSfixed64:
		return true
	default:
		return false
	}
}
