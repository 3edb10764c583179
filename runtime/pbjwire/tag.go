package pbjwire

import (
	"github.com/pbj-lang/pbj/runtime/pbjerrors"
	"github.com/pbj-lang/pbj/runtime/pbjio"
)

// MakeTag packs a field number and wire type into the integer that
// WriteTag/ReadTag encode as a varint (spec glossary: "Tag").
func MakeTag(fieldNumber int, wireType WireType) uint64 {
	return uint64(fieldNumber)<<3 | uint64(wireType)
}

// ReadTag reads a tag varint and splits it into field number and wire
// type, rejecting fieldNumber == 0 and wireType > 5 (spec §4.1).
func ReadTag(in pbjio.ReadableSequentialData) (fieldNumber int, wireType WireType, err error) {
	v, err := ReadVarint(in)
	if err != nil {
		return 0, 0, err
	}
	fieldNumber = int(v >> 3)
	wireType = WireType(v & 0x7)
	if fieldNumber == 0 {
		return 0, 0, pbjerrors.NewMalformed("tag has field number 0")
	}
	if wireType > 5 {
		return 0, 0, pbjerrors.NewMalformed("tag has invalid wire type %d", wireType)
	}
	return fieldNumber, wireType, nil
}

// WriteTag emits (fieldNumber << 3) | wireType as a varint.
func WriteTag(out pbjio.WritableSequentialData, fieldNumber int, wireType WireType) error {
	return WriteVarint(out, MakeTag(fieldNumber, wireType))
}

// SizeOfTag mirrors WriteTag for the size-measurement path.
func SizeOfTag(fieldNumber int, wireType WireType) int {
	return SizeOfVarint64(MakeTag(fieldNumber, wireType))
}
