// Package pbjruntime holds the small pieces of runtime support that every
// generated message shares: the OneOf sum-type shape, the FieldDescriptor
// record the schema emitter populates, and the total-order comparator
// support for pbj.comparable messages (spec §3, §4.6).
//
// Grounded on cmd/protoc-gen-go/internal_gengo/oneof.go (teacher), whose
// pre-generics isXxx_Yyy wrapper-interface idiom is adapted here to an
// explicit generic tagged struct, since PBJ targets a modern Go toolchain.
package pbjruntime

// OneOfKind is the enumeration of which variant (if any) of a oneof is
// populated. UNSET is always ordinal 0; every other member's protobuf
// ordinal equals its variant's declared field number (spec §3).
type OneOfKind int32

// UnsetKind is the shared "no variant selected" ordinal, valid for every
// generated OneOfKind type since it is always 0 by construction.
const UnsetKind OneOfKind = 0

// OneOf is the immutable (kind, value) pair a oneof field decodes to.
// K is the message-specific OneOfKind enumeration; V is a value type wide
// enough to hold every variant's payload (generated code typically uses an
// `any`-erased container or a pre-generics interface union; this package
// provides the generic-friendly shape for the common case of a shared
// payload interface).
type OneOf[K ~int32, V any] struct {
	Kind  K
	Value V
}

// IsSet reports whether a variant other than UNSET (ordinal 0) is
// populated.
func (o OneOf[K, V]) IsSet() bool { return int32(o.Kind) != 0 }

// Unset constructs the canonical UNSET singleton for a given
// OneOfKind/value-type pair (spec §3: "A UNSET singleton constant is
// provided for each oneOf").
func Unset[K ~int32, V any]() OneOf[K, V] {
	return OneOf[K, V]{}
}
