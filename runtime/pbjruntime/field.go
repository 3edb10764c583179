package pbjruntime

import "github.com/pbj-lang/pbj/runtime/pbjwire"

// FieldDescriptor is the immutable record the schema emitter populates one
// of per declared field (spec §3 "FieldDefinition", §4.6 "Schema
// emitter"). It is emitted into generated code as a package-level constant
// table, matching how the teacher's generated `_pb.go` files emit static
// protoimpl.TypeBuilder tables rather than building descriptors at init
// time via reflection.
type FieldDescriptor struct {
	Name        string
	Type        pbjwire.FieldType
	Repeated    bool
	Optional    bool
	OneOf       string // name of the owning oneof, or "" if not part of one
	FieldNumber int
}

// FieldTable is the generated schema emitter's lookup structure: field
// number to FieldDescriptor (spec §4.6 "Schema emitter": "a constant table
// mapping field number → FieldDefinition... plus a getField lookup").
type FieldTable map[int]FieldDescriptor

// Get implements the getField(fieldNumber) -> FieldDefinition | absent
// contract.
func (t FieldTable) Get(fieldNumber int) (FieldDescriptor, bool) {
	fd, ok := t[fieldNumber]
	return fd, ok
}
