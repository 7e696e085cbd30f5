// internal/domain/document/schema.go
package document

// FieldSpec describes one wire field of a record.
//
// Wire is the exact name used in the store. It is also the `json` tag of the
// matching Go struct field, so the two must be kept in sync.
type FieldSpec struct {
	Wire     string
	Kind     Kind
	Required bool
	// NonNegative applies to KindInt only.
	NonNegative bool
}

// Schema is the explicit wire layout of a record type.
type Schema struct {
	Name   string
	Fields []FieldSpec
}

// TimestampFields lists the wire names holding timestamps.
func (s Schema) TimestampFields() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Kind == KindTimestamp {
			out = append(out, f.Wire)
		}
	}
	return out
}
