// internal/domain/document/field.go
package document

import (
	"fmt"
	"strings"
)

// Mode says how a write combines a field with what is already stored.
type Mode int

const (
	// Replace overwrites the stored value.
	Replace Mode = iota
	// AppendSet unions a string list into the stored list, skipping values
	// already present and keeping existing order.
	AppendSet
)

func (m Mode) String() string {
	if m == AppendSet {
		return "append-set"
	}
	return "replace"
}

// Field is one entry of a partial write.
type Field struct {
	Name  string
	Value Value
	Mode  Mode
}

// Fields is an ordered partial document used by write operations.
type Fields []Field

// Set appends a Replace field.
func (fs Fields) Set(name string, v Value) Fields {
	return append(fs, Field{Name: name, Value: v, Mode: Replace})
}

// Append appends an AppendSet field for the given values.
func (fs Fields) Append(name string, values ...string) Fields {
	return append(fs, Field{Name: name, Value: StringList(values...), Mode: AppendSet})
}

// Names returns the field names in write order.
func (fs Fields) Names() []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Name)
	}
	return out
}

// Validate rejects empty or duplicated names, invalid values and AppendSet on
// anything but a string list.
func (fs Fields) Validate() error {
	seen := make(map[string]struct{}, len(fs))
	for _, f := range fs {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalidFields)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidFields, name)
		}
		seen[name] = struct{}{}
		if !f.Value.IsValid() {
			return fmt.Errorf("%w: field %q has no value", ErrInvalidFields, name)
		}
		if f.Mode == AppendSet && f.Value.Kind() != KindStringList {
			return fmt.Errorf("%w: field %q: append-set needs %s, got %s",
				ErrInvalidFields, name, KindStringList, f.Value.Kind())
		}
	}
	return nil
}

// UnionStrings appends every value of add that is not yet in base.
// base is kept as stored and duplicates inside add are collapsed.
func UnionStrings(base []string, add ...string) []string {
	out := make([]string, 0, len(base)+len(add))
	seen := make(map[string]struct{}, len(base)+len(add))
	for _, s := range base {
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range add {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
