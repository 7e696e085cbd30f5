// internal/domain/document/encode.go
package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Encode renders a typed record as its portable wire map, keeping only the
// fields named by schema. Optional fields that are absent are omitted.
func Encode(record any, schema Schema) (map[string]any, error) {
	b, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("document: encode %s: %w", schema.Name, err)
	}
	var all map[string]any
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("document: encode %s: %w", schema.Name, err)
	}
	portable, err := Portable(all)
	if err != nil {
		return nil, fmt.Errorf("document: encode %s: %w", schema.Name, err)
	}

	out := make(map[string]any, len(schema.Fields))
	for _, spec := range schema.Fields {
		v, ok := portable[spec.Wire]
		if !ok || v == nil {
			continue
		}
		out[spec.Wire] = v
	}
	return out, nil
}

// FieldsOf turns a typed record into a Replace-mode write, one field per
// present schema field, with values converted to their schema kind.
func FieldsOf(record any, schema Schema) (Fields, error) {
	wire, err := Encode(record, schema)
	if err != nil {
		return nil, err
	}
	if err := Validate(wire, schema); err != nil {
		return nil, err
	}

	var fs Fields
	for _, spec := range schema.Fields {
		raw, ok := wire[spec.Wire]
		if !ok {
			continue
		}
		v, err := valueOf(raw, spec)
		if err != nil {
			return nil, fmt.Errorf("document: %s.%s: %w", schema.Name, spec.Wire, err)
		}
		fs = fs.Set(spec.Wire, v)
	}
	return fs, nil
}

// valueOf expects input already accepted by Validate.
func valueOf(raw any, spec FieldSpec) (Value, error) {
	switch spec.Kind {
	case KindString:
		return String(raw.(string)), nil
	case KindInt:
		n := raw.(json.Number)
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return Value{}, ferr
			}
			i = int64(f)
		}
		return Int(i), nil
	case KindFloat:
		f, err := raw.(json.Number).Float64()
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case KindBool:
		return Bool(raw.(bool)), nil
	case KindStringList:
		items := raw.([]any)
		list := make([]string, 0, len(items))
		for _, it := range items {
			list = append(list, it.(string))
		}
		return StringList(list...), nil
	case KindTimestamp:
		t, err := time.Parse(TimestampLayout, raw.(string))
		if err != nil {
			return Value{}, err
		}
		return Timestamp(t), nil
	}
	return Value{}, fmt.Errorf("unsupported kind %s", spec.Kind)
}
