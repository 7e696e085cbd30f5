// internal/domain/document/value.go
package document

import (
	"fmt"
	"time"
)

// Kind is the shape of a single document field on the wire.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindStringList
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	case KindStringList:
		return "list<string>"
	case KindTimestamp:
		return "timestamp"
	default:
		return "invalid"
	}
}

// Value is a tagged union of the scalar shapes a document field can hold.
// The zero Value is invalid and is rejected by Fields.Validate.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	list []string
	t    time.Time
}

func String(s string) Value { return Value{kind: KindString, s: s} }

func Int(i int64) Value { return Value{kind: KindInt, i: i} }

func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// StringList copies vs so later mutation by the caller does not leak in.
func StringList(vs ...string) Value {
	cp := make([]string, len(vs))
	copy(cp, vs)
	return Value{kind: KindStringList, list: cp}
}

func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, t: t.UTC()} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsValid() bool { return v.kind != KindInvalid }

func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsTimestamp() (time.Time, bool) { return v.t, v.kind == KindTimestamp }

func (v Value) AsStringList() ([]string, bool) {
	if v.kind != KindStringList {
		return nil, false
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp, true
}

// Native returns the Go value a document store persists for v:
// string, int64, float64, bool, []string or time.Time.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindStringList:
		cp := make([]string, len(v.list))
		copy(cp, v.list)
		return cp
	case KindTimestamp:
		return v.t
	default:
		return nil
	}
}

func (v Value) String() string {
	if v.kind == KindInvalid {
		return "<invalid>"
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.Native())
}
