// internal/domain/document/errors.go
package document

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels. Typed errors below match them through errors.Is.
var (
	ErrNotFound      = errors.New("document: not found")
	ErrTransport     = errors.New("document: transport failure")
	ErrDecode        = errors.New("document: decode failure")
	ErrInvalidFields = errors.New("document: invalid fields")
	ErrInvalidID     = errors.New("document: invalid id")
)

// NotFoundError reports that no document exists at collection/id.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %s/%s not found", e.Collection, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// TransportError reports that the backend could not be reached or failed,
// including deadline expiry and cancellation.
type TransportError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("document: ")
	b.WriteString(e.Op)
	if e.Collection != "" {
		b.WriteString(" ")
		b.WriteString(e.Collection)
		if e.ID != "" {
			b.WriteString("/")
			b.WriteString(e.ID)
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// DecodeError reports the first schema violation found in a document.
// Collection and ID are filled in by the fetch layer when known.
type DecodeError struct {
	Collection string
	ID         string
	Schema     string
	Field      string
	Expected   string
	Actual     string
	Err        error
}

func (e *DecodeError) Error() string {
	loc := e.Schema
	if e.Collection != "" {
		loc = e.Collection + "/" + e.ID
	}
	msg := fmt.Sprintf("decode %s: field %q: expected %s, got %s", loc, e.Field, e.Expected, e.Actual)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// WithLocation returns a copy of e tagged with collection and id.
func (e *DecodeError) WithLocation(collection, id string) *DecodeError {
	cp := *e
	cp.Collection = collection
	cp.ID = id
	return &cp
}
