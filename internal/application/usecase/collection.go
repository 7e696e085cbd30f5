// internal/application/usecase/collection.go
package usecase

import (
	"context"
	"errors"

	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// Collection is a typed read view over one collection.
type Collection[T any] struct {
	svc    *FetchService
	name   string
	schema document.Schema
}

func NewCollection[T any](svc *FetchService, name string, schema document.Schema) *Collection[T] {
	return &Collection[T]{svc: svc, name: name, schema: schema}
}

func (c *Collection[T]) Name() string { return c.name }

// FetchOne reads and decodes collection/id.
//
// Errors: *document.NotFoundError, *document.TransportError,
// *document.DecodeError (tagged with collection/id).
func (c *Collection[T]) FetchOne(ctx context.Context, id string) (T, error) {
	var zero T
	raw, err := c.svc.get(ctx, c.name, id)
	if err != nil {
		return zero, err
	}
	v, err := document.Decode[T](raw, c.schema)
	if err != nil {
		return zero, c.locate(err, id)
	}
	return v, nil
}

// FetchAll reads and decodes every document. The first document that fails
// to decode aborts the call: its *document.DecodeError is returned and no
// records are.
func (c *Collection[T]) FetchAll(ctx context.Context) ([]T, error) {
	snaps, err := c.svc.getAll(ctx, c.name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		v, err := document.Decode[T](snap.Data, c.schema)
		if err != nil {
			c.svc.log.Warn().Err(err).Str("collection", c.name).Str("id", snap.ID).Msg("[fetch] decode failed, aborting list")
			return nil, c.locate(err, snap.ID)
		}
		out = append(out, v)
	}
	return out, nil
}

// FetchAllLenient decodes what it can and reports the documents it skipped.
// Only transport failures return an error.
func (c *Collection[T]) FetchAllLenient(ctx context.Context) ([]T, []*document.DecodeError, error) {
	snaps, err := c.svc.getAll(ctx, c.name)
	if err != nil {
		return nil, nil, err
	}
	out := make([]T, 0, len(snaps))
	var skipped []*document.DecodeError
	for _, snap := range snaps {
		v, err := document.Decode[T](snap.Data, c.schema)
		if err != nil {
			var de *document.DecodeError
			if !errors.As(c.locate(err, snap.ID), &de) {
				return nil, nil, err
			}
			skipped = append(skipped, de)
			continue
		}
		out = append(out, v)
	}
	if len(skipped) > 0 {
		c.svc.log.Warn().Str("collection", c.name).Int("skipped", len(skipped)).Msg("[fetch] lenient list skipped documents")
	}
	return out, skipped, nil
}

// IDs returns the document ids of the collection without decoding.
func (c *Collection[T]) IDs(ctx context.Context) ([]string, error) {
	snaps, err := c.svc.getAll(ctx, c.name)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		ids = append(ids, snap.ID)
	}
	return ids, nil
}

func (c *Collection[T]) locate(err error, id string) error {
	var de *document.DecodeError
	if errors.As(err, &de) {
		return de.WithLocation(c.name, id)
	}
	return err
}
