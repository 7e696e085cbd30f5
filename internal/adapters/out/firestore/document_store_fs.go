// internal/adapters/out/firestore/document_store_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// =====================================================
// Firestore Document Store
// =====================================================
//
// Raw, schema-agnostic access to collections. Decoding into typed records is
// done by the caller (usecase.FetchService).
// - Missing documents are reported as document.ErrNotFound.
// - Set merges (upsert); Update requires the document to exist.
// =====================================================

type DocumentStoreFS struct {
	Client *firestore.Client
}

func NewDocumentStoreFS(client *firestore.Client) *DocumentStoreFS {
	return &DocumentStoreFS{Client: client}
}

func (s *DocumentStoreFS) col(name string) (*firestore.CollectionRef, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("firestore client is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("firestore: collection is empty")
	}
	return s.Client.Collection(name), nil
}

// Get returns the raw data of collection/id.
func (s *DocumentStoreFS) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	col, err := s.col(collection)
	if err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, document.ErrInvalidID
	}

	snap, err := col.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, document.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	data := snap.Data()
	if data == nil {
		return nil, document.ErrNotFound
	}
	return data, nil
}

// GetAll returns every document of the collection, ordered by document ID.
func (s *DocumentStoreFS) GetAll(ctx context.Context, collection string) ([]document.Snapshot, error) {
	col, err := s.col(collection)
	if err != nil {
		return nil, err
	}

	it := col.Documents(ctx)
	defer it.Stop()

	var out []document.Snapshot
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, document.Snapshot{
			ID:   snap.Ref.ID,
			Data: snap.Data(),
		})
	}
	return out, nil
}

// Set upserts fields into collection/id (MergeAll). AppendSet fields become
// ArrayUnion transforms.
func (s *DocumentStoreFS) Set(ctx context.Context, collection, id string, fields document.Fields) error {
	col, err := s.col(collection)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return document.ErrInvalidID
	}

	data, err := ToFirestoreData(fields)
	if err != nil {
		return err
	}
	if _, err := col.Doc(id).Set(ctx, data, firestore.MergeAll); err != nil {
		return err
	}
	return nil
}

// Update applies fields to an existing document.
func (s *DocumentStoreFS) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	col, err := s.col(collection)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return document.ErrInvalidID
	}

	updates, err := ToFirestoreUpdates(fields)
	if err != nil {
		return err
	}
	if _, err := col.Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return document.ErrNotFound
		}
		return err
	}
	return nil
}

// =====================================================
// Helpers: domain Fields -> Firestore
// =====================================================

// ToFirestoreData converts fields into a Set payload.
func ToFirestoreData(fields document.Fields) (map[string]any, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	data := make(map[string]any, len(fields))
	for _, f := range fields {
		v, err := firestoreValue(f)
		if err != nil {
			return nil, err
		}
		data[f.Name] = v
	}
	return data, nil
}

// ToFirestoreUpdates converts fields into an Update payload.
func ToFirestoreUpdates(fields document.Fields) ([]firestore.Update, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", document.ErrInvalidFields)
	}
	updates := make([]firestore.Update, 0, len(fields))
	for _, f := range fields {
		v, err := firestoreValue(f)
		if err != nil {
			return nil, err
		}
		updates = append(updates, firestore.Update{Path: f.Name, Value: v})
	}
	return updates, nil
}

func firestoreValue(f document.Field) (any, error) {
	if f.Mode == document.AppendSet {
		list, ok := f.Value.AsStringList()
		if !ok {
			return nil, fmt.Errorf("%w: field %q: append-set needs a string list", document.ErrInvalidFields, f.Name)
		}
		elems := make([]any, 0, len(list))
		for _, s := range list {
			elems = append(elems, s)
		}
		return firestore.ArrayUnion(elems...), nil
	}
	return f.Value.Native(), nil
}
