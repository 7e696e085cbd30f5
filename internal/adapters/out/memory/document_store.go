// internal/adapters/out/memory/document_store.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// DocumentStore is a process-local document store with the same write
// semantics as the Firestore adapter: Set merges, Update requires an existing
// document, AppendSet unions into a string list. Values are kept in their
// native Go form (time.Time stays time.Time).
type DocumentStore struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]any
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{data: make(map[string]map[string]map[string]any)}
}

// Put stores raw data as-is, replacing any existing document. Used to seed
// documents that did not go through a typed write.
func (s *DocumentStore) Put(collection, id string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(collection)[id] = cloneDoc(data)
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, document.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.data[collection][id]
	if !ok {
		return nil, document.ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (s *DocumentStore) GetAll(ctx context.Context, collection string) ([]document.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.data[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]document.Snapshot, 0, len(ids))
	for _, id := range ids {
		out = append(out, document.Snapshot{ID: id, Data: cloneDoc(docs[id])})
	}
	return out, nil
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields document.Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return document.ErrInvalidID
	}
	if err := fields.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(collection)
	doc, ok := col[id]
	if !ok {
		doc = make(map[string]any, len(fields))
		col[id] = doc
	}
	apply(doc, fields)
	return nil
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return document.ErrInvalidID
	}
	if err := fields.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.data[collection][id]
	if !ok {
		return document.ErrNotFound
	}
	apply(doc, fields)
	return nil
}

// Len returns the number of documents in collection.
func (s *DocumentStore) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[collection])
}

func (s *DocumentStore) collection(name string) map[string]map[string]any {
	col, ok := s.data[name]
	if !ok {
		col = make(map[string]map[string]any)
		s.data[name] = col
	}
	return col
}

func apply(doc map[string]any, fields document.Fields) {
	for _, f := range fields {
		if f.Mode == document.AppendSet {
			add, _ := f.Value.AsStringList()
			doc[f.Name] = document.UnionStrings(stringList(doc[f.Name]), add...)
			continue
		}
		doc[f.Name] = f.Value.Native()
	}
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func cloneDoc(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		switch t := v.(type) {
		case []string:
			cp := make([]string, len(t))
			copy(cp, t)
			out[k] = cp
		case []any:
			cp := make([]any, len(t))
			copy(cp, t)
			out[k] = cp
		default:
			out[k] = v
		}
	}
	return out
}
