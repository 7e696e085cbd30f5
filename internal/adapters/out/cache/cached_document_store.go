// internal/adapters/out/cache/cached_document_store.go
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Madman-dev/ZZin/internal/application/usecase"
	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// DefaultTTL applies when NewCachedDocumentStore gets a non-positive ttl.
const DefaultTTL = 5 * time.Minute

// DefaultWriteGuard is how long a write blocks refills of its key.
const DefaultWriteGuard = 30 * time.Second

// tombstone marks a key written recently. Reads treat it as a miss, and fills
// use SetNX, so a read that raced the write cannot put the old document back.
var tombstone = []byte("\x00written")

// CachedDocumentStore is a read-through cache for single-document reads.
// Writes go to the wrapped store first and then replace the key with a
// tombstone. Cache failures are logged and never fail the call.
type CachedDocumentStore struct {
	next  usecase.DocumentStore
	cache Cache
	ttl   time.Duration
	guard time.Duration
	log   zerolog.Logger
}

var _ usecase.DocumentStore = (*CachedDocumentStore)(nil)

func NewCachedDocumentStore(next usecase.DocumentStore, cache Cache, ttl time.Duration, logger zerolog.Logger) *CachedDocumentStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedDocumentStore{
		next:  next,
		cache: cache,
		ttl:   ttl,
		guard: DefaultWriteGuard,
		log:   logger.With().Str("component", "doccache").Logger(),
	}
}

// WithWriteGuard sets the tombstone lifetime. It must outlast the longest
// store read, so callers pass at least their per-call timeout.
func (s *CachedDocumentStore) WithWriteGuard(d time.Duration) *CachedDocumentStore {
	if d > 0 {
		s.guard = d
	}
	return s
}

// Key is the cache key of collection/id.
func Key(collection, id string) string {
	return "doc:" + collection + ":" + id
}

func (s *CachedDocumentStore) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	key := Key(collection, id)
	b, err := s.cache.Get(ctx, key)
	switch {
	case err == nil && bytes.Equal(b, tombstone):
		// recently written; the SetNX fill below leaves the tombstone in place
	case err == nil:
		if m, derr := decodeRaw(b); derr == nil {
			return m, nil
		}
		s.log.Warn().Str("key", key).Msg("[cache] dropping undecodable entry")
		_ = s.cache.Delete(ctx, key)
	case !errors.Is(err, ErrMiss):
		s.log.Warn().Err(err).Str("key", key).Msg("[cache] get failed")
	}

	raw, err := s.next.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	// time.Time values are stored in their RFC 3339 form, which the decoder
	// accepts for timestamp fields.
	if b, err := json.Marshal(raw); err == nil {
		if ok, err := s.cache.SetNX(ctx, key, b, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("[cache] set failed")
		} else if !ok {
			s.log.Debug().Str("key", key).Msg("[cache] fill skipped")
		}
	}
	return raw, nil
}

func (s *CachedDocumentStore) GetAll(ctx context.Context, collection string) ([]document.Snapshot, error) {
	return s.next.GetAll(ctx, collection)
}

func (s *CachedDocumentStore) Set(ctx context.Context, collection, id string, fields document.Fields) error {
	if err := s.next.Set(ctx, collection, id, fields); err != nil {
		return err
	}
	s.evict(ctx, collection, id)
	return nil
}

func (s *CachedDocumentStore) Update(ctx context.Context, collection, id string, fields document.Fields) error {
	if err := s.next.Update(ctx, collection, id, fields); err != nil {
		return err
	}
	s.evict(ctx, collection, id)
	return nil
}

func (s *CachedDocumentStore) evict(ctx context.Context, collection, id string) {
	if err := s.cache.Set(ctx, Key(collection, id), tombstone, s.guard); err != nil {
		s.log.Warn().Err(err).Str("collection", collection).Str("id", id).Msg("[cache] evict failed")
	}
}

func decodeRaw(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
