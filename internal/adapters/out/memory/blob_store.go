// internal/adapters/out/memory/blob_store.go
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// Object is a stored blob.
type Object struct {
	ContentType string
	Data        []byte
}

// BlobStore keeps blobs in memory. References are the object paths.
type BlobStore struct {
	mu      sync.RWMutex
	objects map[string]Object
	// BaseURL prefixes resolved references, e.g. "http://localhost:8080/blobs".
	BaseURL string
}

func NewBlobStore(baseURL string) *BlobStore {
	return &BlobStore{
		objects: make(map[string]Object),
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

func (b *BlobStore) Put(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p := strings.TrimLeft(strings.TrimSpace(path), "/")
	if p == "" {
		return "", errors.New("memory blob: path is empty")
	}
	cp := make([]byte, len(data))
	copy(cp, data)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[p] = Object{ContentType: contentType, Data: cp}
	return p, nil
}

func (b *BlobStore) ResolveURL(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p := strings.TrimLeft(strings.TrimSpace(ref), "/")
	b.mu.RLock()
	_, ok := b.objects[p]
	b.mu.RUnlock()
	if !ok {
		return "", document.ErrNotFound
	}
	return b.BaseURL + "/" + p, nil
}

// Object returns a stored blob.
func (b *BlobStore) Object(path string) (Object, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.objects[strings.TrimLeft(path, "/")]
	return o, ok
}

// Len returns the number of stored blobs.
func (b *BlobStore) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}
