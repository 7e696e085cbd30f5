// internal/adapters/out/gcs/blob_store_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	gcscommon "github.com/Madman-dev/ZZin/internal/adapters/out/gcs/common"
	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// BlobStoreGCS stores review photos in a single bucket.
//
// Layout:
//   - objectPath: reviews/{rid}.jpeg
//
// Put returns the object path as the reference; ResolveURL turns it into a
// fetchable URL (V4 signed GET when SignURLs is set, public URL otherwise).
type BlobStoreGCS struct {
	Client *storage.Client
	Bucket string

	SignURLs  bool
	URLExpiry time.Duration
}

func NewBlobStoreGCS(client *storage.Client, bucket string, signURLs bool) *BlobStoreGCS {
	return &BlobStoreGCS{
		Client:    client,
		Bucket:    strings.TrimSpace(bucket),
		SignURLs:  signURLs,
		URLExpiry: 15 * time.Minute,
	}
}

func (s *BlobStoreGCS) bucket(name string) (*storage.BucketHandle, string, error) {
	if s == nil || s.Client == nil {
		return nil, "", errors.New("blob_store_gcs: storage client is nil")
	}
	b := strings.TrimSpace(name)
	if b == "" {
		b = s.Bucket
	}
	if b == "" {
		return nil, "", errors.New("blob_store_gcs: bucket is empty")
	}
	return s.Client.Bucket(b), b, nil
}

// Put uploads bytes to objectPath in the default bucket.
func (s *BlobStoreGCS) Put(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	bh, _, err := s.bucket("")
	if err != nil {
		return "", err
	}
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if obj == "" {
		return "", errors.New("blob_store_gcs: objectPath is empty")
	}

	w := bh.Object(obj).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	// Single request upload; photos are small.
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return obj, nil
}

// ResolveURL returns a URL the client can GET the object from.
func (s *BlobStoreGCS) ResolveURL(ctx context.Context, ref string) (string, error) {
	bucketName, obj, ok := gcscommon.ParseObjectRef(ref)
	if !ok {
		return "", fmt.Errorf("blob_store_gcs: invalid reference %q", ref)
	}
	bh, b, err := s.bucket(bucketName)
	if err != nil {
		return "", err
	}

	if _, err := bh.Object(obj).Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", document.ErrNotFound
		}
		return "", err
	}

	if !s.SignURLs {
		return gcscommon.GCSPublicURL(b, obj, s.Bucket), nil
	}

	expiry := s.URLExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	u, err := bh.SignedURL(obj, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	})
	if err != nil {
		return "", fmt.Errorf("blob_store_gcs: sign url: %w", err)
	}
	return u, nil
}
