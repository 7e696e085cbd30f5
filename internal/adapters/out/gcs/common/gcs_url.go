// internal/adapters/out/gcs/common/gcs_url.go
package common

import (
	"fmt"
	"net/url"
	"strings"
)

// GCSPublicURL builds a public GCS URL.
// - bucket が空なら defaultBucket を使用
// - objectPath の先頭の "/" は除去、各セグメントはエスケープ
func GCSPublicURL(bucket, objectPath, defaultBucket string) string {
	b := strings.TrimSpace(bucket)
	if b == "" {
		b = strings.TrimSpace(defaultBucket)
	}
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	parts := strings.Split(obj, "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b, strings.Join(parts, "/"))
}

// ParseObjectRef splits a blob reference into (bucket, objectPath).
// Accepted forms:
//   - reviews/<rid>.jpeg                       (bucket = "")
//   - gs://<bucket>/reviews/<rid>.jpeg
//   - https://storage.googleapis.com/<bucket>/<object>
//   - https://storage.cloud.google.com/<bucket>/<object>
func ParseObjectRef(ref string) (bucket string, objectPath string, ok bool) {
	r := strings.TrimSpace(ref)
	if r == "" {
		return "", "", false
	}

	if strings.HasPrefix(r, "gs://") {
		rest := strings.TrimPrefix(r, "gs://")
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) < 2 || parts[0] == "" {
			return "", "", false
		}
		obj := strings.TrimLeft(parts[1], "/")
		if obj == "" {
			return "", "", false
		}
		return parts[0], obj, true
	}

	if strings.HasPrefix(r, "http://") || strings.HasPrefix(r, "https://") {
		return parseGCSURL(r)
	}

	obj := strings.TrimLeft(r, "/")
	if obj == "" {
		return "", "", false
	}
	return "", obj, true
}

func parseGCSURL(u string) (string, string, bool) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", "", false
	}

	host := strings.ToLower(parsed.Host)
	if host != "storage.googleapis.com" && host != "storage.cloud.google.com" {
		return "", "", false
	}

	p := strings.TrimLeft(parsed.EscapedPath(), "/")
	parts := strings.SplitN(p, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	objectPath, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", "", false
	}
	return parts[0], objectPath, true
}
