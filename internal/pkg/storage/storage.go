package storage

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ObjectStorage is the contract the catalog mutation pipeline consumes:
// upload returns a public URL, delete is addressed by URL, and Owns guards
// deletion so only managed assets are ever targeted.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, payload []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
	Owns(url string) bool
}

// ObjectKey builds a collision-free object key for an uploaded file,
// preserving the original extension.
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	key := uuid.New().String() + ext
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix != "" {
		return prefix + "/" + key
	}
	return key
}
