package storage

import (
	"context"
	"strings"
	"testing"

	appcfg "github.com/lumen-studio/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("portfolio", "My Photo.JPG")
	assert.True(t, strings.HasPrefix(key, "portfolio/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"), "extension is lowercased")

	other := ObjectKey("portfolio", "My Photo.JPG")
	assert.NotEqual(t, key, other, "keys are unique per upload")

	bare := ObjectKey("", "noext")
	assert.False(t, strings.HasPrefix(bare, "/"))
}

func TestMemoryLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	url, err := m.Upload(ctx, "portfolio/a.jpg", []byte("payload"), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, m.Owns(url))
	assert.True(t, m.Has(url))
	assert.Equal(t, 1, m.Len())

	assert.False(t, m.Owns("https://elsewhere.com/a.jpg"))

	require.NoError(t, m.Delete(ctx, url))
	assert.False(t, m.Has(url))
	assert.Equal(t, []string{url}, m.Deleted)
}

func TestNewS3RequiresCoreSettings(t *testing.T) {
	_, err := NewS3(appcfg.S3Options{Bucket: "b"})
	assert.Error(t, err)

	_, err = NewS3(appcfg.S3Options{
		Bucket: "b", Region: "eu-west-1", AccessKeyID: "k", SecretAccessKey: "s",
	})
	assert.NoError(t, err)
}

func TestS3URLOwnership(t *testing.T) {
	cases := []struct {
		name    string
		opts    appcfg.S3Options
		baseURL string
	}{
		{
			"aws virtual host",
			appcfg.S3Options{Bucket: "assets", Region: "eu-west-1", AccessKeyID: "k", SecretAccessKey: "s"},
			"https://assets.s3.eu-west-1.amazonaws.com",
		},
		{
			"custom endpoint",
			appcfg.S3Options{Bucket: "assets", Region: "auto", AccessKeyID: "k", SecretAccessKey: "s", Endpoint: "minio.internal:9000"},
			"https://minio.internal:9000/assets",
		},
		{
			"custom domain wins",
			appcfg.S3Options{Bucket: "assets", Region: "auto", AccessKeyID: "k", SecretAccessKey: "s", Endpoint: "minio.internal:9000", CustomDomain: "https://cdn.example.com/"},
			"https://cdn.example.com",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewS3(tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.baseURL, s.baseURL)
			assert.True(t, s.Owns(tc.baseURL+"/portfolio/x.jpg"))
			assert.Equal(t, "portfolio/x.jpg", s.keyFromURL(tc.baseURL+"/portfolio/x.jpg"))
			assert.False(t, s.Owns("https://other.example.com/portfolio/x.jpg"))
		})
	}
}
