package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	for _, k := range []string{"LUMEN_PORT", "PORT", "LUMEN_ENV", "NODE_ENV"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, uint(DefaultPinnedCategoryID), cfg.Catalog.PinnedCategoryID)
	assert.Equal(t, DefaultPublicPageSize, cfg.Catalog.PublicPageSize)
	assert.NotEmpty(t, cfg.RedisURL)
	assert.False(t, cfg.S3.Configured())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 8080
env: production
jwt_secret: topsecret
allowed_origins:
  - https://example.com
catalog:
  pinned_category_id: 4
  public_page_size: 12
s3:
  bucket: assets
  region: eu-west-1
  access_key_id: k
  secret_access_key: s
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "topsecret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, uint(4), cfg.Catalog.PinnedCategoryID)
	assert.Equal(t, 12, cfg.Catalog.PublicPageSize)
	assert.True(t, cfg.S3.Configured())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\njwt_secret: from_file\n"), 0o600))

	t.Setenv("LUMEN_PORT", "9090")
	t.Setenv("LUMEN_JWT_SECRET", "from_env")
	t.Setenv("LUMEN_ADMIN_USERNAME", "root")
	t.Setenv("LUMEN_ADMIN_PASSWORD", "hunter2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port, "env wins over file")
	assert.Equal(t, "from_env", cfg.JWTSecret)
	assert.Equal(t, "root", cfg.Admin.Username)
	assert.Equal(t, "hunter2", cfg.Admin.Password)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
