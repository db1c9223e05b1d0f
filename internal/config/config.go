package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lumen-studio/core/internal/pkg/mail"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort = 3310
	defaultEnv  = "development"

	// DefaultPinnedCategoryID is the category whose active items always
	// surface first in default-sorted public listings.
	DefaultPinnedCategoryID = 9

	// DefaultPublicPageSize is the fixed page size of the public listing.
	DefaultPublicPageSize = 9

	// AllCategoriesID is the sentinel category id meaning "no filter".
	AllCategoriesID = 1
)

// AppConfig holds runtime startup configuration loaded from YAML plus env
// overrides.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	Database       DatabaseRuntimeConfig `yaml:"database"`
	RedisURL       string                `yaml:"redis_url"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	JWTSecret      string                `yaml:"jwt_secret"`
	Catalog        CatalogConfig         `yaml:"catalog"`
	S3             S3Options             `yaml:"s3"`
	Mail           mail.Config           `yaml:"mail"`
	Admin          AdminSeedConfig       `yaml:"admin"`
}

// DatabaseRuntimeConfig describes the MySQL connection.
type DatabaseRuntimeConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
	Loc      string `yaml:"loc"`
}

// CatalogConfig tunes the portfolio listing behavior.
type CatalogConfig struct {
	PinnedCategoryID uint `yaml:"pinned_category_id"`
	PublicPageSize   int  `yaml:"public_page_size"`
}

// S3Options configures the managed object-storage bucket.
type S3Options struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
	Prefix          string `yaml:"prefix"`
}

// Configured reports whether enough is present to build an S3 client.
func (o S3Options) Configured() bool {
	return strings.TrimSpace(o.Bucket) != "" &&
		strings.TrimSpace(o.Region) != "" &&
		strings.TrimSpace(o.AccessKeyID) != "" &&
		strings.TrimSpace(o.SecretAccessKey) != ""
}

// AdminSeedConfig seeds the initial dashboard account on first boot.
type AdminSeedConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development") || c.Env == ""
}

// Load reads the YAML config file, applies env overrides and defaults.
// A missing file is not an error; env and defaults still apply.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := envStr("LUMEN_PORT", "PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := envStr("LUMEN_ENV", "NODE_ENV"); v != "" {
		cfg.Env = v
	}
	if v := envStr("LUMEN_DATABASE_DSN", "DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := envStr("LUMEN_REDIS_URL", "REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := envStr("LUMEN_JWT_SECRET", "JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := envStr("LUMEN_S3_BUCKET", "S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if v := envStr("LUMEN_S3_REGION", "S3_REGION"); v != "" {
		cfg.S3.Region = v
	}
	if v := envStr("LUMEN_S3_ENDPOINT", "S3_ENDPOINT"); v != "" {
		cfg.S3.Endpoint = v
	}
	if v := envStr("LUMEN_S3_ACCESS_KEY_ID", "S3_ACCESS_KEY_ID"); v != "" {
		cfg.S3.AccessKeyID = v
	}
	if v := envStr("LUMEN_S3_SECRET_ACCESS_KEY", "S3_SECRET_ACCESS_KEY"); v != "" {
		cfg.S3.SecretAccessKey = v
	}
	if v := envStr("LUMEN_ADMIN_USERNAME", "ADMIN_USERNAME"); v != "" {
		cfg.Admin.Username = v
	}
	if v := envStr("LUMEN_ADMIN_PASSWORD", "ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = defaultEnv
	}
	if strings.TrimSpace(cfg.RedisURL) == "" {
		cfg.RedisURL = "redis://localhost:6379/0"
	}
	if cfg.Catalog.PinnedCategoryID == 0 {
		cfg.Catalog.PinnedCategoryID = DefaultPinnedCategoryID
	}
	if cfg.Catalog.PublicPageSize == 0 {
		cfg.Catalog.PublicPageSize = DefaultPublicPageSize
	}
}

func envStr(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
