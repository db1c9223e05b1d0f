package config

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNValueExplicitWins(t *testing.T) {
	c := DatabaseRuntimeConfig{
		DSN:  "user:pass@tcp(db:3306)/app?parseTime=true",
		Host: "ignored",
	}
	assert.Equal(t, "user:pass@tcp(db:3306)/app?parseTime=true", c.DSNValue())
}

func TestDSNValueAssembled(t *testing.T) {
	dsn := DatabaseRuntimeConfig{
		User:     "lumen",
		Password: "p@ss:word",
		Host:     "mysql.internal",
		Port:     3307,
		Name:     "portfolio",
	}.DSNValue()

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "lumen", parsed.User)
	assert.Equal(t, "p@ss:word", parsed.Passwd)
	assert.Equal(t, "mysql.internal:3307", parsed.Addr)
	assert.Equal(t, "portfolio", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, "utf8mb4", parsed.Params["charset"])
}

func TestDSNValueDefaults(t *testing.T) {
	parsed, err := mysql.ParseDSN(DatabaseRuntimeConfig{}.DSNValue())
	require.NoError(t, err)
	assert.Equal(t, "root", parsed.User)
	assert.Equal(t, "127.0.0.1:3306", parsed.Addr)
	assert.Equal(t, "lumen_core", parsed.DBName)
}
