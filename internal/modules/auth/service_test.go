package auth

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/lumen-studio/core/internal/config"
	"github.com/lumen-studio/core/internal/database"
	"github.com/lumen-studio/core/internal/models"
	"github.com/lumen-studio/core/internal/pkg/jwt"
	"github.com/lumen-studio/core/internal/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return NewService(db, zap.NewNop()), db
}

func seedAdmin(t *testing.T, svc *Service) {
	t.Helper()
	require.NoError(t, svc.Seed(config.AdminSeedConfig{
		Username: "admin",
		Password: "s3cret",
		Name:     "Administrator",
	}))
}

func TestSeed(t *testing.T) {
	svc, db := newTestService(t)

	require.NoError(t, svc.Seed(config.AdminSeedConfig{}), "empty creds skip seeding")
	var count int64
	require.NoError(t, db.Model(&models.AdminUser{}).Count(&count).Error)
	assert.Zero(t, count)

	seedAdmin(t, svc)
	require.NoError(t, db.Model(&models.AdminUser{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.Seed(config.AdminSeedConfig{Username: "other", Password: "x"}))
	require.NoError(t, db.Model(&models.AdminUser{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "seeding only runs against an empty table")
}

func TestLoginAndLogout(t *testing.T) {
	svc, db := newTestService(t)
	seedAdmin(t, svc)

	token, user, err := svc.Login("admin", "s3cret", "203.0.113.7", "test-agent")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Username)
	assert.NotEmpty(t, user.PasswordHash)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	require.NotEmpty(t, claims.SessionID)

	active, err := session.IsActive(db, user.ID, claims.SessionID)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, svc.Logout(user.ID, claims.SessionID))
	active, err = session.IsActive(db, user.ID, claims.SessionID)
	require.NoError(t, err)
	assert.False(t, active, "logout revokes the session even though the JWT is still unexpired")

	require.NoError(t, svc.Logout(user.ID, claims.SessionID), "repeat logout is a no-op")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	seedAdmin(t, svc)

	_, _, err := svc.Login("admin", "wrong", "", "")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.Login("nobody", "s3cret", "", "")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.Login("", "", "", "")
	assert.ErrorIs(t, err, ErrBadCredentials)
}
