// Package testutil opens throwaway databases and mints tokens for tests.
package testutil

import (
	"path/filepath"
	"precinct-backend/config"
	"precinct-backend/internal/model"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	Secret   = "test-secret"
	Password = "password123"
)

// NewDB returns a migrated SQLite database that lives in t's temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.OpenDB("sqlite", filepath.Join(t.TempDir(), "test.db"), "silent")
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// SQLite allows one writer; a single connection queues callers instead of failing with SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser inserts an active user whose password is Password.
func CreateUser(t *testing.T, db *gorm.DB, badge, name, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Name:        name,
		BadgeNumber: badge,
		Password:    string(hash),
		Email:       badge + "@precinct.local",
		Role:        role,
		IsActive:    true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Token signs a token for user with Secret, the way login does.
func Token(t *testing.T, user *model.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id":      user.ID,
		"badge_number": user.BadgeNumber,
		"role":         user.Role,
		"exp":          time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	require.NoError(t, err)
	return token
}
