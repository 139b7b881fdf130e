package database_test

import (
	"precinct-backend/internal/database"
	"precinct-backend/internal/model"
	"precinct-backend/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAllIsRepeatable(t *testing.T) {
	db := testutil.NewDB(t)
	seeder := database.NewSeeder(db)
	now := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

	first, err := seeder.SeedAll(now)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Shifts)
	assert.Equal(t, 4, first.Officers)
	assert.Equal(t, 29, first.Roster.Days)

	_, err = seeder.SeedAll(now)
	require.NoError(t, err)

	var users, shifts, rows int64
	db.Model(&model.User{}).Count(&users)
	db.Model(&model.Shift{}).Count(&shifts)
	db.Model(&model.Schedule{}).Count(&rows)
	assert.EqualValues(t, 5, users)
	assert.EqualValues(t, 3, shifts)
	assert.EqualValues(t, 4*29, rows)

	var off int64
	db.Model(&model.Schedule{}).Where("status = ?", model.StatusOff).Count(&off)
	// February 2024 has 8 weekend days
	assert.EqualValues(t, 4*8, off)
}

func TestCreateAdminPromotesExisting(t *testing.T) {
	db := testutil.NewDB(t)
	officer := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)
	require.NoError(t, db.Model(officer).Updates(map[string]interface{}{"is_active": false, "rank": "Officer"}).Error)

	admin, err := database.NewSeeder(db).CreateAdmin("1001", "Alvarez", "new-password-1")
	require.NoError(t, err)
	assert.Equal(t, officer.ID, admin.ID)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.Equal(t, "Officer", admin.Rank)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("new-password-1")))

	_, err = database.NewSeeder(db).CreateAdmin("2002", "Short", "x")
	assert.Error(t, err)
}
