// Package database seeds a fresh precinct database with usable data.
package database

import (
	"errors"
	"fmt"
	"log"
	"precinct-backend/internal/model"
	"precinct-backend/internal/repository"
	"precinct-backend/internal/usecase"
	"time"

	"gorm.io/gorm"
)

const DefaultAdminPassword = "admin12345"

type Seeder struct {
	users     *usecase.UserUsecase
	userRepo  repository.UserRepository
	shifts    repository.ShiftRepository
	schedules *usecase.ScheduleUsecase
}

func NewSeeder(db *gorm.DB) *Seeder {
	userRepo := repository.NewUserRepository(db)
	shifts := repository.NewShiftRepository(db)
	// Seeding never emails anyone
	notifier := usecase.NewNotificationUsecase(repository.NewNotificationRepository(db), userRepo, nil)

	return &Seeder{
		users:     usecase.NewUserUsecase(userRepo, nil, time.Hour),
		userRepo:  userRepo,
		shifts:    shifts,
		schedules: usecase.NewScheduleUsecase(repository.NewScheduleRepository(db), shifts, userRepo, notifier),
	}
}

type SeedResult struct {
	Shifts   int
	Officers int
	Roster   usecase.GenerateResult
}

var defaultShifts = [][2]string{
	{"07:00", "15:00"}, // day watch
	{"15:00", "23:00"}, // evening watch
	{"23:00", "07:00"}, // night watch
}

var sampleOfficers = []usecase.RegisterInput{
	{Name: "Maria Alvarez", BadgeNumber: "1001", Rank: "Officer", Unit: "Patrol"},
	{Name: "Daniel Brooks", BadgeNumber: "1002", Rank: "Officer", Unit: "Patrol"},
	{Name: "Priya Chandra", BadgeNumber: "1003", Rank: "Detective", Unit: "Investigations"},
	{Name: "Tom Okafor", BadgeNumber: "1004", Rank: "Officer", Unit: "Traffic"},
}

// SeedAll creates the admin, the default shifts, a few officers and their
// roster for the month containing now. Running it twice is harmless.
func (s *Seeder) SeedAll(now time.Time) (SeedResult, error) {
	var result SeedResult

	if _, err := s.CreateAdmin("9000", "Sgt. Administrator", DefaultAdminPassword); err != nil {
		return result, err
	}

	var day *model.Shift
	for _, pair := range defaultShifts {
		shift, err := s.shifts.FindOrCreate(pair[0], pair[1])
		if err != nil {
			return result, fmt.Errorf("seed shift %s: %w", pair[0], err)
		}
		if day == nil {
			day = shift
		}
		result.Shifts++
	}

	var ids []uint
	for _, in := range sampleOfficers {
		in.Password = DefaultAdminPassword
		in.Email = in.BadgeNumber + "@precinct.local"
		user, err := s.users.Register(in)
		if errors.Is(err, usecase.ErrDuplicate) {
			user, err = s.userRepo.FindByBadge(in.BadgeNumber)
		}
		if err != nil {
			return result, fmt.Errorf("seed officer %s: %w", in.BadgeNumber, err)
		}
		ids = append(ids, user.ID)
		result.Officers++
	}

	roster, err := s.schedules.GenerateMonth(usecase.GenerateMonthInput{
		UserIDs:  ids,
		Year:     now.Year(),
		Month:    int(now.Month()),
		ShiftID:  day.ID,
		Weekdays: []int{1, 2, 3, 4, 5},
		Note:     "seeded",
	})
	if err != nil {
		return result, fmt.Errorf("seed roster: %w", err)
	}
	result.Roster = roster

	log.Printf("seeder: %d shifts, %d officers, %d roster rows", result.Shifts, result.Officers, roster.Written)
	return result, nil
}

// CreateAdmin registers an admin account, or promotes and re-activates an
// existing one with the same badge and resets its password.
func (s *Seeder) CreateAdmin(badge, name, password string) (*model.User, error) {
	user, err := s.users.Register(usecase.RegisterInput{
		Name:        name,
		BadgeNumber: badge,
		Password:    password,
		Rank:        "Sergeant",
		Unit:        "Administration",
		Role:        model.RoleAdmin,
	})
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, usecase.ErrDuplicate) {
		return nil, err
	}

	existing, err := s.userRepo.FindByBadge(badge)
	if err != nil {
		return nil, err
	}
	active := true
	if _, err := s.users.Update(existing.ID, usecase.UpdateUserInput{Role: model.RoleAdmin, IsActive: &active}); err != nil {
		return nil, err
	}
	if err := s.users.ResetPassword(existing.ID, password); err != nil {
		return nil, err
	}
	return s.users.Get(existing.ID)
}
