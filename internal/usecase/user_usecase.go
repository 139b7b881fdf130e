package usecase

import (
	"errors"
	"fmt"
	"precinct-backend/internal/model"
	"precinct-backend/internal/repository"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type UserUsecase struct {
	repo      repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserUsecase(repo repository.UserRepository, jwtSecret []byte, tokenTTL time.Duration) *UserUsecase {
	return &UserUsecase{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type RegisterInput struct {
	Name        string
	BadgeNumber string
	Password    string
	Email       string
	Phone       string
	Rank        string
	Unit        string
	Role        string
}

func (u *UserUsecase) Register(in RegisterInput) (*model.User, error) {
	in.BadgeNumber = strings.TrimSpace(in.BadgeNumber)
	if in.Role == "" {
		in.Role = model.RoleEmployee
	}
	if !model.ValidRole(in.Role) {
		return nil, invalid("role must be admin or employee")
	}
	if len(in.Password) < minPasswordLength {
		return nil, invalid("password must be at least %d characters", minPasswordLength)
	}

	// 1. Badge numbers are the login id and must stay unique
	if existing, err := u.repo.FindByBadge(in.BadgeNumber); err == nil && existing.ID != 0 {
		return nil, fmt.Errorf("%w: badge number %s", ErrDuplicate, in.BadgeNumber)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. Hashing Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 3. Save
	user := model.User{
		Name:        in.Name,
		BadgeNumber: in.BadgeNumber,
		Password:    string(hashedPassword),
		Email:       in.Email,
		Phone:       in.Phone,
		Rank:        in.Rank,
		Unit:        in.Unit,
		Role:        in.Role,
		IsActive:    true,
	}
	if err := u.repo.Create(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserUsecase) Login(badge, password string) (string, *model.User, error) {
	// 1. Find the officer by badge number
	user, err := u.repo.FindByBadge(strings.TrimSpace(badge))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	// 2. Compare password (input vs stored hash)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", nil, ErrInactiveAccount
	}

	// 3. Sign the JWT
	token, err := u.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (u *UserUsecase) GenerateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      user.ID,
		"badge_number": user.BadgeNumber,
		"role":         user.Role,
		"exp":          time.Now().Add(u.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.jwtSecret)
}

func (u *UserUsecase) Get(id uint) (*model.User, error) {
	user, err := u.repo.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (u *UserUsecase) List(search, role string) ([]model.User, error) {
	return u.repo.GetAll(search, role)
}

func (u *UserUsecase) UpdateProfile(id uint, email, phone string) (*model.User, error) {
	if _, err := u.Get(id); err != nil {
		return nil, err
	}
	if err := u.repo.UpdateFields(id, map[string]interface{}{"email": email, "phone": phone}); err != nil {
		return nil, err
	}
	return u.Get(id)
}

type UpdateUserInput struct {
	Name     string
	Email    string
	Phone    string
	Rank     string
	Unit     string
	Role     string
	IsActive *bool
}

func (u *UserUsecase) Update(id uint, in UpdateUserInput) (*model.User, error) {
	user, err := u.Get(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Role != "" {
		if !model.ValidRole(in.Role) {
			return nil, invalid("role must be admin or employee")
		}
		fields["role"] = in.Role
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	for column, value := range map[string]string{"email": in.Email, "phone": in.Phone, "rank": in.Rank, "unit": in.Unit} {
		if value != "" {
			fields[column] = value
		}
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := u.repo.UpdateFields(user.ID, fields); err != nil {
		return nil, err
	}
	return u.Get(id)
}

func (u *UserUsecase) Delete(id uint) error {
	if _, err := u.Get(id); err != nil {
		return err
	}
	return u.repo.Delete(id)
}

func (u *UserUsecase) ChangePassword(id uint, oldPassword, newPassword string) error {
	user, err := u.Get(id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return u.ResetPassword(id, newPassword)
}

func (u *UserUsecase) ResetPassword(id uint, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return invalid("password must be at least %d characters", minPasswordLength)
	}
	if _, err := u.Get(id); err != nil {
		return err
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return u.repo.UpdateFields(id, map[string]interface{}{"password": string(hashedPassword)})
}
