package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/app/models"
	"github.com/shashiranjanraj/sokoni/pkg/auth"
)

// ErrInvalidCredentials is returned for a bad email or password. The
// two cases are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService is the thin identity glue: registration, login and token
// issuance. Moderation state gates login for banned accounts.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates an account with a hashed password.
func (s *AuthService) Register(name, email, password, role string) (models.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login verifies credentials and returns a signed token. Banned
// accounts cannot log in; suspended accounts can, but cannot trade.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}
	if user.IsBanned {
		return "", models.User{}, ErrUserBanned
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}
