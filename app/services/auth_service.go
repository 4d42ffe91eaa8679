package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned on a bad username/password pair. The
// caller must not reveal which half was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserNotFound is returned when a referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// RegisterInput carries the registration payload. The plaintext password
// is hashed before storage and never logged.
type RegisterInput struct {
	Username  string `json:"username"   validate:"required,min=2,max=150"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name"  validate:"required,max=150"`
	Role      string `json:"role"       validate:"nullable,in=BUYER,SELLER"`
	Email     string `json:"email"      validate:"required,email"`
	PhoneNo   string `json:"phone_no"   validate:"required,min=7,max=15"`
	Password  string `json:"password"   validate:"required,min=8"`
}

// Register creates a user with a bcrypt-hashed password.
func (s *AuthService) Register(in RegisterInput) (models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
		Email:     in.Email,
		PhoneNo:   in.PhoneNo,
		Password:  hash,
	}

	if err := s.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login verifies the password and issues an access/refresh token pair.
func (s *AuthService) Login(username, password string) (TokenPair, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return TokenPair{}, ErrInvalidCredentials
	}

	return s.issuePair(user)
}

// Refresh validates a refresh token and issues a fresh pair.
func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	return s.issuePair(user)
}

func (s *AuthService) issuePair(user models.User) (TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// CurrentUser resolves the authenticated identity to its user record.
func (s *AuthService) CurrentUser(id uint) (models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
