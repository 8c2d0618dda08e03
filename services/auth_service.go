package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/repositories"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt work factor for stored passwords.
const passwordHashCost = 10

var (
	ErrAuthEmailTaken      = errors.New("email already in use")
	ErrAuthInvalidEmail    = errors.New("invalid email address")
	ErrAuthInvalidPassword = errors.New("invalid password")
	ErrAuthFieldsRequired  = errors.New("name, email and password are required")
	ErrAuthUserNotFound    = errors.New("user not found")
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type RegisterInput struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	Qualification      string `json:"qualification"`
	Experience         string `json:"experience"`
	PreferredAgeGroups string `json:"preferredAgeGroups"`
	Bio                string `json:"bio"`
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates a referee account. The plaintext password never reaches
// the repository: it is bcrypt-hashed here and only the hash is stored. The
// duplicate-email pre-check mirrors the reference behavior; the unique
// constraint on users.email is the backstop when two registrations race.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrAuthFieldsRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrAuthInvalidEmail
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrAuthEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:               name,
		Email:              email,
		PasswordHash:       string(hashedPassword),
		Phone:              input.Phone,
		Address:            input.Address,
		Qualification:      input.Qualification,
		Experience:         input.Experience,
		PreferredAgeGroups: input.PreferredAgeGroups,
		Bio:                input.Bio,
		Role:               models.RoleReferee,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrAuthEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials. An unknown email and a wrong password are
// distinct failures (404 vs 401 at the API boundary), matching the
// reference behavior.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidPassword
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	return user, nil
}
