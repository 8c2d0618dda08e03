package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/repositories"
	"github.com/courtside-dev/referee-system/storage"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrPhotoStorageUnavailable = errors.New("photo storage is not configured")
	ErrPhotoInvalidContentType = errors.New("photo must be a jpeg, png or webp image")
)

type UserService interface {
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error)
	UploadPhoto(ctx context.Context, userID int, file io.Reader, contentType string) (*models.User, error)
}

// UpdateProfileInput carries partial profile fields. An absent field and an
// empty string are indistinguishable here and neither overwrites the stored
// value; this falsy-merge behavior is deliberate and inherited from the
// reference API. Email and role are not updatable through the profile.
type UpdateProfileInput struct {
	Name               string `json:"name"`
	Password           string `json:"password"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	Qualification      string `json:"qualification"`
	Experience         string `json:"experience"`
	PreferredAgeGroups string `json:"preferredAgeGroups"`
	Bio                string `json:"bio"`
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

// NewUserService builds the profile service. uploader may be nil when R2 is
// not configured; photo uploads then fail with ErrPhotoStorageUnavailable.
func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = mergeField(input.Name, user.Name)
	user.Phone = mergeField(input.Phone, user.Phone)
	user.Address = mergeField(input.Address, user.Address)
	user.Qualification = mergeField(input.Qualification, user.Qualification)
	user.Experience = mergeField(input.Experience, user.Experience)
	user.PreferredAgeGroups = mergeField(input.PreferredAgeGroups, user.PreferredAgeGroups)
	user.Bio = mergeField(input.Bio, user.Bio)

	// A password change always goes through bcrypt, never stored raw.
	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordHashCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}
	return user, nil
}

func (s *userService) UploadPhoto(ctx context.Context, userID int, file io.Reader, contentType string) (*models.User, error) {
	if s.uploader == nil {
		return nil, ErrPhotoStorageUnavailable
	}

	ext, ok := photoExtension(contentType)
	if !ok {
		return nil, ErrPhotoInvalidContentType
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := path.Join("users", fmt.Sprintf("%d", userID), fmt.Sprintf("photo_%d%s", time.Now().Unix(), ext))
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload profile photo: %w", err)
	}

	oldKey := user.PhotoKey
	user.PhotoKey = result.Key
	user.PhotoURL = result.Location

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save profile photo reference: %w", err)
	}

	// Best effort: an orphaned old object is not worth failing the request.
	if oldKey != "" && oldKey != result.Key {
		_ = s.uploader.Delete(ctx, oldKey)
	}

	return user, nil
}

// mergeField implements the falsy merge: only the empty string means "not
// provided". A whitespace-only value is a value and overwrites.
func mergeField(input, existing string) string {
	if input == "" {
		return existing
	}
	return input
}

func photoExtension(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/webp":
		return ".webp", true
	}
	return "", false
}
