package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/courtside-dev/referee-system/models"
	"github.com/golang-jwt/jwt/v4"
)

// Tokens are valid for a fixed 24 hours from issuance. There is no
// revocation: a token outlives role and password changes for its lifetime.
const tokenTTL = 24 * time.Hour

var ErrTokenInvalid = errors.New("invalid or expired token")

// TokenClaims is the identity a verified token proves.
type TokenClaims struct {
	UserID int
	Email  string
	Role   models.UserRole
}

type TokenService interface {
	Issue(user *models.User) (string, error)
	Verify(tokenString string) (*TokenClaims, error)
}

type jwtTokenService struct {
	secret []byte
}

// NewTokenService builds an HS256 token service. The secret comes from
// configuration; config.Load refuses to start without one.
func NewTokenService(secret string) TokenService {
	return &jwtTokenService{secret: []byte(secret)}
}

func (s *jwtTokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtTokenService) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return nil, ErrTokenInvalid
	}
	email, _ := claims["email"].(string)
	roleStr, ok := claims["role"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}
	role := models.UserRole(roleStr)
	if role != models.RoleReferee && role != models.RoleAdmin {
		return nil, ErrTokenInvalid
	}

	return &TokenClaims{
		UserID: int(userIDFloat),
		Email:  email,
		Role:   role,
	}, nil
}
