package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const operatorTokenTTL = 24 * time.Hour

// AuthService covers the single protected role in the system: the
// operator who records official results. Players need no accounts.
type AuthService interface {
	// OperatorLogin checks the shared operator password against the
	// configured bcrypt hash and issues a short-lived token.
	OperatorLogin(password string) (string, error)
}

type authService struct {
	passwordHash string
	jwtSecret    []byte
}

func NewAuthService(passwordHash, jwtSecret string) AuthService {
	return &authService{
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
	}
}

func (s *authService) OperatorLogin(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrAuthInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "operator",
		"iat":  now.Unix(),
		"exp":  now.Add(operatorTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign operator token: %w", err)
	}
	return signed, nil
}
