package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// RoleOperator is the role carried by tokens minted for records staff
const RoleOperator = "operator"

// ErrInvalidToken is returned for malformed, expired or wrongly signed tokens
var ErrInvalidToken = errors.New("invalid token")

// TokenService signs and verifies operator bearer tokens
type TokenService struct {
	jwtSecret []byte
	ttl       time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(jwtSecret string, ttl time.Duration) *TokenService {
	return &TokenService{
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
	}
}

// GenerateJWT creates a new JWT for the given subject
func (s *TokenService) GenerateJWT(subject, role string) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}

	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = subject
	claims["role"] = role
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(s.ttl).Unix()

	return token.SignedString(s.jwtSecret)
}

// ParseJWT verifies tokenString and returns its subject and role
func (s *TokenService) ParseJWT(tokenString string) (subject, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	subject, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)
	if subject == "" {
		return "", "", ErrInvalidToken
	}
	return subject, role, nil
}
