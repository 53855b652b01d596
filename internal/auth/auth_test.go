package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.GenerateJWT("records-clerk", RoleOperator)
	require.NoError(t, err)

	subject, role, err := svc.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "records-clerk", subject)
	assert.Equal(t, RoleOperator, role)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := NewTokenService("one", time.Hour).GenerateJWT("clerk", RoleOperator)
	require.NoError(t, err)

	_, _, err = NewTokenService("two", time.Hour).ParseJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWT_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)
	token, err := svc.GenerateJWT("clerk", RoleOperator)
	require.NoError(t, err)

	_, _, err = svc.ParseJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, _, err := NewTokenService("s", time.Hour).ParseJWT("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateJWT_RequiresSubject(t *testing.T) {
	_, err := NewTokenService("s", time.Hour).GenerateJWT("", RoleOperator)
	assert.Error(t, err)
}
