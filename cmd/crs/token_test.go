package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algoreed/crs/internal/auth"
)

func TestTokenCmd(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("JWT_SECRET", "token-cmd-secret")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newTokenCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--subject", "records-clerk"})

	require.NoError(t, cmd.Execute())

	subject, role, err := auth.NewTokenService("token-cmd-secret", time.Hour).ParseJWT(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "records-clerk", subject)
	assert.Equal(t, auth.RoleOperator, role)
}

func TestTokenCmd_RequiresSubject(t *testing.T) {
	cmd := newTokenCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
}
