package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
)

var (
	jwtService = NewJWTService("test-signing-key-0123456789abcdef", "test-issuer", "test-audience", time.Hour)
	subject    = Subject{
		AccountID:   id.NewAccountID(),
		Email:       "reviewer@acme.com",
		Role:        id.RoleHRManager,
		Permissions: []id.Permission{id.PermViewAppeals, id.PermManageAppeals},
	}
)

func Test_GenerateAccessToken(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := jwtService.GenerateAccessToken(subject, now)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, subject.AccountID.String(), claims.Subject)
	assert.Equal(t, subject.Email, claims.Email)
	assert.Equal(t, id.RoleHRManager, claims.Role)
	assert.Equal(t, subject.Permissions, claims.Permissions)
	assert.NotEmpty(t, claims.ID)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken("invalid-token-string")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	token, _, err := jwtService.GenerateAccessToken(subject, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, "token has expired", dErrors.Message(err))
}

func Test_ValidateToken_WrongKeyOrAudience(t *testing.T) {
	other := NewJWTService("another-signing-key-0123456789abc", "test-issuer", "test-audience", time.Hour)
	token, _, err := other.GenerateAccessToken(subject, time.Now())
	require.NoError(t, err)
	_, err = jwtService.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	otherAudience := NewJWTService("test-signing-key-0123456789abcdef", "test-issuer", "elsewhere", time.Hour)
	token, _, err = otherAudience.GenerateAccessToken(subject, time.Now())
	require.NoError(t, err)
	_, err = jwtService.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_RejectsUnknownRole(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "root",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.AccountID.String(),
			Issuer:    "test-issuer",
			Audience:  []string{"test-audience"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("test-signing-key-0123456789abcdef"))
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(signed)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_Adapter(t *testing.T) {
	token, _, err := jwtService.GenerateAccessToken(subject, time.Now())
	require.NoError(t, err)

	claims, err := NewJWTServiceAdapter(jwtService).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, subject.AccountID, claims.AccountID)
	assert.Equal(t, subject.Role, claims.Role)
	assert.Equal(t, subject.Permissions, claims.Permissions)
}
