package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
)

// Claims are the access token claims. Subject carries the account ID.
type Claims struct {
	Email       string          `json:"email"`
	Role        id.Role         `json:"role"`
	Permissions []id.Permission `json:"perms,omitempty"`
	jwt.RegisteredClaims
}

// Subject is who a token is issued to.
type Subject struct {
	AccountID   id.AccountID
	Email       string
	Role        id.Role
	Permissions []id.Permission
}

// JWTService issues and validates HS256 access tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
	ttl        time.Duration
}

func NewJWTService(signingKey, issuer, audience string, ttl time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		ttl:        ttl,
	}
}

// GenerateAccessToken signs a token for sub valid from now for the configured
// TTL. It returns the token and its expiry.
func (s *JWTService) GenerateAccessToken(sub Subject, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:       sub.Email,
		Role:        sub.Role,
		Permissions: sub.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.AccountID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if !claims.Role.IsValid() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token role")
	}
	if _, err := id.ParseAccountID(claims.Subject); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}
	return claims, nil
}
