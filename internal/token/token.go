// Package token issues and validates the signed bearer tokens used by the API.
// Tokens are stateless: identity and role travel in the claims and are checked
// against the signature and expiry on every request. Rotating the signing
// secret invalidates everything previously issued; there is no revocation list.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/apierror"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/model"
)

// Claims are the custom claims embedded in every access token.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a process-wide HMAC secret.
type Service struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewService(secret string, defaultTTL time.Duration) *Service {
	return &Service{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue mints a token for subject with the given role. An explicit ttl
// overrides the default; public login always uses the default.
func (s *Service) Issue(subject string, role model.Role, ttl ...time.Duration) (string, error) {
	d := s.defaultTTL
	if len(ttl) > 0 {
		d = ttl[0]
	}
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Validate parses and verifies a raw token string. Wrong signature, wrong
// signing method, malformed structure, and expiry all come back wrapped in
// apierror.ErrUnauthorized.
func (s *Service) Validate(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: invalid or expired token", apierror.ErrUnauthorized)
	}
	return claims, nil
}
