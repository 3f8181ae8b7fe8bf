package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"asset-manager-api/pkg/apperr"
)

// TokenType distinguishes short-lived access tokens from the refresh
// tokens issued alongside them at login.
type TokenType string

const (
	TypeAccess  TokenType = "Access"
	TypeRefresh TokenType = "Refresh"
)

type Claims struct {
	Sub uint64    `json:"sub"`
	Ty  TokenType `json:"ty"`
	jwt.RegisteredClaims
}

// SessionService issues and verifies signed user session tokens. The
// bearer prefix is configuration, not a literal constant: deployments
// may front the API with their own scheme name.
type SessionService struct {
	secret []byte
	bearer string
}

func NewSessionService(secret []byte, bearer string) *SessionService {
	return &SessionService{secret: secret, bearer: bearer}
}

// Create signs a token for the user expiring ttl seconds from now.
func (s *SessionService) Create(userID uint64, ttl int64, ty TokenType) (string, error) {
	claims := Claims{
		Sub: userID,
		Ty:  ty,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(ttl) * time.Second)),
		},
	}

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
	if err != nil {
		return "", apperr.Wrap(apperr.KindAuthorization, "unable to create token", err)
	}

	return tok, nil
}

// Decode extracts the bearer token from a raw Authorization header
// value, verifies its signature and expiry, and returns the claims.
func (s *SessionService) Decode(headerValue string) (*Claims, error) {
	raw, err := s.extract(headerValue)
	if err != nil {
		return nil, err
	}

	claims := new(Claims)
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil || !tok.Valid {
		return nil, apperr.Authorization("invalid token")
	}

	return claims, nil
}

func (s *SessionService) extract(headerValue string) (string, error) {
	prefix := s.bearer + " "
	if !strings.HasPrefix(headerValue, prefix) {
		return "", apperr.Authorization("error extracting bearer token")
	}
	return strings.TrimPrefix(headerValue, prefix), nil
}
