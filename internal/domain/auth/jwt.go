// Package auth turns console session tokens into explicit sessions.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appctx "storeops/internal/core/context"
)

// TokenConfig holds session token configuration.
type TokenConfig struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// DefaultTokenConfig returns default token configuration.
func DefaultTokenConfig(secret string) TokenConfig {
	return TokenConfig{
		Secret:   secret,
		Issuer:   "storeops",
		TokenTTL: 12 * time.Hour,
	}
}

// Claims are the console session claims.
type Claims struct {
	jwt.RegisteredClaims
	SessionID    string   `json:"sid"`
	UserID       string   `json:"uid"`
	UserName     string   `json:"name,omitempty"`
	StoreID      string   `json:"store"`
	StoreKind    string   `json:"storeType,omitempty"`
	Roles        []string `json:"roles,omitempty"`
	BackendToken string   `json:"bt"`
}

// ErrNoStore is returned for a token that does not name a store.
var ErrNoStore = errors.New("token has no store")

// TokenService signs and validates session tokens (HS256).
type TokenService struct {
	config TokenConfig
	now    func() time.Time
}

// NewTokenService creates a token service.
func NewTokenService(config TokenConfig) *TokenService {
	return &TokenService{config: config, now: time.Now}
}

// Issue signs a token for sess. A missing SessionID is generated.
func (s *TokenService) Issue(sess appctx.Session) (string, time.Time, error) {
	if sess.SessionID == "" {
		sess.SessionID = uuid.NewString()
	}
	now := s.now()
	expiresAt := now.Add(s.config.TokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SessionID:    sess.SessionID,
		UserID:       sess.UserID,
		UserName:     sess.UserName,
		StoreID:      sess.StoreID,
		StoreKind:    sess.StoreKind,
		Roles:        sess.Roles,
		BackendToken: sess.Token,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses tokenString and returns the session it carries.
func (s *TokenService) Validate(tokenString string) (*appctx.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	},
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.StoreID == "" {
		return nil, ErrNoStore
	}

	return &appctx.Session{
		SessionID: claims.SessionID,
		UserID:    claims.UserID,
		UserName:  claims.UserName,
		StoreID:   claims.StoreID,
		StoreKind: claims.StoreKind,
		Roles:     claims.Roles,
		Token:     claims.BackendToken,
	}, nil
}
