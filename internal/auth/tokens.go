package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"movie-recommendation/internal/config"
	"movie-recommendation/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrTokenSigningMethod = errors.New("unexpected signing method")
	ErrWrongTokenType     = errors.New("wrong token type")
	ErrTokenWithNoSubject = errors.New("token has no subject")
)

type Claims struct {
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 access/refresh token pairs.
type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

func (m *TokenManager) IssuePair(userID uint) (*models.TokenPair, error) {
	refresh, err := m.issue(userID, RefreshToken, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	access, err := m.issue(userID, AccessToken, m.accessTTL)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{Refresh: refresh, Access: access}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (m *TokenManager) Refresh(refreshToken string) (string, error) {
	userID, err := m.Validate(refreshToken, RefreshToken)
	if err != nil {
		return "", err
	}
	return m.issue(userID, AccessToken, m.accessTTL)
}

// Validate checks signature, expiry and token type and returns the user id.
// Every failure wraps models.ErrInvalidToken.
func (m *TokenManager) Validate(tokenString string, want TokenType) (uint, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenSigningMethod
			}
			return m.secret, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, models.ErrInvalidToken
	}
	if claims.TokenType != want {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidToken, ErrWrongTokenType)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidToken, ErrTokenWithNoSubject)
	}
	return uint(userID), nil
}

func (m *TokenManager) issue(userID uint, tokenType TokenType, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
