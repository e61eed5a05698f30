package auth

import (
	"strings"
	"testing"
	"time"

	"movie-recommendation/internal/config"
	"movie-recommendation/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager(config.AuthConfig{
		JWTSecret:  strings.Repeat("k", 32),
		Issuer:     "test-issuer",
		AccessTTL:  5 * time.Minute,
		RefreshTTL: time.Hour,
	})
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.NoError(t, CheckPasswordHash(hash, "s3cret"))
	require.Error(t, CheckPasswordHash(hash, "wrong"))
}

func TestIssuePairAndValidate(t *testing.T) {
	m := newTestManager()

	pair, err := m.IssuePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	userID, err := m.Validate(pair.Access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	userID, err = m.Validate(pair.Refresh, RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestValidateRejectsWrongTokenType(t *testing.T) {
	m := newTestManager()
	pair, err := m.IssuePair(1)
	require.NoError(t, err)

	_, err = m.Validate(pair.Refresh, AccessToken)
	require.ErrorIs(t, err, models.ErrInvalidToken)

	_, err = m.Validate(pair.Access, RefreshToken)
	require.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := newTestManager()
	issuedAt := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issuedAt }

	pair, err := m.IssuePair(1)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Validate(pair.Access, AccessToken)
	require.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager(config.AuthConfig{
		JWTSecret:  strings.Repeat("x", 32),
		Issuer:     "test-issuer",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Minute,
	})

	pair, err := other.IssuePair(1)
	require.NoError(t, err)

	_, err = m.Validate(pair.Access, AccessToken)
	require.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	m := newTestManager()
	claims := Claims{
		TokenType: AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Validate(unsigned, AccessToken)
	require.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestRefresh(t *testing.T) {
	m := newTestManager()
	pair, err := m.IssuePair(7)
	require.NoError(t, err)

	access, err := m.Refresh(pair.Refresh)
	require.NoError(t, err)

	userID, err := m.Validate(access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	_, err = m.Refresh(pair.Access)
	require.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc.def", want: "abc.def"},
		{name: "extra spaces", header: "Bearer   abc  ", want: "abc"},
		{name: "missing", header: "", wantErr: ErrNoAuthorizationHeader},
		{name: "wrong scheme", header: "Basic abc", wantErr: ErrMalformedAuthHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrNoTokenInAuthHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
