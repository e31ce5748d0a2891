package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "trip-keeper"
	testKey    = "secret-key"
)

// signClaims signs claims with method and key, bypassing GenerateJWTToken's
// parameter checks.
func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestGenerateJWTToken(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 123, time.Hour, testKey)
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(123), token.UserID)
	assert.Equal(t, testIssuer, token.Issuer)
	assert.Equal(t, "123", token.Subject)
	assert.NotEmpty(t, token.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.Expiry(), 2*time.Second)

	other, err := GenerateJWTToken(testIssuer, 123, time.Hour, testKey)
	require.NoError(t, err)
	assert.NotEqual(t, token.ID, other.ID, "every token gets its own jti")
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, testKey},
		{"zero duration", testIssuer, 0, testKey},
		{"negative duration", testIssuer, -time.Minute, testKey},
		{"empty key", testIssuer, time.Hour, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 1, tt.duration, tt.key)
			assert.ErrorIs(t, err, ErrInvalidTokenParams)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	generated, err := GenerateJWTToken(testIssuer, 456, 5*time.Minute, testKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, testKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, int64(456), parsed.UserID)
	assert.Equal(t, generated.ID, parsed.ID)
	assert.Equal(t, generated.SignedString, parsed.SignedString)
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	now := time.Now()
	valid := func() *jwt.RegisteredClaims {
		return &jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
	noExpiry := valid()
	noExpiry.ExpiresAt = nil
	wrongIssuer := valid()
	wrongIssuer.Issuer = "someone-else"
	noSubject := valid()
	noSubject.Subject = ""
	textSubject := valid()
	textSubject.Subject = "ann"

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "expired past leeway", token: signClaims(t, jwt.SigningMethodHS256, []byte(testKey), expired), wantErr: jwt.ErrTokenExpired},
		{name: "no expiry", token: signClaims(t, jwt.SigningMethodHS256, []byte(testKey), noExpiry), wantErr: jwt.ErrTokenRequiredClaimMissing},
		{name: "wrong issuer", token: signClaims(t, jwt.SigningMethodHS256, []byte(testKey), wrongIssuer), wantErr: jwt.ErrTokenInvalidIssuer},
		{name: "wrong key", token: signClaims(t, jwt.SigningMethodHS256, []byte("other-key"), valid()), wantErr: jwt.ErrTokenSignatureInvalid},
		{name: "other hmac size", token: signClaims(t, jwt.SigningMethodHS512, []byte(testKey), valid()), wantErr: jwt.ErrTokenSignatureInvalid},
		{name: "no subject", token: signClaims(t, jwt.SigningMethodHS256, []byte(testKey), noSubject), wantErr: ErrTokenWithoutSubject},
		{name: "subject is not a number", token: signClaims(t, jwt.SigningMethodHS256, []byte(testKey), textSubject)},
		{name: "malformed", token: "not.a.token", wantErr: jwt.ErrTokenMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, testKey, testIssuer)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAndParseJWTToken_Leeway(t *testing.T) {
	claims := &jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-5 * time.Second)),
	}

	parsed, err := ValidateAndParseJWTToken(signClaims(t, jwt.SigningMethodHS256, []byte(testKey), claims), testKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer   abc", want: "abc"},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "", wantErr: true},
		{header: "Bearer a b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
