package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_that_is_at_least_32_chars!!"

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = ValidateJWT(token, "another_secret_that_is_32_chars_long!!")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT("user-1", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token, testSecret)
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def", want: "abc.def"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "empty", header: "", wantErr: true},
		{name: "no scheme", header: "abc", wantErr: true},
		{name: "basic", header: "Basic abc", wantErr: true},
		{name: "scheme only", header: "Bearer ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenFromAuth(t *testing.T) {
	token, err := TokenFromAuth(map[string]interface{}{"authorization": "Bearer abc.def"})
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	token, err = TokenFromAuth(map[string]interface{}{"token": "xyz"})
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	_, err = TokenFromAuth(map[string]interface{}{"authorization": "abc"})
	assert.Error(t, err)

	_, err = TokenFromAuth(map[string]interface{}{})
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = TokenFromAuth(nil)
	assert.Error(t, err)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText("  <b>hello</b>  "))
	assert.Equal(t, "", SanitizeText("<script>alert(1)</script>"))
	assert.Equal(t, "rent & bills", SanitizeText("rent & bills"))
	assert.Equal(t, "ab", SanitizeText("a\x00b"))
}

func TestGenerateRandomToken(t *testing.T) {
	a, err := GenerateRandomToken(32)
	require.NoError(t, err)
	b, err := GenerateRandomToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
	assert.False(t, strings.ContainsAny(a, "+/="))
}
