package lib

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890"

func TestGenerateAndVerifyJWT(t *testing.T) {
	token, err := GenerateJWT("64b7f0c2a1b2c3d4e5f60718", "Jane", "//avatar", testSecret, time.Hour)
	require.NoError(t, err)

	sub, err := VerifyJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", sub)
}

func TestVerifyJWTRejects(t *testing.T) {
	valid, err := GenerateJWT("abc", "Jane", "", testSecret, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateJWT("abc", "Jane", "", testSecret, -time.Minute)
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "abc"})
	noExpToken, err := noExp.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	noSubToken, err := noSub.SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "wrong secret", token: valid, secret: "another-secret"},
		{name: "expired", token: expired, secret: testSecret},
		{name: "missing exp", token: noExpToken, secret: testSecret},
		{name: "missing subject", token: noSubToken, secret: testSecret},
		{name: "garbage", token: "not.a.token", secret: testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyJWT(tt.token, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestGravatar(t *testing.T) {
	a := Gravatar("Jane@Example.com ")
	b := Gravatar("jane@example.com")
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "//www.gravatar.com/avatar/"))
	assert.True(t, strings.HasSuffix(a, "?s=200&r=pg&d=mm"))
}
