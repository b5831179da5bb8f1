package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// header {"alg":"HS256","typ":"JWT"}, payload {"exp":1700000000,"sub":"abc"}
const testToken = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
	"eyJleHAiOjE3MDAwMDAwMDAsInN1YiI6ImFiYyJ9.sig"

func TestDecodeJWTPayload(t *testing.T) {
	claims, err := DecodeJWTPayload(testToken)
	require.NoError(t, err)
	assert.Equal(t, float64(1700000000), claims["exp"])
	assert.Equal(t, "abc", claims["sub"])
}

func TestDecodeJWTPayloadMalformed(t *testing.T) {
	_, err := DecodeJWTPayload("not.a-jwt")
	assert.Error(t, err)

	_, err = DecodeJWTPayload("a.!!!.c")
	assert.Error(t, err)
}

func TestJWTExpiry(t *testing.T) {
	assert.Equal(t, int64(1700000000), JWTExpiry(testToken))
	assert.Equal(t, int64(0), JWTExpiry("garbage"))
}
