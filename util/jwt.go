package util

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// DecodeJWTPayload decodes the claims of a JWT without verifying the
// signature. Good enough for reading expiry off session tokens.
func DecodeJWTPayload(token string) (map[string]any, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("malformed JWT")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT payload: %w", err)
	}
	var claims map[string]any
	if err := sonic.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse JWT claims: %w", err)
	}
	return claims, nil
}

// JWTExpiry returns the exp claim as Unix seconds, or 0.
func JWTExpiry(token string) int64 {
	claims, err := DecodeJWTPayload(token)
	if err != nil {
		return 0
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return 0
	}
	return int64(exp)
}
