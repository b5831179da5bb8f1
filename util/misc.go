package util

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"
)

func FixURL(url string) string {
	return strings.ReplaceAll(url, "&amp;", "&")
}

// ExtractBaseHost returns the leftmost label of the eTLD+1,
// e.g. "bravotv" for "https://www.bravotv.com/...".
func ExtractBaseHost(rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}
	host := parsedURL.Hostname()
	etld, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("failed to get eTLD+1: %w", err)
	}
	parts := strings.Split(etld, ".")
	if len(parts) == 0 {
		return "", errors.New("invalid domain structure")
	}
	return parts[0], nil
}

// ParseHex decodes a hex string, tolerating a 0x prefix and dashes.
func ParseHex(value string) ([]byte, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "0x")
	value = strings.ReplaceAll(value, "-", "")
	decoded, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex: %w", err)
	}
	return decoded, nil
}

func ParseInt(value string) int64 {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func ParseFloat(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return parsed
}

// ParseAgeLimit maps US TV and MPAA rating strings to a minimum age.
func ParseAgeLimit(rating string) int64 {
	ageLimits := map[string]int64{
		"tv-y":  0,
		"tv-y7": 7,
		"tv-g":  0,
		"tv-pg": 10,
		"tv-14": 14,
		"tv-ma": 17,
		"g":     0,
		"pg":    10,
		"pg-13": 13,
		"r":     16,
		"nc-17": 17,
	}
	limit, ok := ageLimits[strings.ToLower(strings.TrimSpace(rating))]
	if !ok {
		return 0
	}
	return limit
}
