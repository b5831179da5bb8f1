package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	decoded, err := ParseHex("deadbeef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, decoded)

	decoded, err = ParseHex("0xDEADBEEF")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, decoded)

	decoded, err = ParseHex("de-ad-be-ef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, decoded)

	_, err = ParseHex("not hex")
	assert.Error(t, err)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, int64(42), ParseInt("42"))
	assert.Equal(t, int64(42), ParseInt(" 42 "))
	assert.Equal(t, int64(0), ParseInt("forty-two"))
	assert.Equal(t, int64(0), ParseInt(""))
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 1.5, ParseFloat("1.5"))
	assert.Equal(t, 0.0, ParseFloat("nope"))
}

func TestParseAgeLimit(t *testing.T) {
	assert.Equal(t, int64(14), ParseAgeLimit("TV-14"))
	assert.Equal(t, int64(17), ParseAgeLimit("tv-ma"))
	assert.Equal(t, int64(13), ParseAgeLimit("PG-13"))
	assert.Equal(t, int64(0), ParseAgeLimit("TV-G"))
	assert.Equal(t, int64(0), ParseAgeLimit("unrated"))
}

func TestFixURL(t *testing.T) {
	assert.Equal(
		t,
		"https://example.com/?a=1&b=2",
		FixURL("https://example.com/?a=1&amp;b=2"),
	)
}

func TestExtractBaseHost(t *testing.T) {
	host, err := ExtractBaseHost("https://www.bravotv.com/top-chef/season-16")
	require.NoError(t, err)
	assert.Equal(t, "bravotv", host)

	host, err = ExtractBaseHost("https://api.wrestle-universe.com/v1/videoEpisodes/x")
	require.NoError(t, err)
	assert.Equal(t, "wrestle-universe", host)

	_, err = ExtractBaseHost("://not a url")
	assert.Error(t, err)
}
