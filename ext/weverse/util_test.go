package weverse

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignURL(t *testing.T) {
	apiURL := "https://global.apis.naver.com/weverse/wevweb/post/v1.0/post-1-234567?fieldSet=postV1"
	wmd := signURL(apiURL, 1700000000000)
	assert.Equal(t, "EdTB9lYYQ+8pY2c0w29QjP5A5ao=", wmd)
}

func TestSignURLTruncatesLongURLs(t *testing.T) {
	long := "https://global.apis.naver.com/weverse/wevweb/?" + strings.Repeat("a", 400)
	// only the first 255 characters are signed
	assert.Equal(t, signURL(long, 1234), signURL(long[:255]+"extra", 1234))
}

func TestJoinQuery(t *testing.T) {
	query := url.Values{"__gda__": []string{"deadbeef"}}
	assert.Equal(
		t, "https://cdn.example.com/hls/master.m3u8?__gda__=deadbeef",
		joinQuery("https://cdn.example.com/hls/master.m3u8", query),
	)
	assert.Equal(
		t, "https://cdn.example.com/hls/master.m3u8?v=2&__gda__=deadbeef",
		joinQuery("https://cdn.example.com/hls/master.m3u8?v=2", query),
	)
	assert.Equal(
		t, "https://cdn.example.com/hls/master.m3u8",
		joinQuery("https://cdn.example.com/hls/master.m3u8", url.Values{}),
	)
}
