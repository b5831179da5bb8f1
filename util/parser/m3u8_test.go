package parser

import (
	"context"
	"testing"

	"vgrab/enums"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const masterPlaylist = `#EXTM3U
#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="audio",NAME="English",DEFAULT=YES,URI="audio/en/playlist.m3u8"
#EXT-X-STREAM-INF:BANDWIDTH=1280000,RESOLUTION=640x360,CODECS="avc1.4d401f,mp4a.40.2",AUDIO="audio"
low/playlist.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2560000,RESOLUTION=1280x720,CODECS="avc1.640028,mp4a.40.2",AUDIO="audio"
hi/playlist.m3u8
`

const mediaPlaylist = `#EXTM3U
#EXT-X-VERSION:6
#EXT-X-TARGETDURATION:6
#EXT-X-MEDIA-SEQUENCE:5
#EXT-X-KEY:METHOD=AES-128,URI="key.bin",IV=0x000102030405060708090a0b0c0d0e0f
#EXT-X-MAP:URI="init.mp4"
#EXTINF:6.0,
seg0.ts
#EXTINF:4.0,
seg1.ts
#EXT-X-ENDLIST
`

func noFetchOptions() *ParseOptions {
	opts := DefaultParseOptions()
	opts.FetchVariants = false
	return opts
}

func TestParseMasterPlaylist(t *testing.T) {
	formats, err := ParseM3U8ContentWithOptions(
		context.Background(),
		[]byte(masterPlaylist),
		"https://cdn.example.com/vod/master.m3u8",
		noFetchOptions(),
	)
	require.NoError(t, err)
	require.Len(t, formats, 3)

	audio := formats[0]
	assert.Equal(t, "hls-audio", audio.FormatID)
	assert.Equal(t, enums.MediaTypeAudio, audio.Type)
	assert.Equal(t, enums.MediaCodecAAC, audio.AudioCodec)
	assert.Equal(
		t,
		[]string{"https://cdn.example.com/vod/audio/en/playlist.m3u8"},
		audio.URL,
	)

	low := formats[1]
	assert.Equal(t, "hls-1280", low.FormatID)
	assert.Equal(t, enums.MediaTypeVideo, low.Type)
	assert.Equal(t, enums.MediaCodecAVC, low.VideoCodec)
	// audio rides in the alternative rendition, not the variant
	assert.Empty(t, low.AudioCodec)
	assert.Equal(t, int64(640), low.Width)
	assert.Equal(t, int64(360), low.Height)
	assert.Equal(t, int64(1280000), low.Bitrate)

	high := formats[2]
	assert.Equal(t, "hls-2560", high.FormatID)
	assert.Equal(t, int64(1280), high.Width)
	assert.Equal(t, int64(720), high.Height)
}

func TestParseMediaPlaylist(t *testing.T) {
	formats, err := ParseM3U8ContentWithOptions(
		context.Background(),
		[]byte(mediaPlaylist),
		"https://cdn.example.com/vod/media.m3u8",
		noFetchOptions(),
	)
	require.NoError(t, err)
	require.Len(t, formats, 1)

	format := formats[0]
	assert.Equal(t, "hls", format.FormatID)
	assert.Equal(t, int64(10), format.Duration)
	assert.Equal(t, []string{
		"https://cdn.example.com/vod/seg0.ts",
		"https://cdn.example.com/vod/seg1.ts",
	}, format.Segments)
	assert.Equal(t, "https://cdn.example.com/vod/init.mp4", format.InitSegment)

	key := format.DecryptionKey
	require.NotNil(t, key)
	assert.Equal(t, "AES-128", key.Method)
	assert.Equal(t, "https://cdn.example.com/vod/key.bin", key.URI)
	assert.Equal(t, []byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	}, key.IV)
	assert.Equal(t, 5, key.MediaSequence)
}

func TestParseMediaPlaylistPropagatesQuery(t *testing.T) {
	opts := noFetchOptions()
	opts.PropagateQuery = true
	formats, err := ParseM3U8ContentWithOptions(
		context.Background(),
		[]byte(mediaPlaylist),
		"https://cdn.example.com/vod/media.m3u8?__gda__=deadbeef_cafe",
		opts,
	)
	require.NoError(t, err)
	require.Len(t, formats, 1)

	format := formats[0]
	assert.Equal(t, "__gda__=deadbeef_cafe", format.SegmentQuery)
	assert.Equal(
		t,
		"https://cdn.example.com/vod/seg0.ts?__gda__=deadbeef_cafe",
		format.Segments[0],
	)
	assert.Equal(
		t,
		"https://cdn.example.com/vod/init.mp4?__gda__=deadbeef_cafe",
		format.InitSegment,
	)
}

func TestParseInvalidPlaylist(t *testing.T) {
	_, err := ParseM3U8ContentWithOptions(
		context.Background(),
		[]byte("not a playlist"),
		"https://cdn.example.com/x.m3u8",
		noFetchOptions(),
	)
	assert.Error(t, err)
}
