package models

import (
	"testing"

	"vgrab/enums"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultVideoFormat(t *testing.T) {
	media := &Media{}
	media.AddFormat(&MediaFormat{
		Type:       enums.MediaTypeVideo,
		FormatID:   "hls-800",
		VideoCodec: enums.MediaCodecAVC,
		AudioCodec: enums.MediaCodecAAC,
		Bitrate:    800,
		Height:     480,
	})
	media.AddFormat(&MediaFormat{
		Type:       enums.MediaTypeVideo,
		FormatID:   "hls-2400",
		VideoCodec: enums.MediaCodecAVC,
		AudioCodec: enums.MediaCodecAAC,
		Bitrate:    2400,
		Height:     1080,
	})
	media.AddFormat(&MediaFormat{
		Type:       enums.MediaTypeVideo,
		FormatID:   "hls-3000-hevc",
		VideoCodec: enums.MediaCodecHEVC,
		AudioCodec: enums.MediaCodecAAC,
		Bitrate:    3000,
		Height:     1080,
	})

	best := media.GetDefaultVideoFormat()
	require.NotNil(t, best)
	// avc wins over a higher-bitrate hevc rendition
	assert.Equal(t, "hls-2400", best.FormatID)
	assert.True(t, best.IsDefault)
}

func TestGetDefaultVideoFormatFallsBackToAnyCodec(t *testing.T) {
	media := &Media{}
	media.AddFormat(&MediaFormat{
		Type:       enums.MediaTypeVideo,
		FormatID:   "vp9",
		VideoCodec: enums.MediaCodecVP9,
		Bitrate:    1000,
	})

	best := media.GetDefaultVideoFormat()
	require.NotNil(t, best)
	assert.Equal(t, "vp9", best.FormatID)
}

func TestGetDefaultAudioFormat(t *testing.T) {
	media := &Media{}
	media.AddFormat(&MediaFormat{
		Type:       enums.MediaTypeAudio,
		FormatID:   "audio-opus",
		AudioCodec: enums.MediaCodecOpus,
		Bitrate:    160,
	})
	media.AddFormat(&MediaFormat{
		Type:       enums.MediaTypeAudio,
		FormatID:   "audio-aac",
		AudioCodec: enums.MediaCodecAAC,
		Bitrate:    128,
	})

	best := media.GetDefaultAudioFormat()
	require.NotNil(t, best)
	assert.Equal(t, "audio-aac", best.FormatID)
}

func TestGetDefaultFormatPrefersVideo(t *testing.T) {
	media := &Media{}
	media.AddFormat(&MediaFormat{
		Type:       enums.MediaTypeAudio,
		FormatID:   "audio",
		AudioCodec: enums.MediaCodecAAC,
	})
	media.AddFormat(&MediaFormat{
		Type:       enums.MediaTypeVideo,
		FormatID:   "video",
		VideoCodec: enums.MediaCodecAVC,
	})

	best := media.GetDefaultFormat()
	require.NotNil(t, best)
	assert.Equal(t, "video", best.FormatID)
}

func TestGetSortedFormatsDeduplicates(t *testing.T) {
	media := &Media{}
	// same codec and resolution, different bitrate: one survivor
	media.AddFormat(&MediaFormat{
		Type:       enums.MediaTypeVideo,
		FormatID:   "low",
		VideoCodec: enums.MediaCodecAVC,
		Width:      1280,
		Height:     720,
		Bitrate:    1200,
	})
	media.AddFormat(&MediaFormat{
		Type:       enums.MediaTypeVideo,
		FormatID:   "high",
		VideoCodec: enums.MediaCodecAVC,
		Width:      1280,
		Height:     720,
		Bitrate:    2500,
	})
	media.AddFormat(&MediaFormat{
		Type:       enums.MediaTypeAudio,
		FormatID:   "audio",
		AudioCodec: enums.MediaCodecAAC,
		Bitrate:    128,
	})

	sorted := media.GetSortedFormats()
	require.Len(t, sorted, 2)
	assert.Equal(t, "high", sorted[0].FormatID)
	assert.Equal(t, "audio", sorted[1].FormatID)
}

func TestHasVideoHasAudio(t *testing.T) {
	media := &Media{}
	assert.False(t, media.HasVideo())
	assert.False(t, media.HasAudio())

	media.AddFormat(&MediaFormat{Type: enums.MediaTypeVideo})
	assert.True(t, media.HasVideo())
	assert.False(t, media.HasAudio())
}

func TestSetDescriptionIgnoresEmpty(t *testing.T) {
	media := &Media{}
	media.SetDescription("")
	assert.False(t, media.Description.Valid)

	media.SetDescription("hello")
	assert.Equal(t, "hello", media.Description.String)
}

func TestGetFormat(t *testing.T) {
	media := &Media{}
	media.AddFormat(&MediaFormat{FormatID: "a"})
	media.AddFormat(&MediaFormat{FormatID: "b"})

	assert.Equal(t, "b", media.GetFormat("b").FormatID)
	assert.Nil(t, media.GetFormat("c"))
}
