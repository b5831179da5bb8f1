package parser

import (
	"context"
	"testing"

	"vgrab/enums"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMPD = `<?xml version="1.0" encoding="utf-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static" mediaPresentationDuration="PT30S" minBufferTime="PT2S" profiles="urn:mpeg:dash:profile:isoff-live:2011">
  <Period>
    <AdaptationSet mimeType="video/mp4" segmentAlignment="true">
      <SegmentTemplate timescale="1000" duration="10000" startNumber="1" initialization="init-$RepresentationID$.mp4" media="chunk-$RepresentationID$-$Number%05d$.m4s"/>
      <Representation id="video-1" bandwidth="2000000" width="1280" height="720" codecs="avc1.640028"/>
    </AdaptationSet>
    <AdaptationSet mimeType="audio/mp4">
      <SegmentTemplate timescale="1000" duration="10000" startNumber="1" initialization="init-$RepresentationID$.mp4" media="chunk-$RepresentationID$-$Number%05d$.m4s"/>
      <Representation id="audio-1" bandwidth="128000" codecs="mp4a.40.2"/>
    </AdaptationSet>
  </Period>
</MPD>`

func TestParseMPDContent(t *testing.T) {
	formats, err := ParseMPDContentWithOptions(
		context.Background(),
		[]byte(testMPD),
		"https://cdn.example.com/dash/manifest.mpd",
		noFetchOptions(),
	)
	require.NoError(t, err)
	require.Len(t, formats, 2)

	video := formats[0]
	assert.Equal(t, "dash-2000", video.FormatID)
	assert.Equal(t, enums.MediaTypeVideo, video.Type)
	assert.Equal(t, enums.MediaCodecAVC, video.VideoCodec)
	assert.Equal(t, int64(1280), video.Width)
	assert.Equal(t, int64(720), video.Height)
	assert.Equal(t, int64(30), video.Duration)
	assert.Equal(
		t,
		"https://cdn.example.com/dash/init-video-1.mp4",
		video.InitSegment,
	)
	assert.Equal(t, []string{
		"https://cdn.example.com/dash/chunk-video-1-00001.m4s",
		"https://cdn.example.com/dash/chunk-video-1-00002.m4s",
		"https://cdn.example.com/dash/chunk-video-1-00003.m4s",
	}, video.Segments)
	assert.Nil(t, video.DecryptionKey)

	audio := formats[1]
	assert.Equal(t, "dash-128", audio.FormatID)
	assert.Equal(t, enums.MediaTypeAudio, audio.Type)
	assert.Equal(t, enums.MediaCodecAAC, audio.AudioCodec)
}

func TestParseMPDInvalid(t *testing.T) {
	_, err := ParseMPDContentWithOptions(
		context.Background(),
		[]byte("not xml"),
		"https://cdn.example.com/dash/manifest.mpd",
		noFetchOptions(),
	)
	assert.Error(t, err)
}
