package paramount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgrab/enums"
)

const testPageData = `<html><body><script>
window.__DATA__ = {
  "children": [
    {"type": "Header", "children": []},
    {
      "type": "MainContainer",
      "children": [
        {"type": "Breadcrumbs"},
        {
          "type": "VideoPlayer",
          "props": {
            "media": {
              "video": {
                "config": {
                  "uri": "mgid:arc:episode:nick.com:f4e21c45-5faa-40c8-9d6f-allowed"
                },
                "detail": {"title": "The Quiet One"}
              }
            }
          }
        }
      ]
    }
  ]
};
</script></body></html>`

func TestFindVideoPlayer(t *testing.T) {
	player, err := findVideoPlayer(testPageData)
	require.NoError(t, err)
	assert.Equal(
		t,
		"mgid:arc:episode:nick.com:f4e21c45-5faa-40c8-9d6f-allowed",
		player.Get("props.media.video.config.uri").String(),
	)
	assert.Equal(
		t, "The Quiet One",
		player.Get("props.media.video.detail.title").String(),
	)
}

func TestFindVideoPlayerMissing(t *testing.T) {
	_, err := findVideoPlayer("<html></html>")
	assert.ErrorIs(t, err, ErrNoPageData)

	_, err = findVideoPlayer(
		`<script>window.__DATA__ = {"children": []};</script>`)
	assert.ErrorIs(t, err, ErrNoVideoPlayer)
}

func TestSubtitleFormat(t *testing.T) {
	assert.Equal(t, enums.SubtitleFormatVTT, subtitleFormat("webvtt"))
	assert.Equal(t, enums.SubtitleFormatVTT, subtitleFormat("vtt"))
	assert.Equal(t, enums.SubtitleFormatSRT, subtitleFormat("srt"))
	assert.Equal(t, enums.SubtitleFormatTTML, subtitleFormat("ttml"))
}

func TestAnyToInt(t *testing.T) {
	assert.EqualValues(t, 3, anyToInt(float64(3)))
	assert.EqualValues(t, 14, anyToInt("14"))
	assert.EqualValues(t, 0, anyToInt("s2"))
	assert.EqualValues(t, 0, anyToInt(nil))
}
