package abc

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgrab/util"
)

func TestScrapeVideoID(t *testing.T) {
	abcData := `<script>
window["__abc_com__"] = {"page": {"content": {"video": {"layout":
{"videoid": "vdka4872013"}}}}};
</script>`
	assert.Equal(t, "vdka4872013", scrapeVideoID(abcData, ""))

	nested := `<script>
window["__abc_com__"] = {"page": {"content": {"video": {"layout":
{"video": {"id": "VDKA22600213"}}}}}};
</script>`
	assert.Equal(t, "VDKA22600213", scrapeVideoID(nested, ""))

	// some pages wrap the attribute value in a second set of quotes
	assert.Equal(
		t, "VDKA3609139",
		scrapeVideoID(`<div data-video-id="'VDKA3609139'">`, ""),
	)
	assert.Equal(
		t, "vdka12345",
		scrapeVideoID(`{"videoIdCode": "vdka12345"}`, ""),
	)
	assert.Equal(
		t, "VDKA999",
		scrapeVideoID(`{"videoid": "VDKA999"}`, ""),
	)
	assert.Equal(
		t, "VDKA777",
		scrapeVideoID(`{"id": "VDKA777"}`, ""),
	)
	assert.Equal(t, "VDKA3807643", scrapeVideoID("<html></html>", "VDKA3807643"))
}

func TestAirdateNesting(t *testing.T) {
	raw := `{"id":"VDKA1234","airdates":{"airdate":["2017-01-02T12:00:00Z"]}}`
	var videoData VideoData
	require.NoError(t, sonic.Unmarshal([]byte(raw), &videoData))
	assert.Equal(t, "2017-01-02T12:00:00Z", videoData.Airdates.First())
	assert.EqualValues(
		t, 1483358400,
		util.ParseTimestamp(videoData.Airdates.First()),
	)

	var empty VideoData
	require.NoError(t, sonic.Unmarshal([]byte(`{"id":"VDKA1234"}`), &empty))
	assert.Empty(t, empty.Airdates.First())
}

func TestScrapeBrand(t *testing.T) {
	assert.Equal(t, "002", scrapeBrand(`<div data-brand="002">`))
	assert.Equal(t, "010", scrapeBrand(`<div data-page-brand='010'>`))
	assert.Equal(t, defaultBrand, scrapeBrand("<html></html>"))
}

func TestScrapeShowID(t *testing.T) {
	match := showIDPattern.FindStringSubmatch(`<section data-show-id="SH5517171">`)
	assert.NotNil(t, match)
	assert.Equal(t, "SH5517171", match[1])
}

func TestProgressiveFormat(t *testing.T) {
	format := progressiveFormat(
		&Asset{Format: "MP4"},
		"https://cdn.example.com/media/mp4/source/episode_source.mp4",
	)
	assert.Equal(t, "MP4-SOURCE", format.FormatID)
	assert.Zero(t, format.Height)

	format = progressiveFormat(
		&Asset{},
		"https://cdn.example.com/media/1280x720/episode.mp4",
	)
	assert.Equal(t, "720P", format.FormatID)
	assert.EqualValues(t, 1280, format.Width)
	assert.EqualValues(t, 720, format.Height)

	format = progressiveFormat(
		&Asset{},
		"https://cdn.example.com/media/episode.mp4",
	)
	assert.Equal(t, "http", format.FormatID)
}

func TestAssetExt(t *testing.T) {
	assert.Equal(t, "m3u8", assetExt("https://example.com/master.m3u8"))
	assert.Equal(t, "mp4", assetExt("https://example.com/video.mp4?token=abc"))
	assert.Empty(t, assetExt("https://example.com/no-extension"))
}

func TestParseIntAny(t *testing.T) {
	assert.EqualValues(t, 7, parseIntAny(float64(7)))
	assert.EqualValues(t, 21, parseIntAny("21"))
	assert.EqualValues(t, 0, parseIntAny("x"))
	assert.EqualValues(t, 0, parseIntAny(nil))
}
