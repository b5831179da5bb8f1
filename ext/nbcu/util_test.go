package nbcu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgrab/util"
)

const testSMIL = `<?xml version="1.0" encoding="UTF-8"?>
<smil xmlns="http://www.w3.org/2005/SMIL21/Language">
  <body>
    <seq>
      <video src="https://example.com/master.m3u8" title="episode">
        <param name="isDVR" value="false" valuetype="data"/>
      </video>
      <textstream src="https://example.com/captions.vtt" systemLanguage="en" type="text/vtt"/>
    </seq>
  </body>
</smil>`

const testSMILError = `<?xml version="1.0" encoding="UTF-8"?>
<smil xmlns="http://www.w3.org/2005/SMIL21/Language">
  <body>
    <seq>
      <ref src="https://example.com/error.mp4" abstract="This content is unavailable in your region" title="error">
        <param name="exception" value="GeoLocationBlocked" valuetype="data"/>
      </ref>
    </seq>
  </body>
</smil>`

func TestParseSMIL(t *testing.T) {
	smil, err := parseSMIL([]byte(testSMIL))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/master.m3u8", smil.VideoSrc)
	assert.Empty(t, smil.Exception)
	require.Len(t, smil.Captions, 1)
	assert.Equal(t, "https://example.com/captions.vtt", smil.Captions[0].Src)
	assert.Equal(t, "en", smil.Captions[0].Language)
	assert.Equal(t, "text/vtt", smil.Captions[0].Type)
}

func TestParseSMILException(t *testing.T) {
	smil, err := parseSMIL([]byte(testSMILError))
	require.NoError(t, err)
	assert.Empty(t, smil.VideoSrc)
	assert.Equal(t, "GeoLocationBlocked", smil.Exception)
	assert.Equal(
		t, "This content is unavailable in your region",
		smil.Abstract,
	)
}

func TestParseSMILInvalid(t *testing.T) {
	_, err := parseSMIL([]byte("<smil><body"))
	assert.Error(t, err)
}

func TestSMILError(t *testing.T) {
	assert.ErrorIs(t, smilError(&smilResult{
		Exception: "GeoLocationBlocked",
	}), util.ErrGeoRestricted)
	assert.ErrorIs(t, smilError(&smilResult{
		Exception: "Expired",
	}), util.ErrUnavailable)
	err := smilError(&smilResult{
		Abstract: "playback denied",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "playback denied")
	assert.ErrorIs(t, smilError(&smilResult{}), util.ErrNoFormats)
}

func TestWebpageSettings(t *testing.T) {
	page := `<html><head>
<script type="application/json" data-drupal-selector="drupal-settings-json">
{"ls_playlist":[{"defaultGuid":"abc123","mpxMediaAccountPid":"HNK2IC"}]}
</script>
</head></html>`
	settings, err := webpageSettings(page)
	require.NoError(t, err)
	assert.Equal(
		t, "abc123",
		settings.Get("ls_playlist.0.defaultGuid").String(),
	)

	_, err = webpageSettings("<html></html>")
	assert.ErrorIs(t, err, ErrNoSettings)
}

func TestAnyToInt(t *testing.T) {
	assert.EqualValues(t, 5, anyToInt(float64(5)))
	assert.EqualValues(t, 12, anyToInt("12"))
	assert.EqualValues(t, 7, anyToInt(nil, "bogus", float64(7)))
	assert.EqualValues(t, 0, anyToInt(nil, "bogus"))
}

func TestAnyToString(t *testing.T) {
	assert.Equal(t, "show", anyToString("show"))
	assert.Equal(t, "first", anyToString([]any{"first", "second"}))
	assert.Equal(t, "fallback", anyToString("", nil, "fallback"))
	assert.Empty(t, anyToString(nil, ""))
}
