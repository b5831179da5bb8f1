package webpage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextJSData(t *testing.T) {
	page := `<html><body>
<script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"title":"hello"}}}</script>
</body></html>`

	data, err := NextJSData(page)
	require.NoError(t, err)
	props, ok := data["props"].(map[string]any)
	require.True(t, ok)
	pageProps, ok := props["pageProps"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hello", pageProps["title"])
}

func TestNextJSDataMissing(t *testing.T) {
	_, err := NextJSData("<html></html>")
	assert.Error(t, err)
}

func TestNextFlightChunks(t *testing.T) {
	page := `<html>
<script>self.__next_f.push([1,"first chunk"])</script>
<script>self.__next_f.push([1,"second chunk"]);</script>
</html>`

	chunks := NextFlightChunks(page)
	assert.Equal(t, []string{"first chunk", "second chunk"}, chunks)
}

func TestElementHTMLByClass(t *testing.T) {
	page := `<div class="header"></div>
<div class="tve-video-deck-app loaded" data-guid="abc123" data-entitlement='auth'>
</div>`

	element := ElementHTMLByClass("tve-video-deck-app", page)
	require.NotEmpty(t, element)

	attributes := ExtractAttributes(element)
	assert.Equal(t, "abc123", attributes["data-guid"])
	assert.Equal(t, "auth", attributes["data-entitlement"])
}

func TestElementHTMLByClassMissing(t *testing.T) {
	assert.Empty(t, ElementHTMLByClass("nope", "<div class='other'></div>"))
}

func TestExtractAttributesUnescapes(t *testing.T) {
	attributes := ExtractAttributes(`<iframe src="https://example.com/embed?a=1&amp;b=2">`)
	assert.Equal(t, "https://example.com/embed?a=1&b=2", attributes["src"])
}
