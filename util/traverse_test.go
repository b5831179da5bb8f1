package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraverseJSON(t *testing.T) {
	data := map[string]any{
		"props": map[string]any{
			"pageProps": map[string]any{
				"eventFallbackData": map[string]any{
					"displayName": "main event",
				},
			},
		},
		"query": []any{
			map[string]any{"slug": "main-event"},
		},
	}

	found := TraverseJSON(data, "eventFallbackData")
	object, ok := found.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "main event", object["displayName"])

	assert.Equal(t, "main-event", TraverseJSON(data, "slug"))
	assert.Equal(
		t, "main event",
		TraverseJSON(data, []string{"pageProps", "eventFallbackData", "displayName"}),
	)
	assert.Nil(t, TraverseJSON(data, "missing"))
	assert.Nil(t, TraverseJSON(data, 42))
}
