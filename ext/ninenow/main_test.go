package ninenow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgrab/util"
)

func TestPlaybackID(t *testing.T) {
	id, err := playbackID(&VideoInfo{BrightcoveID: "6314077430112"})
	require.NoError(t, err)
	assert.Equal(t, "6314077430112", id)

	id, err = playbackID(&VideoInfo{ReferenceID: "clip-123"})
	require.NoError(t, err)
	assert.Equal(t, "ref:clip-123", id)

	// protected clips report drm even when no brightcove id is exposed
	_, err = playbackID(&VideoInfo{DRM: true})
	assert.ErrorIs(t, err, util.ErrDRMProtected)

	_, err = playbackID(&VideoInfo{})
	assert.ErrorIs(t, err, ErrNoBrightcoveID)
}
