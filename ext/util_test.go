package ext

import (
	"context"
	"testing"

	"vgrab/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxByURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		codeName string
		id       string
		groups   map[string]string
	}{
		{
			name:     "bravotv episode",
			url:      "https://www.bravotv.com/top-chef/season-16/episode-15/videos/the-top-chef-season-16-winner-is",
			codeName: "bravotv",
			id:       "the-top-chef-season-16-winner-is",
		},
		{
			name:     "oxygen episode",
			url:      "https://www.oxygen.com/in-ice-cold-blood/season-1/closing-night",
			codeName: "bravotv",
			id:       "closing-night",
		},
		{
			name:     "syfy clip",
			url:      "https://www.syfy.com/face-off/season-13/episode-10/videos/keyed-up",
			codeName: "syfy",
			id:       "keyed-up",
		},
		{
			name:     "nick episode",
			url:      "https://www.nick.com/episodes/u3smw8/wylde-pak-best-summer-ever-season-1-ep-1",
			codeName: "nick",
			id:       "u3smw8",
		},
		{
			name:     "south park clip",
			url:      "https://southpark.cc.com/video-clips/d7wr06/south-park-you-all-agreed-to-counseling",
			codeName: "southpark",
			id:       "d7wr06",
		},
		{
			name:     "south park studios episode",
			url:      "https://www.southparkstudios.com/episodes/h4o269/south-park-stunning-and-brave-season-19-ep-1",
			codeName: "southpark",
			id:       "h4o269",
		},
		{
			name:     "abc go VDKA id",
			url:      "http://abc.go.com/shows/designated-survivor/video/most-recent/VDKA3807643",
			codeName: "abc",
			id:       "VDKA3807643",
			groups:   map[string]string{"sub_domain": "abc.go"},
		},
		{
			name:     "disneynow lowercase id",
			url:      "https://disneynow.com/shows/minnies-bow-toons/video/happy-helpers/vdka4872013",
			codeName: "abc",
			id:       "vdka4872013",
			groups:   map[string]string{"sub_domain": "disneynow"},
		},
		{
			name:     "freeform go show page",
			url:      "http://freeform.go.com/shows/shadowhunters/episodes/season-2/3-parabatai-lost",
			codeName: "abc",
			id:       "",
			groups: map[string]string{
				"sub_domain": "freeform.go",
				"display_id": "3-parabatai-lost",
			},
		},
		{
			name:     "disneynow go video",
			url:      "http://disneynow.go.com/shows/minnies-bow-toons/video/happy-campers/vdka4872013",
			codeName: "abc",
			id:       "vdka4872013",
			groups:   map[string]string{"sub_domain": "disneynow.go"},
		},
		{
			name:     "abc show page",
			url:      "http://watchdisneyxd.go.com/doraemon",
			codeName: "abc",
			id:       "",
			groups:   map[string]string{"display_id": "doraemon"},
		},
		{
			name:     "ninenow episode",
			url:      "https://www.9now.com.au/young-sheldon/season-4/episode-10",
			codeName: "ninenow",
			id:       "episode-10",
			groups:   map[string]string{"type": "episode"},
		},
		{
			name:     "brightcove player",
			url:      "https://players.brightcove.net/4460760524001/default_default/index.html?videoId=6314077430112",
			codeName: "brightcove",
			id:       "6314077430112",
			groups:   map[string]string{"account": "4460760524001"},
		},
		{
			name:     "vimeo video",
			url:      "https://vimeo.com/347119375",
			codeName: "vimeo",
			id:       "347119375",
		},
		{
			name:     "vimeo unlisted",
			url:      "https://vimeo.com/347119375/1bb5b0f9a7",
			codeName: "vimeo",
			id:       "347119375",
			groups:   map[string]string{"unlisted_hash": "1bb5b0f9a7"},
		},
		{
			name:     "vimeo showcase",
			url:      "https://vimeo.com/showcase/2632481",
			codeName: "vimeo_album",
			id:       "2632481",
		},
		{
			name:     "weverse live",
			url:      "https://weverse.io/billlie/live/0-107323480",
			codeName: "weverse",
			id:       "0-107323480",
			groups:   map[string]string{"artist": "billlie"},
		},
		{
			name:     "wrestle universe vod",
			url:      "https://www.wrestle-universe.com/en/videos/dpvzu3",
			codeName: "wrestleuniverse",
			id:       "dpvzu3",
			groups:   map[string]string{"lang": "en"},
		},
		{
			name:     "wrestle universe ppv",
			url:      "https://www.wrestle-universe.com/en/lives/buH9ibbfhdJAY4GKZcEuJX",
			codeName: "wrestleuniverse_ppv",
			id:       "buH9ibbfhdJAY4GKZcEuJX",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			downloadCtx, err := CtxByURL(context.Background(), test.url)
			require.NoError(t, err)
			assert.Equal(t, test.codeName, downloadCtx.Extractor.CodeName)
			assert.Equal(t, test.id, downloadCtx.MatchedContentID)
			for group, expected := range test.groups {
				assert.Equal(t, expected, downloadCtx.MatchedGroups[group], group)
			}
		})
	}
}

func TestCtxByURLNoMatch(t *testing.T) {
	_, err := CtxByURL(context.Background(), "https://example.com/watch?v=abc")
	assert.ErrorIs(t, err, util.ErrURLNotFound)
}

func TestByCodeName(t *testing.T) {
	extractor := ByCodeName("vimeo")
	require.NotNil(t, extractor)
	assert.Equal(t, "Vimeo", extractor.Name)

	assert.Nil(t, ByCodeName("does-not-exist"))
}
