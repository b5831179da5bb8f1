// Package brightcove talks to the Brightcove playback API, both for
// player pages on players.brightcove.net and on behalf of sites that
// host their video there.
package brightcove

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"vgrab/enums"
	"vgrab/models"
	"vgrab/util"
	"vgrab/util/networking"
	"vgrab/util/parser"

	"github.com/bytedance/sonic"
)

const (
	playerBase   = "https://players.brightcove.net"
	playbackBase = "https://edge.api.brightcove.com/playback/v1"
)

var policyKeyPattern = regexp.MustCompile(`policyKey\s*[:=]\s*(?:"([^"]+)"|'([^']+)')`)

var (
	policyKeyCache = make(map[string]string)
	policyKeyMutex sync.Mutex
)

var Extractor = &models.Extractor{
	Name:       "Brightcove",
	CodeName:   "brightcove",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(`https?://players\.brightcove\.net/(?P<account>\d+)/(?P<player>[^/_]+)_(?P<embed>[^/]+)/index\.html\?.*videoId=(?P<id>ref:[^&#]+|\d+)`),
	Host:       []string{"brightcove"},

	Run: func(ctx *models.DownloadContext) (*models.ExtractorResponse, error) {
		media, err := GetMedia(
			ctx,
			ctx.MatchedGroups["account"],
			ctx.MatchedGroups["player"],
			ctx.MatchedGroups["embed"],
			ctx.MatchedContentID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: []*models.Media{media},
		}, nil
	},
}

// GetMedia runs the playback flow for a hosted video: recover the
// player's policy key, hit the playback API and normalize the
// response. Exposed for sites that embed Brightcove players.
func GetMedia(
	ctx *models.DownloadContext,
	accountID string,
	playerID string,
	embedID string,
	videoID string,
) (*models.Media, error) {
	policyKey, err := getPolicyKey(ctx, accountID, playerID, embedID)
	if err != nil {
		return nil, err
	}

	playback, err := getPlayback(ctx, accountID, videoID, policyKey)
	if err != nil {
		return nil, err
	}

	media := ctx.Extractor.NewMedia(videoID, ctx.MatchedContentURL)
	if err := playbackToMedia(ctx, media, playback); err != nil {
		return nil, err
	}
	return media, nil
}

// getPolicyKey scrapes the policy key from the player bundle. keyed
// by account and player since embeds share the key.
func getPolicyKey(
	ctx *models.DownloadContext,
	accountID string,
	playerID string,
	embedID string,
) (string, error) {
	if playerID == "" {
		playerID = "default"
	}
	if embedID == "" {
		embedID = "default"
	}
	cacheKey := accountID + "/" + playerID + "_" + embedID

	policyKeyMutex.Lock()
	defer policyKeyMutex.Unlock()
	if key, ok := policyKeyCache[cacheKey]; ok {
		return key, nil
	}

	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	playerURL := fmt.Sprintf(
		"%s/%s/%s_%s/index.min.js",
		playerBase, accountID, playerID, embedID,
	)
	resp, err := util.FetchPage(ctx.Context, client, http.MethodGet, playerURL, nil, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch player: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad response: %s", resp.Status)
	}
	bundle, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read player: %w", err)
	}

	match := policyKeyPattern.FindSubmatch(bundle)
	if match == nil {
		return "", ErrNoPolicyKey
	}
	key := string(match[1])
	if key == "" {
		key = string(match[2])
	}
	policyKeyCache[cacheKey] = key
	return key, nil
}

func getPlayback(
	ctx *models.DownloadContext,
	accountID string,
	videoID string,
	policyKey string,
) (*PlaybackResponse, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	playbackURL := fmt.Sprintf(
		"%s/accounts/%s/videos/%s",
		playbackBase, accountID, videoID,
	)
	headers := map[string]string{
		"Accept": "application/json;pk=" + policyKey,
	}
	resp, err := util.FetchPage(ctx.Context, client, http.MethodGet, playbackURL, nil, headers, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var playbackErrors []*PlaybackError
		if err := sonic.Unmarshal(body, &playbackErrors); err == nil {
			for _, playbackError := range playbackErrors {
				if playbackError == nil {
					continue
				}
				if playbackError.ErrorSubcode == "CLIENT_GEO" {
					return nil, util.ErrGeoRestricted
				}
			}
		}
		return nil, fmt.Errorf("bad response: %s", resp.Status)
	}

	var playback PlaybackResponse
	if err := sonic.Unmarshal(body, &playback); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &playback, nil
}

func playbackToMedia(
	ctx *models.DownloadContext,
	media *models.Media,
	playback *PlaybackResponse,
) error {
	media.Title = playback.Name
	media.SetDescription(playback.Description)
	media.Duration = playback.Duration / 1000
	media.Timestamp = util.ParseTimestamp(playback.PublishedAt)
	media.Tags = playback.Tags
	for _, thumbnail := range []string{playback.Poster, playback.Thumbnail} {
		if thumbnail != "" {
			media.Thumbnails = append(media.Thumbnails, &models.Thumbnail{URL: thumbnail})
		}
	}

	for _, track := range playback.TextTracks {
		if track == nil || track.Src == "" {
			continue
		}
		format := enums.SubtitleFormatVTT
		if strings.Contains(track.MimeType, "ttml") {
			format = enums.SubtitleFormatTTML
		}
		media.AddSubtitle(&models.Subtitle{
			Language: track.SrcLang,
			Format:   format,
			URL:      track.Src,
		})
	}

	opts := parser.DefaultParseOptions()
	opts.Client = networking.GetExtractorHTTPClient(ctx.Extractor)

	for _, source := range playback.Sources {
		if source == nil || source.Src == "" {
			continue
		}
		if len(source.KeySystems) > 0 {
			media.IsDRM = true
			continue
		}
		switch {
		case strings.Contains(source.Type, "x-mpegURL") || strings.Contains(source.Src, ".m3u8"):
			formats, err := parser.ParseM3U8FromURL(ctx.Context, source.Src, opts)
			if err != nil {
				continue
			}
			for _, format := range formats {
				media.AddFormat(format)
			}
		case strings.Contains(source.Type, "dash+xml"):
			formats, err := parser.ParseMPDFromURL(ctx.Context, source.Src, opts)
			if err != nil {
				continue
			}
			for _, format := range formats {
				media.AddFormat(format)
			}
		default:
			media.AddFormat(&models.MediaFormat{
				Type:       enums.MediaTypeVideo,
				FormatID:   fmt.Sprintf("http-%d", source.AvgBitrate/1000),
				VideoCodec: enums.MediaCodecAVC,
				AudioCodec: enums.MediaCodecAAC,
				Bitrate:    source.AvgBitrate,
				FileSize:   source.Size,
				Width:      source.Width,
				Height:     source.Height,
				URL:        []string{source.Src},
			})
		}
	}

	if len(media.Formats) == 0 {
		if media.IsDRM {
			return util.ErrDRMProtected
		}
		return util.ErrNoFormats
	}
	return nil
}
