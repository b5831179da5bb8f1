package weverse

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"vgrab/enums"
	"vgrab/models"
	"vgrab/util"
	"vgrab/util/networking"
	"vgrab/util/parser"

	"github.com/google/uuid"
)

var Extractor = &models.Extractor{
	Name:       "Weverse",
	CodeName:   "weverse",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategorySocial,
	URLPattern: regexp.MustCompile(`https?://(?:www\.|m\.)?weverse\.io/(?P<artist>[^/?#]+)/live/(?P<id>[0-9-]+)`),
	Host:       []string{"weverse"},

	Run: func(ctx *models.DownloadContext) (*models.ExtractorResponse, error) {
		mediaList, err := mediaListFromAPI(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: mediaList,
		}, nil
	},
}

// HLSExtractor handles bare playlist URLs on the weverse CDN, whose
// __gda__ token must ride along to every segment.
var HLSExtractor = &models.Extractor{
	Name:       "Weverse HLS",
	CodeName:   "weverse_hls",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategorySocial,
	URLPattern: regexp.MustCompile(`https?://weverse(?:-[^.]+)?\.akamaized\.net/(?:[^/]+/){5}hls/(?P<id>[a-f0-9-]+)\.m3u8\?(?P<query>__gda__=[a-f0-9_]+)`),
	Host:       []string{"akamaized"},
	IsHidden:   true,

	Run: func(ctx *models.DownloadContext) (*models.ExtractorResponse, error) {
		media := ctx.Extractor.NewMedia(ctx.MatchedContentID, ctx.MatchedContentURL)
		media.Title = ctx.MatchedContentID

		opts := parser.DefaultParseOptions()
		opts.Client = networking.GetExtractorHTTPClient(ctx.Extractor)
		opts.PropagateQuery = true
		formats, err := parser.ParseM3U8FromURL(ctx.Context, ctx.MatchedContentURL, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse playlist: %w", err)
		}
		for _, format := range formats {
			media.AddFormat(format)
		}
		return &models.ExtractorResponse{
			MediaList: []*models.Media{media},
		}, nil
	},
}

func mediaListFromAPI(ctx *models.DownloadContext) ([]*models.Media, error) {
	sess, err := getSession(ctx)
	if err != nil {
		return nil, err
	}

	contentID := ctx.MatchedContentID
	media := ctx.Extractor.NewMedia(contentID, ctx.MatchedContentURL)

	var post Post
	postURL := fmt.Sprintf(
		"%s/weverse/wevweb/post/v1.0/post-%s?fieldSet=postV1",
		naverAPIBase, contentID,
	)
	if err := callAPI(ctx, sess, postURL, nil, &post); err != nil {
		return nil, err
	}

	video := postVideo(&post)
	if video == nil || video.Type != "VOD" {
		return nil, ErrOnlyVOD
	}
	if video.InfraVideoID == "" || video.VideoID == 0 || video.ServiceID == 0 {
		return nil, ErrMissingIDs
	}

	postToMedia(media, &post, ctx.MatchedGroups["artist"])

	var inKey InKeyResponse
	inKeyURL := fmt.Sprintf(
		"%s/weverse/wevweb/video/v1.0/vod/%d/inKey?preview=false",
		naverAPIBase, video.VideoID,
	)
	if err := callAPI(ctx, sess, inKeyURL, []byte("{}"), &inKey); err != nil {
		return nil, err
	}

	play, err := getPlayInfo(ctx, video, inKey.InKey, post.MembershipOnly)
	if err != nil {
		return nil, err
	}
	if err := addPlayFormats(ctx, media, play); err != nil {
		return nil, err
	}
	if len(media.Formats) == 0 {
		return nil, util.ErrNoFormats
	}
	return []*models.Media{media}, nil
}

func postVideo(post *Post) *PostVideo {
	if post.Extension == nil {
		return nil
	}
	return post.Extension.Video
}

func postToMedia(media *models.Media, post *Post, artist string) {
	media.Title = post.Title
	media.SetDescription(post.Body)
	thumbnail := ""
	if post.Extension != nil {
		if info := post.Extension.MediaInfo; info != nil {
			if info.Title != "" {
				media.Title = info.Title
			}
			if info.Body != "" {
				media.SetDescription(info.Body)
			}
			if info.Thumbnail != nil {
				thumbnail = info.Thumbnail.URL
			}
		}
		if video := post.Extension.Video; video != nil {
			media.Timestamp = video.OnAirStartAt / 1000
			media.Duration = video.PlayTime
			if thumbnail == "" {
				thumbnail = video.Thumb
			}
		}
	}
	if post.Author != nil {
		media.Uploader = post.Author.ProfileName
	}
	media.UploaderID = artist
	media.ReleaseTimestamp = post.PublishedAt / 1000
	if thumbnail != "" {
		media.Thumbnails = append(media.Thumbnails, &models.Thumbnail{URL: thumbnail})
	}
}

// getPlayInfo hits the naver playback service with the inKey. this
// endpoint is outside the wevweb gateway and is not wmd-signed.
func getPlayInfo(
	ctx *models.DownloadContext,
	video *PostVideo,
	inKey string,
	membershipOnly bool,
) (*PlayResponse, error) {
	prv := "N"
	if membershipOnly {
		prv = "Y"
	}
	query := url.Values{
		"key":   []string{inKey},
		"sid":   []string{strconv.FormatInt(video.ServiceID, 10)},
		"pid":   []string{uuid.NewString()},
		"nonce": []string{strconv.FormatInt(time.Now().UnixMilli(), 10)},
		"devt":  []string{"html5_pc"},
		"prv":   []string{prv},
		"aup":   []string{"N"},
		"stpb":  []string{"N"},
		"cpl":   []string{"en"},
		"env":   []string{"prod"},
		"lc":    []string{"en"},
		"adi":   []string{`[{"adSystem":"null"}]`},
		"adu":   []string{"/"},
	}
	playURL := fmt.Sprintf(
		"%s/rmcnmv/rmcnmv/vod/play/v2.0/%s?%s",
		naverAPIBase, video.InfraVideoID, query.Encode(),
	)

	var play PlayResponse
	if err := fetchJSON(ctx, playURL, &play); err != nil {
		return nil, err
	}
	return &play, nil
}

func addPlayFormats(
	ctx *models.DownloadContext,
	media *models.Media,
	play *PlayResponse,
) error {
	if play.Videos != nil {
		for _, video := range play.Videos.List {
			if video == nil || video.Source == "" {
				continue
			}
			if video.EncodingOption == nil || !video.EncodingOption.IsEncodingComplete {
				continue
			}
			format := &models.MediaFormat{
				Type:       enums.MediaTypeVideo,
				FormatID:   video.EncodingOption.ID,
				VideoCodec: videoCodecFromType(video.Type),
				AudioCodec: enums.MediaCodecAAC,
				Width:      video.EncodingOption.Width,
				Height:     video.EncodingOption.Height,
				FileSize:   video.Size,
				URL:        []string{video.Source},
			}
			if video.Bitrate != nil {
				format.Bitrate = video.Bitrate.Video + video.Bitrate.Audio
			}
			media.AddFormat(format)
		}
	}

	for _, stream := range play.Streams {
		if stream == nil || stream.Type != "HLS" || stream.Source == "" {
			continue
		}
		query := url.Values{}
		for _, key := range stream.Keys {
			if key == nil || key.Type != "param" || key.Name == "" || key.Value == "" {
				continue
			}
			query.Set(key.Name, key.Value)
		}
		streamURL := joinQuery(stream.Source, query)

		opts := parser.DefaultParseOptions()
		opts.Client = networking.GetExtractorHTTPClient(ctx.Extractor)
		opts.PropagateQuery = len(query) > 0
		formats, err := parser.ParseM3U8FromURL(ctx.Context, streamURL, opts)
		if err != nil {
			return fmt.Errorf("failed to parse playlist: %w", err)
		}
		for _, format := range formats {
			media.AddFormat(format)
		}
	}
	return nil
}

// joinQuery glues the playback key params onto a stream URL that
// may already carry its own query string.
func joinQuery(rawURL string, query url.Values) string {
	if len(query) == 0 {
		return rawURL
	}
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + query.Encode()
	}
	return rawURL + "?" + query.Encode()
}

func videoCodecFromType(videoType string) enums.MediaCodec {
	switch {
	case videoType == "":
		return ""
	case videoType == "avc1", videoType == "avc", videoType == "h264":
		return enums.MediaCodecAVC
	case videoType == "hevc", videoType == "h265":
		return enums.MediaCodecHEVC
	default:
		return enums.MediaCodecAVC
	}
}
