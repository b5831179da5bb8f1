package vimeo

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"vgrab/enums"
	"vgrab/models"
	"vgrab/util"
	"vgrab/util/networking"
	"vgrab/util/parser"
)

const videoFields = "config_url,name,description,duration,created_time,release_time,link,pictures.sizes,user.name,user.link"

var loginAttempted bool

var Extractor = &models.Extractor{
	Name:       "Vimeo",
	CodeName:   "vimeo",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(`https?://(?:www\.)?vimeo\.com/(?P<id>\d+)(?:/(?P<unlisted_hash>[\da-f]{10}))?`),
	Host:       []string{"vimeo"},

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

var AlbumExtractor = &models.Extractor{
	Name:       "Vimeo Showcase",
	CodeName:   "vimeo_album",
	Type:       enums.ExtractorTypeCollection,
	Category:   enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(`https?://(?:www\.)?vimeo\.com/(?:album|showcase)/(?P<id>\d+)`),
	Host:       []string{"vimeo"},

	Run: func(ctx *models.DownloadContext) (*models.ExtractorResponse, error) {
		mediaList, err := mediaListFromAlbum(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get album: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: mediaList,
		}, nil
	},
}

func mediaListFromAPI(ctx *models.DownloadContext) ([]*models.Media, error) {
	viewer, err := getViewer(ctx)
	if err != nil {
		return nil, err
	}
	if !loginAttempted {
		loginAttempted = true
		if err := performLogin(ctx, viewer); err != nil {
			return nil, err
		}
	}

	videoID := ctx.MatchedContentID
	unlistedHash := ctx.MatchedGroups["unlisted_hash"]

	apiVideo, err := getAPIVideo(ctx, viewer, videoID, unlistedHash)
	if err != nil {
		return nil, err
	}
	if apiVideo.ConfigURL == "" {
		return nil, util.ErrUnavailable
	}

	media := ctx.Extractor.NewMedia(videoID, ctx.MatchedContentURL)
	apiVideoToMedia(media, apiVideo)

	playerConfig, err := fetchConfig(ctx, apiVideo.ConfigURL)
	if err != nil {
		return nil, err
	}
	if err := addConfigFormats(ctx, media, playerConfig); err != nil {
		return nil, err
	}
	if len(media.Formats) == 0 {
		return nil, util.ErrNoFormats
	}
	return []*models.Media{media}, nil
}

// getAPIVideo resolves the video through api.vimeo.com, recovering
// the unlisted hash and verifying the video password as needed.
func getAPIVideo(
	ctx *models.DownloadContext,
	viewer *Viewer,
	videoID string,
	unlistedHash string,
) (*APIVideo, error) {
	query := url.Values{"fields": []string{videoFields}}
	path := "videos/" + videoID
	if unlistedHash != "" {
		path += ":" + unlistedHash
	}

	var apiVideo APIVideo
	status, err := callAPI(ctx, viewer, path, query, &apiVideo)
	if err == nil {
		return &apiVideo, nil
	}

	switch status {
	case http.StatusNotFound:
		if unlistedHash != "" {
			return nil, util.ErrUnavailable
		}
		hash := getUnlistedHash(ctx, videoID)
		if hash == "" {
			return nil, util.ErrUnavailable
		}
		return getAPIVideo(ctx, viewer, videoID, hash)
	case http.StatusUnauthorized, http.StatusForbidden:
		if err := verifyVideoPassword(ctx, viewer, "https://vimeo.com/"+videoID); err != nil {
			return nil, err
		}
		if _, err := callAPI(ctx, viewer, path, query, &apiVideo); err != nil {
			return nil, err
		}
		return &apiVideo, nil
	}
	return nil, err
}

func mediaListFromAlbum(ctx *models.DownloadContext) ([]*models.Media, error) {
	viewer, err := getViewer(ctx)
	if err != nil {
		return nil, err
	}

	albumID := ctx.MatchedContentID
	var mediaList []*models.Media

	for page := 1; ; page++ {
		query := url.Values{
			"fields":   []string{videoFields},
			"page":     []string{strconv.Itoa(page)},
			"per_page": []string{"100"},
		}
		var albumPage AlbumPage
		status, err := callAPI(ctx, viewer, "albums/"+albumID+"/videos", query, &albumPage)
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return nil, util.ErrPasswordNeeded
		}
		if err != nil {
			return nil, err
		}

		for _, apiVideo := range albumPage.Data {
			if apiVideo == nil || apiVideo.ConfigURL == "" {
				continue
			}
			videoID := videoIDFromLink(apiVideo.Link)
			media := ctx.Extractor.NewMedia(videoID, apiVideo.Link)
			apiVideoToMedia(media, apiVideo)

			playerConfig, err := fetchConfig(ctx, apiVideo.ConfigURL)
			if err != nil {
				continue
			}
			if err := addConfigFormats(ctx, media, playerConfig); err != nil {
				continue
			}
			if len(media.Formats) > 0 {
				mediaList = append(mediaList, media)
			}
		}

		if albumPage.Paging == nil || albumPage.Paging.Next == "" {
			break
		}
	}
	if len(mediaList) == 0 {
		return nil, util.ErrNoFormats
	}
	return mediaList, nil
}

func videoIDFromLink(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return link
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	return parts[len(parts)-1]
}

func apiVideoToMedia(media *models.Media, apiVideo *APIVideo) {
	media.Title = apiVideo.Name
	media.SetDescription(apiVideo.Description)
	media.Duration = apiVideo.Duration
	media.Timestamp = util.ParseTimestamp(apiVideo.CreatedTime)
	media.ReleaseTimestamp = util.ParseTimestamp(apiVideo.ReleaseTime)
	if apiVideo.User != nil {
		media.Uploader = apiVideo.User.Name
		media.UploaderID = videoIDFromLink(apiVideo.User.Link)
	}
	if apiVideo.Pictures != nil {
		for _, size := range apiVideo.Pictures.Sizes {
			if size == nil || size.Link == "" {
				continue
			}
			media.Thumbnails = append(media.Thumbnails, &models.Thumbnail{
				URL:    size.Link,
				Width:  size.Width,
				Height: size.Height,
			})
		}
	}
}

func addConfigFormats(
	ctx *models.DownloadContext,
	media *models.Media,
	playerConfig *PlayerConfig,
) error {
	if playerConfig.Video != nil {
		if media.Title == "" {
			media.Title = playerConfig.Video.Title
		}
		if media.Duration == 0 {
			media.Duration = playerConfig.Video.Duration
		}
	}
	if playerConfig.Request == nil {
		return nil
	}

	for _, track := range playerConfig.Request.TextTracks {
		if track == nil || track.URL == "" {
			continue
		}
		trackURL := track.URL
		if strings.HasPrefix(trackURL, "/") {
			trackURL = baseURL + trackURL
		}
		media.AddSubtitle(&models.Subtitle{
			Language: track.Lang,
			Format:   enums.SubtitleFormatVTT,
			URL:      trackURL,
		})
	}

	files := playerConfig.Request.Files
	if files == nil {
		return nil
	}
	for _, progressive := range files.Progressive {
		if progressive == nil || progressive.URL == "" {
			continue
		}
		media.AddFormat(&models.MediaFormat{
			Type:       enums.MediaTypeVideo,
			FormatID:   "http-" + progressive.Quality,
			VideoCodec: enums.MediaCodecAVC,
			AudioCodec: enums.MediaCodecAAC,
			Width:      progressive.Width,
			Height:     progressive.Height,
			URL:        []string{progressive.URL},
		})
	}

	opts := parser.DefaultParseOptions()
	opts.Client = networking.GetExtractorHTTPClient(ctx.Extractor)

	if hlsURL := streamURL(files.Hls); hlsURL != "" {
		formats, err := parser.ParseM3U8FromURL(ctx.Context, hlsURL, opts)
		if err != nil {
			return fmt.Errorf("failed to parse playlist: %w", err)
		}
		for _, format := range formats {
			media.AddFormat(format)
		}
	}
	if dashURL := streamURL(files.Dash); dashURL != "" {
		// the player hands out the json flavor of the manifest
		dashURL = strings.Replace(dashURL, "master.json", "master.mpd", 1)
		formats, err := parser.ParseMPDFromURL(ctx.Context, dashURL, opts)
		if err != nil {
			return fmt.Errorf("failed to parse manifest: %w", err)
		}
		for _, format := range formats {
			media.AddFormat(format)
		}
	}
	return nil
}
