package paramount

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"vgrab/enums"
	"vgrab/models"
	"vgrab/util"
	"vgrab/util/networking"
	"vgrab/util/parser"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

const micaBase = "https://topaz.viacomcbs.digital/topaz/api/"

var pageDataPattern = regexp.MustCompile(`(?s)window\.__DATA__\s*=\s*(\{.+?\});`)

// extractVideo is the shared portal flow: pull the mgid out of the
// embedded page data, then resolve it through the mica API.
func extractVideo(ctx *models.DownloadContext) ([]*models.Media, error) {
	page, err := fetchPage(ctx)
	if err != nil {
		return nil, err
	}
	player, err := findVideoPlayer(page)
	if err != nil {
		return nil, err
	}
	mgid := player.Get("props.media.video.config.uri").String()
	if mgid == "" {
		return nil, ErrNoMGID
	}

	mica, err := getMica(ctx, mgid)
	if err != nil {
		return nil, err
	}
	if mica.StitchedStream == nil || mica.StitchedStream.Source == "" {
		return nil, util.ErrNoFormats
	}

	media := buildMedia(ctx, mica, player.Get("props.media.video.detail"))
	opts := parser.DefaultParseOptions()
	opts.Client = networking.GetExtractorHTTPClient(ctx.Extractor)
	opts.Cookies = util.GetExtractorCookies(ctx.Extractor)
	formats, err := parser.ParseM3U8FromURL(ctx.Context, mica.StitchedStream.Source, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse playlist: %w", err)
	}
	for _, format := range formats {
		media.AddFormat(format)
	}
	if len(media.Formats) == 0 {
		return nil, util.ErrNoFormats
	}
	return []*models.Media{media}, nil
}

// findVideoPlayer walks the __DATA__ component tree looking for the
// VideoPlayer child of the MainContainer.
func findVideoPlayer(page string) (gjson.Result, error) {
	match := pageDataPattern.FindStringSubmatch(page)
	if match == nil {
		return gjson.Result{}, ErrNoPageData
	}
	data := gjson.Parse(match[1])
	for _, child := range data.Get("children").Array() {
		if child.Get("type").String() != "MainContainer" {
			continue
		}
		for _, inner := range child.Get("children").Array() {
			if inner.Get("type").String() == "VideoPlayer" {
				return inner, nil
			}
		}
	}
	return gjson.Result{}, ErrNoVideoPlayer
}

func buildMedia(
	ctx *models.DownloadContext,
	mica *MicaResponse,
	detail gjson.Result,
) *models.Media {
	var content *MicaContent
	if len(mica.Content) > 0 {
		content = mica.Content[0]
	}
	if content == nil {
		content = &MicaContent{}
	}

	contentID := content.OriginID
	if contentID == "" {
		contentID = content.ID
	}
	if contentID == "" {
		contentID = ctx.MatchedContentID
	}
	media := ctx.Extractor.NewMedia(contentID, ctx.MatchedContentURL)
	media.Title = content.Title
	media.SetDescription(content.Description)
	media.Series = content.SeriesTitle
	media.Channel = content.ChannelName
	media.SeasonNumber = anyToInt(content.SeasonNumber)
	media.EpisodeNumber = anyToInt(content.EpisodeNumber)
	media.Duration = int64(content.Duration)
	if content.PublishDate != nil {
		media.Timestamp = content.PublishDate.Timestamp
		media.ReleaseTimestamp = content.PublishDate.Timestamp
	}
	overlayDetail(media, detail)

	for _, image := range content.Images {
		if image == nil || image.URL == "" {
			continue
		}
		media.Thumbnails = append(media.Thumbnails, &models.Thumbnail{
			URL:    image.URL,
			Width:  image.Width,
			Height: image.Height,
		})
	}
	for _, transport := range content.Transport {
		if transport == nil || transport.URI == "" || transport.Format == "rtt" {
			continue
		}
		media.AddSubtitle(&models.Subtitle{
			Language: transport.Language,
			Format:   subtitleFormat(transport.Format),
			URL:      transport.URI,
		})
	}
	return media
}

// overlayDetail prefers the page's own video detail over the mica
// record when both carry a value.
func overlayDetail(media *models.Media, detail gjson.Result) {
	if !detail.Exists() {
		return
	}
	if title := detail.Get("title").String(); title != "" {
		media.Title = title
	}
	if description := detail.Get("description").String(); description != "" {
		media.SetDescription(description)
	}
	if series := detail.Get("seriesTitle").String(); series != "" {
		media.Series = series
	}
	if season := detail.Get("seasonNumber").Int(); season > 0 {
		media.SeasonNumber = season
	}
	if episode := detail.Get("episodeNumber").Int(); episode > 0 {
		media.EpisodeNumber = episode
	}
}

func getMica(ctx *models.DownloadContext, mgid string) (*MicaResponse, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	resp, err := util.FetchPage(
		ctx.Context, client, http.MethodGet,
		micaBase+mgid+"/mica.json?clientPlatform=desktop",
		nil, nil, util.GetExtractorCookies(ctx.Extractor),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusForbidden {
		return nil, util.ErrGeoRestricted
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad response: %s", resp.Status)
	}
	var mica MicaResponse
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&mica); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &mica, nil
}

func subtitleFormat(format string) enums.SubtitleFormat {
	switch format {
	case "webvtt", "vtt":
		return enums.SubtitleFormatVTT
	case "srt":
		return enums.SubtitleFormatSRT
	default:
		return enums.SubtitleFormatTTML
	}
}

func fetchPage(ctx *models.DownloadContext) (string, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	resp, err := util.FetchPage(
		ctx.Context, client, http.MethodGet,
		ctx.MatchedContentURL, nil, nil,
		util.GetExtractorCookies(ctx.Extractor),
	)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()
	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read page: %w", err)
	}
	return string(page), nil
}

func anyToInt(value any) int64 {
	switch typed := value.(type) {
	case float64:
		return int64(typed)
	case string:
		if parsed, err := strconv.ParseInt(typed, 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}
