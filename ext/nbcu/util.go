package nbcu

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"vgrab/config"
	"vgrab/enums"
	"vgrab/models"
	"vgrab/util"
	"vgrab/util/networking"
	"vgrab/util/parser"
	"vgrab/util/webpage"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

const platformBase = "https://link.theplatform.com/s/"

var drupalSettingsPattern = regexp.MustCompile(
	`(?s)<script[^>]+data-drupal-selector="drupal-settings-json"[^>]*>\s*(\{.+?\})\s*</script>`,
)

// extractVideo is the shared portal flow: scrape the page for the mpx
// account coordinates, then trade them for a SMIL manifest.
func extractVideo(ctx *models.DownloadContext) ([]*models.Media, error) {
	page, err := fetchPage(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := webpageSettings(page)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	accountPID, accountID, videoID, err := videoCoordinates(ctx, page, settings, query)
	if err != nil {
		return nil, err
	}

	platformPath := fmt.Sprintf("%s/media/guid/%s/%s", accountPID, accountID, videoID)
	metadata, err := getPlatformMetadata(ctx, platformPath)
	if err != nil {
		return nil, err
	}
	smil, err := getSMIL(ctx, platformPath, query)
	if err != nil {
		return nil, err
	}
	if smil.VideoSrc == "" {
		return nil, smilError(smil)
	}

	media, err := buildMedia(ctx, videoID, metadata, smil)
	if err != nil {
		return nil, err
	}
	return []*models.Media{media}, nil
}

// videoCoordinates finds the mpx account PID, account id and guid,
// preferring the TVE video deck element over the ls_playlist settings
// blob. Entitled content needs an adobe token in the extractor config.
func videoCoordinates(
	ctx *models.DownloadContext,
	page string,
	settings gjson.Result,
	query url.Values,
) (string, string, string, error) {
	deckHTML := webpage.ElementHTMLByClass("tve-video-deck-app", page)
	if deckHTML != "" {
		attributes := webpage.ExtractAttributes(deckHTML)
		accountPID := attributes["data-mpx-media-account-pid"]
		if accountPID == "" {
			accountPID = attributes["data-mpx-account-pid"]
		}
		accountID := attributes["data-mpx-media-account-id"]
		videoID := attributes["data-guid"]
		if videoID == "" {
			videoID = gjson.Get(attributes["data-normalized-video"], "guid").String()
		}
		if accountPID == "" || accountID == "" || videoID == "" {
			return "", "", "", ErrNoVideoDeck
		}
		if attributes["data-entitlement"] == "auth" {
			cfg := config.GetExtractorConfig(ctx.Extractor.CodeName)
			if cfg == nil || cfg.AdobeToken == "" {
				return "", "", "", util.ErrAuthenticationNeeded
			}
			query.Set("auth", cfg.AdobeToken)
		}
		return accountPID, accountID, videoID, nil
	}

	for _, playlist := range settings.Get("ls_playlist").Array() {
		videoID := playlist.Get("defaultGuid").String()
		if videoID == "" {
			continue
		}
		return playlist.Get("mpxMediaAccountPid").String(),
			playlist.Get("mpxMediaAccountId").String(),
			videoID, nil
	}
	return "", "", "", ErrNoPlaylist
}

func buildMedia(
	ctx *models.DownloadContext,
	videoID string,
	metadata *PlatformMetadata,
	smil *smilResult,
) (*models.Media, error) {
	contentID := metadata.PID
	if contentID == "" {
		contentID = videoID
	}
	media := ctx.Extractor.NewMedia(contentID, ctx.MatchedContentURL)
	media.Title = metadata.Title
	media.SetDescription(metadata.Description)
	media.Duration = metadata.Duration / 1000
	media.Timestamp = metadata.PubDate / 1000
	media.SeasonNumber = anyToInt(metadata.SeasonNumber, metadata.NBCUSeasonNumber)
	media.EpisodeNumber = anyToInt(metadata.EpisodeNumber, metadata.NBCUEpisodeNumber)
	media.Series = anyToString(metadata.Show, metadata.NBCUShow)
	for _, rating := range metadata.Ratings {
		if rating == nil || rating.Rating == "" {
			continue
		}
		media.AgeLimit = util.ParseAgeLimit(rating.Rating)
		break
	}
	addChapters(media, metadata)
	addCaptions(media, metadata, smil)

	opts := parser.DefaultParseOptions()
	opts.Client = networking.GetExtractorHTTPClient(ctx.Extractor)
	opts.Cookies = util.GetExtractorCookies(ctx.Extractor)
	formats, err := parser.ParseM3U8FromURL(ctx.Context, smil.VideoSrc, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse playlist: %w", err)
	}
	for _, format := range formats {
		media.AddFormat(format)
	}
	if len(media.Formats) == 0 {
		return nil, util.ErrNoFormats
	}
	return media, nil
}

func addChapters(media *models.Media, metadata *PlatformMetadata) {
	// short videos carry one chapter spanning the whole runtime
	if len(metadata.Chapters) == 1 && metadata.Chapters[0] != nil &&
		metadata.Chapters[0].EndTime == 0 {
		return
	}
	for _, chapter := range metadata.Chapters {
		if chapter == nil {
			continue
		}
		media.Chapters = append(media.Chapters, &models.Chapter{
			Title:     chapter.Title,
			StartTime: float64(chapter.StartTime) / 1000,
			EndTime:   float64(chapter.EndTime) / 1000,
		})
	}
}

func addCaptions(
	media *models.Media,
	metadata *PlatformMetadata,
	smil *smilResult,
) {
	for _, caption := range metadata.Captions {
		if caption == nil || caption.Src == "" {
			continue
		}
		media.AddSubtitle(&models.Subtitle{
			Language: caption.Lang,
			Format:   captionFormat(caption.Type),
			URL:      caption.Src,
		})
	}
	if len(media.Subtitles) > 0 {
		return
	}
	for _, stream := range smil.Captions {
		if stream == nil || stream.Src == "" {
			continue
		}
		media.AddSubtitle(&models.Subtitle{
			Language: stream.Language,
			Format:   captionFormat(stream.Type),
			URL:      stream.Src,
		})
	}
}

func captionFormat(mimeType string) enums.SubtitleFormat {
	switch {
	case strings.Contains(mimeType, "srt"):
		return enums.SubtitleFormatSRT
	case strings.Contains(mimeType, "vtt"):
		return enums.SubtitleFormatVTT
	default:
		return enums.SubtitleFormatTTML
	}
}

func getPlatformMetadata(
	ctx *models.DownloadContext,
	platformPath string,
) (*PlatformMetadata, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	resp, err := util.FetchPage(
		ctx.Context, client, http.MethodGet,
		platformBase+platformPath+"?format=preview",
		nil, nil, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad response: %s", resp.Status)
	}
	var metadata PlatformMetadata
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &metadata, nil
}

func getSMIL(
	ctx *models.DownloadContext,
	platformPath string,
	query url.Values,
) (*smilResult, error) {
	query.Set("format", "SMIL")
	query.Set("manifest", "m3u")
	query.Set("switch", "HLSServiceSecure")

	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	resp, err := util.FetchPage(
		ctx.Context, client, http.MethodGet,
		platformBase+platformPath+"?"+query.Encode(),
		nil, nil, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return parseSMIL(body)
}

// parseSMIL walks the manifest tokens so namespace prefixes and
// nesting depth never matter.
func parseSMIL(data []byte) (*smilResult, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	result := &smilResult{}
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		attributes := make(map[string]string, len(start.Attr))
		for _, attr := range start.Attr {
			attributes[attr.Name.Local] = attr.Value
		}
		switch start.Name.Local {
		case "video":
			src := attributes["src"]
			if result.VideoSrc == "" && strings.Contains(src, ".m3u8") {
				result.VideoSrc = src
			}
		case "textstream":
			result.Captions = append(result.Captions, &smilTextStream{
				Src:      attributes["src"],
				Language: attributes["systemLanguage"],
				Type:     attributes["type"],
			})
		case "param":
			if attributes["name"] == "exception" {
				result.Exception = attributes["value"]
			}
		case "ref":
			if abstract := attributes["abstract"]; abstract != "" {
				result.Abstract = abstract
			}
		}
	}
	return result, nil
}

func smilError(smil *smilResult) error {
	switch smil.Exception {
	case "GeoLocationBlocked":
		return util.ErrGeoRestricted
	case "Expired":
		return util.ErrUnavailable
	}
	if smil.Abstract != "" {
		return fmt.Errorf("playback refused: %s", smil.Abstract)
	}
	return util.ErrNoFormats
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

func webpageSettings(page string) (gjson.Result, error) {
	match := drupalSettingsPattern.FindStringSubmatch(page)
	if match == nil {
		return gjson.Result{}, ErrNoSettings
	}
	return gjson.Parse(match[1]), nil
}

func anyToInt(values ...any) int64 {
	for _, value := range values {
		switch typed := value.(type) {
		case float64:
			return int64(typed)
		case string:
			if parsed, err := strconv.ParseInt(typed, 10, 64); err == nil {
				return parsed
			}
		}
	}
	return 0
}

func anyToString(values ...any) string {
	for _, value := range values {
		switch typed := value.(type) {
		case string:
			if typed != "" {
				return typed
			}
		case []any:
			for _, entry := range typed {
				if text, ok := entry.(string); ok && text != "" {
					return text
				}
			}
		}
	}
	return ""
}
