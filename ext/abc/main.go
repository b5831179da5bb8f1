package abc

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"

	"vgrab/enums"
	"vgrab/models"
	"vgrab/util"
	"vgrab/util/networking"
	"vgrab/util/parser"

	"github.com/tidwall/gjson"
)

var (
	abcDataPattern = regexp.MustCompile(`(?s)["']__abc_com__["']\s*\]\s*=\s*(\{.+?\})\s*;`)

	// inner quotes happen, e.g. data-video-id="'VDKA3609139'"
	videoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`data-video-id=["']*(VDKA\w+)`),
		regexp.MustCompile(`\bvideoIdCode["']\s*:\s*["']((?:vdka|VDKA)\w+)`),
		regexp.MustCompile(`\b(?:video)?id["']\s*:\s*["'](VDKA\w+)`),
	}
	brandPatterns = []*regexp.Regexp{
		regexp.MustCompile(`data-brand=\s*["']\s*(\d+)`),
		regexp.MustCompile(`data-page-brand=\s*["']\s*(\d+)`),
	}
	showIDPattern = regexp.MustCompile(`data-show-id=["']*(SH\d+)`)

	sourceAssetPattern = regexp.MustCompile(`/mp4/source/|_source\.mp4`)
	resolutionPattern  = regexp.MustCompile(`/(\d+)x(\d+)/`)
)

var Extractor = &models.Extractor{
	Name:     "ABC",
	CodeName: "abc",
	Type:     enums.ExtractorTypeSingle,
	Category: enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(
		`https?://(?P<sub_domain>(?:(?:abc|freeform|disneynow|fxnow|watchdisneychannel|watchdisneyjunior|watchdisneyxd)\.)?go|fxnow\.fxnetworks|(?:www\.)?(?:abc|freeform|disneynow))\.com/(?:(?:[^/]+/)*(?P<id>[Vv][Dd][Kk][Aa]\w+)|(?:[^/]+/)*(?P<display_id>[^/?#]+))`,
	),
	Host: []string{"go", "abc", "freeform", "disneynow", "fxnow.fxnetworks"},

	Run: func(ctx *models.DownloadContext) (*models.ExtractorResponse, error) {
		mediaList, err := mediaListFromURL(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: mediaList,
		}, nil
	},
}

func mediaListFromURL(ctx *models.DownloadContext) ([]*models.Media, error) {
	subDomain := strings.TrimSuffix(
		strings.TrimPrefix(ctx.MatchedGroups["sub_domain"], "www."),
		".go",
	)
	videoID := ctx.MatchedGroups["id"]
	info := siteInfoTable[subDomain]
	brand := defaultBrand
	if info != nil {
		brand = info.Brand
	}

	if videoID == "" || info == nil {
		page, err := fetchContentPage(ctx)
		if err != nil {
			return nil, err
		}
		videoID = scrapeVideoID(page, videoID)
		if info == nil {
			brand = scrapeBrand(page)
			info = siteInfoByBrand(brand)
			if info == nil {
				return nil, fmt.Errorf("unknown brand: %s", brand)
			}
		}
		if videoID == "" {
			// show page, e.g. watchdisneyxd.go.com/doraemon
			return mediaListFromShow(ctx, info, page, brand)
		}
	}

	videos, err := extractVideos(ctx, brand, videoID, "-1")
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, util.ErrUnavailable
	}
	media, err := buildMedia(ctx, info, videos[0], brand)
	if err != nil {
		return nil, err
	}
	return []*models.Media{media}, nil
}

// mediaListFromShow resolves every video of a show page, oldest first.
func mediaListFromShow(
	ctx *models.DownloadContext,
	info *siteInfo,
	page string,
	brand string,
) ([]*models.Media, error) {
	match := showIDPattern.FindStringSubmatch(page)
	if match == nil {
		return nil, ErrNoShowID
	}
	videos, err := extractVideos(ctx, brand, "-1", match[1])
	if err != nil {
		return nil, err
	}
	var mediaList []*models.Media
	for index := len(videos) - 1; index >= 0; index-- {
		media, err := buildMedia(ctx, info, videos[index], brand)
		if err != nil {
			return nil, err
		}
		mediaList = append(mediaList, media)
	}
	return mediaList, nil
}

func buildMedia(
	ctx *models.DownloadContext,
	info *siteInfo,
	videoData *VideoData,
	brand string,
) (*models.Media, error) {
	media := ctx.Extractor.NewMedia(videoData.ID, ctx.MatchedContentURL)
	media.Title = videoData.Title
	if videoData.LongDescription != "" {
		media.SetDescription(videoData.LongDescription)
	} else {
		media.SetDescription(videoData.Description)
	}
	if videoData.Duration != nil {
		media.Duration = videoData.Duration.Value / 1000
	}
	if videoData.TVRating != nil {
		media.AgeLimit = util.ParseAgeLimit(videoData.TVRating.Rating)
	}
	media.EpisodeNumber = parseIntAny(videoData.EpisodeNumber)
	if videoData.Show != nil {
		media.Series = videoData.Show.Title
	}
	if videoData.Season != nil {
		media.SeasonNumber = parseIntAny(videoData.Season.Num)
	}
	if timestamp := util.ParseTimestamp(videoData.Airdates.First()); timestamp > 0 {
		media.Timestamp = timestamp
	}

	if videoData.Assets != nil {
		for _, asset := range videoData.Assets.Asset {
			if asset == nil || asset.Value == "" {
				continue
			}
			if err := addAssetFormats(ctx, media, info, videoData, asset, brand); err != nil {
				return nil, err
			}
		}
	}
	addCaptions(media, videoData)
	addThumbnails(media, videoData)

	if len(media.Formats) == 0 {
		return nil, util.ErrNoFormats
	}
	return media, nil
}

func addAssetFormats(
	ctx *models.DownloadContext,
	media *models.Media,
	info *siteInfo,
	videoData *VideoData,
	asset *Asset,
	brand string,
) error {
	assetURL := asset.Value
	if assetExt(assetURL) != "m3u8" {
		media.AddFormat(progressiveFormat(asset, assetURL))
		return nil
	}

	sessionKey, err := getEntitlement(ctx, info, videoData, brand)
	if err != nil {
		return err
	}
	opts := parser.DefaultParseOptions()
	opts.Client = networking.GetExtractorHTTPClient(ctx.Extractor)
	opts.Cookies = util.GetExtractorCookies(ctx.Extractor)
	formats, err := parser.ParseM3U8FromURL(
		ctx.Context, assetURL+"?"+sessionKey, opts,
	)
	if err != nil {
		return fmt.Errorf("failed to parse playlist: %w", err)
	}
	for _, format := range formats {
		media.AddFormat(format)
	}
	return nil
}

func progressiveFormat(asset *Asset, assetURL string) *models.MediaFormat {
	formatID := asset.Format
	var width, height int64
	if sourceAssetPattern.MatchString(assetURL) {
		if formatID != "" {
			formatID += "-SOURCE"
		} else {
			formatID = "SOURCE"
		}
	} else if match := resolutionPattern.FindStringSubmatch(assetURL); match != nil {
		width = util.ParseInt(match[1])
		height = util.ParseInt(match[2])
		if formatID != "" {
			formatID = fmt.Sprintf("%s-%dP", formatID, height)
		} else {
			formatID = fmt.Sprintf("%dP", height)
		}
	}
	if formatID == "" {
		formatID = "http"
	}
	return &models.MediaFormat{
		Type:       enums.MediaTypeVideo,
		FormatID:   formatID,
		VideoCodec: enums.MediaCodecAVC,
		AudioCodec: enums.MediaCodecAAC,
		URL:        []string{assetURL},
		Width:      width,
		Height:     height,
	}
}

func addCaptions(media *models.Media, videoData *VideoData) {
	if videoData.ClosedCaption == nil {
		return
	}
	for _, source := range videoData.ClosedCaption.Src {
		if source == nil || source.Value == "" {
			continue
		}
		format := enums.SubtitleFormatVTT
		// the api serves dfxp/ttml captions with an xml extension
		if assetExt(source.Value) == "xml" {
			format = enums.SubtitleFormatTTML
		}
		media.AddSubtitle(&models.Subtitle{
			Language: source.Lang,
			Format:   format,
			URL:      source.Value,
		})
	}
}

func addThumbnails(media *models.Media, videoData *VideoData) {
	if videoData.Thumbnails == nil {
		return
	}
	for _, thumbnail := range videoData.Thumbnails.Thumbnail {
		if thumbnail == nil || thumbnail.Value == "" {
			continue
		}
		media.Thumbnails = append(media.Thumbnails, &models.Thumbnail{
			URL:    thumbnail.Value,
			Width:  parseIntAny(thumbnail.Width),
			Height: parseIntAny(thumbnail.Height),
		})
	}
}

func fetchContentPage(ctx *models.DownloadContext) (string, error) {
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

func scrapeVideoID(page string, fallback string) string {
	if match := abcDataPattern.FindStringSubmatch(page); match != nil {
		layout := gjson.Get(match[1], "page.content.video.layout")
		if videoID := layout.Get("videoid").String(); videoID != "" {
			return videoID
		}
		if videoID := layout.Get("video.id").String(); videoID != "" {
			return videoID
		}
	}
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(page); match != nil {
			return match[1]
		}
	}
	return fallback
}

func scrapeBrand(page string) string {
	for _, pattern := range brandPatterns {
		if match := pattern.FindStringSubmatch(page); match != nil {
			return match[1]
		}
	}
	return defaultBrand
}

func assetExt(rawURL string) string {
	ext := path.Ext(rawURL)
	if pos := strings.IndexAny(ext, "?#"); pos >= 0 {
		ext = ext[:pos]
	}
	return strings.TrimPrefix(ext, ".")
}
