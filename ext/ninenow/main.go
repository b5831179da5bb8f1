package ninenow

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"vgrab/enums"
	"vgrab/ext/brightcove"
	"vgrab/models"
	"vgrab/util"
	"vgrab/util/networking"
)

const brightcoveAccountID = "4460760524001"

var Extractor = &models.Extractor{
	Name:       "9Now",
	CodeName:   "ninenow",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(`https?://(?:www\.)?9now\.com\.au/(?:[^/]+/){2}(?P<id>(?P<type>clip|episode)-[^/?#]+)`),
	Host:       []string{"9now"},

	Run: func(ctx *models.DownloadContext) (*models.ExtractorResponse, error) {
		mediaList, err := mediaListFromPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: mediaList,
		}, nil
	},
}

func mediaListFromPage(ctx *models.DownloadContext) ([]*models.Media, error) {
	displayID := ctx.MatchedContentID
	videoType := ctx.MatchedGroups["type"]

	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	resp, err := util.FetchPage(
		ctx.Context, client, http.MethodGet,
		ctx.MatchedContentURL, nil, nil,
		util.GetExtractorCookies(ctx.Extractor),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()
	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}

	commonData := findCommonData(string(page), videoType, displayID)
	if commonData == nil {
		return nil, ErrNoVideoData
	}
	item := commonData.Episode
	if videoType == "clip" {
		item = commonData.Clip
	}
	if item == nil || item.Video == nil {
		return nil, ErrNoVideoData
	}

	brightcoveID, err := playbackID(item.Video)
	if err != nil {
		return nil, err
	}

	media, err := brightcove.GetMedia(
		ctx, brightcoveAccountID, "default", "default", brightcoveID,
	)
	if err != nil {
		return nil, err
	}
	overlayMetadata(ctx, media, item, commonData.Season, displayID)
	return []*models.Media{media}, nil
}

// playbackID resolves the Brightcove id for a video, checking the
// DRM flag first so protected clips report the right error.
func playbackID(video *VideoInfo) (string, error) {
	if video.DRM {
		return "", util.ErrDRMProtected
	}
	brightcoveID := video.BrightcoveID
	if brightcoveID == "" && video.ReferenceID != "" {
		brightcoveID = "ref:" + video.ReferenceID
	}
	if brightcoveID == "" {
		return "", ErrNoBrightcoveID
	}
	return brightcoveID, nil
}

// overlayMetadata prefers the 9now catalog metadata over the raw
// Brightcove record.
func overlayMetadata(
	ctx *models.DownloadContext,
	media *models.Media,
	item *Item,
	season *Season,
	displayID string,
) {
	media.ContentURL = ctx.MatchedContentURL
	if item.Video.ID != 0 {
		media.ContentID = strconv.FormatInt(item.Video.ID, 10)
	} else {
		media.ContentID = displayID
	}
	if item.Name != "" {
		media.Title = item.Name
	}
	media.SetDescription(item.Description)
	if item.Video.Duration > 0 {
		media.Duration = item.Video.Duration / 1000
	}
	if season != nil {
		media.SeasonNumber = season.SeasonNumber
	}
	media.EpisodeNumber = item.EpisodeNumber
	if timestamp := util.ParseTimestamp(item.AirDate); timestamp > 0 {
		media.Timestamp = timestamp
	}
	if timestamp := util.ParseTimestamp(item.Availability); timestamp > 0 {
		media.ReleaseTimestamp = timestamp
	}
	if item.Image != nil {
		for id, imageURL := range item.Image.Sizes {
			if imageURL == "" {
				continue
			}
			media.Thumbnails = append(media.Thumbnails, &models.Thumbnail{
				ID:  id,
				URL: imageURL,
			})
		}
	}
}
