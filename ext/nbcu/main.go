package nbcu

import (
	"fmt"
	"regexp"

	"vgrab/enums"
	"vgrab/models"
)

var BravoTVExtractor = &models.Extractor{
	Name:     "BravoTV",
	CodeName: "bravotv",
	Type:     enums.ExtractorTypeSingle,
	Category: enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(
		`https?://(?:www\.)?(?:bravotv|oxygen)\.com/(?:[^/?#]+/)+(?P<id>[^/?#]+)`,
	),
	Host: []string{"bravotv", "oxygen"},

	Run: func(ctx *models.DownloadContext) (*models.ExtractorResponse, error) {
		mediaList, err := extractVideo(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: mediaList,
		}, nil
	},
}

var SyfyExtractor = &models.Extractor{
	Name:     "Syfy",
	CodeName: "syfy",
	Type:     enums.ExtractorTypeSingle,
	Category: enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(
		`https?://(?:www\.)?syfy\.com/[^/?#]+/(?:season-\d+/episode-\d+/(?:videos/)?|videos/)(?P<id>[^/?#]+)`,
	),
	Host: []string{"syfy"},

	Run: func(ctx *models.DownloadContext) (*models.ExtractorResponse, error) {
		mediaList, err := extractVideo(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: mediaList,
		}, nil
	},
}
