package paramount

import (
	"fmt"
	"regexp"

	"vgrab/enums"
	"vgrab/models"
)

var NickExtractor = &models.Extractor{
	Name:     "Nick",
	CodeName: "nick",
	Type:     enums.ExtractorTypeSingle,
	Category: enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(
		`https?://(?:www\.)?nick\.com/(?:video-clips|episodes)/(?P<id>[\da-z]{6})`,
	),
	Host: []string{"nick"},

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

var SouthParkExtractor = &models.Extractor{
	Name:     "SouthPark",
	CodeName: "southpark",
	Type:     enums.ExtractorTypeSingle,
	Category: enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(
		`https?://(?:www\.)?southpark(?:\.cc|studios)\.com/(?:video-clips|episodes|collections)/(?P<id>[\da-z]{6})`,
	),
	Host: []string{"southpark.cc", "southparkstudios"},

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
