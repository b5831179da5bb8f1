package wrestleuniverse

import (
	"fmt"
	"regexp"

	"vgrab/enums"
	"vgrab/models"
	"vgrab/util"
	"vgrab/util/networking"
	"vgrab/util/parser"

	"go.uber.org/zap"
)

var Extractor = &models.Extractor{
	Name:       "Wrestle Universe",
	CodeName:   "wrestleuniverse",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(`https?://(?:www\.)?wrestle-universe\.com/(?:(?P<lang>\w{2})/)?videos/(?P<id>\w+)`),
	Host:       []string{"wrestle-universe"},

	Run: func(ctx *models.DownloadContext) (*models.ExtractorResponse, error) {
		mediaList, err := mediaListFromVOD(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: mediaList,
		}, nil
	},
}

var PPVExtractor = &models.Extractor{
	Name:       "Wrestle Universe PPV",
	CodeName:   "wrestleuniverse_ppv",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(`https?://(?:www\.)?wrestle-universe\.com/(?:(?P<lang>\w{2})/)?lives/(?P<id>\w+)`),
	Host:       []string{"wrestle-universe"},

	Run: func(ctx *models.DownloadContext) (*models.ExtractorResponse, error) {
		mediaList, err := mediaListFromPPV(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: mediaList,
		}, nil
	},
}

func mediaListFromVOD(ctx *models.DownloadContext) ([]*models.Media, error) {
	contentID := ctx.MatchedContentID
	media := ctx.Extractor.NewMedia(contentID, ctx.MatchedContentURL)

	metadata := getMetadata(
		ctx, "videoEpisodes", contentID,
		ctx.MatchedGroups["lang"],
		"videoEpisodeFallbackData",
	)
	metadataToMedia(media, metadata)
	if metadata != nil {
		media.Timestamp = metadata.WatchStartTime
	}

	var watch WatchResponse
	err := callAPI(
		ctx, "videoEpisodes", contentID, ":watch",
		true, &watchRequest{IgnoreDeviceRestriction: true},
		nil, &watch,
	)
	if err != nil {
		return nil, err
	}
	if !watch.CanWatch {
		return nil, util.ErrNotEntitled
	}

	hlsURL := ""
	if watch.ProtocolHls != nil {
		hlsURL = watch.ProtocolHls.URL
	}
	if hlsURL == "" && len(watch.ChromecastURLs) > 0 {
		hlsURL = watch.ChromecastURLs[0]
	}
	if hlsURL == "" {
		return nil, util.ErrNoFormats
	}

	formats, err := parser.ParseM3U8FromURL(
		ctx.Context, hlsURL, hlsParseOptions(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse playlist: %w", err)
	}
	for _, format := range formats {
		media.AddFormat(format)
	}
	return []*models.Media{media}, nil
}

func mediaListFromPPV(ctx *models.DownloadContext) ([]*models.Media, error) {
	contentID := ctx.MatchedContentID
	media := ctx.Extractor.NewMedia(contentID, ctx.MatchedContentURL)

	metadata := getMetadata(
		ctx, "events", contentID,
		ctx.MatchedGroups["lang"],
		"eventFallbackData",
	)
	metadataToMedia(media, metadata)
	if metadata != nil {
		media.Timestamp = metadata.StartTime
		if metadata.StartTime > 0 && metadata.EndedTime > 0 {
			media.Duration = metadata.EndedTime - metadata.StartTime
		}
	}

	decryptor, err := newKeyDecryptor()
	if err != nil {
		return nil, err
	}
	token, err := decryptor.PublicToken()
	if err != nil {
		return nil, err
	}

	var watch WatchResponse
	err = callAPI(
		ctx, "events", contentID, ":watchArchive",
		true, &watchRequest{
			Token:    token,
			Method:   1,
			DeviceID: getDeviceID(ctx),
		},
		nil, &watch,
	)
	if err != nil {
		return nil, err
	}
	if !watch.CanWatch {
		return nil, util.ErrNotEntitled
	}

	hlsURL := ppvHlsURL(&watch)
	if hlsURL == "" {
		return nil, util.ErrNoFormats
	}

	formats, err := parser.ParseM3U8FromURL(
		ctx.Context, hlsURL, hlsParseOptions(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse playlist: %w", err)
	}

	decryptionKey := ppvDecryptionKey(&watch, decryptor)
	for _, format := range formats {
		// ppv playlists exaggerate bandwidth, which would
		// produce absurd size estimates downstream
		format.Bitrate /= 4
		if decryptionKey != nil {
			format.DecryptionKey = decryptionKey
		}
		media.AddFormat(format)
	}
	return []*models.Media{media}, nil
}

func ppvHlsURL(watch *WatchResponse) string {
	if watch.Hls != nil {
		if len(watch.Hls.URLs) > 0 {
			return watch.Hls.URLs[0]
		}
		if len(watch.Hls.ChromecastURLs) > 0 {
			return watch.Hls.ChromecastURLs[0]
		}
	}
	if len(watch.URLs) > 0 {
		return watch.URLs[0]
	}
	if len(watch.ChromecastURLs) > 0 {
		return watch.ChromecastURLs[0]
	}
	return ""
}

func ppvDecryptionKey(
	watch *WatchResponse,
	decryptor *keyDecryptor,
) *models.DecryptionKey {
	if watch.Hls == nil {
		return nil
	}
	// the api encrypts hex strings, not raw key bytes
	keyHex, err := decryptor.Decrypt(watch.Hls.Key)
	if err != nil {
		zap.S().Warnf("failed to decrypt hls key: %v", err)
		return nil
	}
	if keyHex == nil {
		if watch.Hls.EncryptType > 0 {
			zap.S().Warn("hls key was not found in api response")
		}
		return nil
	}
	key, err := util.ParseHex(string(keyHex))
	if err != nil {
		zap.S().Warnf("unexpected hls key encoding: %v", err)
		return nil
	}
	decryptionKey := &models.DecryptionKey{
		Key:    key,
		Method: "AES-128",
	}
	ivHex, err := decryptor.Decrypt(watch.Hls.IV)
	if err != nil {
		zap.S().Warnf("failed to decrypt hls iv: %v", err)
	} else if ivHex != nil {
		if iv, err := util.ParseHex(string(ivHex)); err == nil {
			decryptionKey.IV = iv
		}
	}
	return decryptionKey
}

func hlsParseOptions(ctx *models.DownloadContext) *parser.ParseOptions {
	opts := parser.DefaultParseOptions()
	opts.Client = networking.GetExtractorHTTPClient(ctx.Extractor)
	return opts
}
