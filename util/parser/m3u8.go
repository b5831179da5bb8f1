package parser

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"vgrab/enums"
	"vgrab/models"
	"vgrab/util"

	"github.com/grafov/m3u8"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func ParseM3U8Content(
	content []byte,
	baseURL string,
) ([]*models.MediaFormat, error) {
	return ParseM3U8ContentWithOptions(
		context.Background(),
		content,
		baseURL,
		DefaultParseOptions(),
	)
}

func ParseM3U8ContentWithOptions(
	ctx context.Context,
	content []byte,
	baseURL string,
	opts *ParseOptions,
) ([]*models.MediaFormat, error) {
	baseURLObj, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if opts == nil {
		opts = DefaultParseOptions()
	}

	buf := bytes.NewBuffer(content)
	playlist, listType, err := m3u8.DecodeFrom(buf, true)
	if err != nil {
		return nil, fmt.Errorf("failed parsing m3u8: %w", err)
	}

	switch listType {
	case m3u8.MASTER:
		return parseMasterPlaylist(
			ctx,
			playlist.(*m3u8.MasterPlaylist),
			baseURLObj, opts,
		)
	case m3u8.MEDIA:
		return parseMediaPlaylist(
			ctx,
			playlist.(*m3u8.MediaPlaylist),
			baseURLObj, opts,
		)
	}

	return nil, errors.New("unsupported m3u8 playlist type")
}

func ParseM3U8FromURL(
	ctx context.Context,
	url string,
	opts *ParseOptions,
) ([]*models.MediaFormat, error) {
	body, err := fetchContent(ctx, url, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch m3u8 content: %w", err)
	}
	return ParseM3U8ContentWithOptions(ctx, body, url, opts)
}

func parseMasterPlaylist(
	ctx context.Context,
	playlist *m3u8.MasterPlaylist,
	baseURL *url.URL,
	opts *ParseOptions,
) ([]*models.MediaFormat, error) {
	// each variant can potentially create one format, and
	// some alternatives might add more
	formats := make([]*models.MediaFormat, 0, len(playlist.Variants)*2)

	seenAlternatives := make(map[string]bool)
	for _, variant := range playlist.Variants {
		if variant == nil || variant.URI == "" {
			continue
		}
		for _, alt := range variant.Alternatives {
			if _, ok := seenAlternatives[alt.GroupId]; ok {
				continue
			}
			seenAlternatives[alt.GroupId] = true
			format := parseAlternative(
				ctx,
				playlist.Variants,
				alt, baseURL, opts,
			)
			if format == nil {
				continue
			}
			formats = append(formats, format)
		}
		width, height := getResolution(variant.Resolution)
		mediaType, videoCodec, audioCodec := parseVariantType(variant)
		variantURL := resolveURL(baseURL, variant.URI)
		if variant.Audio != "" {
			// audio rides in a separate alternative rendition
			audioCodec = ""
		}
		format := &models.MediaFormat{
			FormatID:   fmt.Sprintf("hls-%d", variant.Bandwidth/1000),
			Type:       mediaType,
			VideoCodec: videoCodec,
			AudioCodec: audioCodec,
			Bitrate:    int64(variant.Bandwidth),
			Width:      width,
			Height:     height,
			URL:        []string{variantURL},
		}
		mergeVariantDetails(ctx, format, variantURL, opts)
		formats = append(formats, format)
	}
	return formats, nil
}

func parseMediaPlaylist(
	ctx context.Context,
	playlist *m3u8.MediaPlaylist,
	baseURL *url.URL,
	opts *ParseOptions,
) ([]*models.MediaFormat, error) {
	segmentQuery := ""
	if opts.PropagateQuery {
		segmentQuery = baseURL.RawQuery
	}

	initialCapacity := len(playlist.Segments)
	segments := make([]string, 0, initialCapacity)

	var totalDuration float64
	var initSegment string
	if playlist.Map != nil && playlist.Map.URI != "" {
		initSegment = appendQuery(
			resolveURL(baseURL, playlist.Map.URI),
			segmentQuery,
		)
	}
	for _, segment := range playlist.Segments {
		if segment == nil || segment.URI == "" {
			continue
		}
		segmentURL := appendQuery(
			resolveURL(baseURL, segment.URI),
			segmentQuery,
		)
		segments = append(segments, segmentURL)
		totalDuration += segment.Duration
		if segment.Limit > 0 {
			// byterange not supported
			break
		}
	}
	format := &models.MediaFormat{
		FormatID:     "hls",
		Duration:     int64(totalDuration),
		URL:          []string{baseURL.String()},
		Segments:     segments,
		InitSegment:  initSegment,
		SegmentQuery: segmentQuery,
	}
	if key := playlistKey(playlist); key != nil {
		format.DecryptionKey = parsePlaylistKey(ctx, key, baseURL, playlist.SeqNo, opts)
	}
	return []*models.MediaFormat{format}, nil
}

// playlistKey returns the playlist-level key, falling back to
// the first segment that declares one.
func playlistKey(playlist *m3u8.MediaPlaylist) *m3u8.Key {
	if playlist.Key != nil && playlist.Key.Method != "" && playlist.Key.Method != "NONE" {
		return playlist.Key
	}
	for _, segment := range playlist.Segments {
		if segment == nil {
			continue
		}
		if segment.Key != nil && segment.Key.Method != "" && segment.Key.Method != "NONE" {
			return segment.Key
		}
	}
	return nil
}

func parsePlaylistKey(
	ctx context.Context,
	key *m3u8.Key,
	baseURL *url.URL,
	mediaSequence uint64,
	opts *ParseOptions,
) *models.DecryptionKey {
	decryptionKey := &models.DecryptionKey{
		Method:        key.Method,
		MediaSequence: int(mediaSequence),
	}
	if key.URI != "" {
		decryptionKey.URI = resolveURL(baseURL, key.URI)
	}
	if key.IV != "" {
		if iv, err := util.ParseHex(key.IV); err == nil {
			decryptionKey.IV = iv
		}
	}
	if opts.FetchKeys && decryptionKey.URI != "" {
		keyBytes, err := fetchContent(ctx, decryptionKey.URI, opts)
		if err != nil {
			zap.S().Warnf("failed to fetch hls key: %v", err)
		} else {
			decryptionKey.Key = keyBytes
		}
	}
	return decryptionKey
}

func mergeVariantDetails(
	ctx context.Context,
	format *models.MediaFormat,
	variantURL string,
	opts *ParseOptions,
) {
	if !opts.FetchVariants {
		return
	}
	variantContent, err := fetchContent(ctx, variantURL, opts)
	if err != nil {
		return
	}
	variantFormats, err := ParseM3U8ContentWithOptions(ctx, variantContent, variantURL, opts)
	if err != nil || len(variantFormats) == 0 {
		return
	}
	format.Segments = variantFormats[0].Segments
	format.InitSegment = variantFormats[0].InitSegment
	format.SegmentQuery = variantFormats[0].SegmentQuery
	format.DecryptionKey = variantFormats[0].DecryptionKey
	if variantFormats[0].Duration > 0 {
		format.Duration = variantFormats[0].Duration
	}
}

func parseAlternative(
	ctx context.Context,
	variants []*m3u8.Variant,
	alternative *m3u8.Alternative,
	baseURL *url.URL,
	opts *ParseOptions,
) *models.MediaFormat {
	if alternative == nil || alternative.URI == "" {
		return nil
	}
	if alternative.Type != "AUDIO" {
		return nil
	}
	altURL := resolveURL(baseURL, alternative.URI)
	audioCodec := getAudioAlternativeCodec(variants, alternative)
	format := &models.MediaFormat{
		FormatID:   "hls-" + alternative.GroupId,
		Type:       enums.MediaTypeAudio,
		AudioCodec: audioCodec,
		URL:        []string{altURL},
	}
	mergeVariantDetails(ctx, format, altURL, opts)
	return format
}

func getAudioAlternativeCodec(
	variants []*m3u8.Variant,
	alt *m3u8.Alternative,
) enums.MediaCodec {
	if alt == nil || alt.URI == "" {
		return ""
	}
	if alt.Type != "AUDIO" {
		return ""
	}
	for _, variant := range variants {
		if variant == nil || variant.URI == "" {
			continue
		}
		if variant.Audio != alt.GroupId {
			continue
		}
		audioCodec := getAudioCodec(variant.Codecs)
		if audioCodec != "" {
			return audioCodec
		}
	}
	return ""
}

func getResolution(
	resolution string,
) (int64, int64) {
	var width, height int
	if _, err := fmt.Sscanf(resolution, "%dx%d", &width, &height); err == nil {
		return int64(width), int64(height)
	}
	return 0, 0
}

func parseVariantType(
	variant *m3u8.Variant,
) (enums.MediaType, enums.MediaCodec, enums.MediaCodec) {
	var mediaType enums.MediaType

	videoCodec := getVideoCodec(variant.Codecs)
	audioCodec := getAudioCodec(variant.Codecs)

	if videoCodec != "" {
		mediaType = enums.MediaTypeVideo
	} else if audioCodec != "" {
		mediaType = enums.MediaTypeAudio
	}

	return mediaType, videoCodec, audioCodec
}
