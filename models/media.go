package models

import (
	"slices"
	"sort"

	"vgrab/enums"

	"github.com/guregu/null/v6/zero"
)

// Media is the normalized record every extractor produces: descriptive
// metadata plus the list of playable encodings found on the site.
type Media struct {
	ContentID         string      `json:"content_id"`
	ContentURL        string      `json:"content_url"`
	ExtractorCodeName string      `json:"extractor_code_name"`
	Title             string      `json:"title"`
	Description       zero.String `json:"description"`
	Caption           zero.String `json:"caption"`
	Series            string      `json:"series,omitempty"`
	SeasonNumber      int64       `json:"season_number,omitempty"`
	EpisodeNumber     int64       `json:"episode_number,omitempty"`
	Channel           string      `json:"channel,omitempty"`
	Location          string      `json:"location,omitempty"`
	Uploader          string      `json:"uploader,omitempty"`
	UploaderID        string      `json:"uploader_id,omitempty"`
	Cast              []string    `json:"cast,omitempty"`
	Tags              []string    `json:"tags,omitempty"`
	Duration          int64       `json:"duration,omitempty"` // seconds
	Timestamp         int64       `json:"timestamp,omitempty"`
	ReleaseTimestamp  int64       `json:"release_timestamp,omitempty"`
	AgeLimit          int64       `json:"age_limit,omitempty"`
	IsDRM             bool        `json:"is_drm,omitempty"`

	Thumbnails []*Thumbnail `json:"thumbnails,omitempty"`
	Chapters   []*Chapter   `json:"chapters,omitempty"`
	Subtitles  []*Subtitle  `json:"subtitles,omitempty"`

	Formats []*MediaFormat `json:"formats"`
}

type MediaFormat struct {
	Type          enums.MediaType  `json:"type"`
	FormatID      string           `json:"format_id"`
	VideoCodec    enums.MediaCodec `json:"video_codec,omitempty"`
	AudioCodec    enums.MediaCodec `json:"audio_codec,omitempty"`
	Duration      int64            `json:"duration,omitempty"`
	Width         int64            `json:"width,omitempty"`
	Height        int64            `json:"height,omitempty"`
	Bitrate       int64            `json:"bitrate,omitempty"`
	FileSize      int64            `json:"file_size,omitempty"`
	URL           []string         `json:"url"`
	Segments      []string         `json:"segments,omitempty"`
	InitSegment   string           `json:"init_segment,omitempty"`
	SegmentQuery  string           `json:"segment_query,omitempty"` // extra query glued to each segment URL
	DecryptionKey *DecryptionKey   `json:"decryption_key,omitempty"`
	IsDefault     bool             `json:"is_default,omitempty"`
}

type Thumbnail struct {
	ID     string `json:"id,omitempty"`
	URL    string `json:"url"`
	Width  int64  `json:"width,omitempty"`
	Height int64  `json:"height,omitempty"`
}

type Chapter struct {
	Title     string  `json:"title,omitempty"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time,omitempty"`
}

type Subtitle struct {
	Language string               `json:"language"`
	Format   enums.SubtitleFormat `json:"format"`
	URL      string               `json:"url"`
}

func (media *Media) SetCaption(caption string) {
	if len(caption) == 0 {
		return
	}
	media.Caption = zero.StringFrom(caption)
}

func (media *Media) SetDescription(description string) {
	if len(description) == 0 {
		return
	}
	media.Description = zero.StringFrom(description)
}

func (media *Media) AddFormat(format *MediaFormat) {
	media.Formats = append(media.Formats, format)
}

func (media *Media) AddSubtitle(subtitle *Subtitle) {
	media.Subtitles = append(media.Subtitles, subtitle)
}

func (media *Media) GetFormat(formatID string) *MediaFormat {
	for _, format := range media.Formats {
		if format.FormatID == formatID {
			return format
		}
	}
	return nil
}

func (media *Media) GetDefaultFormat() *MediaFormat {
	format := media.GetDefaultVideoFormat()
	if format != nil {
		return format
	}
	return media.GetDefaultAudioFormat()
}

func (media *Media) GetDefaultVideoFormat() *MediaFormat {
	filtered := filterFormats(media.Formats, func(format *MediaFormat) bool {
		return format.VideoCodec == enums.MediaCodecAVC
	})
	if len(filtered) == 0 {
		filtered = filterFormats(media.Formats, func(format *MediaFormat) bool {
			return format.VideoCodec != ""
		})
	}
	if len(filtered) == 0 {
		return nil
	}
	slices.SortFunc(filtered, func(a, b *MediaFormat) int {
		if a.Bitrate != b.Bitrate {
			if a.Bitrate > b.Bitrate {
				return -1
			}
			return 1
		}
		if a.Height > b.Height {
			return -1
		} else if a.Height < b.Height {
			return 1
		}
		return 0
	})
	bestFormat := filtered[0]
	bestFormat.IsDefault = true
	return bestFormat
}

func (media *Media) GetDefaultAudioFormat() *MediaFormat {
	filtered := filterFormats(media.Formats, func(format *MediaFormat) bool {
		return format.VideoCodec == "" &&
			(format.AudioCodec == enums.MediaCodecAAC ||
				format.AudioCodec == enums.MediaCodecMP3)
	})
	if len(filtered) == 0 {
		filtered = filterFormats(media.Formats, func(format *MediaFormat) bool {
			return format.VideoCodec == "" && format.AudioCodec != ""
		})
	}
	if len(filtered) == 0 {
		return nil
	}
	bestFormat := filtered[0]
	for _, format := range filtered {
		if format.Bitrate > bestFormat.Bitrate {
			bestFormat = format
		}
	}
	bestFormat.IsDefault = true
	return bestFormat
}

// GetSortedFormats deduplicates formats by codec and resolution, keeping
// the highest bitrate of each group, and returns them video first.
func (media *Media) GetSortedFormats() []*MediaFormat {
	groupedVideos := make(map[[3]int64]*MediaFormat)
	for _, format := range media.Formats {
		if format.Type == enums.MediaTypeVideo {
			key := [3]int64{
				getCodecPriority(format.VideoCodec),
				format.Width,
				format.Height,
			}
			existing, ok := groupedVideos[key]
			if !ok || format.Bitrate > existing.Bitrate {
				groupedVideos[key] = format
			}
		}
	}

	groupedAudios := make(map[[2]int64]*MediaFormat)
	for _, format := range media.Formats {
		if format.Type == enums.MediaTypeAudio {
			key := [2]int64{
				getCodecPriority(format.AudioCodec),
				format.Bitrate,
			}
			if _, exists := groupedAudios[key]; !exists {
				groupedAudios[key] = format
			}
		}
	}

	sorted := make([]*MediaFormat, 0, len(groupedVideos)+len(groupedAudios))
	for _, best := range groupedVideos {
		sorted = append(sorted, best)
	}
	for _, best := range groupedAudios {
		sorted = append(sorted, best)
	}

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if cmp := getTypePriority(a.Type) - getTypePriority(b.Type); cmp != 0 {
			return cmp < 0
		}
		if a.Type == enums.MediaTypeVideo {
			if cmp := getCodecPriority(a.VideoCodec) - getCodecPriority(b.VideoCodec); cmp != 0 {
				return cmp < 0
			}
		} else {
			if cmp := getCodecPriority(a.AudioCodec) - getCodecPriority(b.AudioCodec); cmp != 0 {
				return cmp < 0
			}
		}
		if cmp := a.Width - b.Width; cmp != 0 {
			return cmp < 0
		}
		if cmp := a.Height - b.Height; cmp != 0 {
			return cmp < 0
		}
		return a.Bitrate < b.Bitrate
	})

	return sorted
}

func (media *Media) HasVideo() bool {
	for _, format := range media.Formats {
		if format.Type == enums.MediaTypeVideo {
			return true
		}
	}
	return false
}

func (media *Media) HasAudio() bool {
	for _, format := range media.Formats {
		if format.Type == enums.MediaTypeAudio {
			return true
		}
	}
	return false
}

func filterFormats(
	formats []*MediaFormat,
	condition func(*MediaFormat) bool,
) []*MediaFormat {
	var filtered []*MediaFormat
	for _, format := range formats {
		if condition(format) {
			filtered = append(filtered, format)
		}
	}
	return filtered
}

func getCodecPriority(codec enums.MediaCodec) int64 {
	codecPriority := map[enums.MediaCodec]int64{
		enums.MediaCodecAVC:  1,
		enums.MediaCodecHEVC: 2,
		enums.MediaCodecMP3:  3,
		enums.MediaCodecAAC:  4,
	}
	return codecPriority[codec]
}

func getTypePriority(mediaType enums.MediaType) int64 {
	typePriority := map[enums.MediaType]int64{
		enums.MediaTypeVideo: 1,
		enums.MediaTypeAudio: 2,
	}
	return typePriority[mediaType]
}
