package enums

type SubtitleFormat string

const (
	SubtitleFormatVTT  SubtitleFormat = "vtt"
	SubtitleFormatTTML SubtitleFormat = "ttml"
	SubtitleFormatSRT  SubtitleFormat = "srt"
	SubtitleFormatSCC  SubtitleFormat = "scc"
)
