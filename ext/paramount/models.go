package paramount

// MicaResponse is the topaz playback manifest: one stitched HLS
// stream plus the content records it was stitched from.
type MicaResponse struct {
	StitchedStream *StitchedStream `json:"stitchedstream"`
	Content        []*MicaContent  `json:"content"`
}

type StitchedStream struct {
	Source string `json:"source"`
}

type MicaContent struct {
	ID            string           `json:"id"`
	OriginID      string           `json:"originId"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	SeriesTitle   string           `json:"seriesTitle"`
	ChannelName   string           `json:"channelName"`
	SeasonNumber  any              `json:"seasonNumber"`
	EpisodeNumber any              `json:"episodeNumber"`
	Duration      float64          `json:"duration"` // seconds
	PublishDate   *MicaDate        `json:"publishDate"`
	Images        []*MicaImage     `json:"images"`
	Transport     []*MicaTransport `json:"transport"`
}

type MicaDate struct {
	Timestamp int64 `json:"timestamp"` // seconds
}

type MicaImage struct {
	URL    string `json:"url"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
}

// MicaTransport is a sidecar subtitle track. The "rtt" format is a
// player-internal overlay and never a usable caption file.
type MicaTransport struct {
	URI      string `json:"uri"`
	Format   string `json:"format"`
	Language string `json:"language"`
}
