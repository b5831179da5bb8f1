package brightcove

type PlaybackResponse struct {
	ID          string       `json:"id"`
	AccountID   string       `json:"account_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Duration    int64        `json:"duration"` // milliseconds
	PublishedAt string       `json:"published_at"`
	Tags        []string     `json:"tags"`
	Thumbnail   string       `json:"thumbnail"`
	Poster      string       `json:"poster"`
	Sources     []*Source    `json:"sources"`
	TextTracks  []*TextTrack `json:"text_tracks"`
}

type Source struct {
	Src        string         `json:"src"`
	Type       string         `json:"type"`
	Container  string         `json:"container"`
	Codec      string         `json:"codec"`
	AvgBitrate int64          `json:"avg_bitrate"`
	Size       int64          `json:"size"`
	Width      int64          `json:"width"`
	Height     int64          `json:"height"`
	KeySystems map[string]any `json:"key_systems"`
}

type TextTrack struct {
	Src      string `json:"src"`
	SrcLang  string `json:"srclang"`
	Kind     string `json:"kind"`
	MimeType string `json:"mime_type"`
}

type PlaybackError struct {
	ErrorCode    string `json:"error_code"`
	ErrorSubcode string `json:"error_subcode"`
	Message      string `json:"message"`
}
