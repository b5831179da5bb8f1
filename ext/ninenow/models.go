package ninenow

type CommonData struct {
	Episode *Item   `json:"episode"`
	Clip    *Item   `json:"clip"`
	Season  *Season `json:"season"`
}

type Item struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Slug          string     `json:"slug"`
	AirDate       string     `json:"airDate"`
	EpisodeNumber int64      `json:"episodeNumber"`
	Availability  string     `json:"availability"`
	Video         *VideoInfo `json:"video"`
	Image         *Image     `json:"image"`
}

type VideoInfo struct {
	ID           int64  `json:"id"`
	Duration     int64  `json:"duration"` // milliseconds
	DRM          bool   `json:"drm"`
	BrightcoveID string `json:"brightcoveId"`
	ReferenceID  string `json:"referenceId"`
}

type Image struct {
	Sizes map[string]string `json:"sizes"`
}

type Season struct {
	SeasonNumber int64 `json:"seasonNumber"`
}
