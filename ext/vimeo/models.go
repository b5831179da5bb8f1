package vimeo

type Viewer struct {
	JWT   string `json:"jwt"`
	Xsrft string `json:"xsrft"`
	Vuid  string `json:"vuid"`
}

type OEmbed struct {
	HTML string `json:"html"`
}

type APIVideo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Duration    int64     `json:"duration"`
	CreatedTime string    `json:"created_time"`
	ReleaseTime string    `json:"release_time"`
	Link        string    `json:"link"`
	ConfigURL   string    `json:"config_url"`
	Pictures    *Pictures `json:"pictures"`
	User        *User     `json:"user"`
}

type Pictures struct {
	Sizes []*PictureSize `json:"sizes"`
}

type PictureSize struct {
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
	Link   string `json:"link"`
}

type User struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

type AlbumPage struct {
	Total  int64       `json:"total"`
	Page   int64       `json:"page"`
	Paging *Paging     `json:"paging"`
	Data   []*APIVideo `json:"data"`
}

type Paging struct {
	Next string `json:"next"`
}

type PlayerConfig struct {
	Request *ConfigRequest `json:"request"`
	Video   *ConfigVideo   `json:"video"`
}

type ConfigRequest struct {
	Files      *ConfigFiles `json:"files"`
	TextTracks []*TextTrack `json:"text_tracks"`
}

type ConfigFiles struct {
	Progressive []*ProgressiveFile `json:"progressive"`
	Hls         *StreamFile        `json:"hls"`
	Dash        *StreamFile        `json:"dash"`
}

type ProgressiveFile struct {
	URL     string `json:"url"`
	Width   int64  `json:"width"`
	Height  int64  `json:"height"`
	FPS     int64  `json:"fps"`
	Quality string `json:"quality"`
}

type StreamFile struct {
	DefaultCDN string          `json:"default_cdn"`
	CDNs       map[string]*CDN `json:"cdns"`
}

type CDN struct {
	URL string `json:"url"`
}

type TextTrack struct {
	URL  string `json:"url"`
	Lang string `json:"lang"`
	Kind string `json:"kind"`
}

type ConfigVideo struct {
	Title    string            `json:"title"`
	Duration int64             `json:"duration"`
	Thumbs   map[string]string `json:"thumbs"`
	Owner    *ConfigOwner      `json:"owner"`
}

type ConfigOwner struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
