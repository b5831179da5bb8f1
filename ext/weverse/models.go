package weverse

type Post struct {
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	PublishedAt    int64      `json:"publishedAt"`
	MembershipOnly bool       `json:"membershipOnly"`
	Author         *Author    `json:"author"`
	Extension      *Extension `json:"extension"`
}

type Author struct {
	ProfileName string `json:"profileName"`
}

type Extension struct {
	MediaInfo *MediaInfo `json:"mediaInfo"`
	Video     *PostVideo `json:"video"`
}

type MediaInfo struct {
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Thumbnail *Thumbnail `json:"thumbnail"`
}

type Thumbnail struct {
	URL string `json:"url"`
}

type PostVideo struct {
	Type         string `json:"type"`
	VideoID      int64  `json:"videoId"`
	InfraVideoID string `json:"infraVideoId"`
	ServiceID    int64  `json:"serviceId"`
	OnAirStartAt int64  `json:"onAirStartAt"` // milliseconds
	PlayTime     int64  `json:"playTime"`     // seconds
	Thumb        string `json:"thumb"`
}

type InKeyResponse struct {
	InKey string `json:"inKey"`
}

type AccountStatus struct {
	HasPassword bool `json:"hasPassword"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}

type PlayResponse struct {
	Videos  *VideoList `json:"videos"`
	Streams []*Stream  `json:"streams"`
}

type VideoList struct {
	List []*Video `json:"list"`
}

type Video struct {
	Source         string          `json:"source"`
	Type           string          `json:"type"`
	Size           int64           `json:"size"`
	EncodingOption *EncodingOption `json:"encodingOption"`
	Bitrate        *Bitrate        `json:"bitrate"`
}

type EncodingOption struct {
	ID                 string `json:"id"`
	Width              int64  `json:"width"`
	Height             int64  `json:"height"`
	IsEncodingComplete bool   `json:"isEncodingComplete"`
}

type Bitrate struct {
	Video int64 `json:"video"`
	Audio int64 `json:"audio"`
}

type Stream struct {
	Type   string       `json:"type"`
	Source string       `json:"source"`
	Keys   []*StreamKey `json:"keys"`
}

type StreamKey struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}
