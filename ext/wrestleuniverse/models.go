package wrestleuniverse

type Metadata struct {
	DisplayName    string  `json:"displayName"`
	Description    string  `json:"description"`
	Duration       int64   `json:"duration"`
	WatchStartTime int64   `json:"watchStartTime"`
	StartTime      int64   `json:"startTime"`
	EndedTime      int64   `json:"endedTime"`
	KeyVisualURL   string  `json:"keyVisualUrl"`
	AlterKeyVisual string  `json:"alterKeyVisualUrl"`
	HeroKeyVisual  string  `json:"heroKeyVisualUrl"`
	Labels         *Labels `json:"labels"`
	Casts          []*Cast `json:"casts"`
	VideoChapters  []*Chap `json:"videoChapters"`
}

type Labels struct {
	Group string `json:"group"`
	Venue string `json:"venue"`
}

type Cast struct {
	DisplayName string `json:"displayName"`
}

type Chap struct {
	DisplayName string `json:"displayName"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
}

type WatchResponse struct {
	CanWatch       bool       `json:"canWatch"`
	ProtocolHls    *HlsSource `json:"protocolHls"`
	Hls            *HlsArch   `json:"hls"`
	URLs           []string   `json:"urls"`
	ChromecastURLs []string   `json:"chromecastUrls"`
}

type HlsSource struct {
	URL string `json:"url"`
}

type HlsArch struct {
	URLs           []string `json:"urls"`
	ChromecastURLs []string `json:"chromecastUrls"`
	Key            string   `json:"key"`
	IV             string   `json:"iv"`
	EncryptType    int      `json:"encryptType"`
}

type watchRequest struct {
	IgnoreDeviceRestriction bool   `json:"ignoreDeviceRestriction,omitempty"`
	DeviceID                string `json:"deviceId,omitempty"`
	Token                   string `json:"token,omitempty"`
	Method                  int    `json:"method,omitempty"`
}
