package nbcu

// PlatformMetadata is the mpx "preview" record served by
// link.theplatform.com. The pl1$/nbcu$ fields are account-level
// custom fields and show up as either numbers or strings.
type PlatformMetadata struct {
	GUID        string `json:"guid"`
	PID         string `json:"pid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int64  `json:"duration"` // milliseconds
	PubDate     int64  `json:"pubDate"`  // milliseconds

	Ratings  []*PlatformRating  `json:"ratings"`
	Captions []*PlatformCaption `json:"captions"`
	Chapters []*PlatformChapter `json:"chapters"`

	SeasonNumber      any    `json:"pl1$seasonNumber"`
	EpisodeNumber     any    `json:"pl1$episodeNumber"`
	Show              any    `json:"pl1$show"`
	EpisodeName       string `json:"pl1$episodeName"`
	NBCUSeasonNumber  any    `json:"nbcu$seasonNumber"`
	NBCUEpisodeNumber any    `json:"nbcu$episodeNumber"`
	NBCUShow          any    `json:"nbcu$show"`
}

type PlatformRating struct {
	Rating string `json:"rating"`
}

type PlatformCaption struct {
	Src  string `json:"src"`
	Lang string `json:"lang"`
	Type string `json:"type"`
}

type PlatformChapter struct {
	Title     string `json:"title"`
	StartTime int64  `json:"startTime"` // milliseconds
	EndTime   int64  `json:"endTime"`   // milliseconds
}

// smilResult is what we keep from a SMIL manifest: the secure HLS
// source plus whatever the service used to explain a refusal.
type smilResult struct {
	VideoSrc  string
	Captions  []*smilTextStream
	Exception string
	Abstract  string
}

type smilTextStream struct {
	Src      string
	Language string
	Type     string
}
