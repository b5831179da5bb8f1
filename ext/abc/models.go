package abc

type VideosResponse struct {
	Video []*VideoData `json:"video"`
}

type VideoData struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Type            string         `json:"type"`
	URL             string         `json:"url"`
	AccessLevel     string         `json:"accesslevel"`
	Description     string         `json:"description"`
	LongDescription string         `json:"longdescription"`
	EpisodeNumber   any            `json:"episodenumber"`
	Airdates        *Airdates      `json:"airdates"`
	Duration        *DurationValue `json:"duration"`
	TVRating        *TVRating      `json:"tvrating"`
	Show            *Show          `json:"show"`
	Season          *Season        `json:"season"`
	Assets          *Assets        `json:"assets"`
	ClosedCaption   *ClosedCaption `json:"closedcaption"`
	Thumbnails      *Thumbnails    `json:"thumbnails"`
}

type Airdates struct {
	Airdate []string `json:"airdate"`
}

// First returns the first listed air date, if any.
func (a *Airdates) First() string {
	if a == nil || len(a.Airdate) == 0 {
		return ""
	}
	return a.Airdate[0]
}

type DurationValue struct {
	Value int64 `json:"value"` // milliseconds
}

type TVRating struct {
	Rating string `json:"rating"`
}

type Show struct {
	Title string `json:"title"`
}

type Season struct {
	Num any `json:"num"`
}

type Assets struct {
	Asset []*Asset `json:"asset"`
}

type Asset struct {
	Value  string `json:"value"`
	Format string `json:"format"`
}

type ClosedCaption struct {
	Src []*CaptionSource `json:"src"`
}

type CaptionSource struct {
	Value string `json:"value"`
	Lang  string `json:"lang"`
}

type Thumbnails struct {
	Thumbnail []*ThumbnailData `json:"thumbnail"`
}

type ThumbnailData struct {
	Value  string `json:"value"`
	Width  any    `json:"width"`
	Height any    `json:"height"`
}

type EntitlementResponse struct {
	Entitlement *Entitlement     `json:"entitlement"`
	Errors      *EntitlementErrs `json:"errors"`
}

type Entitlement struct {
	UplynkData *UplynkData `json:"uplynkData"`
}

type UplynkData struct {
	SessionKey string `json:"sessionKey"`
}

type EntitlementErrs struct {
	Errors []*EntitlementError `json:"errors"`
}

type EntitlementError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}
