package paramount

import "errors"

var (
	ErrNoPageData    = errors.New("no page data found")
	ErrNoVideoPlayer = errors.New("no video player block in page data")
	ErrNoMGID        = errors.New("no mgid found in video player config")
)
