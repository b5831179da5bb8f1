package ninenow

import "vgrab/util"

var (
	ErrNoVideoData    = &util.Error{Message: "unable to extract video data"}
	ErrNoBrightcoveID = &util.Error{Message: "brightcove id not found in video data"}
)
