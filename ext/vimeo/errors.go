package vimeo

import "vgrab/util"

var (
	ErrBadViewerToken = &util.Error{Message: "there was a problem with the viewer token"}
	ErrLoginFailed    = &util.Error{Message: "unable to log in: bad username or password"}
)
