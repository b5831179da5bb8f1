package weverse

import "vgrab/util"

var (
	ErrOnlyVOD       = &util.Error{Message: "only vod content is currently supported"}
	ErrMissingIDs    = &util.Error{Message: "required id values not found in api response"}
	ErrBadCredential = &util.Error{Message: "access denied. wrong password?"}
	ErrBadUsername   = &util.Error{Message: "invalid username provided"}
)
