package wrestleuniverse

import "vgrab/util"

var ErrBadTokenCookie = &util.Error{Message: "there was a problem with the token cookie"}
