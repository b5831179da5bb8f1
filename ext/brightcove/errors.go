package brightcove

import "vgrab/util"

var ErrNoPolicyKey = &util.Error{Message: "policy key not found in player bundle"}
