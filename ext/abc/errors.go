package abc

import "errors"

var (
	ErrNoShowID     = errors.New("no show id found in page")
	ErrNoSessionKey = errors.New("entitlement response has no session key")
)
