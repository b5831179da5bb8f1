package util

type Error struct {
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

var (
	ErrUnavailable          = &Error{Message: "this content is unavailable"}
	ErrNotImplemented       = &Error{Message: "this feature is not implemented"}
	ErrAuthenticationNeeded = &Error{Message: "this service requires authentication. provide cookies or credentials"}
	ErrSessionExpired       = &Error{Message: "session token expired. refresh your cookies and try again"}
	ErrNotEntitled          = &Error{Message: "this account does not have access to the requested content"}
	ErrPaidContent          = &Error{Message: "this content requires a provider subscription"}
	ErrGeoRestricted        = &Error{Message: "this content is not available in your region"}
	ErrDRMProtected         = &Error{Message: "this content is drm protected"}
	ErrWrongPassword        = &Error{Message: "wrong video password"}
	ErrPasswordNeeded       = &Error{Message: "this video is protected by a password. set video_password in the extractor config"}
	ErrNoFormats            = &Error{Message: "no playable formats found"}
	ErrURLNotFound          = &Error{Message: "no matching URL found"}
)
