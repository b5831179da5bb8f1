package nbcu

import "errors"

var (
	ErrNoSettings  = errors.New("no drupal settings found in page")
	ErrNoVideoDeck = errors.New("video deck element is missing mpx coordinates")
	ErrNoPlaylist  = errors.New("no playlist with a default guid found")
)
