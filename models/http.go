package models

import "net/http"

// HTTPClient is implemented by *http.Client and by the
// edge proxy client in util/networking.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
