package networking

import "net/http"

var chromeHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Sec-Ch-Ua":                 `"Chromium";v="124", "Google Chrome";v="124", "Not-A.Brand";v="99"`,
	"Sec-Ch-Ua-Mobile":          "?0",
	"Sec-Ch-Ua-Platform":        `"Windows"`,
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Upgrade-Insecure-Requests": "1",
}

// ChromeTransport decorates a transport with browser-like headers for
// sites that reject the default Go client fingerprint.
type ChromeTransport struct {
	base http.RoundTripper
}

func NewChromeTransport(base http.RoundTripper) *ChromeTransport {
	if base == nil {
		base = GetBaseTransport()
	}
	return &ChromeTransport{base: base}
}

func (t *ChromeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for key, value := range chromeHeaders {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	return t.base.RoundTrip(req)
}
