package util

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"vgrab/models"
)

const ChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// FetchPage performs a single HTTP request with optional body,
// headers and cookies. The caller owns the response body.
func FetchPage(
	ctx context.Context,
	client models.HTTPClient,
	method string,
	url string,
	body io.Reader,
	headers map[string]string,
	cookies []*http.Cookie,
) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", ChromeUA)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// GetLocationURL resolves a URL by following redirects and
// returning the final location.
func GetLocationURL(
	ctx context.Context,
	client models.HTTPClient,
	url string,
	headers map[string]string,
	cookies []*http.Cookie,
) (string, error) {
	resp, err := FetchPage(ctx, client, http.MethodGet, url, nil, headers, cookies)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return resp.Request.URL.String(), nil
}
