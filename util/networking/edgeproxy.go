package networking

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"vgrab/models"

	"github.com/pkg/errors"
)

// EdgeProxyClient tunnels requests through a JSON relay that executes
// them from an edge location and returns the response as JSON.
type EdgeProxyClient struct {
	client   *http.Client
	proxyURL string
}

func NewEdgeProxyClientFromConfig(cfg *models.ExtractorConfig) *EdgeProxyClient {
	client := &http.Client{
		Transport: GetBaseTransport(),
		Timeout:   60 * time.Second,
	}
	if cfg.Impersonate {
		client.Transport = NewChromeTransport(client.Transport)
	}
	return &EdgeProxyClient{
		client:   client,
		proxyURL: cfg.EdgeProxyURL,
	}
}

func (c *EdgeProxyClient) Do(req *http.Request) (*http.Response, error) {
	if c.proxyURL == "" {
		return nil, errors.New("proxy URL is not set")
	}

	targetURL := req.URL.String()
	encodedURL := url.QueryEscape(targetURL)
	proxyURLWithParam := c.proxyURL + "?url=" + encodedURL

	bodyBytes, err := readRequestBody(req)
	if err != nil {
		return nil, err
	}

	proxyReq, err := http.NewRequest(
		req.Method,
		proxyURLWithParam,
		bytes.NewBuffer(bodyBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating proxy request: %w", err)
	}

	copyHeaders(req.Header, proxyReq.Header)

	proxyResp, err := c.client.Do(proxyReq)
	if err != nil {
		return nil, fmt.Errorf("proxy request failed: %w", err)
	}
	defer proxyResp.Body.Close()

	return parseProxyResponse(proxyResp, req)
}

func readRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}

	bodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading request body: %w", err)
	}

	req.Body.Close()
	req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	return bodyBytes, nil
}
