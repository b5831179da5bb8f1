package networking

import (
	"net"
	"net/http"
	"sync"
	"time"

	"vgrab/config"
	"vgrab/models"
)

var (
	defaultClient     *http.Client
	defaultClientOnce sync.Once

	extractorClientsMu sync.Mutex
	extractorClients   = make(map[string]models.HTTPClient)
)

func GetDefaultHTTPClient() *http.Client {
	defaultClientOnce.Do(func() {
		defaultClient = &http.Client{
			Transport: GetBaseTransport(),
			Timeout:   60 * time.Second,
		}
	})
	return defaultClient
}

func GetBaseTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   100,
		MaxConnsPerHost:       100,
		ResponseHeaderTimeout: 10 * time.Second,
		DisableCompression:    false,
	}
}

// GetExtractorHTTPClient returns the client configured for the
// extractor, building it once from ext-cfg.yaml.
func GetExtractorHTTPClient(extractor *models.Extractor) models.HTTPClient {
	extractorClientsMu.Lock()
	defer extractorClientsMu.Unlock()

	if client, exists := extractorClients[extractor.CodeName]; exists {
		return client
	}

	cfg := config.GetExtractorConfig(extractor.CodeName)
	if cfg == nil {
		return GetDefaultHTTPClient()
	}

	var client models.HTTPClient
	if cfg.EdgeProxyURL != "" {
		client = NewEdgeProxyClientFromConfig(cfg)
	} else {
		client = NewClientFromConfig(cfg)
	}
	extractorClients[extractor.CodeName] = client

	return client
}

func NewClientFromConfig(cfg *models.ExtractorConfig) *http.Client {
	transport := GetBaseTransport()
	if cfg.HTTPProxy != "" || cfg.HTTPSProxy != "" {
		configureProxyTransport(transport, cfg)
	}
	client := &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
	if cfg.Impersonate {
		client.Transport = NewChromeTransport(transport)
	}
	return client
}
