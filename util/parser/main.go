package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"vgrab/enums"
	"vgrab/models"
)

const defaultHTTPTimeout = 30 * time.Second

var (
	defaultClient *http.Client
	once          sync.Once
)

// returns a singleton HTTP client with optimized settings
func getDefaultClient() *http.Client {
	once.Do(func() {
		transport := &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		}
		defaultClient = &http.Client{
			Timeout:   defaultHTTPTimeout,
			Transport: transport,
		}
	})
	return defaultClient
}

// ParseOptions tunes how manifests and their variant
// playlists are fetched and interpreted.
type ParseOptions struct {
	// Client used for variant and key fetches. the default
	// shared client is used when nil.
	Client models.HTTPClient
	// Headers added to every fetch, e.g. Authorization.
	Headers map[string]string
	// Cookies added to every fetch.
	Cookies []*http.Cookie
	// FetchVariants controls whether master playlist entries
	// are resolved into their segment lists.
	FetchVariants bool
	// PropagateQuery glues the manifest URL query onto every
	// segment URL, for CDNs that authenticate segments with
	// the same token as the playlist.
	PropagateQuery bool
	// FetchKeys resolves EXT-X-KEY URIs into key bytes.
	FetchKeys bool
	Timeout   time.Duration
}

func DefaultParseOptions() *ParseOptions {
	return &ParseOptions{
		FetchVariants: true,
		Timeout:       defaultHTTPTimeout,
	}
}

func (o *ParseOptions) client() models.HTTPClient {
	if o != nil && o.Client != nil {
		return o.Client
	}
	return getDefaultClient()
}

func getVideoCodec(codecs string) enums.MediaCodec {
	codecs = strings.ToLower(codecs)
	switch {
	case strings.Contains(codecs, "avc"), strings.Contains(codecs, "h264"):
		return enums.MediaCodecAVC
	case strings.Contains(codecs, "hvc"), strings.Contains(codecs, "h265"), strings.Contains(codecs, "hev1"):
		return enums.MediaCodecHEVC
	case strings.Contains(codecs, "av01"):
		return enums.MediaCodecAV1
	case strings.Contains(codecs, "vp9"):
		return enums.MediaCodecVP9
	case strings.Contains(codecs, "vp8"):
		return enums.MediaCodecVP8
	default:
		return ""
	}
}

func getAudioCodec(codecs string) enums.MediaCodec {
	codecs = strings.ToLower(codecs)
	switch {
	case strings.Contains(codecs, "mp4a"):
		return enums.MediaCodecAAC
	case strings.Contains(codecs, "opus"):
		return enums.MediaCodecOpus
	case strings.Contains(codecs, "mp3"):
		return enums.MediaCodecMP3
	case strings.Contains(codecs, "flac"):
		return enums.MediaCodecFLAC
	case strings.Contains(codecs, "vorbis"):
		return enums.MediaCodecVorbis
	default:
		return ""
	}
}

func fetchContent(ctx context.Context, fetchURL string, opts *ParseOptions) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if opts != nil {
		for key, value := range opts.Headers {
			req.Header.Set(key, value)
		}
		for _, cookie := range opts.Cookies {
			req.AddCookie(cookie)
		}
	}
	resp, err := opts.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func resolveURL(base *url.URL, uri string) string {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri
	}
	ref, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	return base.ResolveReference(ref).String()
}

// appendQuery glues extra query parameters onto a URL that
// may already carry its own.
func appendQuery(rawURL, query string) string {
	if query == "" {
		return rawURL
	}
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + query
	}
	return rawURL + "?" + query
}
