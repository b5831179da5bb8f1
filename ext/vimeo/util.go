package vimeo

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vgrab/config"
	"vgrab/models"
	"vgrab/util"
	"vgrab/util/networking"
	"vgrab/util/webpage"

	"github.com/bytedance/sonic"
)

const (
	baseURL   = "https://vimeo.com"
	apiBase   = "https://api.vimeo.com"
	viewerURL = baseURL + "/_rv/viewer"
	loginURL  = baseURL + "/log_in"
)

var (
	cachedViewer *Viewer
	viewerExpiry int64
)

// getViewer acquires the anonymous session tokens the player uses:
// a jwt for api.vimeo.com, the xsrft form token and the vuid cookie.
// refreshed only once the jwt expires.
func getViewer(ctx *models.DownloadContext) (*Viewer, error) {
	if cachedViewer != nil && viewerExpiry > time.Now().Unix() {
		return cachedViewer, nil
	}

	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	cookies := util.GetExtractorCookies(ctx.Extractor)
	resp, err := util.FetchPage(ctx.Context, client, http.MethodGet, viewerURL, nil, nil, cookies)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire session: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad response: %s", resp.Status)
	}

	var viewer Viewer
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&viewer); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	expiry := util.JWTExpiry(viewer.JWT)
	if expiry == 0 {
		return nil, ErrBadViewerToken
	}
	cachedViewer = &viewer
	viewerExpiry = expiry
	return cachedViewer, nil
}

// performLogin replays the login form when credentials are
// configured. the resulting session rides in the client cookie jar.
func performLogin(ctx *models.DownloadContext, viewer *Viewer) error {
	cfg := config.GetExtractorConfig(ctx.Extractor.CodeName)
	if cfg == nil || cfg.Username == "" || cfg.Password == "" {
		return nil
	}

	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	form := url.Values{
		"action":   []string{"login"},
		"email":    []string{cfg.Username},
		"password": []string{cfg.Password},
		"service":  []string{"vimeo"},
		"token":    []string{viewer.Xsrft},
	}
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
		"Referer":      loginURL,
	}
	resp, err := util.FetchPage(
		ctx.Context, client, http.MethodPost, loginURL,
		strings.NewReader(form.Encode()), headers,
		[]*http.Cookie{{Name: "vuid", Value: viewer.Vuid}},
	)
	if err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTeapot {
		return ErrLoginFailed
	}
	return nil
}

// verifyVideoPassword unlocks a password-protected video for the
// current session.
func verifyVideoPassword(ctx *models.DownloadContext, viewer *Viewer, videoURL string) error {
	cfg := config.GetExtractorConfig(ctx.Extractor.CodeName)
	if cfg == nil || cfg.VideoPassword == "" {
		return util.ErrPasswordNeeded
	}
	videoURL = strings.Replace(videoURL, "http://", "https://", 1)

	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	form := url.Values{
		"password": []string{cfg.VideoPassword},
		"token":    []string{viewer.Xsrft},
	}
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
		"Referer":      videoURL,
	}
	resp, err := util.FetchPage(
		ctx.Context, client, http.MethodPost, videoURL+"/password",
		strings.NewReader(form.Encode()), headers,
		[]*http.Cookie{{Name: "vuid", Value: viewer.Vuid}},
	)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return util.ErrWrongPassword
	}
	return nil
}

// getUnlistedHash recovers the unlisted hash through the oembed
// endpoint, which leaks it in the embed iframe src.
func getUnlistedHash(ctx *models.DownloadContext, videoID string) string {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	oembedURL := baseURL + "/api/oembed.json?url=" + url.QueryEscape("http://vimeo.com/"+videoID)
	resp, err := util.FetchPage(ctx.Context, client, http.MethodGet, oembedURL, nil, nil, nil)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	var oembed OEmbed
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&oembed); err != nil {
		return ""
	}
	attributes := webpage.ExtractAttributes(oembed.HTML)
	src, err := url.Parse(attributes["src"])
	if err != nil {
		return ""
	}
	return src.Query().Get("h")
}

// callAPI performs an api.vimeo.com request authorized with the
// viewer jwt.
func callAPI(
	ctx *models.DownloadContext,
	viewer *Viewer,
	path string,
	query url.Values,
	out any,
) (int, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	endpoint := apiBase + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	headers := map[string]string{
		"Authorization": "jwt " + viewer.JWT,
	}
	resp, err := util.FetchPage(ctx.Context, client, http.MethodGet, endpoint, nil, headers, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, fmt.Errorf("bad response: %s", resp.Status)
	}
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func fetchConfig(ctx *models.DownloadContext, configURL string) (*PlayerConfig, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	resp, err := util.FetchPage(ctx.Context, client, http.MethodGet, configURL, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player config: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad response: %s", resp.Status)
	}
	var playerConfig PlayerConfig
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&playerConfig); err != nil {
		return nil, fmt.Errorf("failed to decode player config: %w", err)
	}
	return &playerConfig, nil
}

func streamURL(stream *StreamFile) string {
	if stream == nil {
		return ""
	}
	if cdn, ok := stream.CDNs[stream.DefaultCDN]; ok && cdn != nil && cdn.URL != "" {
		return cdn.URL
	}
	for _, cdn := range stream.CDNs {
		if cdn != nil && cdn.URL != "" {
			return cdn.URL
		}
	}
	return ""
}
