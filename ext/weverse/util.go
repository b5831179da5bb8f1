package weverse

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vgrab/config"
	"vgrab/models"
	"vgrab/util"
	"vgrab/util/networking"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

const (
	accountAPIBase = "https://accountapi.weverse.io/web/api/v2"
	naverAPIBase   = "https://global.apis.naver.com"

	// lifted from the wevweb main.js chunk
	appID      = "be4d79eb8fc7bd008ee82c8ec4ff6fd4"
	appSecret  = "5419526f1c624b38b10787e5c10b2a7a"
	appVersion = "2.1.14"
)

var wmdKey = []byte("1b9cb6378d959b45714bec49971ade22e6e24e42")

type session struct {
	accessToken string
	deviceID    string
}

var activeSession *session

// signURL computes the wmd request signature: HMAC-SHA1 over the
// first 255 characters of the URL concatenated with the millisecond
// timestamp.
func signURL(rawURL string, ts int64) string {
	input := rawURL
	if len(input) > 255 {
		input = input[:255]
	}
	mac := hmac.New(sha1.New, wmdKey)
	mac.Write([]byte(input + strconv.FormatInt(ts, 10)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func getSession(ctx *models.DownloadContext) (*session, error) {
	if activeSession != nil {
		return activeSession, nil
	}

	sess := &session{}
	cfg := config.GetExtractorConfig(ctx.Extractor.CodeName)
	if cfg != nil && cfg.DeviceID != "" {
		sess.deviceID = cfg.DeviceID
	} else {
		sess.deviceID = uuid.NewString()
	}

	cookies := util.GetExtractorCookies(ctx.Extractor)
	if cookie := util.FindCookie(cookies, "we2_access_token"); cookie != nil && cookie.Value != "" {
		sess.accessToken = cookie.Value
		activeSession = sess
		return sess, nil
	}

	if cfg == nil || cfg.Username == "" || cfg.Password == "" {
		return nil, util.ErrAuthenticationNeeded
	}
	token, err := login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return nil, err
	}
	sess.accessToken = token
	activeSession = sess
	return sess, nil
}

func login(ctx *models.DownloadContext, username, password string) (string, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	headers := map[string]string{
		"x-acc-app-secret":      appSecret,
		"x-acc-app-version":     appVersion,
		"x-acc-language":        "en",
		"x-acc-service-id":      "weverse",
		"x-acc-trace-id":        uuid.NewString(),
		"x-clog-user-device-id": uuid.NewString(),
	}

	statusURL := accountAPIBase + "/signup/email/status?email=" + url.QueryEscape(username)
	resp, err := util.FetchPage(ctx.Context, client, http.MethodGet, statusURL, nil, headers, nil)
	if err != nil {
		return "", fmt.Errorf("failed to check username: %w", err)
	}
	defer resp.Body.Close()
	var status AccountStatus
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !status.HasPassword {
		return "", ErrBadUsername
	}

	payload, err := sonic.Marshal(map[string]string{
		"email":    username,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode credentials: %w", err)
	}
	headers["content-type"] = "application/json"
	authResp, err := util.FetchPage(
		ctx.Context, client, http.MethodPost,
		accountAPIBase+"/auth/token/by-credentials",
		bytes.NewReader(payload), headers, nil,
	)
	if err != nil {
		return "", fmt.Errorf("failed to log in: %w", err)
	}
	defer authResp.Body.Close()
	var auth AuthResponse
	if err := sonic.ConfigFastest.NewDecoder(authResp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if auth.AccessToken == "" {
		return "", ErrBadCredential
	}
	return auth.AccessToken, nil
}

func fetchJSON(ctx *models.DownloadContext, rawURL string, out any) error {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)
	resp, err := util.FetchPage(ctx.Context, client, http.MethodGet, rawURL, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad response: %s", resp.Status)
	}
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// callAPI sends a signed wevweb API request. the common query
// (appId, wmsgpad, wmd, ...) is appended after signing, matching
// the web player.
func callAPI(
	ctx *models.DownloadContext,
	sess *session,
	apiURL string,
	data []byte,
	out any,
) error {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	ts := time.Now().UnixMilli()
	query := url.Values{
		"appId":    []string{appID},
		"language": []string{"en"},
		"platform": []string{"WEB"},
		"wpf":      []string{"pc"},
		"wmsgpad":  []string{strconv.FormatInt(ts, 10)},
		"wmd":      []string{signURL(apiURL, ts)},
	}
	separator := "?"
	if strings.Contains(apiURL, "?") {
		separator = "&"
	}
	endpoint := apiURL + separator + query.Encode()

	headers := map[string]string{
		"Authorization": "Bearer " + sess.accessToken,
		"WEV-device-Id": sess.deviceID,
	}
	var body io.Reader
	method := http.MethodGet
	if data != nil {
		method = http.MethodPost
		headers["Content-Type"] = "application/json"
		body = bytes.NewReader(data)
	}

	resp, err := util.FetchPage(ctx.Context, client, method, endpoint, body, headers, nil)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return util.ErrSessionExpired
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad response: %s", resp.Status)
	}
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
