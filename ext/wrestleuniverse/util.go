package wrestleuniverse

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"vgrab/config"
	"vgrab/models"
	"vgrab/util"
	"vgrab/util/networking"
	"vgrab/util/webpage"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

const apiBase = "https://api.wrestle-universe.com/v1/"

// getTokenCookie reads the session JWT from the token cookie and
// rejects it early when it is already expired.
func getTokenCookie(ctx *models.DownloadContext) (string, error) {
	cookies := util.GetExtractorCookies(ctx.Extractor)
	token := util.FindCookie(cookies, "token")
	if token == nil || token.Value == "" {
		return "", util.ErrAuthenticationNeeded
	}
	exp := util.JWTExpiry(token.Value)
	if exp == 0 {
		return "", ErrBadTokenCookie
	}
	if exp <= time.Now().Unix() {
		return "", util.ErrSessionExpired
	}
	return token.Value, nil
}

func getDeviceID(ctx *models.DownloadContext) string {
	cfg := config.GetExtractorConfig(ctx.Extractor.CodeName)
	if cfg != nil && cfg.DeviceID != "" {
		return cfg.DeviceID
	}
	return uuid.NewString()
}

func callAPI(
	ctx *models.DownloadContext,
	apiPath string,
	contentID string,
	param string,
	auth bool,
	data *watchRequest,
	query url.Values,
	out any,
) error {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	var body io.Reader
	headers := map[string]string{
		"CA-CID": "",
	}
	if data != nil {
		payload, err := sonic.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
		headers["Content-Type"] = "application/json;charset=utf-8"
	}
	if auth {
		token, err := getTokenCookie(ctx)
		if err != nil {
			return err
		}
		headers["Authorization"] = "Bearer " + token
	}

	endpoint := apiBase + apiPath + "/" + contentID + param
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	method := http.MethodGet
	if data != nil {
		method = http.MethodPost
	}

	resp, err := util.FetchPage(ctx.Context, client, method, endpoint, body, headers, nil)
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

// getMetadata fetches episode or event metadata from the API,
// falling back to the Next.js payload embedded in the page.
func getMetadata(
	ctx *models.DownloadContext,
	apiPath string,
	contentID string,
	lang string,
	fallbackKey string,
) *Metadata {
	if lang == "" {
		lang = "ja"
	}
	var metadata Metadata
	query := url.Values{"al": []string{lang}}
	if err := callAPI(ctx, apiPath, contentID, "", false, nil, query, &metadata); err == nil {
		return &metadata
	}

	resp, err := util.FetchPage(
		ctx.Context, networking.GetExtractorHTTPClient(ctx.Extractor),
		http.MethodGet, ctx.MatchedContentURL,
		nil, nil, util.GetExtractorCookies(ctx.Extractor),
	)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	raw, err := webpage.NextJSDataRaw(string(page))
	if err != nil {
		return nil
	}
	var data any
	if err := sonic.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	// the fallback payload moves around between page revisions, so
	// search for it instead of hardcoding the path
	node := util.TraverseJSON(data, fallbackKey)
	if node == nil {
		return nil
	}
	encoded, err := sonic.Marshal(node)
	if err != nil {
		return nil
	}
	var fallback Metadata
	if err := sonic.Unmarshal(encoded, &fallback); err != nil {
		return nil
	}
	return &fallback
}

// keyDecryptor generates a throwaway RSA-2048 keypair. the public
// half is sent to the API, which encrypts the HLS key material with
// it; decrypt recovers the plaintext locally.
type keyDecryptor struct {
	privateKey *rsa.PrivateKey
}

func newKeyDecryptor() (*keyDecryptor, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return &keyDecryptor{privateKey: privateKey}, nil
}

// PublicToken returns the DER-encoded public key as base64, the
// shape the watchArchive endpoint expects in its token field.
func (d *keyDecryptor) PublicToken() (string, error) {
	der, err := x509.MarshalPKIXPublicKey(&d.privateKey.PublicKey)
	if err != nil {
		return "", fmt.Errorf("failed to encode public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}

func (d *keyDecryptor) Decrypt(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encrypted data: %w", err)
	}
	plaintext, err := rsa.DecryptOAEP(sha1.New(), rand.Reader, d.privateKey, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data: %w", err)
	}
	return plaintext, nil
}

func metadataToMedia(media *models.Media, metadata *Metadata) {
	if metadata == nil {
		return
	}
	media.Title = metadata.DisplayName
	media.SetDescription(metadata.Description)
	if metadata.Labels != nil {
		media.Channel = metadata.Labels.Group
		media.Location = metadata.Labels.Venue
	}
	media.Duration = metadata.Duration
	for _, cast := range metadata.Casts {
		if cast != nil && cast.DisplayName != "" {
			media.Cast = append(media.Cast, cast.DisplayName)
		}
	}
	for _, chapter := range metadata.VideoChapters {
		if chapter == nil {
			continue
		}
		media.Chapters = append(media.Chapters, &models.Chapter{
			Title:     chapter.DisplayName,
			StartTime: float64(chapter.Start),
			EndTime:   float64(chapter.End),
		})
	}
	for _, thumbnail := range []string{
		metadata.KeyVisualURL,
		metadata.AlterKeyVisual,
		metadata.HeroKeyVisual,
	} {
		if thumbnail != "" {
			media.Thumbnails = append(media.Thumbnails, &models.Thumbnail{URL: thumbnail})
		}
	}
}
