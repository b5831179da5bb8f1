package util

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"vgrab/config"
	"vgrab/models"

	"github.com/aki237/nscjar"
	"go.uber.org/zap"
)

var cookiesCache = make(map[string][]*http.Cookie)

// GetExtractorCookies loads the Netscape cookie file configured for the
// extractor, falling back to <cookies dir>/<codename>.txt.
func GetExtractorCookies(extractor *models.Extractor) []*http.Cookie {
	fileName := extractor.CodeName + ".txt"
	if cfg := config.GetExtractorConfig(extractor.CodeName); cfg != nil && cfg.CookiesFile != "" {
		fileName = cfg.CookiesFile
	}
	cookies, err := ParseCookieFile(fileName)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.S().Warnf("failed to load cookies for %s: %v", extractor.CodeName, err)
		}
		return nil
	}
	return cookies
}

func ParseCookieFile(fileName string) ([]*http.Cookie, error) {
	cachedCookies, ok := cookiesCache[fileName]
	if ok {
		return cachedCookies, nil
	}
	cookiePath := filepath.Join(config.Env.CookiesDirectory, fileName)
	cookieFile, err := os.Open(cookiePath)
	if err != nil {
		return nil, err
	}
	defer cookieFile.Close()

	var parser nscjar.Parser
	cookies, err := parser.Unmarshal(cookieFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cookie file: %w", err)
	}
	cookiesCache[fileName] = cookies
	return cookies, nil
}

// FindCookie returns the named cookie from the list, or nil.
func FindCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
