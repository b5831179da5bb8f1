package ext

import (
	"context"
	"fmt"

	"vgrab/config"
	"vgrab/models"
	"vgrab/util"
)

var maxRedirects = 5

// CtxByURL matches a URL against the extractor catalog and
// returns a ready-to-run download context. redirect-only
// extractors are resolved in place, up to maxRedirects hops.
func CtxByURL(ctx context.Context, url string) (*models.DownloadContext, error) {
	currentURL := url

	for redirectCount := 0; redirectCount <= maxRedirects; redirectCount++ {
		downloadCtx := matchURL(ctx, currentURL)
		if downloadCtx == nil {
			return nil, util.ErrURLNotFound
		}
		cfg := config.GetExtractorConfig(downloadCtx.Extractor.CodeName)
		if cfg != nil && cfg.IsDisabled {
			return nil, fmt.Errorf("extractor %s is disabled", downloadCtx.Extractor.CodeName)
		}

		if !downloadCtx.Extractor.IsRedirect {
			return downloadCtx, nil
		}

		response, err := downloadCtx.Extractor.Run(downloadCtx)
		if err != nil {
			return nil, err
		}
		if response.URL == "" {
			return nil, fmt.Errorf("no URL found in response")
		}
		currentURL = response.URL
	}
	return nil, fmt.Errorf("exceeded maximum number of redirects (%d)", maxRedirects)
}

func matchURL(ctx context.Context, url string) *models.DownloadContext {
	for _, extractor := range List {
		matches := extractor.URLPattern.FindStringSubmatch(url)
		if matches == nil {
			continue
		}

		groups := make(map[string]string)
		for i, name := range extractor.URLPattern.SubexpNames() {
			if name != "" {
				groups[name] = matches[i]
			}
		}
		groups["match"] = matches[0]

		return &models.DownloadContext{
			Context:           ctx,
			MatchedContentID:  groups["id"],
			MatchedContentURL: groups["match"],
			MatchedGroups:     groups,
			Extractor:         extractor,
		}
	}
	return nil
}

func ByCodeName(codeName string) *models.Extractor {
	for _, extractor := range List {
		if extractor.CodeName == codeName {
			return extractor
		}
	}
	return nil
}
