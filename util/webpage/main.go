// Package webpage extracts JSON payloads that sites embed in their
// server-rendered HTML: plain script blobs, Next.js data, Next.js
// flight chunks and Nuxt devalue payloads.
package webpage

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"vgrab/util/devalue"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

var (
	nextDataPattern   = regexp.MustCompile(`(?s)<script[^>]+id="__NEXT_DATA__"[^>]*>(.*?)</script>`)
	nuxtDataPattern   = regexp.MustCompile(`(?s)<script[^>]+id="__NUXT_DATA__"[^>]*>(.*?)</script>`)
	nextFlightPattern = regexp.MustCompile(`(?s)<script[^>]*>\s*self\.__next_f\.push\(\s*(\[.+?\])\s*\);?\s*</script>`)
	attributePattern  = regexp.MustCompile(`([\w-]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// SearchJSON returns the raw JSON blob captured by the pattern's first
// group. The pattern must have exactly one capture group.
func SearchJSON(pattern *regexp.Regexp, page string) (string, error) {
	match := pattern.FindStringSubmatch(page)
	if match == nil {
		return "", errors.New("embedded JSON not found")
	}
	return strings.TrimSpace(match[1]), nil
}

// NextJSData decodes the __NEXT_DATA__ script blob.
func NextJSData(page string) (map[string]any, error) {
	raw, err := SearchJSON(nextDataPattern, page)
	if err != nil {
		return nil, fmt.Errorf("failed to find next.js data: %w", err)
	}
	var data map[string]any
	if err := sonic.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to parse next.js data: %w", err)
	}
	return data, nil
}

// NextJSDataRaw returns the __NEXT_DATA__ blob undecoded, for
// callers that unmarshal into their own types.
func NextJSDataRaw(page string) (string, error) {
	return SearchJSON(nextDataPattern, page)
}

// NextFlightChunks returns the string payloads pushed through
// self.__next_f on Next.js v15+ pages, in document order.
func NextFlightChunks(page string) []string {
	var chunks []string
	for _, match := range nextFlightPattern.FindAllStringSubmatch(page, -1) {
		var pushed []any
		if err := sonic.Unmarshal([]byte(match[1]), &pushed); err != nil {
			continue
		}
		for _, part := range pushed {
			if text, ok := part.(string); ok {
				chunks = append(chunks, text)
			}
		}
	}
	return chunks
}

// SearchNuxtJSON parses the __NUXT_DATA__ devalue payload.
func SearchNuxtJSON(page string) (any, error) {
	raw, err := SearchJSON(nuxtDataPattern, page)
	if err != nil {
		return nil, fmt.Errorf("failed to find nuxt data: %w", err)
	}
	var decoded any
	if err := sonic.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse nuxt data: %w", err)
	}
	parsed, err := devalue.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to revive nuxt data: %w", err)
	}
	return parsed, nil
}

// ElementHTMLByClass returns the opening tag of the first element
// carrying the class, or an empty string.
func ElementHTMLByClass(class string, page string) string {
	pattern := regexp.MustCompile(
		`<[a-zA-Z][\w-]*[^>]*class="[^"]*` + regexp.QuoteMeta(class) + `[^"]*"[^>]*>`)
	return pattern.FindString(page)
}

// ExtractAttributes parses the attributes of an HTML opening tag.
func ExtractAttributes(elementHTML string) map[string]string {
	attributes := make(map[string]string)
	for _, match := range attributePattern.FindAllStringSubmatch(elementHTML, -1) {
		value := match[2]
		if value == "" {
			value = match[3]
		}
		attributes[strings.ToLower(match[1])] = html.UnescapeString(value)
	}
	return attributes
}
