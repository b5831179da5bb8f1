package ninenow

import (
	"regexp"
	"strings"

	"vgrab/util/webpage"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

var (
	pageDataPattern       = regexp.MustCompile(`(?s)window\.__data\s*=\s*(\{.*?\});`)
	pageDataParsedPattern = regexp.MustCompile(`(?s)window\.__data\s*=\s*JSON\.parse\s*\(\s*(".+?")\s*\)\s*;`)
	chunkEntryPattern     = regexp.MustCompile(`(?m)^\w+:`)
)

// findCommonData digs the page payload for the requested slug out of
// the Next.js flight chunks, falling back to the legacy window.__data
// blob on older pages.
func findCommonData(page, videoType, slug string) *CommonData {
	for _, chunk := range webpage.NextFlightChunks(page) {
		for _, entry := range splitChunkEntries(chunk) {
			var decoded any
			if err := sonic.Unmarshal([]byte(entry), &decoded); err != nil {
				continue
			}
			payload := findPayload(decoded, videoType, slug)
			if payload == nil {
				continue
			}
			raw, err := sonic.Marshal(payload)
			if err != nil {
				continue
			}
			var commonData CommonData
			if err := sonic.Unmarshal(raw, &commonData); err != nil {
				continue
			}
			return &commonData
		}
	}
	return legacyCommonData(page, videoType)
}

// splitChunkEntries breaks a flight chunk into its `id:json` rows and
// returns the json parts.
func splitChunkEntries(chunk string) []string {
	var entries []string
	indexes := chunkEntryPattern.FindAllStringIndex(chunk, -1)
	for i, index := range indexes {
		end := len(chunk)
		if i+1 < len(indexes) {
			end = indexes[i+1][0]
		}
		entry := strings.TrimSpace(chunk[index[1]:end])
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 && strings.TrimSpace(chunk) != "" {
		entries = append(entries, strings.TrimSpace(chunk))
	}
	return entries
}

// findPayload walks the decoded flight tree for a payload object
// whose item slug matches.
func findPayload(node any, videoType, slug string) map[string]any {
	switch value := node.(type) {
	case map[string]any:
		if payload, ok := value["payload"].(map[string]any); ok {
			if item, ok := payload[videoType].(map[string]any); ok {
				if itemSlug, _ := item["slug"].(string); itemSlug == slug {
					return payload
				}
			}
		}
		for _, child := range value {
			if payload := findPayload(child, videoType, slug); payload != nil {
				return payload
			}
		}
	case []any:
		for _, child := range value {
			if payload := findPayload(child, videoType, slug); payload != nil {
				return payload
			}
		}
	}
	return nil
}

func legacyCommonData(page, videoType string) *CommonData {
	raw := ""
	if match := pageDataPattern.FindStringSubmatch(page); match != nil {
		raw = match[1]
	} else if match := pageDataParsedPattern.FindStringSubmatch(page); match != nil {
		var unquoted string
		if err := sonic.Unmarshal([]byte(match[1]), &unquoted); err != nil {
			return nil
		}
		raw = unquoted
	}
	if raw == "" || !gjson.Valid(raw) {
		return nil
	}
	data := gjson.Parse(raw)

	keyNames := map[string]string{"episode": "Episode", "clip": "Clip"}
	for _, kind := range []string{"episode", "clip"} {
		currentKey := data.Get(kind + ".current" + keyNames[kind] + "Key").String()
		if currentKey == "" {
			continue
		}
		cache := data.Get(kind + "." + kind + "Cache").Map()
		if len(cache) == 0 {
			continue
		}
		entry, ok := cache[currentKey]
		if !ok {
			for _, first := range cache {
				entry = first
				break
			}
		}

		commonData := &CommonData{}
		var item Item
		if err := sonic.Unmarshal([]byte(entry.Get(kind).Raw), &item); err != nil {
			continue
		}
		if videoType == "episode" {
			commonData.Episode = &item
		} else {
			commonData.Clip = &item
		}
		if seasonRaw := entry.Get("season").Raw; seasonRaw != "" {
			var season Season
			if err := sonic.Unmarshal([]byte(seasonRaw), &season); err == nil {
				commonData.Season = &season
			}
		}
		return commonData
	}
	return nil
}
