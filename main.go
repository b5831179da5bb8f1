package main

import (
	"context"
	"fmt"
	"os"

	"vgrab/config"
	"vgrab/ext"
	"vgrab/logger"

	"github.com/bytedance/sonic"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

func main() {
	// load environment variables and configurations
	config.Load()

	logger.Init(config.Env.LogLevel)
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <url>\n", os.Args[0])
		os.Exit(2)
	}
	url := os.Args[1]

	zap.S().Debugf("loaded %d extractors", len(ext.List))

	downloadCtx, err := ext.CtxByURL(context.Background(), url)
	if err != nil {
		zap.S().Fatalf("failed to match url: %v", err)
	}
	zap.S().Debugf(
		"matched %s (%s)",
		downloadCtx.Extractor.Name,
		downloadCtx.MatchedContentID,
	)

	response, err := downloadCtx.Extractor.Run(downloadCtx)
	if err != nil {
		zap.S().Fatalf("failed to extract media: %v", err)
	}

	for _, media := range response.MediaList {
		for _, format := range media.GetSortedFormats() {
			size := "unknown size"
			if format.FileSize > 0 {
				size = humanize.Bytes(uint64(format.FileSize))
			}
			zap.S().Debugf(
				"%s: %s %s (%s)",
				media.ContentID, format.FormatID, format.Type, size,
			)
		}
	}

	output, err := sonic.ConfigStd.MarshalIndent(response.MediaList, "", "  ")
	if err != nil {
		zap.S().Fatalf("failed to encode media list: %v", err)
	}
	fmt.Println(string(output))
}
