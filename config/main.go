package config

import (
	"fmt"
	"os"

	"vgrab/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var extractorConfigs map[string]*models.ExtractorConfig

// Load reads the .env file (if any) and the per-extractor
// configuration from ext-cfg.yaml.
func Load() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		zap.S().Warnf("failed to load .env file: %v", err)
	}
	LoadEnv()
	if err := LoadExtractorConfigs(); err != nil {
		zap.S().Fatalf("failed to load extractor configs: %v", err)
	}
}

func LoadExtractorConfigs() error {
	extractorConfigs = make(map[string]*models.ExtractorConfig)
	configPath := os.Getenv("EXT_CFG_PATH")
	if configPath == "" {
		configPath = "ext-cfg.yaml"
	}

	_, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]*models.ExtractorConfig
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return fmt.Errorf("failed to decode yaml config: %w", err)
	}
	for codeName, config := range rawConfig {
		extractorConfigs[codeName] = config
	}

	return nil
}

func GetExtractorConfig(codeName string) *models.ExtractorConfig {
	if config, exists := extractorConfigs[codeName]; exists {
		return config
	}
	return nil
}
