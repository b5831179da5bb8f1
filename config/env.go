package config

import (
	"os"

	"vgrab/models"
)

var Env = GetDefaultConfig()

func LoadEnv() {
	if value := os.Getenv("COOKIES_DIR"); value != "" {
		Env.CookiesDirectory = value
	}
	if value := os.Getenv("HTTP_PROXY"); value != "" {
		Env.HTTPProxy = value
	}
	if value := os.Getenv("HTTPS_PROXY"); value != "" {
		Env.HTTPSProxy = value
	}
	if value := os.Getenv("NO_PROXY"); value != "" {
		Env.NoProxy = value
	}
	if value := os.Getenv("LOG_LEVEL"); value != "" {
		Env.LogLevel = value
	}
}

func GetDefaultConfig() *models.EnvConfig {
	return &models.EnvConfig{
		CookiesDirectory: "cookies",
		LogLevel:         "info",
	}
}
