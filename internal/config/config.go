package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	BotToken    string
	DatabaseURL string

	LogLevel  string
	LogFormat string
}

// Load reads config from viper after the CLI has bound flags and env
// (GROSZE_BOT_TOKEN, GROSZE_DATABASE_URL, ...).
func Load() (Config, error) {
	cfg := Config{
		BotToken:    strings.TrimSpace(viper.GetString("bot_token")),
		DatabaseURL: strings.TrimSpace(viper.GetString("database_url")),
		LogLevel:    viper.GetString("logging.level"),
		LogFormat:   viper.GetString("logging.format"),
	}
	if cfg.BotToken == "" {
		return Config{}, errors.New("bot_token is required (GROSZE_BOT_TOKEN)")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database_url is required (GROSZE_DATABASE_URL)")
	}
	return cfg, nil
}
