package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. EYBOT_TELEGRAM_TOKEN.
const EnvPrefix = "EYBOT"

// envOverrides are values that win over the config file when set.
// Keeping the token out of the file is the main use.
type envOverrides struct {
	TelegramToken    string `envconfig:"TELEGRAM_TOKEN"`
	TelegramGroupLog string `envconfig:"TELEGRAM_GROUP_LOG"`
	LogLevel         string `envconfig:"LOG_LEVEL"`
}

func applyEnv(cfg *Config) error {
	var ov envOverrides
	if err := envconfig.Process(EnvPrefix, &ov); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	if v := strings.TrimSpace(ov.TelegramToken); v != "" {
		cfg.Telegram.Token = v
	}
	if v := strings.TrimSpace(ov.TelegramGroupLog); v != "" {
		cfg.Telegram.GroupLog = v
	}
	if v := strings.TrimSpace(ov.LogLevel); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}
