package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"eybot/internal/config"
	"eybot/internal/reply"
	telegram "eybot/internal/transport/telegram/adapter"
	"eybot/internal/transport/telegram/router"
	logx "eybot/pkg/logx"
)

// SettingsFromConfig maps the replier section onto reply.Settings.
// Empty values are left empty; the replier fills its own defaults.
func SettingsFromConfig(cfg *config.Config) (reply.Settings, error) {
	if cfg == nil {
		return reply.DefaultSettings(), nil
	}
	rc := cfg.Replier
	loc, err := rc.EyOfTheDay.Location()
	if err != nil {
		return reply.Settings{}, err
	}
	return reply.Settings{
		EchoWords:           rc.EchoWords,
		ClapbackTrigger:     rc.Clapback.Trigger,
		ClapbackReply:       rc.Clapback.Reply,
		EyOfTheDayMessage:   rc.EyOfTheDay.Message,
		Location:            loc,
		ResurrectionEnabled: rc.Resurrection.Enabled,
		ResurrectionMessage: rc.Resurrection.Message,
	}, nil
}

func mapLogConfig(cfg *config.Config) logx.Config {
	lc := cfg.Logging
	return logx.Config{
		Level:   lc.Level,
		Console: lc.Console,
		File: logx.FileConfig{
			Enabled: lc.File.Enabled,
			Path:    lc.File.Path,
		},
		Telegram: logx.TelegramConfig{
			Enabled:    lc.Telegram.Enabled,
			ThreadID:   lc.Telegram.ThreadID,
			MinLevel:   lc.Telegram.MinLevel,
			RatePerSec: lc.Telegram.RatePerSec,
		},
	}
}

// logTarget parses telegram.group_log. ok is false when unset or invalid.
func logTarget(cfg *config.Config) (chatID int64, ok bool) {
	raw := strings.TrimSpace(cfg.Telegram.GroupLog)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func mapAdapterConfig(cfg *config.Config) (telegram.Config, error) {
	pollTimeout, err := config.ParseDurationOrDefault("telegram.poll_timeout", cfg.Telegram.PollTimeout, 10*time.Second)
	if err != nil {
		return telegram.Config{}, err
	}
	return telegram.Config{
		Token:          cfg.Telegram.Token,
		PollTimeout:    pollTimeout,
		SendRatePerSec: cfg.Dispatch.SendRatePerSec,
	}, nil
}

func mapDispatchConfig(cfg *config.Config) (router.Config, error) {
	timeout, err := config.ParseDurationField("dispatch.timeout", cfg.Dispatch.Timeout)
	if err != nil {
		return router.Config{}, err
	}
	return router.Config{
		Workers:   cfg.Dispatch.Workers,
		QueueSize: cfg.Dispatch.QueueSize,
		Timeout:   lo.Ternary(timeout > 0, timeout, 0),
	}, nil
}
