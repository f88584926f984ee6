package config

import (
	"reflect"
	"strings"

	"eybot/pkg/logx"
)

// SummarizeConfigChange returns the names of changed sections and safe
// structured attrs for logging. The bot token is never included.
func SummarizeConfigChange(oldCfg, newCfg *Config) ([]string, []logx.Field) {
	if oldCfg == nil {
		oldCfg = &Config{}
	}
	if newCfg == nil {
		newCfg = &Config{}
	}

	changed := make([]string, 0, 4)
	attrs := make([]logx.Field, 0, 16)

	if oldCfg.Telegram.Token != newCfg.Telegram.Token ||
		strings.TrimSpace(oldCfg.Telegram.PollTimeout) != strings.TrimSpace(newCfg.Telegram.PollTimeout) ||
		strings.TrimSpace(oldCfg.Telegram.GroupLog) != strings.TrimSpace(newCfg.Telegram.GroupLog) {
		changed = append(changed, "telegram")
		attrs = append(attrs,
			logx.Bool("telegram.token_changed", oldCfg.Telegram.Token != newCfg.Telegram.Token),
			logx.String("telegram.poll_timeout", strings.TrimSpace(newCfg.Telegram.PollTimeout)),
			logx.Bool("telegram.group_log_set", strings.TrimSpace(newCfg.Telegram.GroupLog) != ""),
		)
	}

	if !reflect.DeepEqual(oldCfg.Logging, newCfg.Logging) {
		changed = append(changed, "logging")
		attrs = append(attrs,
			logx.String("logging.level", newCfg.Logging.Level),
			logx.Bool("logging.console", newCfg.Logging.Console),
			logx.Bool("logging.file_enabled", newCfg.Logging.File.Enabled),
			logx.Bool("logging.telegram_enabled", newCfg.Logging.Telegram.Enabled),
		)
	}

	if oldCfg.Dispatch != newCfg.Dispatch {
		changed = append(changed, "dispatch")
		attrs = append(attrs,
			logx.Int("dispatch.workers", newCfg.Dispatch.Workers),
			logx.Int("dispatch.queue_size", newCfg.Dispatch.QueueSize),
			logx.String("dispatch.timeout", newCfg.Dispatch.Timeout),
			logx.Int("dispatch.send_rate_per_sec", newCfg.Dispatch.SendRatePerSec),
		)
	}

	if !reflect.DeepEqual(oldCfg.Replier, newCfg.Replier) {
		changed = append(changed, "replier")
		attrs = append(attrs,
			logx.Strs("replier.echo_words", newCfg.Replier.EchoWords),
			logx.String("replier.clapback.trigger", newCfg.Replier.Clapback.Trigger),
			logx.String("replier.ey_of_the_day.timezone", newCfg.Replier.EyOfTheDay.Timezone),
			logx.Bool("replier.resurrection.enabled", newCfg.Replier.Resurrection.Enabled),
		)
	}

	return changed, attrs
}

// RestartRequired lists changed sections that only take effect after a restart.
func RestartRequired(oldCfg, newCfg *Config) []string {
	if oldCfg == nil || newCfg == nil {
		return nil
	}
	var out []string
	if oldCfg.Telegram.Token != newCfg.Telegram.Token ||
		strings.TrimSpace(oldCfg.Telegram.PollTimeout) != strings.TrimSpace(newCfg.Telegram.PollTimeout) {
		out = append(out, "telegram")
	}
	if oldCfg.Dispatch != newCfg.Dispatch {
		out = append(out, "dispatch")
	}
	return out
}
