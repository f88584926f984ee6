package config

// Config is the whole bot configuration, loaded from JSON or YAML.
//
// Example (YAML):
//
//	telegram:
//	  token: "123:abc"        # or EYBOT_TELEGRAM_TOKEN
//	  poll_timeout: 10s
//	logging:
//	  level: info
//	  console: true
//	replier:
//	  echo_words: [ey, ea, gelow, anying]
//	  clapback: { trigger: cicing, reply: embung }
//	  ey_of_the_day: { message: ey, timezone: Asia/Jakarta }
//	  resurrection: { enabled: false }
type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	Logging  LoggingConfig  `json:"logging"`
	Dispatch DispatchConfig `json:"dispatch"`
	Replier  ReplierConfig  `json:"replier"`
}

type TelegramConfig struct {
	Token string `json:"token" validate:"required"`
	// GroupLog is the chat id receiving Telegram log lines (optional).
	GroupLog string `json:"group_log,omitempty" validate:"omitempty,numeric"`
	// PollTimeout is a Go duration string (e.g. "10s", "2m").
	PollTimeout string `json:"poll_timeout,omitempty"`
}

type LoggingConfig struct {
	Level    string          `json:"level"`
	Console  bool            `json:"console"`
	File     LoggingFile     `json:"file"`
	Telegram LoggingTelegram `json:"telegram"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type LoggingTelegram struct {
	Enabled    bool   `json:"enabled"`
	ThreadID   int    `json:"thread_id" validate:"gte=0"`
	MinLevel   string `json:"min_level"`
	RatePerSec int    `json:"rate_per_sec" validate:"gte=0"`
}

// DispatchConfig controls how incoming messages reach the replier.
//
// Defaults (when omitted/zero):
//   - workers: 2
//   - queue_size: 256
//   - timeout: "15s" per message
//   - send_rate_per_sec: 20 outbound messages
type DispatchConfig struct {
	Workers        int    `json:"workers,omitempty" validate:"gte=0,lte=64"`
	QueueSize      int    `json:"queue_size,omitempty" validate:"gte=0,lte=65536"`
	Timeout        string `json:"timeout,omitempty"`
	SendRatePerSec int    `json:"send_rate_per_sec,omitempty" validate:"gte=0"`
}

// ReplierConfig holds the auto-reply rules. Empty fields fall back to the
// built-in defaults.
type ReplierConfig struct {
	EchoWords    []string           `json:"echo_words,omitempty" validate:"dive,max=64"`
	Clapback     ClapbackConfig     `json:"clapback"`
	EyOfTheDay   EyOfTheDayConfig   `json:"ey_of_the_day"`
	Resurrection ResurrectionConfig `json:"resurrection"`
}

type ClapbackConfig struct {
	Trigger string `json:"trigger,omitempty"`
	Reply   string `json:"reply,omitempty" validate:"max=4096"`
}

type EyOfTheDayConfig struct {
	Message string `json:"message,omitempty" validate:"max=4096"`
	// Timezone is an IANA name used to read the day-of-month. Empty means local time.
	Timezone string `json:"timezone,omitempty"`
}

type ResurrectionConfig struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message,omitempty" validate:"max=4096"`
}
