package reply

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	DefaultClapbackTrigger     = "cicing"
	DefaultClapbackReply       = "embung"
	DefaultEyOfTheDayMessage   = "ey"
	DefaultResurrectionMessage = "*BANGKIT DARI KUBUR*"
)

// DefaultEchoWords is the echo list used when none is configured.
// Order matters: the first matching word wins.
var DefaultEchoWords = []string{"ey", "ea", "gelow", "anying"}

// Settings holds the word lists and canned messages of all evaluators.
type Settings struct {
	EchoWords []string

	ClapbackTrigger string
	ClapbackReply   string

	EyOfTheDayMessage string
	// Location is the timezone used to read the day-of-month.
	Location *time.Location

	ResurrectionEnabled bool
	ResurrectionMessage string
}

// DefaultSettings returns the stock configuration.
// The resurrection notice stays disabled.
func DefaultSettings() Settings {
	return Settings{
		EchoWords:           append([]string(nil), DefaultEchoWords...),
		ClapbackTrigger:     DefaultClapbackTrigger,
		ClapbackReply:       DefaultClapbackReply,
		EyOfTheDayMessage:   DefaultEyOfTheDayMessage,
		Location:            time.Local,
		ResurrectionMessage: DefaultResurrectionMessage,
	}
}

// withDefaults fills empty fields from DefaultSettings and normalizes the echo list.
func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	s.EchoWords = NormalizeWords(s.EchoWords)
	if len(s.EchoWords) == 0 {
		s.EchoWords = def.EchoWords
	}
	if s.ClapbackTrigger == "" {
		s.ClapbackTrigger = def.ClapbackTrigger
	}
	if s.ClapbackReply == "" {
		s.ClapbackReply = def.ClapbackReply
	}
	if s.EyOfTheDayMessage == "" {
		s.EyOfTheDayMessage = def.EyOfTheDayMessage
	}
	if s.Location == nil {
		s.Location = def.Location
	}
	if s.ResurrectionMessage == "" {
		s.ResurrectionMessage = def.ResurrectionMessage
	}
	return s
}

// NormalizeWords trims and lower-cases echo words, drops empty entries and
// duplicates, and keeps the first position of each word.
func NormalizeWords(words []string) []string {
	cleaned := lo.Map(words, func(w string, _ int) string {
		return strings.ToLower(strings.TrimSpace(w))
	})
	return lo.Uniq(lo.Compact(cleaned))
}
