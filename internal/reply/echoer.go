package reply

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"eybot/pkg/logx"
)

// Echoer replies with the leading part of a message when it spells one of
// the echo words, ignoring case. "Ey mantap" echoes "Ey".
type Echoer struct {
	client Client
	log    logx.Logger

	mu    sync.RWMutex
	words []string
}

func NewEchoer(client Client, words []string, log logx.Logger) *Echoer {
	return &Echoer{client: client, log: log, words: NormalizeWords(words)}
}

// SetWords replaces the echo list.
func (e *Echoer) SetWords(words []string) {
	w := NormalizeWords(words)
	e.mu.Lock()
	e.words = w
	e.mu.Unlock()
}

func (e *Echoer) Words() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.words...)
}

// MaybeEcho sends the echo for msg, if any. It reports whether a reply went out.
func (e *Echoer) MaybeEcho(ctx context.Context, msg Message) (bool, error) {
	echo, ok := e.Echo(msg.Text)
	if !ok {
		return false, nil
	}
	e.log.Info("replying echo", logx.String("echo", echo), logx.String("text", msg.Text))
	if err := e.client.SendMessage(ctx, msg.ChatID, echo); err != nil {
		return false, err
	}
	return true, nil
}

// Echo returns the leading substring of text matching the first echo word.
func (e *Echoer) Echo(text string) (string, bool) {
	e.mu.RLock()
	words := e.words
	e.mu.RUnlock()

	for _, w := range words {
		if m, ok := matchPrefix(text, w); ok {
			e.log.Debug("echo word matched", logx.String("word", w))
			return m, true
		}
	}
	return "", false
}

// matchPrefix compares the first len(word) runes of text, lower-cased,
// with word and returns them in their original casing.
func matchPrefix(text, word string) (string, bool) {
	n := utf8.RuneCountInString(word)
	if n == 0 {
		return "", false
	}
	end, count := 0, 0
	for i := range text {
		if count == n {
			end = i
			break
		}
		count++
		end = len(text)
	}
	if count < n {
		return "", false
	}
	head := text[:end]
	if strings.ToLower(head) != word {
		return "", false
	}
	return head, true
}
