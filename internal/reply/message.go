package reply

import (
	"errors"
	"fmt"
)

// ErrMissingField marks a message that lacks a field the evaluators read.
var ErrMissingField = errors.New("message missing expected field")

// Message is the part of an incoming chat message the evaluators look at.
// HasText is false for media messages (photos, stickers, ...).
type Message struct {
	ChatID    int64
	ChatTitle string
	Text      string
	HasText   bool
}

// NewMessage returns a text message.
func NewMessage(chatID int64, chatTitle, text string) Message {
	return Message{ChatID: chatID, ChatTitle: chatTitle, Text: text, HasText: true}
}

// Validate reports the first missing field, wrapped in ErrMissingField.
// The chat title is optional: private chats have none.
func (m Message) Validate() error {
	if m.ChatID == 0 {
		return fmt.Errorf("%w: chat_id", ErrMissingField)
	}
	if !m.HasText {
		return fmt.Errorf("%w: text", ErrMissingField)
	}
	return nil
}
