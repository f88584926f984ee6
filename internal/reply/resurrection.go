package reply

import (
	"context"
	"sync"

	"eybot/pkg/logx"
)

// ResurrectionMessenger tells every chat, once, that the bot is back.
type ResurrectionMessenger struct {
	client Client
	log    logx.Logger

	mu       sync.Mutex
	message  string
	notified map[int64]struct{}
}

func NewResurrectionMessenger(client Client, message string, log logx.Logger) *ResurrectionMessenger {
	return &ResurrectionMessenger{
		client:   client,
		log:      log,
		message:  message,
		notified: map[int64]struct{}{},
	}
}

func (r *ResurrectionMessenger) SetMessage(message string) {
	r.mu.Lock()
	r.message = message
	r.mu.Unlock()
}

// Notified reports whether chatID already got the notice.
func (r *ResurrectionMessenger) Notified(chatID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.notified[chatID]
	return ok
}

// MaybeSend sends the notice on the first message seen from a chat.
// A failed send leaves the chat unmarked.
func (r *ResurrectionMessenger) MaybeSend(ctx context.Context, msg Message) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notified[msg.ChatID]; ok {
		return false, nil
	}
	if err := r.client.SendMessage(ctx, msg.ChatID, r.message); err != nil {
		return false, err
	}
	r.notified[msg.ChatID] = struct{}{}
	r.log.Info("notified chat that we're back alive", logx.String("chat_title", msg.ChatTitle), logx.ChatID(msg.ChatID))
	return true, nil
}
