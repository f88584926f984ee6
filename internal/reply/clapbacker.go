package reply

import (
	"context"
	"strings"
	"sync"

	"eybot/pkg/logx"
)

// Clapbacker answers with a fixed reply when a message both mentions the
// bot and contains the trigger word. Matching is plain substring containment.
type Clapbacker struct {
	client Client
	log    logx.Logger

	mu      sync.RWMutex
	trigger string
	reply   string
}

func NewClapbacker(client Client, trigger, reply string, log logx.Logger) *Clapbacker {
	return &Clapbacker{client: client, log: log, trigger: trigger, reply: reply}
}

func (c *Clapbacker) Set(trigger, reply string) {
	c.mu.Lock()
	c.trigger = trigger
	c.reply = reply
	c.mu.Unlock()
}

// MaybeClapback sends the clapback for msg, if due. It reports whether a reply went out.
func (c *Clapbacker) MaybeClapback(ctx context.Context, msg Message) (bool, error) {
	c.mu.RLock()
	trigger, reply := c.trigger, c.reply
	c.mu.RUnlock()

	if !c.shouldClapback(msg.Text, trigger) {
		return false, nil
	}
	c.log.Info("replying clapback", logx.String("reply", reply), logx.String("text", msg.Text))
	if err := c.client.SendMessage(ctx, msg.ChatID, reply); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Clapbacker) shouldClapback(text, trigger string) bool {
	return c.isBotMentioned(text) && trigger != "" && strings.Contains(text, trigger)
}

// isBotMentioned never matches on an empty username.
func (c *Clapbacker) isBotMentioned(text string) bool {
	name := c.client.BotUsername()
	return name != "" && strings.Contains(text, name)
}
