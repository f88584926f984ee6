package reply

import (
	"context"
	"sync"
	"time"

	"eybot/pkg/logx"
)

// EyOfTheDayer sends a fixed message at most once per day-of-month.
//
// Only the day-of-month is compared, not the full date: a message exactly
// one month after the last send, landing on the same day number, sends
// nothing.
type EyOfTheDayer struct {
	client Client
	log    logx.Logger
	now    func() time.Time

	mu      sync.Mutex
	message string
	loc     *time.Location
	lastDay int
}

// NewEyOfTheDayer starts with today's day as the last send, so nothing goes
// out until the day changes.
func NewEyOfTheDayer(client Client, message string, loc *time.Location, now func() time.Time, log logx.Logger) *EyOfTheDayer {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &EyOfTheDayer{
		client:  client,
		log:     log,
		now:     now,
		message: message,
		loc:     loc,
		lastDay: now().In(loc).Day(),
	}
}

// Set replaces the message and timezone. If today's message was already
// sent (or startup happened today) in the old zone, today in the new zone
// counts as done too, so a timezone change alone never triggers a send.
func (e *EyOfTheDayer) Set(message string, loc *time.Location) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.message = message
	if loc == nil || loc.String() == e.loc.String() {
		return
	}
	now := e.now()
	if e.lastDay == now.In(e.loc).Day() {
		e.lastDay = now.In(loc).Day()
	}
	e.loc = loc
}

// LastDay returns the remembered day-of-month.
func (e *EyOfTheDayer) LastDay() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastDay
}

// MaybeSend sends the message to msg's chat when the day-of-month differs
// from the last send. The lock is held across the send so concurrent
// callers cannot both send; the day only advances when the send succeeds.
func (e *EyOfTheDayer) MaybeSend(ctx context.Context, msg Message) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.now().In(e.loc).Day()
	if today == e.lastDay {
		return false, nil
	}
	e.log.Info("sending ey of the day", logx.Int("last_day", e.lastDay), logx.Int("today", today), logx.ChatID(msg.ChatID))
	if err := e.client.SendMessage(ctx, msg.ChatID, e.message); err != nil {
		return false, err
	}
	e.lastDay = today
	return true, nil
}
