package reply

import (
	"context"
	"sync"
	"time"
)

type sent struct {
	ChatID int64
	Text   string
}

// fakeClient records every send. failWith, when set, is returned instead.
type fakeClient struct {
	username string

	mu       sync.Mutex
	sends    []sent
	failWith error
}

func (c *fakeClient) SendMessage(_ context.Context, chatID int64, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return c.failWith
	}
	c.sends = append(c.sends, sent{ChatID: chatID, Text: text})
	return nil
}

func (c *fakeClient) BotUsername() string { return c.username }

func (c *fakeClient) Sent() []sent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]sent(nil), c.sends...)
}

func (c *fakeClient) fail(err error) {
	c.mu.Lock()
	c.failWith = err
	c.mu.Unlock()
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}
