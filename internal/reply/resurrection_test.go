package reply

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"eybot/pkg/logx"
)

func TestResurrectionOncePerChat(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	c := &fakeClient{}
	r := NewResurrectionMessenger(c, DefaultResurrectionMessage, logx.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		for _, chat := range []int64{100, 200} {
			_, err := r.MaybeSend(ctx, NewMessage(chat, "grup", "halo"))
			req.NoError(err)
		}
	}
	req.Equal([]sent{
		{ChatID: 100, Text: DefaultResurrectionMessage},
		{ChatID: 200, Text: DefaultResurrectionMessage},
	}, c.Sent())
	req.True(r.Notified(100))
	req.False(r.Notified(300))
}

func TestResurrectionFailedSendRetriesNextMessage(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	c := &fakeClient{}
	r := NewResurrectionMessenger(c, "back", logx.Nop())

	boom := errors.New("boom")
	c.fail(boom)
	_, err := r.MaybeSend(context.Background(), NewMessage(1, "", "x"))
	req.ErrorIs(err, boom)
	req.False(r.Notified(1))

	c.fail(nil)
	ok, err := r.MaybeSend(context.Background(), NewMessage(1, "", "x"))
	req.NoError(err)
	req.True(ok)
}

func TestResurrectionConcurrentCallsSendOnce(t *testing.T) {
	t.Parallel()
	c := &fakeClient{}
	r := NewResurrectionMessenger(c, DefaultResurrectionMessage, logx.Nop())

	var wg sync.WaitGroup
	var mu sync.Mutex
	sentCount := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := r.MaybeSend(context.Background(), NewMessage(9, "grup", "x"))
			if err == nil && ok {
				mu.Lock()
				sentCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Len(t, c.Sent(), 1)
	require.Equal(t, 1, sentCount)
	require.True(t, r.Notified(9))
}
