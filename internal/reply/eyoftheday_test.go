package reply

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eybot/pkg/logx"
)

func TestEyOfTheDaySendsOncePerDay(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	clk := newFakeClock(day(2024, time.March, 5, 9))
	c := &fakeClient{}
	e := NewEyOfTheDayer(c, "ey", time.UTC, clk.Now, logx.Nop())
	ctx := context.Background()

	ok, err := e.MaybeSend(ctx, NewMessage(1, "", "x"))
	req.NoError(err)
	req.False(ok, "startup day must not send")

	clk.Set(day(2024, time.March, 6, 0))
	ok, err = e.MaybeSend(ctx, NewMessage(1, "", "x"))
	req.NoError(err)
	req.True(ok)

	clk.Set(day(2024, time.March, 6, 23))
	ok, err = e.MaybeSend(ctx, NewMessage(2, "", "x"))
	req.NoError(err)
	req.False(ok, "second message on the same day")

	req.Equal([]sent{{ChatID: 1, Text: "ey"}}, c.Sent())
	req.Equal(6, e.LastDay())
}

func TestEyOfTheDaySameDayNextMonthIsSkipped(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	clk := newFakeClock(day(2024, time.March, 5, 9))
	c := &fakeClient{}
	e := NewEyOfTheDayer(c, "ey", time.UTC, clk.Now, logx.Nop())

	// Only the day-of-month is compared: April 5th looks like March 5th.
	clk.Set(day(2024, time.April, 5, 9))
	ok, err := e.MaybeSend(context.Background(), NewMessage(1, "", "x"))
	req.NoError(err)
	req.False(ok)
	req.Empty(c.Sent())
}

func TestEyOfTheDayUsesLocation(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 20:00 UTC on the 5th is already the 6th in UTC+7.
	clk := newFakeClock(day(2024, time.March, 5, 10))
	c := &fakeClient{}
	e := NewEyOfTheDayer(c, "ey", jakarta, clk.Now, logx.Nop())

	clk.Set(day(2024, time.March, 5, 20))
	ok, err := e.MaybeSend(context.Background(), NewMessage(1, "", "x"))
	req.NoError(err)
	req.True(ok)
	req.Equal(6, e.LastDay())
}

func TestEyOfTheDayFailedSendKeepsDay(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	clk := newFakeClock(day(2024, time.March, 5, 9))
	c := &fakeClient{}
	e := NewEyOfTheDayer(c, "ey", time.UTC, clk.Now, logx.Nop())

	boom := errors.New("boom")
	c.fail(boom)
	clk.Set(day(2024, time.March, 6, 9))
	_, err := e.MaybeSend(context.Background(), NewMessage(1, "", "x"))
	req.ErrorIs(err, boom)
	req.Equal(5, e.LastDay())

	c.fail(nil)
	ok, err := e.MaybeSend(context.Background(), NewMessage(1, "", "x"))
	req.NoError(err)
	req.True(ok)
}

func TestEyOfTheDayConcurrentCallsSendOnce(t *testing.T) {
	t.Parallel()
	clk := newFakeClock(day(2024, time.March, 5, 9))
	c := &fakeClient{}
	e := NewEyOfTheDayer(c, "ey", time.UTC, clk.Now, logx.Nop())
	clk.Set(day(2024, time.March, 7, 9))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = e.MaybeSend(context.Background(), NewMessage(id, "", "x"))
		}(int64(i + 1))
	}
	wg.Wait()
	require.Len(t, c.Sent(), 1)
}

func TestEyOfTheDayTimezoneChangeDoesNotFireAtOnce(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	wib := time.FixedZone("WIB", 7*60*60)

	// 23:00 UTC on the 5th; startup counts the 5th as done.
	clk := newFakeClock(day(2024, time.March, 5, 23))
	c := &fakeClient{}
	e := NewEyOfTheDayer(c, "ey", time.UTC, clk.Now, logx.Nop())

	// In UTC+7 it is already the 6th.
	e.Set("ey", wib)
	req.Equal(6, e.LastDay())
	ok, err := e.MaybeSend(context.Background(), NewMessage(1, "", "x"))
	req.NoError(err)
	req.False(ok)

	// Next day in the new zone.
	clk.Set(day(2024, time.March, 6, 20))
	ok, err = e.MaybeSend(context.Background(), NewMessage(1, "", "x"))
	req.NoError(err)
	req.True(ok)
	req.Equal(7, e.LastDay())
}

func TestEyOfTheDayTimezoneChangeKeepsPendingSend(t *testing.T) {
	t.Parallel()
	wib := time.FixedZone("WIB", 7*60*60)

	clk := newFakeClock(day(2024, time.March, 5, 9))
	c := &fakeClient{}
	e := NewEyOfTheDayer(c, "ey", time.UTC, clk.Now, logx.Nop())

	// Day rolled over in UTC before the zone change: the send is still due.
	clk.Set(day(2024, time.March, 6, 9))
	e.Set("ey", wib)
	ok, err := e.MaybeSend(context.Background(), NewMessage(1, "", "x"))
	require.NoError(t, err)
	require.True(t, ok)
}
