package reply

import (
	"context"
	"errors"
	"testing"

	"eybot/pkg/logx"
)

func TestEchoMatchesPrefixCaseInsensitive(t *testing.T) {
	t.Parallel()
	e := NewEchoer(&fakeClient{}, DefaultEchoWords, logx.Nop())
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{text: "Ey mantap", want: "Ey", ok: true},
		{text: "ey", want: "ey", ok: true},
		{text: "EAAA", want: "EA", ok: true},
		{text: "GeLoW pisan", want: "GeLoW", ok: true},
		{text: "anyingg", want: "anying", ok: true},
		{text: "hey", ok: false},
		{text: "e", ok: false},
		{text: "", ok: false},
		{text: " ey", ok: false},
		{text: "gelo", ok: false},
	}
	for _, tt := range tests {
		got, ok := e.Echo(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("Echo(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEchoFirstWordWins(t *testing.T) {
	t.Parallel()
	e := NewEchoer(&fakeClient{}, []string{"e", "ey"}, logx.Nop())
	got, ok := e.Echo("Eyyy")
	if !ok || got != "E" {
		t.Fatalf("Echo = (%q, %v), want (\"E\", true)", got, ok)
	}
}

func TestEchoCountsRunesNotBytes(t *testing.T) {
	t.Parallel()
	e := NewEchoer(&fakeClient{}, []string{"éy"}, logx.Nop())
	got, ok := e.Echo("ÉY halo")
	if !ok || got != "ÉY" {
		t.Fatalf("Echo = (%q, %v), want (\"ÉY\", true)", got, ok)
	}
}

func TestMaybeEchoSends(t *testing.T) {
	t.Parallel()
	c := &fakeClient{}
	e := NewEchoer(c, DefaultEchoWords, logx.Nop())

	ok, err := e.MaybeEcho(context.Background(), NewMessage(10, "grup", "Ey mantap"))
	if err != nil || !ok {
		t.Fatalf("MaybeEcho = (%v, %v)", ok, err)
	}
	ok, err = e.MaybeEcho(context.Background(), NewMessage(10, "grup", "halo"))
	if err != nil || ok {
		t.Fatalf("MaybeEcho(no match) = (%v, %v)", ok, err)
	}
	got := c.Sent()
	if len(got) != 1 || got[0] != (sent{ChatID: 10, Text: "Ey"}) {
		t.Fatalf("sends = %+v", got)
	}
}

func TestMaybeEchoReturnsSendError(t *testing.T) {
	t.Parallel()
	c := &fakeClient{}
	boom := errors.New("boom")
	c.fail(boom)
	e := NewEchoer(c, DefaultEchoWords, logx.Nop())
	if _, err := e.MaybeEcho(context.Background(), NewMessage(1, "", "ey")); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestSetWordsNormalizes(t *testing.T) {
	t.Parallel()
	e := NewEchoer(&fakeClient{}, nil, logx.Nop())
	if _, ok := e.Echo("ey"); ok {
		t.Fatal("empty list should never echo")
	}
	e.SetWords([]string{" WOI ", ""})
	got, ok := e.Echo("Woi!")
	if !ok || got != "Woi" {
		t.Fatalf("Echo = (%q, %v)", got, ok)
	}
}
