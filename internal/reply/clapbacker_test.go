package reply

import (
	"context"
	"testing"

	"eybot/pkg/logx"
)

func TestClapbackNeedsMentionAndTrigger(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "both", text: "@bot cicing dong", want: true},
		{name: "both reversed", text: "cicing atuh @bot", want: true},
		{name: "substring trigger", text: "@bot dicicingan", want: true},
		{name: "no mention", text: "cicing tolong embung", want: false},
		{name: "no trigger", text: "@bot halo", want: false},
		{name: "neither", text: "halo", want: false},
		{name: "case sensitive", text: "@bot CICING", want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := &fakeClient{username: "@bot"}
			cb := NewClapbacker(c, DefaultClapbackTrigger, DefaultClapbackReply, logx.Nop())
			ok, err := cb.MaybeClapback(context.Background(), NewMessage(5, "", tt.text))
			if err != nil {
				t.Fatalf("MaybeClapback error: %v", err)
			}
			if ok != tt.want {
				t.Fatalf("MaybeClapback(%q) = %v, want %v", tt.text, ok, tt.want)
			}
			if tt.want {
				got := c.Sent()
				if len(got) != 1 || got[0].Text != "embung" || got[0].ChatID != 5 {
					t.Fatalf("sends = %+v", got)
				}
			} else if n := len(c.Sent()); n != 0 {
				t.Fatalf("sends = %d, want 0", n)
			}
		})
	}
}

func TestClapbackEmptyUsernameIsNoMention(t *testing.T) {
	t.Parallel()
	c := &fakeClient{}
	cb := NewClapbacker(c, DefaultClapbackTrigger, DefaultClapbackReply, logx.Nop())
	ok, err := cb.MaybeClapback(context.Background(), NewMessage(5, "", "cicing"))
	if err != nil || ok {
		t.Fatalf("MaybeClapback = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestClapbackSetReplacesWords(t *testing.T) {
	t.Parallel()
	c := &fakeClient{username: "@bot"}
	cb := NewClapbacker(c, DefaultClapbackTrigger, DefaultClapbackReply, logx.Nop())
	cb.Set("diam", "moal")
	if ok, _ := cb.MaybeClapback(context.Background(), NewMessage(5, "", "@bot cicing")); ok {
		t.Fatal("old trigger still active")
	}
	if ok, _ := cb.MaybeClapback(context.Background(), NewMessage(5, "", "@bot diam")); !ok {
		t.Fatal("new trigger ignored")
	}
	if got := c.Sent(); got[0].Text != "moal" {
		t.Fatalf("reply = %q", got[0].Text)
	}
}
