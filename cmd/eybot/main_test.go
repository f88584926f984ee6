package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"eybot/internal/app"
)

type stubApp struct {
	err    error
	reason app.StopReason
}

func (s *stubApp) Stop(_ context.Context, reason app.StopReason) error {
	s.reason = reason
	return s.err
}

func TestStopReportsError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "clean", want: ""},
		{name: "close failed", err: errors.New("close eybot.log: bad file descriptor"), want: "stop: close eybot.log: bad file descriptor\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			s := &stubApp{err: tt.err}
			stop(context.Background(), s, app.StopSIGTERM, &buf)
			if s.reason != app.StopSIGTERM {
				t.Fatalf("reason = %q", s.reason)
			}
			if got := buf.String(); got != tt.want {
				t.Fatalf("stderr = %q, want %q", got, tt.want)
			}
		})
	}
}
