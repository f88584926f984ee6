package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"eybot/internal/config"
	"eybot/internal/eventbus"
	"eybot/internal/reply"
	"eybot/internal/reply/mocks"
	logx "eybot/pkg/logx"
)

func TestSettingsFromConfig(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	cfg := &config.Config{}
	cfg.Replier.EchoWords = []string{"ey", "wkwk"}
	cfg.Replier.Clapback = config.ClapbackConfig{Trigger: "diam", Reply: "gak"}
	cfg.Replier.EyOfTheDay = config.EyOfTheDayConfig{Message: "pagi", Timezone: "Asia/Jakarta"}
	cfg.Replier.Resurrection = config.ResurrectionConfig{Enabled: true, Message: "hidup"}

	s, err := SettingsFromConfig(cfg)
	req.NoError(err)
	req.Equal([]string{"ey", "wkwk"}, s.EchoWords)
	req.Equal("diam", s.ClapbackTrigger)
	req.Equal("gak", s.ClapbackReply)
	req.Equal("pagi", s.EyOfTheDayMessage)
	req.Equal("Asia/Jakarta", s.Location.String())
	req.True(s.ResurrectionEnabled)
	req.Equal("hidup", s.ResurrectionMessage)
}

func TestSettingsFromConfigRejectsBadTimezone(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	cfg.Replier.EyOfTheDay.Timezone = "Mars/Olympus"
	_, err := SettingsFromConfig(cfg)
	require.Error(t, err)
}

func TestSettingsFromNilConfig(t *testing.T) {
	t.Parallel()
	s, err := SettingsFromConfig(nil)
	require.NoError(t, err)
	require.Equal(t, reply.DefaultEchoWords, s.EchoWords)
	require.False(t, s.ResurrectionEnabled)
}

func TestMapDispatchAndAdapterConfig(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	cfg := &config.Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Dispatch = config.DispatchConfig{Workers: 4, QueueSize: 32, Timeout: "3s", SendRatePerSec: 5}

	dc, err := mapDispatchConfig(cfg)
	req.NoError(err)
	req.Equal(4, dc.Workers)
	req.Equal(32, dc.QueueSize)
	req.Equal(3*time.Second, dc.Timeout)

	ac, err := mapAdapterConfig(cfg)
	req.NoError(err)
	req.Equal(10*time.Second, ac.PollTimeout)
	req.Equal(5, ac.SendRatePerSec)

	cfg.Dispatch.Timeout = "soon"
	_, err = mapDispatchConfig(cfg)
	req.Error(err)
}

func TestLogTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		wantID int64
		wantOK bool
	}{
		{raw: "", wantOK: false},
		{raw: "abc", wantOK: false},
		{raw: "0", wantOK: false},
		{raw: " -100123 ", wantID: -100123, wantOK: true},
	}
	for _, tt := range tests {
		cfg := &config.Config{}
		cfg.Telegram.GroupLog = tt.raw
		id, ok := logTarget(cfg)
		if id != tt.wantID || ok != tt.wantOK {
			t.Fatalf("logTarget(%q) = %d,%v want %d,%v", tt.raw, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestApplyConfigUpdatesReplier(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	logs, log := logx.New(logx.Config{Level: "error"}, nil)
	t.Cleanup(func() { _ = logs.Close() })

	bus := eventbus.New()
	events, unsub := bus.Subscribe(4)
	defer unsub()

	oldCfg := &config.Config{}
	oldCfg.Logging.Level = "error"
	s, err := SettingsFromConfig(oldCfg)
	req.NoError(err)

	a := &App{
		log:     log,
		logs:    logs,
		bus:     bus,
		replier: reply.New(client, s, reply.WithLogger(log)),
	}

	newCfg := &config.Config{}
	newCfg.Logging.Level = "error"
	newCfg.Replier.EchoWords = []string{"Wkwk", " ey "}
	newCfg.Replier.Resurrection.Enabled = true
	newCfg.Dispatch.Workers = 8

	a.applyConfig(oldCfg, newCfg)

	req.Equal([]string{"wkwk", "ey"}, a.replier.Echoer().Words())

	select {
	case e := <-events:
		req.Equal(EventConfigReloaded, e.Type)
		ev, ok := e.Data.(ConfigReloadedEvent)
		req.True(ok)
		req.Contains(ev.Changed, "replier")
		req.Contains(ev.Changed, "dispatch")
		req.Contains(ev.RestartRequired, "dispatch")
	case <-time.After(time.Second):
		t.Fatal("no config.reloaded event")
	}
}

func TestApplyConfigNoChanges(t *testing.T) {
	t.Parallel()

	logs, log := logx.New(logx.Config{Level: "error"}, nil)
	t.Cleanup(func() { _ = logs.Close() })
	bus := eventbus.New()
	events, unsub := bus.Subscribe(1)
	defer unsub()

	a := &App{log: log, logs: logs, bus: bus}
	cfg := &config.Config{}
	a.applyConfig(cfg, cfg)

	select {
	case e := <-events:
		t.Fatalf("unexpected event %q", e.Type)
	default:
	}
}
