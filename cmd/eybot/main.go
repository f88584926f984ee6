package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"eybot/internal/app"
	"eybot/pkg/logx"
	"eybot/pkg/systemd"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config (yaml or json)")
	flag.Parse()

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	a, err := app.NewApp(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
	log := a.Logger()

	if err := a.Start(ctx); err != nil {
		log.Error("fatal start", logx.Err(err))
		os.Exit(1)
	}
	if _, err := systemd.Ready(); err != nil {
		log.Warn("systemd notify failed", logx.Err(err))
	}
	go systemd.RunWatchdog(ctx, log)

	reason := app.StopUnknown
	select {
	case sig := <-sigs:
		reason = app.StopSIGTERM
		if sig == os.Interrupt {
			reason = app.StopSIGINT
		}
	case <-a.Done():
		reason = app.StopFatalError
		log.Error("app stopped unexpectedly", logx.Err(a.Err()))
	}

	_, _ = systemd.Stopping()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	stop(stopCtx, a, reason, os.Stderr)
	cancel()

	if reason == app.StopFatalError {
		os.Exit(1)
	}
}

type stopper interface {
	Stop(ctx context.Context, reason app.StopReason) error
}

// stop shuts the app down and reports a failed stop (e.g. the log file
// not closing) on w, since the logger may already be gone.
func stop(ctx context.Context, s stopper, reason app.StopReason, w io.Writer) {
	if err := s.Stop(ctx, reason); err != nil {
		fmt.Fprintln(w, "stop:", err)
	}
}
