package router

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"eybot/internal/reply"
	rtsup "eybot/internal/runtime/supervisor"
	kit "eybot/internal/transport"
	logx "eybot/pkg/logx"
)

const (
	defaultWorkers   = 2
	defaultQueueSize = 256
	defaultTimeout   = 15 * time.Second
)

// Replier is what the dispatcher hands messages to.
type Replier interface {
	MaybeReply(ctx context.Context, msg reply.Message) error
}

type Config struct {
	Workers   int
	QueueSize int
	// Timeout bounds one MaybeReply call.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = defaultQueueSize
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Request is one incoming message on its way to the replier.
type Request struct {
	Message reply.Message
	Source  *kit.Message
	Logger  logx.Logger
}

func (r *Request) logger(fallback logx.Logger) logx.Logger {
	if r != nil && !r.Logger.IsZero() {
		return r.Logger
	}
	return fallback
}

// Dispatcher feeds incoming updates to the replier through a bounded
// worker pool. Messages from one chat may be handled concurrently; the
// evaluators guard their own state.
type Dispatcher struct {
	cfg     Config
	log     logx.Logger
	replier Replier
	handler HandlerFunc

	jobs chan func()

	runMu   sync.Mutex
	running bool
	sup     *rtsup.Supervisor
}

func NewDispatcher(cfg Config, replier Replier, log logx.Logger) *Dispatcher {
	cfg = cfg.withDefaults()
	if log.IsZero() {
		log = logx.Nop()
	}
	d := &Dispatcher{
		cfg:     cfg,
		log:     log,
		replier: replier,
		jobs:    make(chan func(), cfg.QueueSize),
	}
	d.handler = Chain(
		func(ctx context.Context, req *Request) error { return d.replier.MaybeReply(ctx, req.Message) },
		MWPanicRecover(log),
		MWRequestLog(log),
		MWTimeout(cfg.Timeout),
	)
	return d
}

// Supervisor returns the worker pool supervisor while DispatchLoop runs.
func (d *Dispatcher) Supervisor() *rtsup.Supervisor {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	return d.sup
}

func (d *Dispatcher) setSupervisor(sup *rtsup.Supervisor, running bool) {
	d.runMu.Lock()
	d.sup = sup
	d.running = running
	d.runMu.Unlock()
}

// DispatchLoop consumes updates until ctx ends or the channel closes.
// It must be called at most once per Dispatcher.
func (d *Dispatcher) DispatchLoop(ctx context.Context, updates <-chan kit.Update) error {
	sup := rtsup.NewSupervisor(ctx,
		rtsup.WithLogger(d.log.With(logx.String("comp", "telegram.router"))),
		rtsup.WithCancelOnError(false),
	)
	d.setSupervisor(sup, true)
	d.log.Info("dispatcher started", logx.Int("workers", d.cfg.Workers), logx.Int("job_queue_cap", cap(d.jobs)))

	for i := 0; i < d.cfg.Workers; i++ {
		idx := i
		sup.GoRestart("reply.worker."+strconv.Itoa(idx), func(c context.Context) error {
			d.log.Debug("reply worker started", logx.Int("worker", idx))
			defer d.log.Debug("reply worker stopped", logx.Int("worker", idx))
			for {
				select {
				case <-c.Done():
					return nil
				case job, ok := <-d.jobs:
					if !ok {
						return nil
					}
					if job != nil {
						job()
					}
				}
			}
		},
			rtsup.WithRestartBackoff(200*time.Millisecond, 5*time.Second),
			rtsup.WithPublishFirstError(true),
		)
	}

	defer func() {
		d.runMu.Lock()
		d.running = false
		close(d.jobs)
		d.runMu.Unlock()
		wctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_ = sup.Wait(wctx)
		cancel()
		d.setSupervisor(nil, false)
		d.log.Info("dispatcher stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case up, ok := <-updates:
			if !ok {
				d.log.Info("updates channel closed")
				return nil
			}
			d.route(ctx, up)
		}
	}
}

func (d *Dispatcher) route(root context.Context, up kit.Update) {
	if up.Kind != kit.UpdateMessage || up.Message == nil {
		return
	}
	src := up.Message
	// Commands are not chat; the bot has none of its own.
	if src.HasText && strings.HasPrefix(strings.TrimSpace(src.Text), "/") {
		return
	}

	rid := uuid.NewString()
	req := &Request{
		Message: toReplyMessage(src),
		Source:  src,
		Logger: d.log.With(
			logx.String("rid", rid),
			logx.ChatID(src.ChatID),
			logx.Int("msg_id", src.ID),
			logx.Int("thread_id", src.ThreadID),
			logx.Int64("from_id", src.FromID),
		),
	}
	if !d.tryEnqueue(func() { _ = d.handler(root, req) }) {
		req.Logger.Warn("reply queue full; message dropped", logx.Int("queue_cap", cap(d.jobs)))
	}
}

func (d *Dispatcher) tryEnqueue(job func()) bool {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	if !d.running {
		return false
	}
	select {
	case d.jobs <- job:
		return true
	default:
		return false
	}
}

func toReplyMessage(m *kit.Message) reply.Message {
	return reply.Message{
		ChatID:    m.ChatID,
		ChatTitle: m.ChatTitle,
		Text:      m.Text,
		HasText:   m.HasText,
	}
}
