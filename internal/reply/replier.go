package reply

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"eybot/internal/eventbus"
	"eybot/pkg/logx"
)

// Event types published on the bus.
const (
	EventSent    = "reply.sent"
	EventSkipped = "reply.skipped"
)

// Rule names used in logs and events.
const (
	RuleResurrection = "resurrection"
	RuleEcho         = "echo"
	RuleClapback     = "clapback"
	RuleEyOfTheDay   = "ey_of_the_day"
)

// SentEvent is the Data of an EventSent event.
type SentEvent struct {
	Rule   string
	ChatID int64
}

// SkippedEvent is the Data of an EventSkipped event.
type SkippedEvent struct {
	ChatID int64
	Reason string
}

// Replier runs every evaluator for each incoming message.
type Replier struct {
	log logx.Logger
	bus eventbus.Bus
	now func() time.Time

	resurrectionOn atomic.Bool

	echoer       *Echoer
	clapbacker   *Clapbacker
	eyOfTheDayer *EyOfTheDayer
	resurrection *ResurrectionMessenger
}

type Option func(*Replier)

func WithLogger(log logx.Logger) Option { return func(r *Replier) { r.log = log } }

// WithBus publishes EventSent / EventSkipped on b.
func WithBus(b eventbus.Bus) Option { return func(r *Replier) { r.bus = b } }

// WithClock overrides time.Now for the ey-of-the-day rule.
func WithClock(now func() time.Time) Option { return func(r *Replier) { r.now = now } }

// New builds the evaluators once; their state lives as long as the Replier.
func New(client Client, s Settings, opts ...Option) *Replier {
	r := &Replier{now: time.Now}
	for _, o := range opts {
		o(r)
	}
	if r.log.IsZero() {
		r.log = logx.Nop()
	}
	s = s.withDefaults()

	r.echoer = NewEchoer(client, s.EchoWords, r.log.With(logx.Rule(RuleEcho)))
	r.clapbacker = NewClapbacker(client, s.ClapbackTrigger, s.ClapbackReply, r.log.With(logx.Rule(RuleClapback)))
	r.eyOfTheDayer = NewEyOfTheDayer(client, s.EyOfTheDayMessage, s.Location, r.now, r.log.With(logx.Rule(RuleEyOfTheDay)))
	r.resurrection = NewResurrectionMessenger(client, s.ResurrectionMessage, r.log.With(logx.Rule(RuleResurrection)))
	r.resurrectionOn.Store(s.ResurrectionEnabled)
	return r
}

// Apply swaps word lists and messages at runtime. Evaluator state
// (last day, notified chats) survives.
func (r *Replier) Apply(s Settings) {
	s = s.withDefaults()
	r.echoer.SetWords(s.EchoWords)
	r.clapbacker.Set(s.ClapbackTrigger, s.ClapbackReply)
	r.eyOfTheDayer.Set(s.EyOfTheDayMessage, s.Location)
	r.resurrection.SetMessage(s.ResurrectionMessage)
	r.resurrectionOn.Store(s.ResurrectionEnabled)
}

func (r *Replier) Echoer() *Echoer                               { return r.echoer }
func (r *Replier) Clapbacker() *Clapbacker                       { return r.clapbacker }
func (r *Replier) EyOfTheDayer() *EyOfTheDayer                   { return r.eyOfTheDayer }
func (r *Replier) ResurrectionMessenger() *ResurrectionMessenger { return r.resurrection }

// MaybeReply runs the evaluators in order. A message missing an expected
// field is logged and skipped without error; any other failure is returned
// as soon as it happens and the remaining evaluators do not run.
func (r *Replier) MaybeReply(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		if !errors.Is(err, ErrMissingField) {
			return err
		}
		// Media messages are routine input, not failures.
		r.log.Debug("message didn't have the field we need", logx.ChatID(msg.ChatID), logx.Err(err))
		eventbus.Emit(r.bus, EventSkipped, SkippedEvent{ChatID: msg.ChatID, Reason: err.Error()})
		return nil
	}

	type step struct {
		rule string
		run  func(context.Context, Message) (bool, error)
	}
	steps := make([]step, 0, 4)
	if r.resurrectionOn.Load() {
		steps = append(steps, step{RuleResurrection, r.resurrection.MaybeSend})
	}
	steps = append(steps,
		step{RuleEcho, r.echoer.MaybeEcho},
		step{RuleClapback, r.clapbacker.MaybeClapback},
		step{RuleEyOfTheDay, r.eyOfTheDayer.MaybeSend},
	)

	for _, st := range steps {
		sent, err := st.run(ctx, msg)
		if err != nil {
			return fmt.Errorf("%s: %w", st.rule, err)
		}
		if sent {
			eventbus.Emit(r.bus, EventSent, SentEvent{Rule: st.rule, ChatID: msg.ChatID})
		}
	}
	return nil
}
