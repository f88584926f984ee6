package router

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	logx "eybot/pkg/logx"
)

type HandlerFunc func(ctx context.Context, req *Request) error

type Middleware func(next HandlerFunc) HandlerFunc

func Chain(h HandlerFunc, m ...Middleware) HandlerFunc {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

func MWTimeout(d time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) error {
			if d <= 0 {
				return next(ctx, req)
			}
			cctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(cctx, req)
		}
	}
}

func MWPanicRecover(log logx.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) (err error) {
			defer func() {
				if r := recover(); r != nil {
					req.logger(log).Error("panic recovered",
						logx.Any("panic", r),
						logx.Stack(string(debug.Stack())),
					)
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return next(ctx, req)
		}
	}
}

// MWRequestLog logs failures at WARN and slow messages at INFO. Everything
// else goes to DEBUG so busy groups don't flood the log.
func MWRequestLog(log logx.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request) error {
			start := time.Now()
			logger := req.logger(log)
			err := next(ctx, req)
			d := time.Since(start)

			fields := []logx.Field{logx.Duration("dur", d)}
			if src := req.Source; src != nil {
				fields = append(fields,
					logx.String("from", src.FromUsername),
					logx.Bool("group", src.IsGroup),
					logx.Bool("media", !src.HasText),
				)
				if !src.HasText {
					fields = append(fields, logx.Int("caption_len", len([]rune(src.Caption))))
				}
			}
			switch {
			case err != nil:
				logger.Warn("reply failed", append(fields, logx.Err(err))...)
			case d >= 750*time.Millisecond:
				logger.Info("message handled (slow)", fields...)
			default:
				logger.Debug("message handled", fields...)
			}
			return err
		}
	}
}
