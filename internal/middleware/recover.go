package middleware

import (
	"fmt"
	"runtime/debug"

	"relaybot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Recover converts a panic in a handler into a *domain.FaultError carrying the
// stack, so it reaches the bot error handler instead of killing the poller.
func Recover(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					logger.Error("Recovered from panic in handler",
						zap.Any("panic", r),
						zap.ByteString("stack", stack),
					)
					err = &domain.FaultError{Err: fmt.Errorf("panic: %v", r), Stack: stack}
				}
			}()
			return next(c)
		}
	}
}
