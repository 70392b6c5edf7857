package middleware

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// TraceKey is the context key holding the update trace id
const TraceKey = "trace_id"

// Trace tags every update with a trace id and logs its arrival
func Trace(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			traceID := uuid.NewString()
			c.Set(TraceKey, traceID)

			fields := []zap.Field{zap.String(TraceKey, traceID)}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}
			logger.Debug("Update received", fields...)

			return next(c)
		}
	}
}

// TraceID returns the trace id stored by Trace, or empty
func TraceID(c tele.Context) string {
	if c == nil {
		return ""
	}
	id, _ := c.Get(TraceKey).(string)
	return id
}
