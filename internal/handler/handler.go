package handler

import (
	"context"

	"relaybot/internal/domain"
	"relaybot/internal/middleware"
	"relaybot/internal/service"
	"relaybot/internal/transport/telegram"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler adapts telebot updates to router events
type Handler struct {
	// shutdownCtx is the process-lifetime context, cancelled on shutdown.
	// Telebot handlers carry no context, so storage calls are bound to it.
	shutdownCtx context.Context
	bot         *tele.Bot
	router      *service.Router
	dispatcher  *service.Dispatcher
	logger      *zap.Logger
}

// NewHandler creates a new handler instance. shutdownCtx is the
// process-lifetime context and bounds every storage call.
func NewHandler(
	shutdownCtx context.Context,
	bot *tele.Bot,
	router *service.Router,
	dispatcher *service.Dispatcher,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		shutdownCtx: shutdownCtx,
		bot:         bot,
		router:      router,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.Trace(h.logger), middleware.Recover(h.logger))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	for _, name := range service.AdminCommands {
		h.bot.Handle("/"+name, h.handleAdmin)
	}

	// Messages
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnVoice, h.handleVoice)
	h.bot.Handle(tele.OnAudio, h.handleVoice)

	// Language keyboard
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// HandleError is the bot-wide error handler. Faults are reported to the
// operator, except poller conflicts which are only logged.
func (h *Handler) HandleError(err error, c tele.Context) {
	if err == nil {
		return
	}

	if telegram.IsConflict(err) {
		h.logger.Warn("Another instance is polling with the same token", zap.Error(err))
		return
	}

	traceID := middleware.TraceID(c)
	h.logger.Error("Exception while handling an update",
		zap.Error(err),
		zap.String(middleware.TraceKey, traceID),
	)
	h.dispatcher.ReportFault(err, traceID)
}

func (h *Handler) process(c tele.Context, event domain.Event) error {
	h.logger.Info("Processing event",
		zap.String("kind", event.Kind()),
		zap.Int64("user_id", event.From().ID),
		zap.String(middleware.TraceKey, middleware.TraceID(c)),
	)

	actions := h.router.Route(h.shutdownCtx, event)
	h.dispatcher.Dispatch(actions)
	return nil
}
