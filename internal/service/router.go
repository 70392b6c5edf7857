package service

import (
	"context"
	"strings"

	"relaybot/internal/domain"
	"relaybot/internal/i18n"
	"relaybot/internal/moderation"
	"relaybot/internal/repository"

	"go.uber.org/zap"
)

// Router turns inbound events into ordered outbound actions
type Router struct {
	users     repository.UserRepository
	filter    *moderation.Filter
	localizer *i18n.Localizer
	admin     *AdminProcessor
	logger    *zap.Logger
}

// NewRouter creates a router. The filter and localizer are shared and never mutated.
func NewRouter(
	users repository.UserRepository,
	filter *moderation.Filter,
	localizer *i18n.Localizer,
	operatorID int64,
	logger *zap.Logger,
) *Router {
	return &Router{
		users:     users,
		filter:    filter,
		localizer: localizer,
		admin:     NewAdminProcessor(users, localizer, operatorID, logger),
		logger:    logger,
	}
}

// Route decides what to do with an event
func (r *Router) Route(ctx context.Context, event domain.Event) []domain.Action {
	switch e := event.(type) {
	case domain.StartCommand:
		return r.routeStart(ctx, e)
	case domain.TextMessage:
		return r.routeText(ctx, e)
	case domain.VoiceMessage:
		return r.routeVoice(ctx, e)
	case domain.CallbackQuery:
		return r.routeCallback(ctx, e)
	case domain.AdminCommand:
		return r.admin.Process(ctx, e)
	default:
		r.logger.Warn("Unknown event type", zap.String("kind", event.Kind()))
		return nil
	}
}

func (r *Router) routeStart(ctx context.Context, e domain.StartCommand) []domain.Action {
	lang := r.language(ctx, e.Sender.ID)
	return []domain.Action{
		domain.PromptLanguage{
			UserID: e.ChatID,
			Text:   r.localizer.Template(i18n.KeyWelcomePrompt, lang),
		},
	}
}

func (r *Router) routeText(ctx context.Context, e domain.TextMessage) []domain.Action {
	if r.blocked(ctx, e.Sender.ID) {
		r.logger.Debug("Dropping text from blocked user", zap.Int64("user_id", e.Sender.ID))
		return nil
	}

	lang := r.language(ctx, e.Sender.ID)

	if term, ok := r.filter.Match(e.Text); ok {
		r.logger.Info("Forbidden term detected",
			zap.Int64("user_id", e.Sender.ID),
			zap.String("term", term),
		)
		return []domain.Action{
			domain.NotifyOperator{Text: formatAlert(e.Sender, e.Text)},
			domain.ReplyToUser{
				UserID: e.ChatID,
				Text:   r.localizer.Template(i18n.KeyModerationWarning, lang),
			},
		}
	}

	return []domain.Action{
		domain.NotifyOperator{Text: formatRequest(e.Sender, e.Text)},
		domain.ReplyToUser{
			UserID: e.ChatID,
			Text:   r.localizer.Template(i18n.KeyRequestReceived, lang),
		},
	}
}

func (r *Router) routeVoice(ctx context.Context, e domain.VoiceMessage) []domain.Action {
	if r.blocked(ctx, e.Sender.ID) {
		r.logger.Debug("Dropping voice from blocked user", zap.Int64("user_id", e.Sender.ID))
		return nil
	}

	lang := r.language(ctx, e.Sender.ID)

	return []domain.Action{
		domain.ForwardToOperator{FromChatID: e.ChatID, MessageID: e.MessageID},
		domain.NotifyOperator{Text: formatVoice(e.Sender)},
		domain.ReplyToUser{
			UserID: e.ChatID,
			Text:   r.localizer.Template(i18n.KeyVoiceReceived, lang),
		},
	}
}

// routeCallback handles language selection; blocked users may still select
func (r *Router) routeCallback(ctx context.Context, e domain.CallbackQuery) []domain.Action {
	actions := []domain.Action{domain.AnswerCallback{CallbackID: e.ID}}

	data := strings.TrimSpace(e.Data)
	if !strings.HasPrefix(data, domain.LanguageCallbackPrefix) {
		r.logger.Warn("Unhandled callback", zap.String("data", data), zap.Int64("user_id", e.Sender.ID))
		return actions
	}

	lang, ok := domain.ParseLanguage(strings.TrimPrefix(data, domain.LanguageCallbackPrefix))
	if !ok {
		r.logger.Warn("Unsupported language selected", zap.String("data", data), zap.Int64("user_id", e.Sender.ID))
		return actions
	}

	if err := r.users.SetLanguage(ctx, e.Sender.ID, lang); err != nil {
		r.logger.Error("Failed to set language", zap.Error(err), zap.Int64("user_id", e.Sender.ID))
		return actions
	}

	r.logger.Info("Language selected", zap.Int64("user_id", e.Sender.ID), zap.String("language", string(lang)))

	text := r.localizer.Template(i18n.KeyLanguageConfirmed, lang)
	if e.MessageID == 0 {
		return append(actions, domain.ReplyToUser{UserID: e.Sender.ID, Text: text})
	}
	return append(actions, domain.EditMessage{ChatID: e.ChatID, MessageID: e.MessageID, Text: text})
}

// blocked treats a storage failure as an unknown, unblocked user
func (r *Router) blocked(ctx context.Context, userID int64) bool {
	blocked, err := r.users.IsBlocked(ctx, userID)
	if err != nil {
		r.logger.Error("Failed to check blocked status", zap.Error(err), zap.Int64("user_id", userID))
		return false
	}
	return blocked
}

// language treats a storage failure as the default language
func (r *Router) language(ctx context.Context, userID int64) domain.Language {
	lang, err := r.users.GetLanguage(ctx, userID)
	if err != nil {
		r.logger.Error("Failed to get language", zap.Error(err), zap.Int64("user_id", userID))
		return domain.DefaultLanguage
	}
	return lang
}
