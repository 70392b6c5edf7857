package service

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"relaybot/internal/domain"
	"relaybot/internal/i18n"
	"relaybot/internal/repository"

	"go.uber.org/zap"
)

// Admin command names with their Azerbaijani aliases
const (
	CommandReply   = "reply"
	CommandBlock   = "block"
	CommandUnblock = "unblock"

	CommandReplyAlias   = "cavab"
	CommandBlockAlias   = "blok"
	CommandUnblockAlias = "blokuac"
)

// AdminCommands lists every command name handled by AdminProcessor
var AdminCommands = []string{
	CommandReply, CommandReplyAlias,
	CommandBlock, CommandBlockAlias,
	CommandUnblock, CommandUnblockAlias,
}

// AdminProcessor executes operator-only commands
type AdminProcessor struct {
	users      repository.UserRepository
	localizer  *i18n.Localizer
	operatorID int64
	logger     *zap.Logger
}

// NewAdminProcessor creates an admin command processor
func NewAdminProcessor(
	users repository.UserRepository,
	localizer *i18n.Localizer,
	operatorID int64,
	logger *zap.Logger,
) *AdminProcessor {
	return &AdminProcessor{
		users:      users,
		localizer:  localizer,
		operatorID: operatorID,
		logger:     logger,
	}
}

// Authorized reports whether userID is the operator
func (p *AdminProcessor) Authorized(userID int64) bool {
	return userID == p.operatorID
}

// Process runs a command. Commands from anyone but the operator are dropped
// without a reply so their existence is not revealed.
func (p *AdminProcessor) Process(ctx context.Context, cmd domain.AdminCommand) []domain.Action {
	if !p.Authorized(cmd.Sender.ID) {
		p.logger.Warn("Admin command from non-operator ignored",
			zap.Int64("user_id", cmd.Sender.ID),
			zap.String("command", cmd.Name),
		)
		return nil
	}

	name := commandName(cmd.Name)

	switch name {
	case CommandReply, CommandReplyAlias:
		return p.reply(ctx, name, cmd.Payload)
	case CommandBlock, CommandBlockAlias:
		return p.block(ctx, name, cmd.Payload)
	case CommandUnblock, CommandUnblockAlias:
		return p.unblock(ctx, name, cmd.Payload)
	default:
		p.logger.Warn("Unknown admin command", zap.String("command", cmd.Name))
		return nil
	}
}

func (p *AdminProcessor) reply(ctx context.Context, name, payload string) []domain.Action {
	target, text, err := parseReplyArgs(name, payload)
	if err != nil {
		return usageActions(err)
	}

	lang := p.language(ctx, target)
	prefix := p.localizer.Template(i18n.KeyAdminReplyPrefix, lang)

	p.logger.Info("Operator reply", zap.Int64("target_id", target))

	return []domain.Action{
		domain.ReplyToUser{UserID: target, Text: prefix + text, MustDeliver: true},
		domain.NotifyOperator{Text: msgReplySent},
	}
}

func (p *AdminProcessor) block(ctx context.Context, name, payload string) []domain.Action {
	target, err := parseTargetArg(name, payload)
	if err != nil {
		return usageActions(err)
	}

	if err := p.users.SetBlocked(ctx, target, true); err != nil {
		p.logger.Error("Failed to block user", zap.Error(err), zap.Int64("target_id", target))
		return []domain.Action{domain.NotifyOperator{Text: formatError(err)}}
	}

	p.logger.Info("User blocked", zap.Int64("target_id", target))

	lang := p.language(ctx, target)

	// The notice is best effort: the block already took effect
	return []domain.Action{
		domain.ReplyToUser{UserID: target, Text: p.localizer.Template(i18n.KeyBlockNotice, lang)},
		domain.NotifyOperator{Text: msgUserBlocked},
	}
}

func (p *AdminProcessor) unblock(ctx context.Context, name, payload string) []domain.Action {
	target, err := parseTargetArg(name, payload)
	if err != nil {
		return usageActions(err)
	}

	if err := p.users.SetBlocked(ctx, target, false); err != nil {
		p.logger.Error("Failed to unblock user", zap.Error(err), zap.Int64("target_id", target))
		return []domain.Action{domain.NotifyOperator{Text: formatError(err)}}
	}

	p.logger.Info("User unblocked", zap.Int64("target_id", target))

	return []domain.Action{domain.NotifyOperator{Text: msgUserUnlocked}}
}

func (p *AdminProcessor) language(ctx context.Context, userID int64) domain.Language {
	lang, err := p.users.GetLanguage(ctx, userID)
	if err != nil {
		p.logger.Error("Failed to get language", zap.Error(err), zap.Int64("user_id", userID))
		return domain.DefaultLanguage
	}
	return lang
}

func usageActions(err *domain.ValidationError) []domain.Action {
	return []domain.Action{domain.NotifyOperator{Text: err.Usage}}
}

// commandName strips the leading slash and a "@botname" suffix
func commandName(raw string) string {
	name := strings.TrimPrefix(strings.TrimSpace(raw), "/")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name)
}

// parseReplyArgs splits "<id> <text...>". The text keeps its line breaks.
func parseReplyArgs(name, payload string) (int64, string, *domain.ValidationError) {
	usage := &domain.ValidationError{Usage: formatUsage(name, "<id> <mesaj>")}

	payload = strings.TrimSpace(payload)
	if len(strings.Fields(payload)) < 2 {
		return 0, "", usage
	}

	idEnd := strings.IndexFunc(payload, unicode.IsSpace)
	target, err := strconv.ParseInt(payload[:idEnd], 10, 64)
	if err != nil {
		return 0, "", usage
	}

	return target, strings.TrimSpace(payload[idEnd:]), nil
}

// parseTargetArg reads the first argument as a user id; extra arguments are ignored
func parseTargetArg(name, payload string) (int64, *domain.ValidationError) {
	usage := &domain.ValidationError{Usage: formatUsage(name, "<id>")}

	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return 0, usage
	}

	target, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, usage
	}
	return target, nil
}
