package repository

import (
	"context"

	"relaybot/internal/domain"
)

// UserRepository defines user preference operations.
// Reads of unknown users return defaults and create nothing; writes upsert.
type UserRepository interface {
	GetLanguage(ctx context.Context, userID int64) (domain.Language, error)
	SetLanguage(ctx context.Context, userID int64, lang domain.Language) error
	IsBlocked(ctx context.Context, userID int64) (bool, error)
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
}
