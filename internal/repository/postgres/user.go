package postgres

import (
	"context"
	"database/sql"
	"errors"

	"relaybot/internal/domain"
)

// UserRepo implements repository.UserRepository on a pooled *sql.DB.
// Every write is a single upsert statement, so concurrent updates of one
// user resolve as last write wins without a read-then-write race.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetLanguage returns the stored language or the default one
func (r *UserRepo) GetLanguage(ctx context.Context, userID int64) (domain.Language, error) {
	var code sql.NullString
	query := `SELECT language FROM users WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&code)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultLanguage, nil
	}
	if err != nil {
		return domain.DefaultLanguage, &domain.StorageError{Op: "get language", UserID: userID, Err: err}
	}

	// Rows created by a block before any selection have no language
	lang, ok := domain.ParseLanguage(code.String)
	if !code.Valid || !ok {
		return domain.DefaultLanguage, nil
	}
	return lang, nil
}

// SetLanguage stores user's language
func (r *UserRepo) SetLanguage(ctx context.Context, userID int64, lang domain.Language) error {
	query := `
		INSERT INTO users (user_id, language)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET language = EXCLUDED.language, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, userID, string(lang)); err != nil {
		return &domain.StorageError{Op: "set language", UserID: userID, Err: err}
	}
	return nil
}

// IsBlocked checks if user is blocked
func (r *UserRepo) IsBlocked(ctx context.Context, userID int64) (bool, error) {
	var blocked bool
	query := `SELECT is_blocked FROM users WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&blocked)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &domain.StorageError{Op: "check blocked", UserID: userID, Err: err}
	}

	return blocked, nil
}

// SetBlocked sets or clears the blocked flag
func (r *UserRepo) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	query := `
		INSERT INTO users (user_id, is_blocked)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET is_blocked = EXCLUDED.is_blocked, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, userID, blocked); err != nil {
		return &domain.StorageError{Op: "set blocked", UserID: userID, Err: err}
	}
	return nil
}
