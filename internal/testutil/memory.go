package testutil

import (
	"context"
	"sync"

	"relaybot/internal/domain"
)

// MemoryUserRepository keeps user records in process memory. It follows the
// Postgres repository semantics: reads never create records, writes upsert.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]domain.User
}

// NewMemoryUserRepository creates an empty in-memory repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]domain.User)}
}

// GetLanguage returns the stored language or the default one
func (r *MemoryUserRepository) GetLanguage(_ context.Context, userID int64) (domain.Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return domain.DefaultLanguage, nil
	}
	return user.Language, nil
}

// SetLanguage stores user's language
func (r *MemoryUserRepository) SetLanguage(_ context.Context, userID int64, lang domain.Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.lookup(userID)
	user.Language = lang
	r.users[userID] = user
	return nil
}

// IsBlocked checks if user is blocked
func (r *MemoryUserRepository) IsBlocked(_ context.Context, userID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.users[userID].Blocked, nil
}

// SetBlocked sets or clears the blocked flag
func (r *MemoryUserRepository) SetBlocked(_ context.Context, userID int64, blocked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.lookup(userID)
	user.Blocked = blocked
	r.users[userID] = user
	return nil
}

// Len returns the number of materialized records
func (r *MemoryUserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *MemoryUserRepository) lookup(userID int64) domain.User {
	if user, ok := r.users[userID]; ok {
		return user
	}
	return domain.NewUser(userID)
}
