package testutil

import (
	"context"
	"sync"
	"testing"

	"relaybot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestMemoryUserRepository_UnknownUserDefaults(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	lang, err := repo.GetLanguage(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.LanguageAz, lang)

	blocked, err := repo.IsBlocked(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, blocked)

	// Reads never materialize a record
	assert.Equal(t, 0, repo.Len())
}

func TestMemoryUserRepository_SetLanguageIdempotent(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	for _, lang := range domain.Languages {
		assert.NoError(t, repo.SetLanguage(ctx, 5, lang))
		assert.NoError(t, repo.SetLanguage(ctx, 5, lang))

		got, err := repo.GetLanguage(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, lang, got)
	}
	assert.Equal(t, 1, repo.Len())
}

func TestMemoryUserRepository_BlockRoundTrip(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	assert.NoError(t, repo.SetLanguage(ctx, 9, domain.LanguageEn))
	assert.NoError(t, repo.SetBlocked(ctx, 9, true))

	blocked, _ := repo.IsBlocked(ctx, 9)
	assert.True(t, blocked)

	assert.NoError(t, repo.SetBlocked(ctx, 9, false))

	blocked, _ = repo.IsBlocked(ctx, 9)
	assert.False(t, blocked)

	// Blocking keeps the language
	lang, _ := repo.GetLanguage(ctx, 9)
	assert.Equal(t, domain.LanguageEn, lang)
}

func TestMemoryUserRepository_BlockBeforeLanguage(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	assert.NoError(t, repo.SetBlocked(ctx, 3, true))

	lang, _ := repo.GetLanguage(ctx, 3)
	assert.Equal(t, domain.LanguageAz, lang)
}

func TestMemoryUserRepository_ConcurrentWrites(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = repo.SetLanguage(ctx, 1, domain.LanguageRu)
		}()
		go func() {
			defer wg.Done()
			_ = repo.SetBlocked(ctx, 1, true)
		}()
	}
	wg.Wait()

	lang, _ := repo.GetLanguage(ctx, 1)
	blocked, _ := repo.IsBlocked(ctx, 1)
	assert.Equal(t, domain.LanguageRu, lang)
	assert.True(t, blocked)
}
