package testutil

import (
	"testing"

	"relaybot/internal/domain"
	"relaybot/internal/i18n"
	"relaybot/internal/moderation"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// OperatorID is the operator identity used across tests
const OperatorID int64 = 1000

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestSender creates a test sender
func NewTestSender(id int64, username string) domain.Sender {
	return domain.Sender{
		ID:        id,
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
	}
}

// NewTestLocalizer loads the embedded templates
func NewTestLocalizer(t *testing.T) *i18n.Localizer {
	t.Helper()
	loc, err := i18n.Load()
	require.NoError(t, err)
	return loc
}

// NewTestFilter creates a filter with a small fixed term list
func NewTestFilter(terms ...string) *moderation.Filter {
	if len(terms) == 0 {
		terms = []string{"idiot", "fuck"}
	}
	return moderation.NewFilter(terms)
}
