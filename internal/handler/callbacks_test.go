package handler

import (
	"testing"

	"relaybot/internal/domain"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "test_data",
			expected: "test_data",
		},
		{
			name:     "string with whitespace",
			input:    "  test_data  ",
			expected: "test_data",
		},
		{
			name:     "string with newline",
			input:    "test\ndata",
			expected: "testdata",
		},
		{
			name:     "string with tab",
			input:    "test\tdata",
			expected: "testdata",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "test\x00data\x01",
			expected: "testdata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCallbackEvent(t *testing.T) {
	tests := []struct {
		name     string
		callback *tele.Callback
		expected domain.CallbackQuery
	}{
		{
			name: "raw data with message",
			callback: &tele.Callback{
				ID:      "1",
				Sender:  &tele.User{ID: 5, FirstName: "Ali"},
				Data:    "lang_en",
				Message: &tele.Message{ID: 77, Chat: &tele.Chat{ID: 5}},
			},
			expected: domain.CallbackQuery{
				Sender:    domain.Sender{ID: 5, FirstName: "Ali"},
				ID:        "1",
				Data:      "lang_en",
				ChatID:    5,
				MessageID: 77,
			},
		},
		{
			name: "unique prefix is stripped",
			callback: &tele.Callback{
				ID:     "2",
				Sender: &tele.User{ID: 6},
				Data:   "\flang_ru",
			},
			expected: domain.CallbackQuery{
				Sender: domain.Sender{ID: 6},
				ID:     "2",
				Data:   "lang_ru",
			},
		},
		{
			name: "unique set by telebot",
			callback: &tele.Callback{
				ID:     "3",
				Sender: &tele.User{ID: 7},
				Unique: "lang_tr",
			},
			expected: domain.CallbackQuery{
				Sender: domain.Sender{ID: 7},
				ID:     "3",
				Data:   "lang_tr",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, callbackEvent(tt.callback))
		})
	}
}
