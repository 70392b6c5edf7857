package service

import (
	"errors"
	"fmt"
	"html"
	"unicode/utf8"

	"relaybot/internal/domain"
)

// Operator-facing texts are always Azerbaijani
const (
	noUsername = "Yoxdur"

	msgReplySent    = "✅ Cavab göndərildi."
	msgUserBlocked  = "🚫 İstifadəçi bloklandı."
	msgUserUnlocked = "✅ Blok açıldı."

	// Telegram rejects longer messages
	maxMessageLength = 4096
)

func usernameOf(s domain.Sender) string {
	if s.Username == "" {
		return noUsername
	}
	return "@" + s.Username
}

func formatRequest(s domain.Sender, text string) string {
	return fmt.Sprintf(
		"📨 Yeni müraciət:\n\n👤 Ad Soyad: %s\n🆔 ID: %d\n🔗 Username: %s\n\n💬 Mesaj:\n%s",
		s.FullName(), s.ID, usernameOf(s), text,
	)
}

func formatAlert(s domain.Sender, text string) string {
	return fmt.Sprintf(
		"⚠️ Yasaklı söz istifadə edildi!\n\n👤 İstifadəçi: %s\n🆔 ID: %d\n🔗 Username: %s\n\n💬 Mesaj:\n%s",
		s.FullName(), s.ID, usernameOf(s), text,
	)
}

func formatVoice(s domain.Sender) string {
	return fmt.Sprintf(
		"🎙️ Yeni səsli mesaj:\n\n👤 Ad Soyad: %s\n🆔 ID: %d\n🔗 Username: %s",
		s.FullName(), s.ID, usernameOf(s),
	)
}

func formatUsage(command, args string) string {
	return fmt.Sprintf("❗️ İstifadə edin: /%s %s", command, args)
}

// formatError renders a recoverable failure for the operator
func formatError(err error) string {
	var deliveryErr *domain.DeliveryError
	if errors.As(err, &deliveryErr) {
		err = deliveryErr.Err
	}
	return fmt.Sprintf("❌ Xəta: %v", err)
}

// formatFault renders an unexpected failure as HTML diagnostic text
func formatFault(err error, traceID string) string {
	detail := err.Error()

	var faultErr *domain.FaultError
	if errors.As(err, &faultErr) && len(faultErr.Stack) > 0 {
		detail += "\n\n" + string(faultErr.Stack)
	}
	if traceID != "" {
		detail = "trace " + traceID + "\n" + detail
	}

	const head, tail = "❌ Xəta:\n<pre>", "</pre>"
	budget := maxMessageLength - utf8.RuneCountInString(head) - utf8.RuneCountInString(tail)

	// Escaping may grow the text past the limit, so shrink the cut until it fits
	cut := budget
	escaped := html.EscapeString(truncate(detail, cut))
	for utf8.RuneCountInString(escaped) > budget && cut > 0 {
		cut -= 256
		escaped = html.EscapeString(truncate(detail, cut))
	}

	return head + escaped + tail
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
