package i18n

import (
	_ "embed"
	"fmt"

	"relaybot/internal/domain"

	"gopkg.in/yaml.v3"
)

// Key names a localized template
type Key string

const (
	KeyWelcomePrompt     Key = "welcome_prompt"
	KeyLanguageConfirmed Key = "language_confirmed"
	KeyRequestReceived   Key = "request_received"
	KeyVoiceReceived     Key = "voice_received"
	KeyModerationWarning Key = "moderation_warning"
	KeyBlockNotice       Key = "block_notice"
	KeyAdminReplyPrefix  Key = "admin_reply_prefix"
)

// Keys is the closed set of template keys
var Keys = []Key{
	KeyWelcomePrompt,
	KeyLanguageConfirmed,
	KeyRequestReceived,
	KeyVoiceReceived,
	KeyModerationWarning,
	KeyBlockNotice,
	KeyAdminReplyPrefix,
}

//go:embed locales.yaml
var embeddedLocales []byte

// Localizer maps (key, language) to a template. It is immutable after Load.
type Localizer struct {
	templates map[domain.Language]map[Key]string
}

// Load parses the embedded templates
func Load() (*Localizer, error) {
	return Parse(embeddedLocales)
}

// Parse builds a localizer from YAML data. The default language must define
// every key so that fallback lookups always succeed.
func Parse(data []byte) (*Localizer, error) {
	var raw map[string]map[Key]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode locales: %w", err)
	}

	templates := make(map[domain.Language]map[Key]string, len(raw))
	for code, entries := range raw {
		lang, ok := domain.ParseLanguage(code)
		if !ok {
			return nil, fmt.Errorf("unsupported language %q in locales", code)
		}
		templates[lang] = entries
	}

	defaults := templates[domain.DefaultLanguage]
	for _, key := range Keys {
		if _, ok := defaults[key]; !ok {
			return nil, fmt.Errorf("default language %q misses template %q", domain.DefaultLanguage, key)
		}
	}

	return &Localizer{templates: templates}, nil
}

// Template returns the text for key in lang, falling back to the default language
func (l *Localizer) Template(key Key, lang domain.Language) string {
	if text, ok := l.templates[lang][key]; ok {
		return text
	}
	return l.templates[domain.DefaultLanguage][key]
}
