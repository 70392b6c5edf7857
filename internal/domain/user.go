package domain

import "strings"

// Language is a user interface language code
type Language string

const (
	LanguageAz Language = "az"
	LanguageTr Language = "tr"
	LanguageRu Language = "ru"
	LanguageEn Language = "en"

	// DefaultLanguage is used for users without a stored preference
	DefaultLanguage = LanguageAz
)

// Languages lists supported languages in keyboard order
var Languages = []Language{LanguageAz, LanguageTr, LanguageRu, LanguageEn}

var languageLabels = map[Language]string{
	LanguageAz: "🇦🇿 Azərbaycanca",
	LanguageTr: "🇹🇷 Türkçe",
	LanguageRu: "🇷🇺 Русский",
	LanguageEn: "🇬🇧 English",
}

// ParseLanguage returns the language for a code and whether it is supported
func ParseLanguage(code string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	_, ok := languageLabels[lang]
	return lang, ok
}

// Label returns the button caption for the language
func (l Language) Label() string {
	return languageLabels[l]
}

// LanguageCallbackPrefix prefixes callback data of language buttons
const LanguageCallbackPrefix = "lang_"

// CallbackData returns callback payload selecting this language
func (l Language) CallbackData() string {
	return LanguageCallbackPrefix + string(l)
}

// User represents a stored user record
type User struct {
	UserID   int64
	Language Language
	Blocked  bool
}

// NewUser returns the implicit record of a user that was never stored
func NewUser(userID int64) User {
	return User{UserID: userID, Language: DefaultLanguage}
}
