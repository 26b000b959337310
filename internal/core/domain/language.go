package domain

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is a user interface language preference.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguagePortuguese Language = "pt"

	DefaultLanguage = LanguageEnglish
)

var (
	baseEnglish, _    = language.English.Base()
	basePortuguese, _ = language.Portuguese.Base()
)

// ParseLanguage maps a BCP-47 tag onto a supported language by its base
// subtag. Empty or unsupported input yields DefaultLanguage.
func ParseLanguage(raw string) Language {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return DefaultLanguage
	}
	base, _ := tag.Base()
	switch base {
	case basePortuguese:
		return LanguagePortuguese
	case baseEnglish:
		return LanguageEnglish
	default:
		return DefaultLanguage
	}
}
