package enums

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported UI language code.
type Language string

const (
	LanguageJapanese Language = "ja"
	LanguageEnglish  Language = "en"

	DefaultLanguage = LanguageJapanese
)

var validLanguages = []Language{
	LanguageJapanese,
	LanguageEnglish,
}

func (l Language) String() string {
	return string(l)
}

func (l Language) IsValid() bool {
	for _, candidate := range validLanguages {
		if candidate == l {
			return true
		}
	}
	return false
}

// Tag returns the BCP 47 tag, falling back to the default language.
func (l Language) Tag() language.Tag {
	if l == LanguageEnglish {
		return language.English
	}
	return language.Japanese
}

var languageMatcher = language.NewMatcher([]language.Tag{language.Japanese, language.English})

// ParseLanguage accepts a bare code ("en") or a full tag ("en-US").
func ParseLanguage(value string) (Language, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return "", fmt.Errorf("invalid language %q", value)
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid language %q", value)
	}
	base, _ := tag.Base()
	for _, candidate := range validLanguages {
		if base.String() == string(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", value)
}

// MatchLanguage picks the best supported language for an Accept-Language header.
func MatchLanguage(acceptLanguage string) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return DefaultLanguage
	}
	return validLanguages[index]
}
