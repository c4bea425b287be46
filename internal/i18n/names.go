// Package i18n maps stable product ids to per-language display names.
package i18n

import (
	"strings"

	"github.com/shoptodo/shoptodo-backend/pkg/enums"
)

// ProductNames is keyed by product id so a renamed primary name never leaves a
// translation stranded.
type ProductNames struct {
	names map[int]map[enums.Language]string
}

// NewProductNames copies table into an immutable lookup.
func NewProductNames(table map[int]map[enums.Language]string) *ProductNames {
	names := make(map[int]map[enums.Language]string, len(table))
	for id, byLang := range table {
		inner := make(map[enums.Language]string, len(byLang))
		for lang, name := range byLang {
			inner[lang] = name
		}
		names[id] = inner
	}
	return &ProductNames{names: names}
}

// Name returns the name for id in lang, or fallback when no entry exists.
func (p *ProductNames) Name(id int, lang enums.Language, fallback string) string {
	if p == nil {
		return fallback
	}
	if name, ok := p.names[id][lang]; ok && name != "" {
		return name
	}
	return fallback
}

// Aliases returns every translated name for id.
func (p *ProductNames) Aliases(id int) []string {
	if p == nil {
		return nil
	}
	byLang := p.names[id]
	out := make([]string, 0, len(byLang))
	for _, lang := range []enums.Language{enums.LanguageJapanese, enums.LanguageEnglish} {
		if name, ok := byLang[lang]; ok && name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Matches reports whether any translated name of id contains term, ignoring case.
func (p *ProductNames) Matches(id int, term string) bool {
	term = strings.ToLower(term)
	for _, alias := range p.Aliases(id) {
		if strings.Contains(strings.ToLower(alias), term) {
			return true
		}
	}
	return false
}

// DefaultProductNames is the translation table for the built-in catalog.
func DefaultProductNames() *ProductNames {
	return NewProductNames(map[int]map[enums.Language]string{
		1: {enums.LanguageJapanese: "ノートパソコン", enums.LanguageEnglish: "Laptop"},
		2: {enums.LanguageJapanese: "ワイヤレスイヤホン", enums.LanguageEnglish: "Wireless Earbuds"},
		3: {enums.LanguageJapanese: "スマートウォッチ", enums.LanguageEnglish: "Smartwatch"},
		4: {enums.LanguageJapanese: "Tシャツ", enums.LanguageEnglish: "T-Shirt"},
		5: {enums.LanguageJapanese: "ジーンズ", enums.LanguageEnglish: "Jeans"},
		6: {enums.LanguageJapanese: "プログラミング入門", enums.LanguageEnglish: "Introduction to Programming"},
		7: {enums.LanguageJapanese: "料理の本", enums.LanguageEnglish: "Cookbook"},
		8: {enums.LanguageJapanese: "コーヒーメーカー", enums.LanguageEnglish: "Coffee Maker"},
		9: {enums.LanguageJapanese: "デスクランプ", enums.LanguageEnglish: "Desk Lamp"},
	})
}

var categoryLabels = map[enums.Category]map[enums.Language]string{
	enums.CategoryElectronics: {enums.LanguageJapanese: "家電", enums.LanguageEnglish: "Electronics"},
	enums.CategoryClothing:    {enums.LanguageJapanese: "衣類", enums.LanguageEnglish: "Clothing"},
	enums.CategoryBooks:       {enums.LanguageJapanese: "本", enums.LanguageEnglish: "Books"},
	enums.CategoryHome:        {enums.LanguageJapanese: "ホーム", enums.LanguageEnglish: "Home"},
}

// CategoryLabel returns the display label for a category.
func CategoryLabel(category enums.Category, lang enums.Language) string {
	if label, ok := categoryLabels[category][lang]; ok {
		return label
	}
	return category.String()
}
