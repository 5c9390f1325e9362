// Package i18n holds the display strings, currency and date formatting for the
// four supported languages.
package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the supported display languages.
type Language string

const (
	EN Language = "en"
	PT Language = "pt"
	ES Language = "es"
	JA Language = "ja"
)

// Default is used for new profiles and for screens rendered before a profile is loaded.
const Default = PT

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrMissingTranslation  = errors.New("missing translation")
)

// Languages lists every supported language in display order.
var Languages = []Language{EN, PT, ES, JA}

func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}

	return l, nil
}

func (l Language) Valid() bool {
	switch l {
	case EN, PT, ES, JA:
		return true
	}

	return false
}

// Tag returns the regional locale used for number formatting.
func (l Language) Tag() language.Tag {
	switch l {
	case EN:
		return language.AmericanEnglish
	case ES:
		return language.EuropeanSpanish
	case JA:
		return language.Japanese
	}

	return language.BrazilianPortuguese
}

func (l Language) String() string {
	return string(l)
}
