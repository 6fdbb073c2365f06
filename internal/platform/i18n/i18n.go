// Package i18n serves the translated copy from the embedded catalogs and the
// language negotiation helpers built on golang.org/x/text.
package i18n

import (
	"fmt"
	"strings"

	"github.com/louisbranch/hexagram/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	textcatalog "golang.org/x/text/message/catalog"
)

var (
	// EnglishUS is the base locale; every key must exist here.
	EnglishUS = language.AmericanEnglish
	// PortugueseBR is the secondary locale.
	PortugueseBR = language.BrazilianPortuguese

	supported = []language.Tag{EnglishUS, PortugueseBR}
	matcher   = language.NewMatcher(supported)
)

var locales = mustLoad(catalog.Default())

var builder = mustBuild()

func mustLoad(bundle *catalog.Bundle) map[language.Tag]map[string]string {
	out := make(map[language.Tag]map[string]string, len(supported))
	for _, tag := range supported {
		if !bundle.HasLocale(tag.String()) {
			panic(fmt.Sprintf("i18n: no catalog for %s", tag))
		}
		out[tag] = bundle.LocaleMessages(tag.String())
	}
	return out
}

func mustBuild() *textcatalog.Builder {
	b := textcatalog.NewBuilder(textcatalog.Fallback(EnglishUS))
	for tag, messages := range locales {
		for key, value := range messages {
			if err := b.SetString(tag, key, value); err != nil {
				panic(fmt.Sprintf("i18n: set %s %q: %v", tag, key, err))
			}
		}
	}
	return b
}

// DefaultTag returns the base locale.
func DefaultTag() language.Tag {
	return EnglishUS
}

// SupportedTags returns a copy of the supported locales, base first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// ParseTag parses value and reports whether it maps onto a supported locale.
// Regional variants fall back to their language, so "pt" and "pt-PT" both
// resolve to pt-BR.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	matched, confidence := MatchTag(tag)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return matched, true
}

// MatchTag picks the supported locale closest to tag.
func MatchTag(tag language.Tag) (language.Tag, language.Confidence) {
	_, index, confidence := matcher.Match(tag)
	return supported[index], confidence
}

// MatchTags picks the supported locale closest to an ordered preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, _ := matcher.Match(tags...)
	return supported[index]
}

// Printer returns a printer over the hexagram catalog for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(builder))
}

// Keys returns the message keys defined for tag.
func Keys(tag language.Tag) []string {
	messages := locales[tag]
	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}
	return keys
}
