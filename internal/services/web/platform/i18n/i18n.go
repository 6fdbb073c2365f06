// Package i18n resolves the language of a web request and persists the
// visitor's choice.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	platformi18n "github.com/louisbranch/hexagram/internal/platform/i18n"
	"github.com/louisbranch/hexagram/internal/services/web/routepath"
)

// LangCookieName stores the visitor's language preference.
const LangCookieName = "hx_lang"

const cookieMaxAge = 365 * 24 * time.Hour

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

// ResolveTag picks the request language from, in order, the lang query
// parameter, the language cookie and Accept-Language. The bool reports
// whether the query parameter chose it and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(routepath.QueryLang)); value != "" {
		if tag, ok := platformi18n.ParseTag(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}
	return platformi18n.DefaultTag(), false
}

// SetLanguageCookie persists tag on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Localize resolves the request language, persists an explicit choice and
// returns a printer for it.
func Localize(w http.ResponseWriter, r *http.Request) (*message.Printer, language.Tag) {
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return platformi18n.Printer(tag), tag
}

// Options lists the supported languages with active marking the current one.
func Options(active language.Tag, p *message.Printer) []LanguageOption {
	tags := platformi18n.SupportedTags()
	options := make([]LanguageOption, 0, len(tags))
	for _, tag := range tags {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  p.Sprintf("lang." + tag.String()),
			Active: tag == active,
		})
	}
	return options
}
