// Package templates renders the oracle's HTML pages. Page markup lives in
// the .templ sources; run `templ generate` after editing them.
package templates

import (
	"net/http"

	"golang.org/x/text/message"

	webi18n "github.com/louisbranch/hexagram/internal/services/web/platform/i18n"
)

// Localizer translates catalog keys.
type Localizer interface {
	Sprintf(key message.Reference, a ...any) string
}

// T translates key with loc, returning the key itself when loc is nil.
func T(loc Localizer, key string, args ...any) string {
	if loc == nil {
		return key
	}
	return loc.Sprintf(key, args...)
}

// PageContext carries the per-request values every page needs.
type PageContext struct {
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	Languages    []webi18n.LanguageOption
}

// HomeParams prefills the question form.
type HomeParams struct {
	Prompt string
	AsOf   string
}

var aboutParagraphs = []string{"about.method", "about.odds", "about.seed"}

func pageLang(page PageContext) string {
	if page.Lang == "" {
		return "en-US"
	}
	return page.Lang
}

// ErrorTitle returns the translated heading for statusCode.
func ErrorTitle(loc Localizer, statusCode int) string {
	switch statusCode {
	case http.StatusNotFound:
		return T(loc, "error.not_found")
	case http.StatusMethodNotAllowed:
		return T(loc, "error.method_not_allowed")
	case http.StatusBadRequest:
		return T(loc, "error.bad_request")
	default:
		return T(loc, "error.internal")
	}
}
