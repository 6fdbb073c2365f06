// Package routepath stores canonical HTTP paths for the web service.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root      = "/"
	Throw     = "/throw"
	ThrowText = "/throw.txt"
	About     = "/about"
	Health    = "/up"
)

// Query parameter names.
const (
	QueryPrompt = "prompt"
	QueryAsOf   = "asof"
	QueryLang   = "lang"
)

// ThrowFor returns the throw page URL for prompt and asof.
func ThrowFor(prompt, asof string) string {
	return Throw + "?" + throwQuery(prompt, asof)
}

// ThrowTextFor returns the plain-text throw URL for prompt and asof.
func ThrowTextFor(prompt, asof string) string {
	return ThrowText + "?" + throwQuery(prompt, asof)
}

// WithLang returns path with its query rewritten to select lang, keeping
// every other parameter.
func WithLang(path, rawQuery, lang string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = Root
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	values.Set(QueryLang, lang)
	return path + "?" + values.Encode()
}

func throwQuery(prompt, asof string) string {
	values := url.Values{}
	values.Set(QueryPrompt, prompt)
	values.Set(QueryAsOf, asof)
	return values.Encode()
}
