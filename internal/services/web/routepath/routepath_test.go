package routepath

import "testing"

func TestRouteConstants(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		Root:      "/",
		Throw:     "/throw",
		ThrowText: "/throw.txt",
		About:     "/about",
		Health:    "/up",
	}
	for got, want := range tests {
		if got != want {
			t.Fatalf("route = %q, want %q", got, want)
		}
	}
}

func TestThrowBuilders(t *testing.T) {
	t.Parallel()

	if got, want := ThrowFor("will it rain?", "2024-01-01"), "/throw?asof=2024-01-01&prompt=will+it+rain%3F"; got != want {
		t.Fatalf("ThrowFor() = %q, want %q", got, want)
	}
	if got, want := ThrowTextFor("", "2024-01-01"), "/throw.txt?asof=2024-01-01&prompt="; got != want {
		t.Fatalf("ThrowTextFor() = %q, want %q", got, want)
	}
}

func TestWithLang(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, query, lang, want string
	}{
		{path: "/", query: "", lang: "pt-BR", want: "/?lang=pt-BR"},
		{path: "", query: "", lang: "en-US", want: "/?lang=en-US"},
		{path: "/throw", query: "prompt=q&asof=2024-01-01&lang=en-US", lang: "pt-BR", want: "/throw?asof=2024-01-01&lang=pt-BR&prompt=q"},
		{path: "/about", query: "%zz", lang: "pt-BR", want: "/about?lang=pt-BR"},
	}
	for _, tt := range tests {
		if got := WithLang(tt.path, tt.query, tt.lang); got != tt.want {
			t.Fatalf("WithLang(%q, %q, %q) = %q, want %q", tt.path, tt.query, tt.lang, got, tt.want)
		}
	}
}
