package i18n

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestLocalesDefineSameKeys(t *testing.T) {
	t.Parallel()

	base := Keys(EnglishUS)
	sort.Strings(base)
	for _, tag := range SupportedTags() {
		keys := Keys(tag)
		sort.Strings(keys)
		if diff := cmp.Diff(base, keys); diff != "" {
			t.Fatalf("keys for %s differ from %s (-base +got):\n%s", tag, EnglishUS, diff)
		}
	}
}

func TestPrinterTranslates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  language.Tag
		key  string
		want string
	}{
		{tag: EnglishUS, key: "nav.about", want: "About"},
		{tag: PortugueseBR, key: "nav.about", want: "Sobre"},
		{tag: PortugueseBR, key: "error.PROMPT_MISSING", want: "Uma pergunta é obrigatória."},
	}
	for _, tt := range tests {
		if got := Printer(tt.tag).Sprintf(tt.key); got != tt.want {
			t.Fatalf("Printer(%s).Sprintf(%q) = %q, want %q", tt.tag, tt.key, got, tt.want)
		}
	}
}

func TestPrinterFormatsArguments(t *testing.T) {
	t.Parallel()

	got := Printer(EnglishUS).Sprintf("error.ASOF_INVALID", "2024-02-30")
	if want := `"2024-02-30" is not a valid YYYY-MM-DD date.`; got != want {
		t.Fatalf("Sprintf() = %q, want %q", got, want)
	}
	if got, want := Printer(PortugueseBR).Sprintf("throw.figure", 4, "Youthful Folly"), "4. Youthful Folly"; got != want {
		t.Fatalf("Sprintf() = %q, want %q", got, want)
	}
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   language.Tag
		wantOK bool
	}{
		{in: "en-US", want: EnglishUS, wantOK: true},
		{in: "pt-BR", want: PortugueseBR, wantOK: true},
		{in: " pt-br ", want: PortugueseBR, wantOK: true},
		{in: "pt", want: PortugueseBR, wantOK: true},
		{in: "", want: EnglishUS, wantOK: false},
		{in: "not a tag!", want: EnglishUS, wantOK: false},
		{in: "ja", want: EnglishUS, wantOK: false},
	}
	for _, tt := range tests {
		got, ok := ParseTag(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("ParseTag(%q) = (%s, %v), want (%s, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMatchTags(t *testing.T) {
	t.Parallel()

	if got := MatchTags(nil); got != EnglishUS {
		t.Fatalf("MatchTags(nil) = %s, want %s", got, EnglishUS)
	}
	prefs := []language.Tag{language.MustParse("fr"), language.MustParse("pt-PT")}
	if got := MatchTags(prefs); got != PortugueseBR {
		t.Fatalf("MatchTags(fr, pt-PT) = %s, want %s", got, PortugueseBR)
	}
}

func TestSupportedTagsReturnsCopy(t *testing.T) {
	t.Parallel()

	tags := SupportedTags()
	tags[0] = language.Japanese
	if SupportedTags()[0] != EnglishUS {
		t.Fatal("SupportedTags() exposed internal slice")
	}
}
