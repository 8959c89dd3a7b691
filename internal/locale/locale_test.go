package locale

import (
	"testing"

	"github.com/ateliersillage/sillage-backend/pkg/enums"
)

func TestResolveRegionCodes(t *testing.T) {
	cases := map[string]string{
		"us":    "en-US",
		"fr":    "fr-FR",
		"tw":    "zh-TW",
		"jp":    "ja-JP",
		"kr":    "ko-KR",
		"FR":    "fr-FR",
		"fr-FR": "fr-FR",
		"ZH-TW": "zh-TW",
		"":      DefaultLocale,
		"de":    DefaultLocale,
		"xx-YY": DefaultLocale,
	}
	for input, want := range cases {
		if got := Resolve(input); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("tw") || !IsSupported("ja-JP") {
		t.Fatal("expected known locales to be supported")
	}
	if IsSupported("") || IsSupported("de") {
		t.Fatal("expected unknown locales to be unsupported")
	}
}

func TestCurrencyFor(t *testing.T) {
	cases := map[string]enums.Currency{
		"en-US": enums.CurrencyUSD,
		"fr-FR": enums.CurrencyEUR,
		"zh-TW": enums.CurrencyTWD,
		"ja-JP": enums.CurrencyJPY,
		"ko-KR": enums.CurrencyKRW,
		"xx-YY": enums.CurrencyUSD,
	}
	for tag, want := range cases {
		if got := CurrencyFor(tag); got != want {
			t.Fatalf("CurrencyFor(%q) = %s, want %s", tag, got, want)
		}
	}
}
