package locale

import (
	"strings"

	"github.com/ateliersillage/sillage-backend/pkg/enums"
)

// DefaultLocale is the language tag used when no site locale matches and as
// the translation fallback tier.
const DefaultLocale = "en-US"

// siteLocales maps the short storefront region codes to full language tags.
var siteLocales = map[string]string{
	"us": "en-US",
	"fr": "fr-FR",
	"tw": "zh-TW",
	"jp": "ja-JP",
	"kr": "ko-KR",
}

var currencies = map[string]enums.Currency{
	"en-US": enums.CurrencyUSD,
	"fr-FR": enums.CurrencyEUR,
	"zh-TW": enums.CurrencyTWD,
	"ja-JP": enums.CurrencyJPY,
	"ko-KR": enums.CurrencyKRW,
}

// Resolve converts a storefront region code or language tag into a supported
// language tag. Unknown values resolve to the default locale.
func Resolve(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return DefaultLocale
	}
	if tag, ok := siteLocales[strings.ToLower(v)]; ok {
		return tag
	}
	for _, tag := range siteLocales {
		if strings.EqualFold(tag, v) {
			return tag
		}
	}
	return DefaultLocale
}

// IsSupported reports whether the value resolves to a locale other than via
// the default fallback.
func IsSupported(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	if _, ok := siteLocales[strings.ToLower(v)]; ok {
		return true
	}
	for _, tag := range siteLocales {
		if strings.EqualFold(tag, v) {
			return true
		}
	}
	return false
}

// CurrencyFor returns the currency charged for the given language tag.
func CurrencyFor(tag string) enums.Currency {
	if c, ok := currencies[tag]; ok {
		return c
	}
	return enums.CurrencyUSD
}

// Supported lists every language tag the storefront serves.
func Supported() []string {
	return []string{"en-US", "fr-FR", "zh-TW", "ja-JP", "ko-KR"}
}
