package xliffai

import "strings"

// LanguageNames maps locale codes to human-readable names for AI
// prompts. BC XLIFF files use hyphenated locale codes.
var LanguageNames = map[string]string{
	"en-US": "English (United States)",
	"en-GB": "English (United Kingdom)",
	"cs-CZ": "Czech (Czech Republic)",
	"da-DK": "Danish (Denmark)",
	"de-AT": "German (Austria)",
	"de-CH": "German (Switzerland)",
	"de-DE": "German (Germany)",
	"es-ES": "Spanish (Spain)",
	"es-MX": "Spanish (Mexico)",
	"fi-FI": "Finnish (Finland)",
	"fr-BE": "French (Belgium)",
	"fr-CA": "French (Canada)",
	"fr-FR": "French (France)",
	"is-IS": "Icelandic (Iceland)",
	"it-IT": "Italian (Italy)",
	"nb-NO": "Norwegian Bokmål (Norway)",
	"nl-BE": "Dutch (Belgium)",
	"nl-NL": "Dutch (Netherlands)",
	"pl-PL": "Polish (Poland)",
	"pt-BR": "Portuguese (Brazil)",
	"ru-RU": "Russian (Russia)",
	"sv-SE": "Swedish (Sweden)",
}

// ShortCodeToLocale maps short language codes to full locale codes.
var ShortCodeToLocale = map[string]string{
	"en": "en-US",
	"cs": "cs-CZ",
	"da": "da-DK",
	"de": "de-DE",
	"es": "es-ES",
	"fi": "fi-FI",
	"fr": "fr-FR",
	"is": "is-IS",
	"it": "it-IT",
	"nb": "nb-NO",
	"nl": "nl-NL",
	"pl": "pl-PL",
	"pt": "pt-BR",
	"ru": "ru-RU",
	"sv": "sv-SE",
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	code := NormalizeLocale(langCode)
	if name, ok := LanguageNames[code]; ok {
		return name
	}
	if locale, ok := ShortCodeToLocale[strings.ToLower(code)]; ok {
		if name, ok := LanguageNames[locale]; ok {
			return name
		}
	}
	return langCode
}

// NormalizeLocale converts a language code to the hyphenated format used
// in BC XLIFF files (e.g. "de_DE" -> "de-DE").
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(langCode, "_", "-")
}
