// Package i18n provides localized string lookup for user-facing replies.
// Catalogs are compiled in; unknown keys fall back to English, then to the
// key itself so a missing translation never breaks a conversation.
package i18n

import "fmt"

// SupportedLanguages lists the language codes offered at onboarding.
var SupportedLanguages = []string{"en", "ru"}

// IsSupported reports whether the given language code has a catalog.
func IsSupported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}

// T resolves a message key for a language. Arguments are applied with
// fmt.Sprintf when present.
func T(lang, key string, args ...any) string {
	catalog, ok := catalogs[lang]
	if !ok {
		catalog = catalogs["en"]
	}
	msg, ok := catalog[key]
	if !ok {
		msg, ok = catalogs["en"][key]
		if !ok {
			return key
		}
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
