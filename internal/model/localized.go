package model

import "github.com/google/uuid"

const (
	LocaleEN = "en"
	LocaleAR = "ar"
)

// LocalizedText holds the English/Arabic variants of a display string.
// The UI is bilingual and every name-like field exists in both languages.
type LocalizedText struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

// Resolve picks the variant for the requested locale, falling back to the
// other language when the preferred one is empty.
func (t LocalizedText) Resolve(locale string) string {
	if locale == LocaleAR {
		if t.AR != "" {
			return t.AR
		}
		return t.EN
	}
	if t.EN != "" {
		return t.EN
	}
	return t.AR
}

// RequestContext carries the per-request cross-cutting state (locale and
// authenticated user) explicitly into services, instead of reading it from
// ambient globals.
type RequestContext struct {
	Locale string
	UserID uuid.UUID
	Role   string
}

// NormalizeLocale collapses any Accept-Language style value to "en" or "ar".
func NormalizeLocale(raw string) string {
	if len(raw) >= 2 && raw[:2] == LocaleAR {
		return LocaleAR
	}
	return LocaleEN
}
