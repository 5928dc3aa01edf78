package models

// DefaultLocale is used when a text has no entry for the requested locale.
const DefaultLocale = "en"

// Localized maps a locale code ("en", "es") to a display text.
type Localized map[string]string

// In returns the text for locale, falling back to DefaultLocale and then to
// any available entry.
func (l Localized) In(locale string) string {
	if s, ok := l[locale]; ok && s != "" {
		return s
	}
	if s, ok := l[DefaultLocale]; ok && s != "" {
		return s
	}
	for _, s := range l {
		if s != "" {
			return s
		}
	}
	return ""
}
