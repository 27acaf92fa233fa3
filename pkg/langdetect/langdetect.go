package langdetect

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength caps the parsed header; longer values are truncated.
const maxAcceptLanguageLength = 4096

// Matcher picks one of a fixed set of language codes for a user's preferences.
// Codes are returned exactly as configured, never canonicalized.
type Matcher struct {
	codes   []string
	index   []int
	matcher language.Matcher
}

// New builds a matcher over available. Codes that are not valid BCP 47 tags
// can only be matched verbatim.
func New(available ...string) *Matcher {
	m := &Matcher{codes: available}

	tags := make([]language.Tag, 0, len(available))
	for i, code := range available {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		m.index = append(m.index, i)
	}
	if len(tags) > 0 {
		m.matcher = language.NewMatcher(tags)
	}
	return m
}

// Match returns the best available code for an Accept-Language value.
// ok is false when nothing acceptable to the user is available.
func (m *Matcher) Match(acceptLanguage string) (code string, ok bool) {
	if acceptLanguage == "" || len(m.codes) == 0 {
		return "", false
	}
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return m.verbatim(acceptLanguage)
	}
	if m.matcher == nil {
		return m.verbatim(acceptLanguage)
	}

	_, idx, confidence := m.matcher.Match(desired...)
	if confidence == language.No {
		return "", false
	}
	return m.codes[m.index[idx]], true
}

// verbatim matches a single code that x/text cannot parse.
func (m *Matcher) verbatim(value string) (string, bool) {
	for _, code := range m.codes {
		if code == value {
			return code, true
		}
	}
	return "", false
}

// Detect is a convenience for New(available...).Match with a fallback.
func Detect(acceptLanguage string, available []string, fallback string) string {
	if code, ok := New(available...).Match(acceptLanguage); ok {
		return code
	}
	return fallback
}
