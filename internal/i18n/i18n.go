// Package i18n picks the visitor's active language when the form omits it.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/welcomedesk/visitors/internal/models"
)

var (
	supported = []language.Tag{language.English, language.Spanish}
	matcher   = language.NewMatcher(supported)
)

// Negotiate returns "en" or "es": the ?lang= query parameter when valid,
// then the best Accept-Language match, then English.
func Negotiate(r *http.Request) string {
	if q := r.URL.Query().Get("lang"); q != "" {
		if l, ok := Parse(q); ok {
			return l
		}
	}
	if h := r.Header.Get("Accept-Language"); h != "" {
		tags, _, err := language.ParseAcceptLanguage(h)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return code(supported[idx])
			}
		}
	}
	return models.LangEnglish
}

// Parse maps a tag such as "es-MX" to a supported language code.
func Parse(s string) (string, bool) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case models.LangEnglish:
		return models.LangEnglish, true
	case models.LangSpanish:
		return models.LangSpanish, true
	}
	return "", false
}

func code(t language.Tag) string {
	base, _ := t.Base()
	return base.String()
}
