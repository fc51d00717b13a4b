package statsservice

import (
	"time"

	"golang.org/x/text/language"
)

var (
	supportedLocales = []language.Tag{language.Indonesian, language.English}
	localeMatcher    = language.NewMatcher(supportedLocales)

	shortMonths = [][12]string{
		{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"},
		{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	}
)

// Locale selects the language of the chart labels.
type Locale struct {
	idx int
}

// NewLocale returns the supported locale closest to the given BCP 47 tag list,
// e.g. "id-ID" or "en-US,en;q=0.8". It falls back to Indonesian.
func NewLocale(s string) Locale {
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return Locale{}
	}

	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return Locale{}
	}

	return Locale{idx: idx}
}

// ShortMonth returns the abbreviated month name.
func (l Locale) ShortMonth(m time.Month) string {
	return shortMonths[l.idx][m-1]
}

func (l Locale) String() string {
	return supportedLocales[l.idx].String()
}
