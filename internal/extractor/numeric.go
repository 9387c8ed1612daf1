package extractor

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"covidbot/internal/common"
)

// NumberLocale describes the separator conventions used by the source page's
// number rendering.
type NumberLocale struct {
	Group   rune
	Decimal rune
}

// numberLocales maps a base language to its separator conventions.
var numberLocales = map[string]NumberLocale{
	"en": {Group: ',', Decimal: '.'},
	"de": {Group: '.', Decimal: ','},
	"es": {Group: '.', Decimal: ','},
	"fr": {Group: ' ', Decimal: ','},
}

// LocaleFor resolves the separator conventions for a BCP 47 tag, falling back
// to en conventions for unknown languages.
func LocaleFor(tag language.Tag) NumberLocale {
	base, _ := tag.Base()
	if loc, ok := numberLocales[base.String()]; ok {
		return loc
	}
	return numberLocales["en"]
}

// ParseNumber converts one table cell's text into a number.
//
// Surrounding whitespace is stripped and an empty cell parses as zero. A
// leading "+-" (the source renders some negative deltas with a stray plus) is
// normalized to "-". Group separators are removed and the locale's decimal
// separator canonicalized to "." before an integer parse is attempted, then a
// float parse. Cells matching neither are unparsable.
func ParseNumber(text string, loc NumberLocale) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, nil
	}

	if strings.HasPrefix(s, "+-") {
		s = s[1:]
	}
	s = strings.ReplaceAll(s, string(loc.Group), "")
	if loc.Decimal != '.' {
		s = strings.ReplaceAll(s, string(loc.Decimal), ".")
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, common.NewError("unparsable numeric cell: %q", text)
	}
	return f, nil
}
