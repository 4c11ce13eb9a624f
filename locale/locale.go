// Package locale collates, folds and formats catalog text for one
// configured language.
package locale

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DateLayout is the layout of dates exchanged with the data service.
const DateLayout = "2006-01-02"

// dateLayouts holds the display layout per base language.
var dateLayouts = map[string]string{
	"vi": "2/1/2006",
	"en": "1/2/2006",
	"fr": "02/01/2006",
	"de": "2.1.2006",
}

type Locale struct {
	tag      language.Tag
	currency string
	printer  *message.Printer
}

// New builds a Locale for a BCP 47 tag such as "vi" or "en-US".
func New(tag, currency string) (*Locale, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return nil, err
	}
	return &Locale{
		tag:      t,
		currency: currency,
		printer:  message.NewPrinter(t),
	}, nil
}

func (l *Locale) Tag() language.Tag { return l.tag }

// SortBy sorts items in place by key using the locale's collation. The
// sort is stable so equal names keep their service order.
func SortBy[T any](l *Locale, items []T, key func(T) string) {
	c := collate.New(l.tag)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(key(items[i]), key(items[j])) < 0
	})
}

// Fold maps s to a case- and diacritic-insensitive form: case folding,
// canonical decomposition, then removal of nonspacing marks.
func Fold(s string) string {
	t := transform.Chain(cases.Fold(), norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Contains reports whether keyword occurs in s, ignoring case and diacritics.
func Contains(s, keyword string) bool {
	return strings.Contains(Fold(s), Fold(keyword))
}

// FormatPrice renders v with locale digit grouping followed by the currency symbol.
func (l *Locale) FormatPrice(v float64) string {
	s := l.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
	if l.currency == "" {
		return s
	}
	return s + " " + l.currency
}

// FormatDate renders a service date (YYYY-MM-DD or RFC 3339) in the
// locale's short date form. Unparseable input is returned unchanged.
func (l *Locale) FormatDate(s string) string {
	d, ok := ParseDate(s)
	if !ok {
		return s
	}
	base, _ := l.tag.Base()
	layout, ok := dateLayouts[base.String()]
	if !ok {
		layout = DateLayout
	}
	return d.Format(layout)
}

// ParseDate accepts the date forms REST stores emit for a calendar date.
func ParseDate(s string) (time.Time, bool) {
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d, true
	}
	return time.Time{}, false
}
